package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alias1177/CoinCast/internal/analysis/prediction"
	"github.com/Alias1177/CoinCast/internal/di"
	"github.com/Alias1177/CoinCast/models"
)

var (
	predictSymbol  string
	predictTimeout time.Duration
	predictSeed    int64
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run one forecast round and print the results",
	Long: `Fetch the top assets once and print a forecast table.

Examples:
  coincast predict                  # batch profile over the top assets
  coincast predict --symbol BTC     # single-asset profile for one symbol
  coincast predict --seed 42        # reproducible run`,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVar(&predictSymbol, "symbol", "", "Forecast only this symbol with the single-asset profile")
	predictCmd.Flags().DurationVar(&predictTimeout, "timeout", 30*time.Second, "Timeout for the whole run")
	predictCmd.Flags().Int64Var(&predictSeed, "seed", 0, "Random seed, 0 picks one from the clock")
}

func runPredict(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if predictSeed != 0 {
		cfg.ForecastSeed = predictSeed
		cfg.Profiles.Single.Seed = predictSeed
		cfg.Profiles.Batch.Seed = predictSeed
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), predictTimeout)
	defer cancel()

	snapshots, err := app.Source.TopByVolume(ctx, cfg.TopN)
	if err != nil {
		return fmt.Errorf("fetch snapshots: %w", err)
	}

	out := cmd.OutOrStdout()
	if predictSymbol == "" {
		batch := app.Forecasters.Batch.ForecastBatch(ctx, snapshots)
		printResults(out, batch.Results)
		for _, f := range batch.Failures {
			fmt.Fprintf(out, "skipped %s: %v\n", f.Symbol, f.Err)
		}
		return nil
	}

	snapshot, ok := findSymbol(snapshots, predictSymbol)
	if !ok {
		return fmt.Errorf("symbol %s not found in the top %d assets", predictSymbol, cfg.TopN)
	}

	seed := cfg.Profiles.Single.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	result, err := app.Forecasters.Single.Forecast(ctx, snapshot, prediction.NewSeededSource(seed))
	if err != nil {
		if errors.Is(err, prediction.ErrInvalidSnapshot) {
			return fmt.Errorf("feed returned unusable data for %s: %w", snapshot.Symbol, err)
		}
		return err
	}
	printResults(out, []models.ForecastResult{result})
	printPath(out, result)
	return nil
}

func findSymbol(snapshots []models.AssetSnapshot, symbol string) (models.AssetSnapshot, bool) {
	for _, s := range snapshots {
		if strings.EqualFold(s.Symbol, symbol) || strings.EqualFold(s.ID, symbol) {
			return s, true
		}
	}
	return models.AssetSnapshot{}, false
}

func printResults(w io.Writer, results []models.ForecastResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tPRICE\tPREDICTED\tRETURN\tSIGNAL\tCONFIDENCE\tPNL 10x\tPNL 20x")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%+.2f%%\t%s\t%.1f%%\t%+.2f\t%+.2f\n",
			strings.ToUpper(r.Snapshot.Symbol),
			formatPrice(r.Snapshot.CurrentPrice),
			formatPrice(r.Last().Predicted),
			r.ExpectedReturnPct,
			r.Recommendation,
			r.Confidence,
			r.ProfitAt10x,
			r.ProfitAt20x,
		)
	}
	tw.Flush()
}

func printPath(w io.Writer, r models.ForecastResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nMIN\tLOW\tPREDICTED\tHIGH\tCONFIDENCE")
	for _, p := range r.Points {
		fmt.Fprintf(tw, "+%d\t%s\t%s\t%s\t%.1f%%\n",
			p.MinutesAhead, formatPrice(p.LowerBound), formatPrice(p.Predicted), formatPrice(p.UpperBound), p.Confidence)
	}
	tw.Flush()
}

// formatPrice keeps significant digits for sub-dollar assets
func formatPrice(v float64) string {
	switch {
	case v >= 1000:
		return fmt.Sprintf("%.2f", v)
	case v >= 1:
		return fmt.Sprintf("%.4f", v)
	default:
		return fmt.Sprintf("%.8f", v)
	}
}
