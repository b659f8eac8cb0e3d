package market

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	phttp "github.com/Alias1177/CoinCast/internal/platform/http"
	"github.com/Alias1177/CoinCast/models"
)

// DefaultCoinGeckoURL is the public API root
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

const apiKeyHeader = "x-cg-pro-api-key"

// CoinGeckoSource reads the market list and price history from the CoinGecko REST API
type CoinGeckoSource struct {
	client  *phttp.Client
	baseURL string
	apiKey  string
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
}

// NewCoinGeckoSource creates a CoinGecko feed. An empty baseURL selects the public API.
func NewCoinGeckoSource(client *phttp.Client, baseURL, apiKey string, logger zerolog.Logger) *CoinGeckoSource {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}

	st := gobreaker.Settings{Name: "coingecko"}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}

	l := logger.With().Str("component", "coingecko").Logger()
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		l.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
	}

	return &CoinGeckoSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		breaker: gobreaker.NewCircuitBreaker(st),
		logger:  l,
	}
}

// Name implements models.SnapshotSource
func (s *CoinGeckoSource) Name() string { return "coingecko" }

type coinMarket struct {
	ID                string     `json:"id"`
	Symbol            string     `json:"symbol"`
	Name              string     `json:"name"`
	CurrentPrice      *float64   `json:"current_price"`
	MarketCap         *float64   `json:"market_cap"`
	TotalVolume       *float64   `json:"total_volume"`
	High24h           *float64   `json:"high_24h"`
	Low24h            *float64   `json:"low_24h"`
	PriceChangePct24h *float64   `json:"price_change_percentage_24h"`
	PriceChangePct1h  *float64   `json:"price_change_percentage_1h_in_currency"`
	LastUpdated       *time.Time `json:"last_updated"`
}

// TopByVolume returns up to limit assets ordered by 24h volume
func (s *CoinGeckoSource) TopByVolume(ctx context.Context, limit int) ([]models.AssetSnapshot, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "volume_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "1h")

	var markets []coinMarket
	if err := s.get(ctx, s.baseURL+"/coins/markets?"+q.Encode(), &markets); err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}

	snapshots := make([]models.AssetSnapshot, 0, len(markets))
	for _, m := range markets {
		snapshots = append(snapshots, m.snapshot())
	}

	s.logger.Debug().Int("count", len(snapshots)).Msg("Fetched market list")
	return snapshots, nil
}

func (m coinMarket) snapshot() models.AssetSnapshot {
	s := models.AssetSnapshot{
		ID:                m.ID,
		Symbol:            m.Symbol,
		Name:              m.Name,
		CurrentPrice:      deref(m.CurrentPrice),
		High24h:           deref(m.High24h),
		Low24h:            deref(m.Low24h),
		PriceChangePct24h: deref(m.PriceChangePct24h),
		PriceChangePct1h:  m.PriceChangePct1h,
		Volume24h:         deref(m.TotalVolume),
		MarketCap:         deref(m.MarketCap),
	}
	if m.LastUpdated != nil {
		s.UpdatedAt = *m.LastUpdated
	}
	return s
}

type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

// Candles implements models.HistorySource by bucketing the market_chart price series
func (s *CoinGeckoSource) Candles(ctx context.Context, snapshot models.AssetSnapshot, interval string, days int) ([]models.Candle, error) {
	width := models.IntervalDuration(interval)
	if width == 0 {
		return nil, fmt.Errorf("unsupported interval %q", interval)
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))

	var chart marketChart
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?%s", s.baseURL, url.PathEscape(snapshot.ID), q.Encode())
	if err := s.get(ctx, endpoint, &chart); err != nil {
		return nil, fmt.Errorf("coingecko history for %s: %w", snapshot.ID, err)
	}

	return bucketPrices(chart.Prices, width), nil
}

// bucketPrices folds [unix ms, price] samples into candles of the given width, oldest first
func bucketPrices(prices [][2]float64, width time.Duration) []models.Candle {
	buckets := make(map[int64]*models.Candle)
	for _, p := range prices {
		ts := time.UnixMilli(int64(p[0])).UTC().Truncate(width)
		price := p[1]
		c, ok := buckets[ts.Unix()]
		if !ok {
			buckets[ts.Unix()] = &models.Candle{Time: ts, Open: price, High: price, Low: price, Close: price}
			continue
		}
		if price > c.High {
			c.High = price
		}
		if price < c.Low {
			c.Low = price
		}
		c.Close = price
	}

	candles := make([]models.Candle, 0, len(buckets))
	for _, c := range buckets {
		candles = append(candles, *c)
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })
	return candles
}

func (s *CoinGeckoSource) get(ctx context.Context, endpoint string, out interface{}) error {
	headers := map[string]string{}
	if s.apiKey != "" {
		headers[apiKeyHeader] = s.apiKey
	}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.GetJSON(ctx, endpoint, headers, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return err
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
