package prediction

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// PathVariant selects how the running price is seeded between steps
type PathVariant string

const (
	// PathAccumulator carries each predicted price into the next step unchanged
	PathAccumulator PathVariant = "accumulator"
	// PathMeanReverting blends each predicted price back toward the snapshot price
	PathMeanReverting PathVariant = "mean_reverting"
)

// RecommendationMode selects the label set and the rule that picks a label
type RecommendationMode string

const (
	ModeSimple3      RecommendationMode = "simple3"
	ModeSimple5      RecommendationMode = "simple5"
	ModeSignalVoting RecommendationMode = "signal_voting"
)

// Aggregation selects how per-point confidences become the result confidence
type Aggregation string

const (
	AggregateLastPoint    Aggregation = "last_point"
	AggregateMeanOfPoints Aggregation = "mean_of_points"
)

// VolatilitySource selects the snapshot signal the volatility estimate is derived from
type VolatilitySource string

const (
	VolatilityFromChange VolatilitySource = "change"
	VolatilityFromRange  VolatilitySource = "range"
)

// ConfidencePreset parameterizes the linear confidence decay
type ConfidencePreset struct {
	Floor   float64 `yaml:"floor" json:"floor" validate:"gte=0,lte=100"`
	Ceiling float64 `yaml:"ceiling" json:"ceiling" validate:"gtefield=Floor,lte=100"`
	Spread  float64 `yaml:"spread" json:"spread" validate:"gte=0"`
}

var (
	// SinglePreset is used for the highlighted single-asset forecast
	SinglePreset = ConfidencePreset{Floor: 70, Ceiling: 95, Spread: 25}
	// BatchPreset is used for the top-volume batch forecast
	BatchPreset = ConfidencePreset{Floor: 50, Ceiling: 95, Spread: 25}
)

// Config enumerates everything that differs between forecast profiles
type Config struct {
	Name               string             `yaml:"name" json:"name" default:"custom"`
	HorizonMinutes     int                `yaml:"horizon_minutes" json:"horizon_minutes" default:"60" validate:"gt=0"`
	StepMinutes        int                `yaml:"step_minutes" json:"step_minutes" default:"3" validate:"gt=0,ltefield=HorizonMinutes"`
	Confidence         ConfidencePreset   `yaml:"confidence" json:"confidence"`
	PathVariant        PathVariant        `yaml:"path_variant" json:"path_variant" default:"accumulator" validate:"oneof=accumulator mean_reverting"`
	RecommendationMode RecommendationMode `yaml:"recommendation_mode" json:"recommendation_mode" default:"simple3" validate:"oneof=simple3 simple5 signal_voting"`
	Aggregation        Aggregation        `yaml:"aggregation" json:"aggregation" default:"last_point" validate:"oneof=last_point mean_of_points"`
	VolatilitySource   VolatilitySource   `yaml:"volatility_source" json:"volatility_source" default:"change" validate:"oneof=change range"`
	Margin             float64            `yaml:"margin" json:"margin" default:"1050" validate:"gt=0"`
	Workers            int                `yaml:"workers" json:"workers" default:"1" validate:"gte=1,lte=64"`
	// Seed fixes the batch random stream; zero draws a fresh seed on every batch
	Seed int64 `yaml:"seed" json:"seed"`
}

var validate = validator.New()

// SingleAssetProfile is the 30-minute, five-level forecast shown for one highlighted asset
func SingleAssetProfile() Config {
	return Config{
		Name:               "single",
		HorizonMinutes:     30,
		StepMinutes:        3,
		Confidence:         SinglePreset,
		PathVariant:        PathAccumulator,
		RecommendationMode: ModeSimple5,
		Aggregation:        AggregateLastPoint,
		VolatilitySource:   VolatilityFromChange,
		Margin:             DefaultMargin,
		Workers:            1,
	}
}

// BatchProfile is the one-hour LONG/SHORT/NEUTRAL forecast for the top-volume list
func BatchProfile() Config {
	return Config{
		Name:               "batch",
		HorizonMinutes:     60,
		StepMinutes:        3,
		Confidence:         BatchPreset,
		PathVariant:        PathMeanReverting,
		RecommendationMode: ModeSimple3,
		Aggregation:        AggregateMeanOfPoints,
		VolatilitySource:   VolatilityFromChange,
		Margin:             DefaultMargin,
		Workers:            4,
	}
}

// ApplyDefaults fills zero-valued fields from the default tags.
// Confidence presets have no defaults: a zero floor is a legitimate setting.
func (c *Config) ApplyDefaults() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	return nil
}

// Validate checks field ranges and that the horizon is a whole number of steps
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.HorizonMinutes%c.StepMinutes != 0 {
		return fmt.Errorf("%w: horizon %d is not a multiple of step %d", ErrInvalidConfig, c.HorizonMinutes, c.StepMinutes)
	}
	return nil
}

// Steps returns the number of points a forecast under this config contains
func (c *Config) Steps() int {
	return c.HorizonMinutes / c.StepMinutes
}
