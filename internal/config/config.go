package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Alias1177/CoinCast/internal/analysis/prediction"
)

// Feed names
const (
	FeedCoinGecko = "coingecko"
	FeedMock      = "mock"
)

// Config holds all application configuration
type Config struct {
	LogLevel           string
	LogFormat          string `validate:"oneof=json console"`
	HTTPAddr           string `validate:"required"`
	Feed               string `validate:"oneof=coingecko mock"`
	CoinGeckoURL       string `validate:"url"`
	CoinGeckoAPIKey    string
	TopN               int           `validate:"gt=0,lte=250"`
	RequestTimeout     int           `validate:"gt=0"` // seconds
	RatePerSec         int           `validate:"gt=0"`
	RefreshInterval    time.Duration `validate:"gte=1s"`
	HotRefreshInterval time.Duration `validate:"gte=1s"`
	ForecastSeed       int64
	ForecastWorkers    int `validate:"gte=1,lte=64"`
	ProfilesFile       string

	Profiles Profiles `validate:"-"`
}

// Profiles are the two forecast configurations the service runs
type Profiles struct {
	Single prediction.Config `yaml:"single"`
	Batch  prediction.Config `yaml:"batch"`
}

var validate = validator.New()

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	// Load values from environment variables
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "json")
	cfg.HTTPAddr = getEnvWithDefault("HTTP_ADDR", ":8080")
	cfg.Feed = getEnvWithDefault("FEED", FeedCoinGecko)
	cfg.CoinGeckoURL = getEnvWithDefault("COINGECKO_URL", "https://api.coingecko.com/api/v3")
	cfg.CoinGeckoAPIKey = os.Getenv("COINGECKO_API_KEY")
	cfg.TopN = getEnvIntWithDefault("TOP_N", 20)
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 10)
	cfg.RatePerSec = getEnvIntWithDefault("RATE_PER_SEC", 5)
	cfg.RefreshInterval = getEnvDurationWithDefault("REFRESH_INTERVAL", 60*time.Second)
	cfg.HotRefreshInterval = getEnvDurationWithDefault("HOT_REFRESH_INTERVAL", 30*time.Second)
	cfg.ForecastSeed = int64(getEnvIntWithDefault("FORECAST_SEED", 0))
	cfg.ForecastWorkers = getEnvIntWithDefault("FORECAST_WORKERS", 4)
	cfg.ProfilesFile = os.Getenv("PROFILES_FILE")

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	profiles, err := LoadProfiles(cfg.ProfilesFile)
	if err != nil {
		return nil, err
	}
	// explicit env values win over the profiles file
	if _, ok := os.LookupEnv("FORECAST_WORKERS"); ok {
		profiles.Batch.Workers = cfg.ForecastWorkers
	}
	if _, ok := os.LookupEnv("FORECAST_SEED"); ok {
		profiles.Batch.Seed = cfg.ForecastSeed
	}
	if err := profiles.Batch.Validate(); err != nil {
		return nil, fmt.Errorf("batch profile: %w", err)
	}
	cfg.Profiles = profiles

	return &cfg, nil
}

// LoadProfiles returns the built-in profiles overlaid with the YAML file at path, if any.
// Keys missing from the file keep their built-in values.
func LoadProfiles(path string) (Profiles, error) {
	profiles := Profiles{
		Single: prediction.SingleAssetProfile(),
		Batch:  prediction.BatchProfile(),
	}
	if path == "" {
		return profiles, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Profiles{}, fmt.Errorf("read profiles: %w", err)
	}
	if err := yaml.Unmarshal(b, &profiles); err != nil {
		return Profiles{}, fmt.Errorf("parse profiles: %w", err)
	}

	for _, p := range []*prediction.Config{&profiles.Single, &profiles.Batch} {
		if err := p.ApplyDefaults(); err != nil {
			return Profiles{}, err
		}
		if err := p.Validate(); err != nil {
			return Profiles{}, fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return profiles, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
