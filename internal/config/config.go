package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

// envSpec is the raw environment surface; Config below is the immutable
// view handed to the rest of the program.
type envSpec struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`
	SentryDSN   string `envconfig:"SENTRY_DSN" default:""`

	MLBAPIURL                 string        `envconfig:"MLB_API_URL" default:"https://statsapi.mlb.com/api"`
	UpstreamTimeout           time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
	UpstreamMaxRetries        int           `envconfig:"UPSTREAM_MAX_RETRIES" default:"2"`
	UpstreamBackoffBase       time.Duration `envconfig:"UPSTREAM_BACKOFF_BASE" default:"250ms"`
	UpstreamRequestsPerSecond float64       `envconfig:"UPSTREAM_REQUESTS_PER_SECOND" default:"10"`
	UpstreamBurstSize         int           `envconfig:"UPSTREAM_BURST_SIZE" default:"20"`

	CacheCapacity  uint64        `envconfig:"CACHE_CAPACITY" default:"128"`
	LiveFeedTTL    time.Duration `envconfig:"LIVE_FEED_TTL" default:"15s"`
	ScheduleTTL    time.Duration `envconfig:"SCHEDULE_TTL" default:"5m"`
	StandingsTTL   time.Duration `envconfig:"STANDINGS_TTL" default:"1h"`
	SeasonStatsTTL time.Duration `envconfig:"SEASON_STATS_TTL" default:"6h"`
	RosterTTL      time.Duration `envconfig:"ROSTER_TTL" default:"24h"`
}

type Config struct {
	spec envSpec
	env  environment
}

func (c *Config) Port() string {
	return c.spec.Port
}

func (c *Config) SentryDSN() string {
	return c.spec.SentryDSN
}

func (c *Config) MLBAPIURL() string {
	return c.spec.MLBAPIURL
}

func (c *Config) UpstreamTimeout() time.Duration {
	return c.spec.UpstreamTimeout
}

func (c *Config) UpstreamMaxRetries() int {
	return c.spec.UpstreamMaxRetries
}

func (c *Config) UpstreamBackoffBase() time.Duration {
	return c.spec.UpstreamBackoffBase
}

func (c *Config) UpstreamRequestsPerSecond() float64 {
	return c.spec.UpstreamRequestsPerSecond
}

func (c *Config) UpstreamBurstSize() int {
	return c.spec.UpstreamBurstSize
}

func (c *Config) CacheCapacity() uint64 {
	return c.spec.CacheCapacity
}

func (c *Config) LiveFeedTTL() time.Duration {
	return c.spec.LiveFeedTTL
}

func (c *Config) ScheduleTTL() time.Duration {
	return c.spec.ScheduleTTL
}

func (c *Config) StandingsTTL() time.Duration {
	return c.spec.StandingsTTL
}

func (c *Config) SeasonStatsTTL() time.Duration {
	return c.spec.SeasonStatsTTL
}

func (c *Config) RosterTTL() time.Duration {
	return c.spec.RosterTTL
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %s, cacheCapacity: %d, upstreamTimeout: %s, ...}",
		string(c.env), c.spec.Port, c.spec.CacheCapacity, c.spec.UpstreamTimeout,
	)
}

func ConfigFromEnv() (Config, error) {
	// Best effort: a missing .env file is the normal case outside development
	_ = godotenv.Load()

	var spec envSpec
	if err := envconfig.Process("GFI", &spec); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}

	var env environment
	switch spec.Environment {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: GFI_ENVIRONMENT (%s)", ErrInvalidValue, spec.Environment)
	}

	if env == production || env == staging {
		if spec.SentryDSN == "" {
			return Config{}, fmt.Errorf("%w: GFI_SENTRY_DSN must be set in %s", ErrInvalidValue, env)
		}
	}

	if spec.CacheCapacity == 0 {
		return Config{}, fmt.Errorf("%w: GFI_CACHE_CAPACITY must be positive", ErrInvalidValue)
	}
	if spec.UpstreamMaxRetries < 0 {
		return Config{}, fmt.Errorf("%w: GFI_UPSTREAM_MAX_RETRIES must not be negative", ErrInvalidValue)
	}

	return Config{spec: spec, env: env}, nil
}
