// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Source   SourceConfig   `yaml:"source"`
	Filter   FilterConfig   `yaml:"filter"`
	Resolver ResolverConfig `yaml:"resolver"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Decision DecisionConfig `yaml:"decision"`
	Notify   NotifyConfig   `yaml:"notify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines the PostgreSQL connection. An empty URL runs
// the service without persistence.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SourceConfig defines the eBay Browse API listing source. Empty
// credentials disable ingestion; the API endpoints still work.
type SourceConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Marketplace  string `yaml:"marketplace"`
	Query        string `yaml:"query"`
	CategoryID   string `yaml:"category_id"`
	PageSize     int    `yaml:"page_size"`
}

// Enabled reports whether source credentials are configured.
func (s SourceConfig) Enabled() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// FilterConfig tunes the listing filter.
type FilterConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// ResolverConfig tunes the entity resolver.
type ResolverConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// IngestConfig defines the ingestion loop settings.
type IngestConfig struct {
	Interval      time.Duration   `yaml:"interval"`
	StaggerOffset time.Duration   `yaml:"stagger_offset"`
	BatchSize     int             `yaml:"batch_size"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines marketplace API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// DecisionConfig defines the conservative recommendation gates.
type DecisionConfig struct {
	BuyMinReturn     float64 `yaml:"buy_min_return"`
	BuyMinConfidence float64 `yaml:"buy_min_confidence"`
	BuyMinLiquidity  float64 `yaml:"buy_min_liquidity"`
	BuyMinMomentum   float64 `yaml:"buy_min_momentum"`
	BuyMinStability  float64 `yaml:"buy_min_stability"`

	WatchMinReturn     float64 `yaml:"watch_min_return"`
	WatchMinConfidence float64 `yaml:"watch_min_confidence"`
	WatchMaxLoss       float64 `yaml:"watch_max_loss"`
}

// NotifyConfig defines recommendation alert delivery. An empty webhook
// URL discards alerts.
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applySourceDefaults(&cfg.Source)
	applyFilterDefaults(&cfg.Filter)
	applyResolverDefaults(&cfg.Resolver)
	applyIngestDefaults(&cfg.Ingest)
	applyDecisionDefaults(&cfg.Decision)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applySourceDefaults(s *SourceConfig) {
	if s.Marketplace == "" {
		s.Marketplace = "EBAY_US"
	}
	if s.Query == "" {
		s.Query = "pokemon card"
	}
	if s.PageSize == 0 {
		s.PageSize = 200
	}
}

func applyFilterDefaults(f *FilterConfig) {
	if f.MinConfidence == 0 {
		f.MinConfidence = 0.7
	}
}

func applyResolverDefaults(r *ResolverConfig) {
	if r.ConfidenceThreshold == 0 {
		r.ConfidenceThreshold = 85.0
	}
}

func applyIngestDefaults(i *IngestConfig) {
	if i.Interval == 0 {
		i.Interval = 15 * time.Minute
	}
	if i.StaggerOffset == 0 {
		i.StaggerOffset = 30 * time.Second
	}
	if i.BatchSize == 0 {
		i.BatchSize = 200
	}
	applyRateLimitDefaults(&i.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyDecisionDefaults(d *DecisionConfig) {
	if d.BuyMinReturn == 0 {
		d.BuyMinReturn = 20.0
	}
	if d.BuyMinConfidence == 0 {
		d.BuyMinConfidence = 0.90
	}
	if d.BuyMinLiquidity == 0 {
		d.BuyMinLiquidity = 7.0
	}
	if d.BuyMinMomentum == 0 {
		d.BuyMinMomentum = 6.0
	}
	if d.BuyMinStability == 0 {
		d.BuyMinStability = 6.0
	}
	if d.WatchMinReturn == 0 {
		d.WatchMinReturn = 5.0
	}
	if d.WatchMinConfidence == 0 {
		d.WatchMinConfidence = 0.70
	}
	if d.WatchMaxLoss == 0 {
		d.WatchMaxLoss = -15.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Filter.MinConfidence < 0 || cfg.Filter.MinConfidence > 1 {
		errs = append(errs, fmt.Errorf(
			"filter.min_confidence must be in [0,1] (got %v)", cfg.Filter.MinConfidence,
		))
	}
	if cfg.Resolver.ConfidenceThreshold < 0 || cfg.Resolver.ConfidenceThreshold > 100 {
		errs = append(errs, fmt.Errorf(
			"resolver.confidence_threshold must be in [0,100] (got %v)", cfg.Resolver.ConfidenceThreshold,
		))
	}
	if cfg.Decision.BuyMinConfidence < 0 || cfg.Decision.BuyMinConfidence > 1 {
		errs = append(errs, fmt.Errorf(
			"decision.buy_min_confidence must be in [0,1] (got %v)", cfg.Decision.BuyMinConfidence,
		))
	}
	if cfg.Decision.WatchMinConfidence < 0 || cfg.Decision.WatchMinConfidence > 1 {
		errs = append(errs, fmt.Errorf(
			"decision.watch_min_confidence must be in [0,1] (got %v)", cfg.Decision.WatchMinConfidence,
		))
	}
	if cfg.Ingest.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf(
			"ingest.rate_limit.per_second must be non-negative (got %v)", cfg.Ingest.RateLimit.PerSecond,
		))
	}
	if cfg.Ingest.BatchSize < 0 {
		errs = append(errs, fmt.Errorf(
			"ingest.batch_size must be non-negative (got %d)", cfg.Ingest.BatchSize,
		))
	}
	if (cfg.Source.ClientID == "") != (cfg.Source.ClientSecret == "") {
		errs = append(errs, errors.New(
			"source.client_id and source.client_secret must be set together",
		))
	}
	if cfg.Source.PageSize < 0 || cfg.Source.PageSize > 200 {
		errs = append(errs, fmt.Errorf(
			"source.page_size must be in [0,200] (got %d)", cfg.Source.PageSize,
		))
	}

	return errors.Join(errs...)
}
