// Package config loads the YAML configuration file. Every knob has a
// default so an empty file is a valid configuration; validation rejects
// values the engine cannot honor.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gamepulse/gamepulse/internal/analyzers"
)

// EnvConfigPath overrides the config file path when set.
const EnvConfigPath = "GAMEPULSE_CONFIG"

// Config is the full application configuration.
type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Engine    EngineConfig    `yaml:"engine"`
	Cache     CacheConfig     `yaml:"cache"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
}

// ProvidersConfig holds one block per external data source.
type ProvidersConfig struct {
	Catalog   ProviderConfig `yaml:"catalog"`
	Ownership ProviderConfig `yaml:"ownership"`
	History   ProviderConfig `yaml:"history"`
}

// ProviderConfig tunes one provider client.
type ProviderConfig struct {
	BaseURL   string  `yaml:"base_url"`
	RPS       float64 `yaml:"rps"`         // requests per second
	Burst     int     `yaml:"burst"`       // token bucket burst
	TimeoutMS int     `yaml:"timeout_ms"`  // per-request timeout
	Enabled   bool    `yaml:"enabled"`
	UserAgent string  `yaml:"user_agent"`
}

// Timeout returns the per-request timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMS) * time.Millisecond
}

// EngineConfig tunes scoring and the price solver.
type EngineConfig struct {
	Weights       analyzers.Weights `yaml:"weights"`
	SweepPoints   int               `yaml:"sweep_points"`
	RangeFraction float64           `yaml:"range_fraction"`
	BatchWorkers  int               `yaml:"batch_workers"`
	BatchPacingMS int               `yaml:"batch_pacing_ms"`
}

// CacheConfig tunes the optional Redis result cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTLSecs  int    `yaml:"ttl_secs"`
}

// DatabaseConfig tunes the optional postgres audit trail.
type DatabaseConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// ServerConfig tunes the HTTP surface.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMS  int    `yaml:"read_timeout_ms"`
	WriteTimeoutMS int    `yaml:"write_timeout_ms"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Providers: ProvidersConfig{
			Catalog: ProviderConfig{
				BaseURL:   "https://store.steampowered.com",
				RPS:       2,
				Burst:     4,
				TimeoutMS: 10000,
				Enabled:   true,
			},
			Ownership: ProviderConfig{
				BaseURL:   "https://steamspy.com",
				RPS:       1,
				Burst:     2,
				TimeoutMS: 10000,
				Enabled:   true,
			},
			History: ProviderConfig{
				BaseURL:   "https://api.pricepulse.dev",
				RPS:       2,
				Burst:     4,
				TimeoutMS: 10000,
				Enabled:   true,
			},
		},
		Engine: EngineConfig{
			Weights:       analyzers.DefaultWeights(),
			SweepPoints:   20,
			RangeFraction: 0.30,
			BatchWorkers:  1,
			BatchPacingMS: 250,
		},
		Cache: CacheConfig{
			Addr:    "localhost:6379",
			TTLSecs: 900,
		},
		Server: ServerConfig{
			Addr:           ":8090",
			ReadTimeoutMS:  5000,
			WriteTimeoutMS: 15000,
		},
	}
}

// Load reads YAML from path, layered over defaults. An empty path falls
// back to the GAMEPULSE_CONFIG env var; if neither names a file, the
// defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	w := c.Engine.Weights
	sum := w.Value + w.Retention + w.Market + w.Quality
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("config: composite weights must sum to 1, got %.3f", sum)
	}
	for name, v := range map[string]float64{
		"value": w.Value, "retention": w.Retention, "market": w.Market, "quality": w.Quality,
	} {
		if v < 0 {
			return fmt.Errorf("config: weight %s must be non-negative", name)
		}
	}

	if c.Engine.SweepPoints < 1 {
		return fmt.Errorf("config: sweep_points must be >= 1")
	}
	if c.Engine.RangeFraction <= 0 || c.Engine.RangeFraction >= 1 {
		return fmt.Errorf("config: range_fraction must be in (0,1)")
	}
	if c.Engine.BatchWorkers < 1 {
		return fmt.Errorf("config: batch_workers must be >= 1")
	}

	for name, p := range map[string]ProviderConfig{
		"catalog": c.Providers.Catalog, "ownership": c.Providers.Ownership, "history": c.Providers.History,
	} {
		if p.Enabled && p.BaseURL == "" {
			return fmt.Errorf("config: provider %s enabled without base_url", name)
		}
	}

	return nil
}
