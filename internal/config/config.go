// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all pipeline configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`
	Fetch    FetchConfig             `mapstructure:"fetch"`
	Headless HeadlessConfig          `mapstructure:"headless"`
	DB       DBConfig                `mapstructure:"db"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Sources  map[string]SourceConfig `mapstructure:"sources"`
}

// ServerConfig controls the metrics/health HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// FetchConfig governs the paced HTTP fetcher.
type FetchConfig struct {
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	DelaySeconds   int    `mapstructure:"delay_seconds"`
	RespectRobots  bool   `mapstructure:"respect_robots"`
}

// HeadlessConfig configures the headless rendering subsystem.
type HeadlessConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	NavTimeoutSec int      `mapstructure:"nav_timeout_seconds"`
	MinHTMLBytes  int      `mapstructure:"min_html_bytes"`
	Selectors     []string `mapstructure:"selectors"`
	Keywords      []string `mapstructure:"keywords"`
	ScrollPasses  int      `mapstructure:"scroll_passes"`
}

// DBConfig controls access to the catalog database.
type DBConfig struct {
	DSN                string `mapstructure:"dsn"`
	MaxConns           int    `mapstructure:"max_conns"`
	MinConns           int    `mapstructure:"min_conns"`
	MaxConnLifetimeMin int    `mapstructure:"max_conn_lifetime_minutes"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// SourceConfig describes one directory site, keyed by its source tag.
type SourceConfig struct {
	BaseURL        string   `mapstructure:"base_url"`
	Kind           string   `mapstructure:"kind"`
	Patterns       []string `mapstructure:"patterns"`
	IndexPatterns  []string `mapstructure:"index_patterns"`
	DefaultFormats []string `mapstructure:"default_formats"`
	MaxPages       int      `mapstructure:"max_pages"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FFD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("fetch.user_agent", "ffd-crawler/0.1")
	v.SetDefault("fetch.timeout_seconds", 15)
	v.SetDefault("fetch.delay_seconds", 2)
	v.SetDefault("fetch.respect_robots", true)
	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.nav_timeout_seconds", 25)
	v.SetDefault("headless.min_html_bytes", 2048)
	v.SetDefault("headless.scroll_passes", 3)
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("db.max_conn_lifetime_minutes", 30)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.Fetch.DelaySeconds < 0 {
		return fmt.Errorf("fetch.delay_seconds must be >= 0")
	}
	for tag, src := range c.Sources {
		if src.BaseURL == "" {
			return fmt.Errorf("sources.%s.base_url must be set", tag)
		}
		switch src.Kind {
		case "league", "team", "event":
		default:
			return fmt.Errorf("sources.%s.kind must be league, team, or event", tag)
		}
	}
	return nil
}

// FetchTimeout converts the configured timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// FetchDelay converts the configured pacing delay into a duration.
func (c Config) FetchDelay() time.Duration {
	return time.Duration(c.Fetch.DelaySeconds) * time.Second
}
