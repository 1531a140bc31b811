package config

import (
	"errors"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Ergast   ErgastConfig   `yaml:"ergast" mapstructure:"ergast"`
	Scrape   ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Refdata  RefdataConfig  `yaml:"refdata" mapstructure:"refdata"`
	Citation CitationConfig `yaml:"citation" mapstructure:"citation"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ErgastConfig configures the results API client.
type ErgastConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// ScrapeConfig configures practice results page scraping.
type ScrapeConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// RefdataConfig points at an optional YAML file overriding the built-in
// flag, constructor and alias tables.
type RefdataConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CitationConfig holds source URL templates. {season} and {round} are
// substituted when rendering.
type CitationConfig struct {
	QualifyingURL string `yaml:"qualifying_url" mapstructure:"qualifying_url"`
	PracticeURL   string `yaml:"practice_url" mapstructure:"practice_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// .env (optional); variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("F1WIKI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ergast.base_url", "https://api.jolpi.ca/ergast/f1")
	v.SetDefault("ergast.timeout_secs", 30)
	v.SetDefault("ergast.max_attempts", 3)
	v.SetDefault("ergast.rate_per_sec", 4)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; f1wiki/1.0)")
	v.SetDefault("scrape.timeout_secs", 20)
	v.SetDefault("refdata.path", "")
	v.SetDefault("citation.qualifying_url", "https://www.formula1.com/en/results/{season}/races")
	v.SetDefault("citation.practice_url", "https://www.formula1.com/en/results/{season}/races")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks values that would otherwise fail deep inside a fetch.
func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.Ergast.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, "ergast.base_url must be an http(s) URL")
	}
	if c.Ergast.TimeoutSecs <= 0 {
		errs = append(errs, "ergast.timeout_secs must be > 0")
	}
	if c.Ergast.MaxAttempts < 1 || c.Ergast.MaxAttempts > 10 {
		errs = append(errs, "ergast.max_attempts must be between 1 and 10")
	}
	if c.Ergast.RatePerSec <= 0 {
		errs = append(errs, "ergast.rate_per_sec must be > 0")
	}
	if c.Scrape.TimeoutSecs <= 0 {
		errs = append(errs, "scrape.timeout_secs must be > 0")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, "log.format must be console or json")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger. Both encoders write to
// stderr, leaving stdout to the generated markup.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
