package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and it exists in the
// working directory.
const DefaultFile = "quotes.yaml"

var (
	ErrInvalidWindow  = errors.New("window_days must be at least 2")
	ErrInvalidGroupBy = errors.New("group_by must be ticker or column")
	ErrInvalidTimeout = errors.New("request_timeout_sec must not be negative")
)

type Provider struct {
	Name              string `yaml:"name"`
	BaseURL           string `yaml:"base_url"`
	UserAgent         string `yaml:"user_agent"`
	WindowDays        int    `yaml:"window_days"`
	GroupBy           string `yaml:"group_by"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Output struct {
	Format string `yaml:"format"`
}

type Config struct {
	Provider Provider `yaml:"provider"`
	Log      Log      `yaml:"log"`
	Output   Output   `yaml:"output"`
}

func Default() Config {
	return Config{
		Provider: Provider{
			Name:       "Yahoo",
			BaseURL:    "https://query1.finance.yahoo.com",
			UserAgent:  "Mozilla/5.0 (compatible; quotefetcher/1.0)",
			WindowDays: 2,
			GroupBy:    "ticker",
			// 0 leaves the overall request unbounded; the transport still
			// bounds dialing and response headers.
			RequestTimeoutSec: 0,
		},
		Log:    Log{Level: "warn", Format: "text"},
		Output: Output{Format: "json"},
	}
}

// Load reads YAML config from path. If path is empty, DefaultFile is used
// when present, otherwise defaults. Environment variables override select
// fields afterwards.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Provider.WindowDays < 2 {
		return fmt.Errorf("%w, got %d", ErrInvalidWindow, c.Provider.WindowDays)
	}
	switch strings.ToLower(strings.TrimSpace(c.Provider.GroupBy)) {
	case "", "ticker", "column":
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidGroupBy, c.Provider.GroupBy)
	}
	if c.Provider.RequestTimeoutSec < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" { cfg.Provider.BaseURL = v }
	if v := os.Getenv("YAHOO_USER_AGENT"); v != "" { cfg.Provider.UserAgent = v }
	if v := os.Getenv("QUOTES_WINDOW_DAYS"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Provider.WindowDays = x }
	}
	if v := os.Getenv("QUOTES_GROUP_BY"); v != "" { cfg.Provider.GroupBy = v }
	if v := os.Getenv("QUOTES_REQUEST_TIMEOUT_SEC"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Provider.RequestTimeoutSec = x }
	}
	if v := os.Getenv("QUOTES_FORMAT"); v != "" { cfg.Output.Format = v }
	if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Log.Level = v }
	if v := os.Getenv("LOG_FORMAT"); v != "" { cfg.Log.Format = strings.ToLower(v) }
}
