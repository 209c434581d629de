package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/td0m/taskclient/internal/api"
	"github.com/td0m/taskclient/pkg/task"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:9000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	API     APIConfig     `json:"api"`
	Filter  FilterConfig  `json:"filter"`
	Log     LogConfig     `json:"log"`
	Metrics MetricsConfig `json:"metrics"`
}

type APIConfig struct {
	BaseURL string `json:"baseUrl"`
	// Timeout bounds every request, zero waits forever
	Timeout Duration `json:"timeout,omitempty"`
	// ErrorPolicy is "propagate" or "suppress"
	ErrorPolicy string `json:"errorPolicy"`
}

type FilterConfig struct {
	// DateMatch is "prefix" or "exact"
	DateMatch string `json:"dateMatch"`
}

type LogConfig struct {
	Enabled bool   `json:"enabled"`
	Level   string `json:"level"`
	Format  string `json:"format"` // "text" or "json"
	File    string `json:"file,omitempty"`
}

type MetricsConfig struct {
	Addr string `json:"addr,omitempty"`
}

// Duration reads "5s" style strings from json
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     DefaultBaseURL,
			ErrorPolicy: api.Propagate.String(),
		},
		Filter: FilterConfig{
			DateMatch: task.MatchPrefix.String(),
		},
		Log: LogConfig{
			Enabled: true,
			Level:   DefaultLogLevel,
			Format:  DefaultLogFormat,
		},
	}
}

// Load reads the config file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		bs, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := json.Unmarshal(bs, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.API.BaseURL = getEnv("TASKS_API_URL", c.API.BaseURL)
	c.API.ErrorPolicy = getEnv("TASKS_ERROR_POLICY", c.API.ErrorPolicy)
	c.Filter.DateMatch = getEnv("TASKS_DATE_MATCH", c.Filter.DateMatch)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnv("LOG_FILE", c.Log.File)
	c.Metrics.Addr = getEnv("METRICS_ADDR", c.Metrics.Addr)
	if v := os.Getenv("TASKS_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TASKS_API_TIMEOUT: %w", err)
		}
		c.API.Timeout = Duration(d)
	}
	if v := os.Getenv("LOG_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_ENABLED: %w", err)
		}
		c.Log.Enabled = b
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("invalid api url %q: expected http(s)://host", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.New("api timeout cannot be negative")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.DateMatch(); err != nil {
		return fmt.Errorf("%w: %q", err, c.Filter.DateMatch)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func (c *Config) Policy() (api.Policy, error) {
	return api.ParsePolicy(c.API.ErrorPolicy)
}

func (c *Config) DateMatch() (task.DateMatch, error) {
	return task.ParseDateMatch(c.Filter.DateMatch)
}
