// Package config loads itemcmd settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/claytono/go-itemcmd/internal/dispatch"
	"github.com/claytono/go-itemcmd/internal/resolve"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidWikiURL  = errors.New("invalid wiki URL")
)

var validLogLevels = map[string]bool{
	"disabled": true,
	"trace":    true,
	"debug":    true,
	"info":     true,
	"warn":     true,
	"error":    true,
}

// Config is the effective itemcmd configuration.
type Config struct {
	Catalog   string `yaml:"catalog" json:"catalog"`
	WikiURL   string `yaml:"wiki_url" json:"wiki_url"`
	MarketURL string `yaml:"market_url" json:"market_url,omitempty"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFile   string `yaml:"log_file" json:"log_file,omitempty"`
	Watch     bool   `yaml:"watch" json:"watch"`
	Suggest   bool   `yaml:"suggest" json:"suggest"`

	// Path of the YAML file the values were seeded from, if any.
	File string `yaml:"-" json:"file,omitempty"`
}

func defaults() *Config {
	return &Config{
		WikiURL:  dispatch.DefaultWikiBaseURL,
		LogLevel: "error",
		Watch:    true,
		Suggest:  true,
	}
}

// Load builds a Config from defaults, the YAML file named by ITEMCMD_CONFIG,
// and ITEMCMD_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	var err error
	cfg := defaults()

	if path := os.Getenv("ITEMCMD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.File = path
	}

	if v := os.Getenv("ITEMCMD_CATALOG"); v != "" {
		cfg.Catalog = v
	}
	if v := os.Getenv("ITEMCMD_WIKI_URL"); v != "" {
		cfg.WikiURL = v
	}
	if v := os.Getenv("ITEMCMD_MARKET_URL"); v != "" {
		cfg.MarketURL = v
	}
	if v := os.Getenv("ITEMCMD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ITEMCMD_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if err := envBool("ITEMCMD_WATCH", &cfg.Watch); err != nil {
		return nil, err
	}
	if err := envBool("ITEMCMD_SUGGEST", &cfg.Suggest); err != nil {
		return nil, err
	}

	if cfg.LogLevel, err = ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	u, err := url.Parse(cfg.WikiURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWikiURL, cfg.WikiURL)
	}

	return cfg, nil
}

// ParseLogLevel lower-cases level and checks it is a known level name.
func ParseLogLevel(level string) (string, error) {
	level = strings.ToLower(level)
	if !validLogLevels[level] {
		return "", fmt.Errorf("%w: %q (valid: disabled, trace, debug, info, warn, error)", ErrInvalidLogLevel, level)
	}
	return level, nil
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", name, v, err)
	}
	*dst = b
	return nil
}

// LogOutput returns the log destination: a rotating file when LogFile is
// set, stderr otherwise.
func (c *Config) LogOutput() io.Writer {
	if c.LogFile == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   c.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// Logger returns a logger at the configured level writing to LogOutput.
func (c *Config) Logger() *slog.Logger {
	return resolve.NewLogger(c.LogLevel, c.LogOutput())
}
