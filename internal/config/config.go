// Package config handles application configuration and environment loading.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds dataset locations, the account store and HTTP server settings.
type Config struct {
	MatchesCSV    string `yaml:"matches_csv"`    // match-level table
	DeliveriesCSV string `yaml:"deliveries_csv"` // ball-by-ball table
	UsersDBPath   string `yaml:"users_db"`       // SQLite account store; empty means the CLI default

	ListenAddr string        `yaml:"listen_addr"` // default ":5000"
	SecretKey  string        `yaml:"secret_key"`  // HS256 session signing key
	SessionTTL time.Duration `yaml:"session_ttl"` // default 12h

	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error (default "info")
	LogFormat string `yaml:"log_format"` // text (default) or json

	RateLimitRPS       float64  `yaml:"rate_limit_rps"`   // sustained requests per second per client (default 20)
	RateLimitBurst     int      `yaml:"rate_limit_burst"` // burst capacity (default 40)
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	StrikeRateMode string `yaml:"strike_rate_mode"` // per-ball (default) or per-innings
	AverageMode    string `yaml:"average_mode"`     // per-dismissal (default) or per-innings
	Parallelism    int    `yaml:"parallelism"`      // full-report workers; 0 means GOMAXPROCS

	// Warnings collects non-fatal warnings generated during loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string `yaml:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		MatchesCSV:         "datasets/ipl.csv",
		DeliveriesCSV:      "datasets/IPL_bowling_stats.csv",
		ListenAddr:         ":5000",
		SessionTTL:         12 * time.Hour,
		LogLevel:           "info",
		LogFormat:          "text",
		RateLimitRPS:       20,
		RateLimitBurst:     40,
		CORSAllowedOrigins: []string{"*"},
		StrikeRateMode:     "per-ball",
		AverageMode:        "per-dismissal",
	}
}

// envCandidates are tried in order; the first .env found is loaded.
var envCandidates = []string{".env", "../.env"}

// Load builds the configuration from defaults, then a .env file, then the
// optional YAML file at path, then environment variables. Later layers win.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	for _, p := range envCandidates {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		key, err := randomKey()
		if err != nil {
			return nil, err
		}
		cfg.SecretKey = key
		cfg.Warnings = append(cfg.Warnings, "SECRET_KEY not set, using a random key; sessions will not survive a restart")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("IPL_MATCHES_CSV", &c.MatchesCSV)
	setString("IPL_DELIVERIES_CSV", &c.DeliveriesCSV)
	setString("USERS_DB_PATH", &c.UsersDBPath)
	setString("LISTEN_ADDR", &c.ListenAddr)
	setString("SECRET_KEY", &c.SecretKey)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)
	setString("STRIKE_RATE_MODE", &c.StrikeRateMode)
	setString("AVERAGE_MODE", &c.AverageMode)

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = f
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimitBurst = n
	}
	if v := os.Getenv("PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PARALLELISM: %w", err)
		}
		c.Parallelism = n
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.CORSAllowedOrigins = origins
	}
	return nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	switch c.StrikeRateMode {
	case "per-ball", "per-innings":
	default:
		return fmt.Errorf("strike_rate_mode must be per-ball or per-innings, got %q", c.StrikeRateMode)
	}
	switch c.AverageMode {
	case "per-dismissal", "per-innings":
	default:
		return fmt.Errorf("average_mode must be per-dismissal or per-innings, got %q", c.AverageMode)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %g rps burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	return nil
}

// ValidateDataset checks that both dataset paths are set.
func (c *Config) ValidateDataset() error {
	if c.MatchesCSV == "" || c.DeliveriesCSV == "" {
		return errors.New("both matches_csv and deliveries_csv must be set")
	}
	return nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// JSONLogs reports whether logs should use the JSON handler.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, "json")
}

func randomKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
