// Package config provides configuration loading and validation for the
// server and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the service configuration. It can be loaded from a JSON
// or YAML file and overridden by environment variables and CLI flags.
type Config struct {
	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`

	// Spreadsheet
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" yaml:"spreadsheet_id,omitempty" validate:"required_without=CSVDir"`
	PostSheet       string `json:"post_sheet,omitempty" yaml:"post_sheet,omitempty" validate:"required"`
	FindSheet       string `json:"find_sheet,omitempty" yaml:"find_sheet,omitempty" validate:"required"`
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`
	CredentialsJSON string `json:"credentials_json,omitempty" yaml:"credentials_json,omitempty"`
	CSVDir          string `json:"csv_dir,omitempty" yaml:"csv_dir,omitempty"`

	// Navigation targets owned by other pages
	LoginURL    string `json:"login_url,omitempty" yaml:"login_url,omitempty" validate:"required"`
	HomeURL     string `json:"home_url,omitempty" yaml:"home_url,omitempty" validate:"required"`
	MatchingURL string `json:"matching_url,omitempty" yaml:"matching_url,omitempty" validate:"required"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool   `json:"log_pretty,omitempty" yaml:"log_pretty,omitempty"`

	// Rate limiting. Unset per minute means the default; an explicit 0
	// disables it.
	RateLimitPerMinute *int `json:"rate_limit_per_minute,omitempty" yaml:"rate_limit_per_minute,omitempty" validate:"omitempty,gte=0"`
	RateLimitBurst     int `json:"rate_limit_burst,omitempty" yaml:"rate_limit_burst,omitempty" validate:"gte=0"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port:               8080,
		PostSheet:          "post_job",
		FindSheet:          "find_job",
		LoginURL:           "/login",
		HomeURL:            "/",
		MatchingURL:        "/matching",
		LogLevel:           "info",
		RateLimitPerMinute: intPtr(120),
		RateLimitBurst:     20,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension (.yaml/.yml is YAML, anything else JSON).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: credentials file not found: %s", c.CredentialsFile)
		}
	}
	if c.CSVDir != "" {
		if info, err := os.Stat(c.CSVDir); err != nil || !info.IsDir() {
			return fmt.Errorf("config error: csv_dir is not a directory: %s", c.CSVDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.SpreadsheetID, defaults.SpreadsheetID)
	mergeString(&result.PostSheet, defaults.PostSheet)
	mergeString(&result.FindSheet, defaults.FindSheet)
	mergeString(&result.CredentialsFile, defaults.CredentialsFile)
	mergeString(&result.CredentialsJSON, defaults.CredentialsJSON)
	mergeString(&result.CSVDir, defaults.CSVDir)
	mergeString(&result.LoginURL, defaults.LoginURL)
	mergeString(&result.HomeURL, defaults.HomeURL)
	mergeString(&result.MatchingURL, defaults.MatchingURL)
	mergeString(&result.LogLevel, defaults.LogLevel)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitPerMinute == nil && defaults.RateLimitPerMinute != nil {
		result.RateLimitPerMinute = intPtr(*defaults.RateLimitPerMinute)
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	// Bools cannot distinguish unset from false; either side may enable.
	result.LogPretty = result.LogPretty || defaults.LogPretty

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

// FromEnv returns base with every variable that is set in the environment
// applied on top. Malformed numbers and booleans are reported.
func FromEnv(base Config) (Config, error) {
	cfg := base

	envString(&cfg.SpreadsheetID, "FASTLABOR_SPREADSHEET_ID")
	envString(&cfg.PostSheet, "FASTLABOR_POST_SHEET")
	envString(&cfg.FindSheet, "FASTLABOR_FIND_SHEET")
	envString(&cfg.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	envString(&cfg.CredentialsJSON, "FASTLABOR_GCP_CREDENTIALS")
	envString(&cfg.CSVDir, "FASTLABOR_CSV_DIR")
	envString(&cfg.LoginURL, "FASTLABOR_LOGIN_URL")
	envString(&cfg.HomeURL, "FASTLABOR_HOME_URL")
	envString(&cfg.MatchingURL, "FASTLABOR_MATCHING_URL")
	envString(&cfg.LogLevel, "LOG_LEVEL")

	if err := envInt(&cfg.Port, "FASTLABOR_PORT"); err != nil {
		return cfg, err
	}
	if err := envIntPtr(&cfg.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE"); err != nil {
		return cfg, err
	}
	if err := envInt(&cfg.RateLimitBurst, "RATE_LIMIT_BURST"); err != nil {
		return cfg, err
	}
	if v, ok := os.LookupEnv("LOG_PRETTY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid LOG_PRETTY: %v", err)
		}
		cfg.LogPretty = b
	}

	return cfg, nil
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = n
	return nil
}

func envIntPtr(dst **int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = &n
	return nil
}

func intPtr(n int) *int {
	return &n
}

// RequestsPerMinute is the effective rate limit; 0 means disabled.
func (c *Config) RequestsPerMinute() int {
	if c.RateLimitPerMinute == nil {
		return 0
	}
	return *c.RateLimitPerMinute
}
