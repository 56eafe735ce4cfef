package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the config file written by `dailyspend init`.
const FileName = "dailyspend.yaml"

// EnvPrefix prefixes environment variables that override the config file.
const EnvPrefix = "DAILYSPEND_"

// Config represents the top-level dailyspend.yaml configuration.
type Config struct {
	Columns ColumnsConfig `yaml:"columns"`
	Display DisplayConfig `yaml:"display"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
	Session SessionConfig `yaml:"session"`
}

// ColumnsConfig names the statement columns to read.
type ColumnsConfig struct {
	Date       string `yaml:"date"`
	Withdrawal string `yaml:"withdrawal"`
}

// DisplayConfig controls how amounts are shown.
type DisplayConfig struct {
	Currency string `yaml:"currency"` // ISO-4217 code, e.g. "INR"
}

// ImportConfig locates statement files.
type ImportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR
	JSON  bool   `yaml:"json"`
}

// SessionConfig controls what happens to the current series when a load fails.
type SessionConfig struct {
	ResetOnError bool `yaml:"reset_on_error"`
}

// envOverrides mirrors the settings that may come from the environment.
type envOverrides struct {
	DateColumn       string `koanf:"DAILYSPEND_DATE_COLUMN"`
	WithdrawalColumn string `koanf:"DAILYSPEND_WITHDRAWAL_COLUMN"`
	Currency         string `koanf:"DAILYSPEND_CURRENCY"`
	ImportDir        string `koanf:"DAILYSPEND_IMPORT_DIR"`
	LogLevel         string `koanf:"DAILYSPEND_LOG_LEVEL"`
	LogJSON          string `koanf:"DAILYSPEND_LOG_JSON"`
}

// Load reads a dailyspend.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Resolve loads path when it exists, falls back to Default otherwise, and
// applies DAILYSPEND_* environment overrides on top.
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist):
			// No config file; keep defaults.
		default:
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any DAILYSPEND_* environment variables.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", nil), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	var ov envOverrides
	if err := k.UnmarshalWithConf("", &ov, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	if ov.DateColumn != "" {
		cfg.Columns.Date = ov.DateColumn
	}
	if ov.WithdrawalColumn != "" {
		cfg.Columns.Withdrawal = ov.WithdrawalColumn
	}
	if ov.Currency != "" {
		cfg.Display.Currency = strings.ToUpper(ov.Currency)
	}
	if ov.ImportDir != "" {
		cfg.Import.Dir = ov.ImportDir
	}
	if ov.LogLevel != "" {
		cfg.Logging.Level = ov.LogLevel
	}
	switch strings.ToLower(ov.LogJSON) {
	case "1", "true", "yes":
		cfg.Logging.JSON = true
	case "0", "false", "no":
		cfg.Logging.JSON = false
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Columns: ColumnsConfig{
			Date:       "Date",
			Withdrawal: "Withdrawal Amt.",
		},
		Display: DisplayConfig{
			Currency: "INR",
		},
		Import: ImportConfig{
			Dir: "import",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}
