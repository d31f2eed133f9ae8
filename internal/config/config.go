package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tovahealth/careshift/pkg/core/coverage"
	"github.com/tovahealth/careshift/pkg/core/model"
)

// CoverageConfig holds the coverage window and gap-classification policy.
// These are required policy inputs, not values derived from the schedule.
type CoverageConfig struct {
	WindowStart        string `yaml:"windowStart" validate:"required"`
	WindowEnd          string `yaml:"windowEnd" validate:"required"`
	HighNeedStart      string `yaml:"highNeedStart" validate:"required"`
	HighNeedEnd        string `yaml:"highNeedEnd" validate:"required"`
	CriticalGapMinutes int    `yaml:"criticalGapMinutes" validate:"required,min=1"`
}

// StorageConfig selects the persistence backend for the engine's records.
type StorageConfig struct {
	Backend     string `yaml:"backend" validate:"required,oneof=memory redis postgres"`
	RedisAddr   string `yaml:"redisAddr,omitempty" validate:"required_if=Backend redis"`
	RedisPrefix string `yaml:"redisPrefix,omitempty"`
	PostgresURL string `yaml:"postgresURL,omitempty" validate:"required_if=Backend postgres"`
}

// Config represents the application configuration.
type Config struct {
	Coverage CoverageConfig    `yaml:"coverage" validate:"required"`
	Storage  StorageConfig     `yaml:"storage" validate:"required"`
	Roster   []model.Caregiver `yaml:"roster,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the documented defaults: a 16-hour 08:00-24:00 coverage
// window, an 18:00-24:00 high-need window, a four-hour critical-gap
// threshold, and in-memory storage.
func Default() *Config {
	return &Config{
		Coverage: CoverageConfig{
			WindowStart:        "08:00",
			WindowEnd:          "24:00",
			HighNeedStart:      "18:00",
			HighNeedEnd:        "24:00",
			CriticalGapMinutes: 240,
		},
		Storage: StorageConfig{
			Backend: "memory",
		},
	}
}

// Load loads and validates the configuration from careshift_config.yaml,
// looking in the current directory first, then the user's home directory.
// When no config file exists the documented defaults apply.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return Default(), nil
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks that the window and
// policy time strings actually parse.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Window(); err != nil {
		return fmt.Errorf("invalid coverage window: %w", err)
	}
	if _, err := cfg.GapPolicy(); err != nil {
		return fmt.Errorf("invalid gap policy: %w", err)
	}

	for i, caregiver := range cfg.Roster {
		if !caregiver.Role.IsValid() {
			return fmt.Errorf("invalid role %q in roster[%d]", caregiver.Role, i)
		}
	}

	return nil
}

// Window builds the coverage window from the configured bounds.
func (c *Config) Window() (coverage.Window, error) {
	return coverage.ParseWindow(c.Coverage.WindowStart, c.Coverage.WindowEnd)
}

// GapPolicy builds the gap-classification policy from the configured bounds.
func (c *Config) GapPolicy() (coverage.GapPolicy, error) {
	return coverage.ParseGapPolicy(c.Coverage.HighNeedStart, c.Coverage.HighNeedEnd, c.Coverage.CriticalGapMinutes)
}

// findConfigFile searches for careshift_config.yaml in the current directory
// and the user's home directory.
func findConfigFile() (string, error) {
	configFileName := "careshift_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
