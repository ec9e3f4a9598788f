package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the root of the scheduling backend's REST API.
	APIBaseURL string `yaml:"apiBaseURL" validate:"required,url"`

	// FacilityID scopes manager views to one facility. Staff running only
	// personal-swap commands can leave it empty.
	FacilityID string `yaml:"facilityID,omitempty"`

	// WeekRule is the recurrence rule anchoring day index 0 of the weekly
	// shift grid, e.g. "FREQ=WEEKLY;BYDAY=MO".
	WeekRule string `yaml:"weekRule,omitempty"`

	// ShiftsPerDay is the fixed number of shifts in the facility's daily grid.
	ShiftsPerDay int `yaml:"shiftsPerDay" validate:"required,min=1,max=6"`

	// ExportDir is where downloaded and locally rendered reports are written.
	ExportDir string `yaml:"exportDir,omitempty"`

	// RequestTimeoutSeconds bounds every backend call. Zero means the
	// client default.
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds,omitempty" validate:"omitempty,min=1,max=300"`
}

// DefaultWeekRule anchors the grid at Monday when the config leaves it unset.
const DefaultWeekRule = "FREQ=WEEKLY;BYDAY=MO"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from swapctl_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "swapctl_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.WeekRule == "" {
		cfg.WeekRule = DefaultWeekRule
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "exports"
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the week rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.WeekRule != "" {
		if _, err := rrule.StrToRRule(cfg.WeekRule); err != nil {
			return fmt.Errorf("invalid weekRule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "swapctl_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "swapctl_config.yaml"
	if env != "" {
		configFileName = "swapctl_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
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
