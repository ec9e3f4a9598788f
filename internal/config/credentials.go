package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// APICredentials represents the OAuth2 client credentials used to
// authenticate against the scheduling backend's token endpoint.
type APICredentials struct {
	ClientID     string   `json:"client_id" validate:"required"`
	ClientSecret string   `json:"client_secret" validate:"required"`
	TokenURL     string   `json:"token_url" validate:"required,url"`
	Scopes       []string `json:"scopes,omitempty"`
}

// LoadCredentialsWithEnv loads and validates the API credentials with an environment suffix
// For example, env="test" will look for "swapctl_credentials.test.json"
func LoadCredentialsWithEnv(env string) (*APICredentials, error) {
	credsPath, err := findCredentialsFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find credentials file: %w", err)
	}

	return LoadCredentialsFromPath(credsPath)
}

// LoadCredentialsFromPath loads and validates the API credentials from a specific path
func LoadCredentialsFromPath(path string) (*APICredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds APICredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	if err := ValidateCredentials(&creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// ValidateCredentials validates the API credentials
func ValidateCredentials(creds *APICredentials) error {
	if err := validate.Struct(creds); err != nil {
		return fmt.Errorf("credentials validation failed: %w", err)
	}

	return nil
}

// findCredentialsFile searches for the credentials file in current directory and home directory
func findCredentialsFile(env string) (string, error) {
	credsFileName := "swapctl_credentials.json"
	if env != "" {
		credsFileName = "swapctl_credentials." + env + ".json"
	}

	// Check current directory
	if _, err := os.Stat(credsFileName); err == nil {
		return credsFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeCredsPath := filepath.Join(homeDir, credsFileName)
	if _, err := os.Stat(homeCredsPath); err == nil {
		return homeCredsPath, nil
	}

	return "", fmt.Errorf("credentials file not found in current directory or home directory")
}
