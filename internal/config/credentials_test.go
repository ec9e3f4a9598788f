package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials_Valid(t *testing.T) {
	creds := &APICredentials{
		ClientID:     "swapctl-manager",
		ClientSecret: "s3cret",
		TokenURL:     "https://scheduling.example.com/oauth/token",
		Scopes:       []string{"swaps:read", "swaps:write"},
	}

	err := ValidateCredentials(creds)
	assert.NoError(t, err)
}

func TestValidateCredentials_MissingClientSecret(t *testing.T) {
	creds := &APICredentials{
		ClientID: "swapctl-manager",
		TokenURL: "https://scheduling.example.com/oauth/token",
	}

	err := ValidateCredentials(creds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCredentials_InvalidTokenURL(t *testing.T) {
	creds := &APICredentials{
		ClientID:     "swapctl-manager",
		ClientSecret: "s3cret",
		TokenURL:     "not-a-url",
	}

	err := ValidateCredentials(creds)
	assert.Error(t, err)
}

func TestLoadCredentialsFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swapctl_credentials.json")
	content := `{
  "client_id": "swapctl-manager",
  "client_secret": "s3cret",
  "token_url": "https://scheduling.example.com/oauth/token",
  "scopes": ["swaps:read"]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	creds, err := LoadCredentialsFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "swapctl-manager", creds.ClientID)
	assert.Equal(t, []string{"swaps:read"}, creds.Scopes)
}

func TestLoadCredentialsFromPath_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swapctl_credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := LoadCredentialsFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse credentials file")
}
