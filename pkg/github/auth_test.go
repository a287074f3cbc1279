package github

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelord/pkg/config"
)

func TestAuthManager_GetToken(t *testing.T) {
	tests := []struct {
		name      string
		flagToken string
		envToken  string
		config    *config.Config
		expected  string
	}{
		{
			name:      "flag takes precedence",
			flagToken: "flag_token",
			envToken:  "env_token",
			config:    &config.Config{GitHub: config.GitHubConfig{Token: "config_token"}},
			expected:  "flag_token",
		},
		{
			name:     "environment beats config file",
			envToken: "env_token",
			config:   &config.Config{GitHub: config.GitHubConfig{Token: "config_token"}},
			expected: "env_token",
		},
		{
			name:     "token from config file",
			config:   &config.Config{GitHub: config.GitHubConfig{Token: "config_token"}},
			expected: "config_token",
		},
		{
			name:      "whitespace is trimmed",
			flagToken: "  ",
			envToken:  " env_token\n",
			expected:  "env_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			am := &AuthManager{getenv: func(key string) string {
				if key == TokenEnvVar {
					return tt.envToken
				}
				return ""
			}}

			token, err := am.GetToken(tt.flagToken, tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestAuthManager_GetTokenMissing(t *testing.T) {
	am := &AuthManager{getenv: func(string) string { return "" }}

	for _, cfg := range []*config.Config{nil, {}} {
		_, err := am.GetToken("", cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrNoToken))
		assert.Equal(t, config.ExitCodeNoToken, config.ExitCode(err))
	}
}

func TestNewAuthManager_ReadsEnvironment(t *testing.T) {
	t.Setenv(TokenEnvVar, "from_env")

	token, err := NewAuthManager().GetToken("", nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env", token)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LABELORD_TEST_DOTENV=from_file\n"), 0600))

	t.Setenv("LABELORD_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LABELORD_TEST_DOTENV"))

	loaded := LoadEnvFiles(envFile, filepath.Join(dir, ".env.local"))
	assert.Equal(t, []string{envFile}, loaded)
	assert.Equal(t, "from_file", os.Getenv("LABELORD_TEST_DOTENV"))
}

func TestLoadEnvFiles_DoesNotOverride(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LABELORD_TEST_KEEP=from_file\n"), 0600))
	t.Setenv("LABELORD_TEST_KEEP", "from_process")

	LoadEnvFiles(envFile)
	assert.Equal(t, "from_process", os.Getenv("LABELORD_TEST_KEEP"))
}

func TestGetAuthInstructions(t *testing.T) {
	instructions := GetAuthInstructions()
	assert.Contains(t, instructions, "--token")
	assert.Contains(t, instructions, TokenEnvVar)
	assert.Contains(t, instructions, "[github]")
}
