package github

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"labelord/pkg/config"
)

// TokenEnvVar is the environment variable holding the GitHub token
const TokenEnvVar = "GITHUB_TOKEN"

// DefaultEnvFiles are loaded by LoadEnvFiles when no file is given.
// Variables already present in the environment are never overridden.
var DefaultEnvFiles = []string{".env", ".env.local"}

// AuthManager resolves the GitHub token
type AuthManager struct {
	getenv func(string) string
}

// NewAuthManager creates a new authentication manager reading the process environment
func NewAuthManager() *AuthManager {
	return &AuthManager{getenv: os.Getenv}
}

// LoadEnvFiles loads the given dotenv files into the process environment,
// skipping files that do not exist. It returns the files that were loaded.
func LoadEnvFiles(files ...string) []string {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}

	var loaded []string
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err == nil {
			loaded = append(loaded, file)
		}
	}
	return loaded
}

// GetToken returns the first non-empty token from the flag value, the
// GITHUB_TOKEN environment variable and the config file, in that order.
func (am *AuthManager) GetToken(flagToken string, cfg *config.Config) (string, error) {
	if token := strings.TrimSpace(flagToken); token != "" {
		return token, nil
	}

	if token := strings.TrimSpace(am.getenv(TokenEnvVar)); token != "" {
		return token, nil
	}

	if cfg != nil {
		if token := strings.TrimSpace(cfg.GitHub.Token); token != "" {
			return token, nil
		}
	}

	return "", config.NewConfigurationError(config.ExitCodeNoToken, config.ErrNoToken)
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required. Provide a token in one of these ways:

1. Command line flag:
   labelord --token <token> ...

2. Environment variable (also read from .env or .env.local):
   export GITHUB_TOKEN="your_personal_access_token"

3. Configuration file:
   [github]
   token = your_personal_access_token

The token needs the 'repo' scope (or 'public_repo' for public repositories only).`
}
