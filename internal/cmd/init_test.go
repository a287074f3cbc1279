package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelord/pkg/config"
)

func TestInit_WritesSampleConfig(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := executeCommand(t, "", "init")
	require.NoError(t, err)

	path := filepath.Join(dir, ".labelord", "config.ini")
	assert.Contains(t, stdout, path)

	cfg, err := config.LoadConfigFromPath(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"your-org/first-repo"}, cfg.EnabledRepositories())
	assert.Equal(t, "d73a4a", cfg.Labels["bug"])
}

func TestInit_YAMLPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "labels.yaml")

	_, _, err := executeCommand(t, "", "init", "--path", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "repos:")
	assert.Contains(t, string(data), "good first issue: 7057ff")
}

func TestInit_ExistingFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.ini", "[labels]\nkeep = 000000\n")

	stdout, _, err := executeCommand(t, "n\n", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "cancelled")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep")

	_, _, err = executeCommand(t, "y\n", "init", "--path", path)
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keep")

	writeFile(t, dir, "config.ini", "[labels]\nkeep = 000000\n")
	_, _, err = executeCommand(t, "", "init", "--path", path, "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keep")
}
