package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelord/pkg/config"
	"labelord/pkg/github"
	"labelord/pkg/labels"
)

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "labelord", root.Use)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list-repos", "list-labels", "run", "init"}, names)

	for _, flag := range []string{"token", "config", "template-repo", "all-repos", "repos", "select", "log-level", "log-format", "log-file", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "t", root.PersistentFlags().Lookup("token").Shorthand)
	assert.Equal(t, "c", root.PersistentFlags().Lookup("config").Shorthand)
	assert.Equal(t, "r", root.PersistentFlags().Lookup("template-repo").Shorthand)
	assert.Equal(t, "a", root.PersistentFlags().Lookup("all-repos").Shorthand)
}

func TestRootCommandHelp(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "labelord")
	assert.Contains(t, stdout, "list-repos")
	assert.Contains(t, stdout, "list-labels")
	assert.Contains(t, stdout, "run")
}

func TestNoToken(t *testing.T) {
	isolate(t)
	store := newMemStore()
	useStore(t, store)

	for _, args := range [][]string{
		{"list-repos"},
		{"list-labels", "octo/cat"},
		{"--repos", "octo/cat", "run", "update"},
	} {
		_, _, err := executeCommand(t, "", args...)
		require.Error(t, err, "%v", args)
		assert.True(t, errors.Is(err, config.ErrNoToken))
		assert.Equal(t, config.ExitCodeNoToken, config.ExitCode(err))
	}
}

func TestNoRepositories(t *testing.T) {
	dir := isolate(t)
	useStore(t, newMemStore())

	_, _, err := executeCommand(t, "", "-t", "tok", "run", "update")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrNoRepositories))
	assert.Equal(t, config.ExitCodeNoRepositories, config.ExitCode(err))

	// all repositories disabled
	path := writeFile(t, dir, "config.ini", "[repos]\nocto/cat = false\n[labels]\nbug = d73a4a\n")
	_, _, err = executeCommand(t, "", "-t", "tok", "-c", path, "run", "replace")
	assert.Equal(t, config.ExitCodeNoRepositories, config.ExitCode(err))
}

func TestTokenPrecedence(t *testing.T) {
	dir := isolate(t)
	store := newMemStore()
	token := useStore(t, store)
	path := writeFile(t, dir, "config.ini", "[github]\ntoken = from_config\n")

	_, _, err := executeCommand(t, "", "-c", path, "list-repos")
	require.NoError(t, err)
	assert.Equal(t, "from_config", *token)

	t.Setenv("GITHUB_TOKEN", "from_env")
	_, _, err = executeCommand(t, "", "-c", path, "list-repos")
	require.NoError(t, err)
	assert.Equal(t, "from_env", *token)

	_, _, err = executeCommand(t, "", "-c", path, "--token", "from_flag", "list-repos")
	require.NoError(t, err)
	assert.Equal(t, "from_flag", *token)
}

func TestTokenFromDotEnv(t *testing.T) {
	dir := isolate(t)
	token := useStore(t, newMemStore())
	writeFile(t, dir, ".env", "GITHUB_TOKEN=from_dotenv\n")
	// isolate set the variable to an empty value; dotenv only fills unset ones
	t.Setenv("GITHUB_TOKEN", "")
	require.NoError(t, os.Unsetenv("GITHUB_TOKEN"))

	_, _, err := executeCommand(t, "", "list-repos")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", *token)
}

func TestInvalidConfig(t *testing.T) {
	dir := isolate(t)
	useStore(t, newMemStore())

	path := writeFile(t, dir, "config.ini", "[repos]\nocto/cat = true\n[labels]\nbug = red\n")
	_, _, err := executeCommand(t, "", "-t", "tok", "-c", path, "run", "update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "labels.bug")
	assert.Equal(t, config.ExitCodeError, config.ExitCode(err))

	_, _, err = executeCommand(t, "", "-t", "tok", "-c", filepath.Join(dir, "missing.ini"), "list-repos")
	require.Error(t, err)
	assert.Equal(t, config.ExitCodeError, config.ExitCode(err))
}

func TestInvalidOutputFormat(t *testing.T) {
	isolate(t)
	useStore(t, newMemStore())

	_, _, err := executeCommand(t, "", "-t", "tok", "--output", "yaml", "list-repos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLogFile(t *testing.T) {
	dir := isolate(t)
	store := newMemStore()
	store.repos = []github.Repository{{FullName: "octo/cat", Archived: true}}
	useStore(t, store)
	path := writeFile(t, dir, "config.ini", "[labels]\nbug = d73a4a\n")
	logPath := filepath.Join(dir, "labelord.log")

	_, stderr, err := executeCommand(t, "", "-t", "tok", "-c", path, "-a", "--log-file", logPath, "run", "update")
	require.Error(t, err)
	assert.Equal(t, config.ExitCodeNoRepositories, config.ExitCode(err))
	assert.NotContains(t, stderr, "skipping archived repository")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "skipping archived repository")

	_, _, err = executeCommand(t, "", "-t", "tok", "--log-file", filepath.Join(dir, "missing", "x.log"), "list-repos")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestRunContextIsACopy(t *testing.T) {
	rc := &RunContext{
		repositories: []string{"octo/cat"},
		desired:      labels.LabelSet{"bug": "d73a4a"},
	}

	repos := rc.Repositories()
	repos[0] = "changed"
	desired := rc.Desired()
	desired["bug"] = "000000"

	assert.Equal(t, []string{"octo/cat"}, rc.Repositories())
	assert.Equal(t, labels.LabelSet{"bug": "d73a4a"}, rc.Desired())
}
