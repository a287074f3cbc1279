package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"labelord/pkg/fuzzy"
	"labelord/pkg/github"
	"labelord/pkg/labels"
)

// memStore is an in-memory LabelStore
type memStore struct {
	mu        sync.Mutex
	repos     []github.Repository
	labels    map[string]labels.LabelSet
	listErrs  map[string]error
	opErrs    map[string]error
	mutations []string
}

func newMemStore() *memStore {
	return &memStore{
		labels:   make(map[string]labels.LabelSet),
		listErrs: make(map[string]error),
		opErrs:   make(map[string]error),
	}
}

func (s *memStore) ListLabels(_ context.Context, repo string) (labels.LabelSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.listErrs[repo]; err != nil {
		return nil, err
	}
	return s.labels[repo].Clone(), nil
}

func (s *memStore) mutate(key string, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations = append(s.mutations, key)
	if err := s.opErrs[key]; err != nil {
		return err
	}
	apply()
	return nil
}

func (s *memStore) CreateLabel(_ context.Context, repo, name, color string) error {
	return s.mutate(fmt.Sprintf("create %s %s", repo, name), func() {
		if s.labels[repo] == nil {
			s.labels[repo] = labels.LabelSet{}
		}
		s.labels[repo][name] = color
	})
}

func (s *memStore) UpdateLabel(_ context.Context, repo, name, color string) error {
	return s.mutate(fmt.Sprintf("update %s %s", repo, name), func() {
		s.labels[repo][name] = color
	})
}

func (s *memStore) DeleteLabel(_ context.Context, repo, name string) error {
	return s.mutate(fmt.Sprintf("delete %s %s", repo, name), func() {
		delete(s.labels[repo], name)
	})
}

func (s *memStore) ListRepositories(context.Context) ([]github.Repository, error) {
	return s.repos, nil
}

func (s *memStore) recordedMutations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.mutations...)
}

// isolate gives the test an empty home, working directory and token
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(github.TokenEnvVar, "")
	t.Chdir(dir)
	return dir
}

// useStore makes commands talk to store and records the token used
func useStore(t *testing.T, store github.LabelStore) *string {
	t.Helper()
	var token string
	original := newStore
	newStore = func(tok, _ string) (github.LabelStore, error) {
		token = tok
		return store, nil
	}
	t.Cleanup(func() { newStore = original })
	return &token
}

// useSelector replaces the interactive picker and pretends stdin is a terminal
func useSelector(t *testing.T, selector fuzzy.MultiSelector) {
	t.Helper()
	originalSelector, originalTerminal := newSelector, stdinIsTerminal
	newSelector = func(string) fuzzy.MultiSelector { return selector }
	stdinIsTerminal = func() bool { return true }
	t.Cleanup(func() {
		newSelector = originalSelector
		stdinIsTerminal = originalTerminal
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// executeCommand runs a fresh command tree and captures its output
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(bytes.NewBufferString(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
