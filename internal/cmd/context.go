package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"labelord/pkg/config"
	"labelord/pkg/fuzzy"
	"labelord/pkg/github"
	"labelord/pkg/labels"
	"labelord/pkg/logging"
)

// newStore builds the label store for a token. Tests replace it with a fake.
var newStore = func(token, apiURL string) (github.LabelStore, error) {
	if apiURL == "" {
		return github.NewClient(token), nil
	}
	return github.NewEnterpriseClient(token, apiURL)
}

// newSelector builds the interactive repository picker. Tests replace it.
var newSelector = func(prompt string) fuzzy.MultiSelector {
	return fuzzy.NewFzf(prompt)
}

// stdinIsTerminal reports whether --select can prompt the user
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// RunContext is everything a command needs once configuration has been
// resolved. It is built once per invocation and only read afterwards.
type RunContext struct {
	store        github.LabelStore
	repositories []string
	desired      labels.LabelSet
}

// Store returns the remote label store
func (rc *RunContext) Store() github.LabelStore {
	return rc.store
}

// Repositories returns a copy of the resolved repository list
func (rc *RunContext) Repositories() []string {
	return append([]string(nil), rc.repositories...)
}

// Desired returns a copy of the desired label set
func (rc *RunContext) Desired() labels.LabelSet {
	return rc.desired.Clone()
}

// contextRequirements says which parts of the RunContext a command uses
type contextRequirements struct {
	repositories bool
	labels       bool
}

// buildRunContext resolves the token, store, repositories and desired labels
// in that order. Missing token and missing repositories are reported as
// ConfigurationErrors carrying their exit codes.
func buildRunContext(ctx context.Context, opts *globalOptions, req contextRequirements) (*RunContext, error) {
	log := logging.FromContext(ctx)

	for _, file := range github.LoadEnvFiles() {
		log.Debug().Str("file", file).Msg("loaded environment file")
	}

	cfg, err := loadConfig(opts.configPath, opts.templateRepo)
	if err != nil {
		return nil, err
	}

	token, err := github.NewAuthManager().GetToken(opts.token, cfg)
	if err != nil {
		return nil, err
	}

	store, err := newStore(token, cfg.GitHub.APIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	rc := &RunContext{store: store}

	if req.repositories {
		if rc.repositories, err = resolveRepositories(ctx, opts, cfg, store); err != nil {
			return nil, err
		}
	}

	if req.labels {
		if rc.desired, err = resolveDesiredLabels(ctx, cfg, store); err != nil {
			return nil, err
		}
	}

	return rc, nil
}

// loadConfig reads and validates the configuration file. The default path
// may be absent; an explicit path must exist. A template repository given on
// the command line replaces the configured one before validation.
func loadConfig(path, templateRepo string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		path = "~/.labelord/config.ini"
		cfg, err = config.LoadConfig()
	} else if _, statErr := os.Stat(path); statErr != nil {
		return nil, fmt.Errorf("failed to open config file: %w", statErr)
	} else {
		cfg, err = config.LoadConfigFromPath(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if templateRepo != "" {
		cfg.Others.TemplateRepo = templateRepo
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func resolveRepositories(ctx context.Context, opts *globalOptions, cfg *config.Config, store github.LabelStore) ([]string, error) {
	log := logging.FromContext(ctx)

	var repos []string
	switch {
	case opts.allRepos:
		all, err := store.ListRepositories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, repo := range all {
			if repo.Archived {
				log.Warn().Str("repository", repo.FullName).Msg("skipping archived repository")
				continue
			}
			repos = append(repos, repo.FullName)
		}

	case len(opts.repos) > 0:
		seen := make(map[string]bool, len(opts.repos))
		for _, repo := range opts.repos {
			repo = strings.TrimSpace(repo)
			if repo == "" || seen[repo] {
				continue
			}
			if _, _, err := config.SplitRepository(repo); err != nil {
				return nil, err
			}
			seen[repo] = true
			repos = append(repos, repo)
		}

	default:
		repos = cfg.EnabledRepositories()
	}

	if opts.selectRepos && len(repos) > 0 {
		selected, err := selectRepositories(repos)
		if err != nil {
			return nil, err
		}
		repos = selected
	}

	if len(repos) == 0 {
		return nil, config.NewConfigurationError(config.ExitCodeNoRepositories, config.ErrNoRepositories)
	}

	log.Debug().Strs("repositories", repos).Msg("resolved repositories")
	return repos, nil
}

func selectRepositories(repos []string) ([]string, error) {
	if !stdinIsTerminal() {
		return nil, errors.New("--select needs an interactive terminal")
	}

	options := make([]fuzzy.Option, 0, len(repos))
	for _, repo := range repos {
		options = append(options, fuzzy.Option{Value: repo})
	}

	selector := newSelector("Repositories>")
	if err := selector.SetOptions(options); err != nil {
		return nil, err
	}

	selected, err := selector.SelectMany()
	if err != nil {
		return nil, fmt.Errorf("repository selection failed: %w", err)
	}
	return selected, nil
}

// resolveDesiredLabels applies the label source precedence: the template
// repository (flag or config, already merged by loadConfig), then the
// configured label map.
func resolveDesiredLabels(ctx context.Context, cfg *config.Config, store github.LabelStore) (labels.LabelSet, error) {
	log := logging.FromContext(ctx)

	template := cfg.Others.TemplateRepo
	if template == "" {
		return cfg.DesiredLabels(), nil
	}

	if len(cfg.Labels) > 0 {
		log.Warn().
			Str("template", template).
			Int("ignored", len(cfg.Labels)).
			Msg("template repository configured, ignoring the labels section")
	}

	desired, err := store.ListLabels(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels from template repository %s: %w", template, err)
	}

	log.Debug().Str("template", template).Int("labels", len(desired)).Msg("loaded template labels")
	return desired, nil
}
