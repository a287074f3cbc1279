package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"labelord/pkg/config"
	"labelord/pkg/github"
	"labelord/pkg/logging"
)

// Output formats for per-operation results
const (
	OutputText = "text"
	OutputJSON = "json"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	token        string
	configPath   string
	templateRepo string
	allRepos     bool
	repos        []string
	selectRepos  bool
	logLevel     string
	logFormat    string
	logFile      string
	output       string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "labelord",
		Short: "Synchronize GitHub labels across repositories",
		Long: `labelord keeps the labels of many GitHub repositories in sync with one
desired set, taken from the configuration file or from a template repository.

In update mode missing labels are created and colors are fixed; labels that
are not in the desired set are left alone. In replace mode those extra labels
are deleted too, so every repository ends up with exactly the desired set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.token, "token", "t", "", "GitHub token (defaults to $GITHUB_TOKEN, then the config file)")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to the configuration file, INI or YAML (default ~/.labelord/config.ini)")
	flags.StringVarP(&opts.templateRepo, "template-repo", "r", "", "Take the desired labels from this owner/name repository")
	flags.BoolVarP(&opts.allRepos, "all-repos", "a", false, "Use every repository accessible with the token")
	flags.StringSliceVar(&opts.repos, "repos", nil, "Comma-separated owner/name repositories to use instead of the configured ones")
	flags.BoolVar(&opts.selectRepos, "select", false, "Pick repositories interactively from the resolved list")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "auto", "Log format (auto, console, json)")
	flags.StringVar(&opts.logFile, "log-file", "", "Append diagnostics to this file instead of stderr")
	flags.StringVarP(&opts.output, "output", "o", OutputText, "Result output format (text, json)")

	rootCmd.AddCommand(newListReposCmd(opts))
	rootCmd.AddCommand(newListLabelsCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newInitCmd())

	return rootCmd
}

// setupLogging installs the diagnostic logger in the command context
func setupLogging(cmd *cobra.Command, opts *globalOptions) error {
	switch opts.output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q: expected %q or %q", opts.output, OutputText, OutputJSON)
	}

	cfg := logging.DefaultConfig()
	cfg.Level = opts.logLevel
	cfg.Format = opts.logFormat

	logger := logging.NewWithWriter(cfg, cmd.ErrOrStderr())
	if opts.logFile != "" {
		cfg.Output = opts.logFile
		fileLogger, err := logging.New(cfg)
		if err != nil {
			return err
		}
		logger = fileLogger
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, &logger))
	return nil
}

// Execute runs the root command and exits with the code matching the error
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, config.ErrNoToken) {
		fmt.Fprintf(os.Stderr, "\n%s\n", github.GetAuthInstructions())
	}
	cancel()
	os.Exit(config.ExitCode(err))
}
