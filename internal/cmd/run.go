package cmd

import (
	"github.com/spf13/cobra"

	"labelord/pkg/github"
	"labelord/pkg/labels"
	"labelord/pkg/logging"
)

type runOptions struct {
	dryRun      bool
	summary     bool
	concurrency int
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	runOpts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run update|replace",
		Short: "Reconcile the labels of every selected repository",
		Long: `Reconcile the labels of every selected repository with the desired set.

  update   create missing labels and fix colors, keep extra labels
  replace  like update, and delete labels that are not desired

One line is printed per operation. Failed operations are reported and the
run goes on; the exit code stays 0 unless the run could not start.

Examples:
  labelord -c labels.ini run update
  labelord -c labels.ini --repos octo/cat,octo/dog run replace --dry-run
  labelord -a -r octo/template run update --concurrency 4 --summary`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(labels.ModeUpdate), string(labels.ModeReplace)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := labels.ParseMode(args[0])
			if err != nil {
				return err
			}
			return runReconcile(cmd, opts, runOpts, mode)
		},
	}

	cmd.Flags().BoolVar(&runOpts.dryRun, "dry-run", false, "Show the operations without executing them")
	cmd.Flags().BoolVar(&runOpts.summary, "summary", false, "Print a per-repository summary table at the end")
	cmd.Flags().IntVar(&runOpts.concurrency, "concurrency", github.DefaultConcurrency, "Number of repositories processed at once")

	return cmd
}

func runReconcile(cmd *cobra.Command, opts *globalOptions, runOpts *runOptions, mode labels.Mode) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	rc, err := buildRunContext(ctx, opts, contextRequirements{repositories: true, labels: true})
	if err != nil {
		return err
	}

	repos := rc.Repositories()
	desired := rc.Desired()
	log.Info().
		Str("mode", string(mode)).
		Int("repositories", len(repos)).
		Int("labels", len(desired)).
		Bool("dry_run", runOpts.dryRun).
		Msg("starting label reconciliation")

	runner := github.NewMultiReconciler(rc.Store(), github.WithConcurrency(runOpts.concurrency))
	reporter := newReporter(opts.output, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var results []labels.Result
	if runOpts.dryRun {
		for _, plan := range runner.PlanAll(ctx, repos, desired, mode) {
			reporter.Planned(plan)
			results = append(results, plannedResults(plan)...)
		}
	} else {
		results = runner.ReconcileAll(ctx, repos, desired, mode)
		for _, result := range results {
			reporter.Result(result)
		}
	}

	if runOpts.summary && opts.output != OutputJSON {
		renderSummary(cmd.OutOrStdout(), labels.Summarize(repos, results))
	}

	return nil
}

// plannedResults treats every planned operation as successful so the summary
// table of a dry run shows what a real run would change
func plannedResults(plan github.RepositoryPlan) []labels.Result {
	if plan.Err != nil {
		return []labels.Result{{
			Repository: plan.Repository,
			Operation:  labels.Operation{Kind: labels.OperationFetch},
			Err:        plan.Err,
		}}
	}
	results := make([]labels.Result, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		results = append(results, labels.Result{Repository: plan.Repository, Operation: op})
	}
	return results
}
