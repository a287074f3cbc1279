package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelord/pkg/config"
)

func newListLabelsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list-labels <owner/repo>",
		Short: "Print the labels of a repository as \"#color name\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo := args[0]

			if _, _, err := config.SplitRepository(repo); err != nil {
				return err
			}

			rc, err := buildRunContext(ctx, opts, contextRequirements{})
			if err != nil {
				return err
			}

			set, err := rc.Store().ListLabels(ctx, repo)
			if err != nil {
				return fmt.Errorf("failed to list labels of %s: %w", repo, err)
			}

			out := cmd.OutOrStdout()
			for _, label := range set.Labels() {
				_, _ = fmt.Fprintf(out, "#%s %s\n", label.Color, label.Name)
			}
			return nil
		},
	}
}
