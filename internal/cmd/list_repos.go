package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListReposCmd(opts *globalOptions) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list-repos",
		Short: "List every repository accessible with the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			rc, err := buildRunContext(ctx, opts, contextRequirements{})
			if err != nil {
				return err
			}

			repos, err := rc.Store().ListRepositories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list repositories: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, repo := range repos {
				if repo.Archived && !includeArchived {
					continue
				}
				_, _ = fmt.Fprintln(out, repo.FullName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "archived", true, "Include archived repositories")
	return cmd
}
