package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"labelord/pkg/config"
)

func newInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize labelord configuration",
		Long: `Create a sample configuration file for labelord.

The format follows the file extension: .yaml and .yml are written as YAML,
anything else as INI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, path, force)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Where to write the file (default ~/.labelord/config.ini)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file without asking")
	return cmd
}

// sampleConfig is written by init
func sampleConfig() *config.Config {
	return &config.Config{
		GitHub: config.GitHubConfig{
			Token: "your_personal_access_token",
		},
		Repos: map[string]bool{
			"your-org/first-repo":  true,
			"your-org/second-repo": false,
		},
		Labels: map[string]string{
			"bug":              "d73a4a",
			"documentation":    "0075ca",
			"enhancement":      "a2eeef",
			"good first issue": "7057ff",
			"question":         "d876e3",
		},
	}
}

func runInit(cmd *cobra.Command, path string, force bool) error {
	save := func(cfg *config.Config) error { return cfg.SaveConfigToPath(path) }
	if path == "" {
		save = (*config.Config).SaveConfig
		defaultPath, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = defaultPath
	}

	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil && !force {
		_, _ = fmt.Fprintf(out, "⚠️  Configuration file already exists at: %s\n", path)
		_, _ = fmt.Fprint(out, "Do you want to overwrite it? (y/N): ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if answer := strings.TrimSpace(response); answer != "y" && answer != "Y" {
			_, _ = fmt.Fprintln(out, "Configuration initialization cancelled.")
			return nil
		}
	}

	if err := save(sampleConfig()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintf(out, "✅ Configuration file created at: %s\n", path)
	_, _ = fmt.Fprintln(out, "📝 Please edit the file: set your token, enable repositories and define the labels.")

	return nil
}
