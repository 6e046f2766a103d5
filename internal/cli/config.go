package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/fileformat/pkg/config"
	"github.com/macropower/fileformat/pkg/yaml"
)

type ConfigArgs struct {
	*RootArgs

	Write bool
	Force bool
	Show  bool
	Diff  bool
}

func NewConfigCmd(ra *RootArgs) *cobra.Command {
	ca := &ConfigArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the configuration file path, or write or show the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, ca)
		},
	}

	cmd.Flags().BoolVar(&ca.Write, "write", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ca.Force, "force", false, "With --write, replace an existing file (a backup is kept)")
	cmd.Flags().BoolVar(&ca.Show, "show", false, "Print the active configuration")
	cmd.Flags().BoolVar(&ca.Diff, "diff", false, "Print the changes from the default configuration")

	bindEnvVars(cmd)

	return cmd
}

func runConfig(cmd *cobra.Command, ca *ConfigArgs) error {
	path := ca.GetConfigPath()

	if ca.Write {
		err := config.WriteDefaultConfig(path, ca.Force)
		if err != nil {
			return fmt.Errorf("write default config: %w", err)
		}

		return nil
	}

	if ca.Diff {
		diff, err := config.Diff(path)
		if err != nil {
			return fmt.Errorf("diff config: %w", err)
		}

		return writeHighlighted(cmd.OutOrStdout(), diff, "diff", "")
	}

	if !ca.Show {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	cfg, err := ca.LoadConfig()
	if err != nil {
		return err
	}

	slog.Debug("active configuration", slog.String("path", path))

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return writeHighlighted(cmd.OutOrStdout(), string(b), "yaml", cfg.Prompt.Theme)
}
