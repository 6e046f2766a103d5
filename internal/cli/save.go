package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/fileformat/api"
	"github.com/macropower/fileformat/pkg/command"
)

type SaveArgs struct {
	*RootArgs
	TokenArgs

	Source  string
	Desktop bool
}

func NewSaveCmd(ra *RootArgs) *cobra.Command {
	sa := &SaveArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "save <source-file>",
		Short: "Save a copy of a file under a name built from a rule",
		Long: `Save a copy of a file under a name built from a rule.

The copy is written to the desktop, or next to the rule document when
--desktop=false. An existing file is never replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sa.Source = args[0]

			return runSave(cmd, sa)
		},
	}

	sa.TokenArgs.AddFlags(cmd, true)
	cmd.Flags().BoolVar(&sa.Desktop, "desktop", true, "Save to the desktop directory (default from config save.toDesktop)")

	bindEnvVars(cmd)

	return cmd
}

func runSave(cmd *cobra.Command, sa *SaveArgs) error {
	ctx := cmd.Context()

	cfg, err := sa.LoadConfig()
	if err != nil {
		return err
	}

	data, err := api.ReadFile(sa.Source)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}

	cmds := newCommands(sa.RootArgs, cfg.StrictRename())

	_, sel, err := tokenValues(ctx, cmd, sa.RootArgs, cfg, cmds, &sa.TokenArgs, fileExt(sa.Source))
	if err != nil {
		return err
	}

	path, err := cmds.SaveFile(ctx, command.SaveRequest{
		Selection:     sel,
		Data:          data,
		SaveToDesktop: boolFlag(cmd, "desktop", cfg.SaveToDesktop()),
	})
	if err != nil {
		return err //nolint:wrapcheck // Already a [*command.Error].
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
