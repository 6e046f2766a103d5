package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/macropower/fileformat/pkg/command"
	"github.com/macropower/fileformat/pkg/config"
	"github.com/macropower/fileformat/pkg/watch"
)

type PreviewArgs struct {
	*RootArgs
	TokenArgs

	Copy  bool
	Watch bool
}

func NewPreviewCmd(ra *RootArgs) *cobra.Command {
	pa := &PreviewArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the name a rule would produce",
		Long: `Print the name a rule would produce.

Tokens without a value are shown as {token}, and a missing extension as
"etc". With --watch, the name is printed again whenever the rule document
changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, pa)
		},
	}

	pa.TokenArgs.AddFlags(cmd, false)
	cmd.Flags().BoolVar(&pa.Copy, "copy", false, "Copy the name to the clipboard")
	cmd.Flags().BoolVarP(&pa.Watch, "watch", "w", false, "Print the name again when the rule document changes")

	bindEnvVars(cmd)

	return cmd
}

func runPreview(cmd *cobra.Command, pa *PreviewArgs) error {
	cfg, err := pa.LoadConfig()
	if err != nil {
		return err
	}

	cmds := newCommands(pa.RootArgs, cfg.StrictRename())

	err = printPreview(cmd.Context(), cmd, pa, cfg, cmds)
	if err != nil || !pa.Watch {
		return err
	}

	//nolint:wrapcheck // Errors are wrapped by the watcher.
	return watch.File(cmd.Context(), pa.Format, func(ctx context.Context) error {
		return printPreview(ctx, cmd, pa, cfg, cmds)
	})
}

func printPreview(
	ctx context.Context,
	cmd *cobra.Command,
	pa *PreviewArgs,
	cfg *config.Config,
	cmds *command.Commands,
) error {
	ff, sel, err := tokenValues(ctx, cmd, pa.RootArgs, cfg, cmds, &pa.TokenArgs, "")
	if err != nil {
		return err
	}

	ext, _ := sel.Extension()
	name := cmds.PreviewFileName(ff.Rule, sel, ext)

	if pa.Copy {
		err = clipboard.WriteAll(name)
		if err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}

		slog.Debug("copied name to clipboard", slog.String("name", name))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
