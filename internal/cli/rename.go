package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/fileformat/pkg/command"
)

type RenameArgs struct {
	*RootArgs
	TokenArgs

	Path   string
	Strict bool
}

func NewRenameCmd(ra *RootArgs) *cobra.Command {
	rna := &RenameArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "rename <existing-file>",
		Short: "Rename a file in place to a name built from a rule",
		Long: `Rename a file in place to a name built from a rule.

By default an existing file with the new name is replaced, as the rename is
done by the operating system. Use --strict (or config rename.strict) to
refuse instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rna.Path = args[0]

			return runRename(cmd, rna)
		},
	}

	rna.TokenArgs.AddFlags(cmd, true)
	cmd.Flags().BoolVar(&rna.Strict, "strict", false, "Refuse to replace an existing file (default from config rename.strict)")

	bindEnvVars(cmd)

	return cmd
}

func runRename(cmd *cobra.Command, rna *RenameArgs) error {
	ctx := cmd.Context()

	cfg, err := rna.LoadConfig()
	if err != nil {
		return err
	}

	cmds := newCommands(rna.RootArgs, boolFlag(cmd, "strict", cfg.StrictRename()))

	_, sel, err := tokenValues(ctx, cmd, rna.RootArgs, cfg, cmds, &rna.TokenArgs, fileExt(rna.Path))
	if err != nil {
		return err
	}

	path, err := cmds.RenameFile(ctx, command.RenameRequest{
		ExistingPath: rna.Path,
		Selection:    sel,
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
