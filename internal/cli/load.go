package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"
)

type LoadArgs struct {
	*RootArgs
}

func NewLoadCmd(ra *RootArgs) *cobra.Command {
	la := &LoadArgs{RootArgs: ra}

	cmd := &cobra.Command{
		Use:   "load <rule.json>",
		Short: "Print the rule, tokens and contents of a rule document",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			return []cobra.Completion{"json"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, la, args[0])
		},
	}

	bindEnvVars(cmd)

	return cmd
}

func runLoad(cmd *cobra.Command, la *LoadArgs, path string) error {
	cfg, err := la.LoadConfig()
	if err != nil {
		return err
	}

	ff, err := newCommands(la.RootArgs, cfg.StrictRename()).GetFileFormat(cmd.Context(), path)
	if err != nil {
		return err //nolint:wrapcheck // Already a [*command.Error].
	}

	out, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal file format: %w", err)
	}

	return writeHighlighted(cmd.OutOrStdout(), string(out)+"\n", "json", cfg.Prompt.Theme)
}

// writeHighlighted writes src to w, syntax highlighted when w is a terminal.
func writeHighlighted(w io.Writer, src, lexer, theme string) error {
	if isTerminal(w) {
		err := quick.Highlight(w, src, lexer, "terminal256", chromaStyle(theme))
		if err == nil {
			return nil
		}
	}

	_, err := io.WriteString(w, src)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// chromaStyle returns the chroma style closest to a form theme.
func chromaStyle(theme string) string {
	switch theme {
	case "dracula":
		return "dracula"
	case "catppuccin":
		return "catppuccin-mocha"
	case "base", "base16":
		return "bw"
	}

	return "monokai"
}
