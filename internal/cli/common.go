package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/macropower/fileformat/pkg/command"
	"github.com/macropower/fileformat/pkg/config"
	"github.com/macropower/fileformat/pkg/filename"
	"github.com/macropower/fileformat/pkg/log"
	"github.com/macropower/fileformat/pkg/prompt"
	"github.com/macropower/fileformat/pkg/writer"
)

var ErrInvalidSet = errors.New("invalid --set value, want key=value")

// TokenArgs are the flags shared by commands that compose a file name.
type TokenArgs struct {
	Format      string
	Extension   string
	Set         []string
	Interactive bool
}

func (ta *TokenArgs) AddFlags(cmd *cobra.Command, interactive bool) {
	cmd.Flags().StringVarP(&ta.Format, "format", "f", "", "Path to the rule document (.json)")
	cmd.Flags().StringArrayVar(&ta.Set, "set", nil, "Set a token value, as key=value (repeatable)")
	cmd.Flags().StringVar(&ta.Extension, "extension", "", "File extension of the new name")

	if interactive {
		cmd.Flags().BoolVarP(&ta.Interactive, "interactive", "i", false, "Enter token values in a form")
	}

	err := cmd.MarkFlagRequired("format")
	if err != nil {
		panic(err)
	}

	err = cmd.MarkFlagFilename("format", "json")
	if err != nil {
		panic(err)
	}
}

// parseSet parses key=value pairs. Later pairs win.
func parseSet(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSet, pair)
		}

		values[k] = v
	}

	return values, nil
}

// tokenValues loads the rule document and returns it along with the
// selection for its tokens. Values start from the document defaults, are
// overridden by --set, and are then edited in the form when interactive.
// The extension falls back to fallbackExt.
func tokenValues(
	ctx context.Context,
	cmd *cobra.Command,
	ra *RootArgs,
	cfg *config.Config,
	cmds *command.Commands,
	ta *TokenArgs,
	fallbackExt string,
) (*command.FileFormat, filename.Selection, error) {
	ff, err := cmds.GetFileFormat(ctx, ta.Format)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // Already a [*command.Error].
	}

	set, err := parseSet(ta.Set)
	if err != nil {
		return nil, nil, err
	}

	values := cmds.DefaultValues(ff.Document)
	maps.Copy(values, set)

	ext := ta.Extension
	if ext == "" {
		ext = strings.TrimPrefix(fallbackExt, ".")
	}

	if ta.Interactive {
		res, err := runPrompt(ctx, cmd, ra, cfg, ff, values, ext)
		if err != nil {
			return nil, nil, err
		}

		values, ext = res.Values, res.Extension
	}

	sel := filename.Selection(values)
	sel[filename.KeyRule] = ff.Rule

	if ext != "" {
		sel[filename.KeyExtension] = ext
	}

	return ff, sel, nil
}

// runPrompt shows the token form. Logs are held in a buffer while the form
// owns the terminal and written to stderr afterwards.
func runPrompt(
	ctx context.Context,
	cmd *cobra.Command,
	ra *RootArgs,
	cfg *config.Config,
	ff *command.FileFormat,
	values map[string]string,
	ext string,
) (*prompt.Result, error) {
	p, err := prompt.New(cfg.Prompt.Theme)
	if err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}

	logBuf := log.NewCircularBuffer(100)

	logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("create log handler: %w", err)
	}

	prev := slog.Default()
	slog.SetDefault(slog.New(logHandler))

	res, err := p.Prompt(ctx, ff.Document, values, ext)

	slog.SetDefault(prev)
	flushLogs(cmd.ErrOrStderr(), logBuf)

	if err != nil {
		return nil, fmt.Errorf("prompt for token values: %w", err)
	}

	return res, nil
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
		slog.Bool("truncated", buf.IsFull()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}

// newCommands creates [command.Commands] configured from cfg.
func newCommands(ra *RootArgs, strictRename bool) *command.Commands {
	return command.New(ra.Session,
		command.WithWriterOptions(writer.WithStrictRename(strictRename)),
	)
}

// boolFlag returns the value of a bool flag when it was set, or def.
func boolFlag(cmd *cobra.Command, name string, def bool) bool {
	if !cmd.Flags().Changed(name) {
		return def
	}

	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return def
	}

	return v
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int.
}

func fileExt(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
