package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/fileformat/pkg/config"
	"github.com/macropower/fileformat/pkg/log"
	"github.com/macropower/fileformat/pkg/session"
)

const (
	cmdName = "fileformat"
	cmdDesc = `Name files from rule templates, without ever overwriting anything.`

	cmdExamples = `  # Show the tokens of a rule document:
  fileformat load ./rules/invoice.json

  # Save a copy of a file under a name built from the rule:
  fileformat save ./scan.pdf --format ./rules/invoice.json --set kind=invoice --set title=acme

  # Ask for the values in a form:
  fileformat save ./scan.pdf --format ./rules/invoice.json --interactive

  # Rename a file in place:
  fileformat rename ./scan.pdf --format ./rules/invoice.json --set kind=receipt --set title=acme

  # Preview a name and copy it to the clipboard:
  fileformat preview --format ./rules/invoice.json --set title=acme --copy`
)

type RootArgs struct {
	Session    *session.State
	LogLevel   string
	LogFormat  string
	ConfigPath string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{Session: session.New()}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", "", "Path to the fileformat configuration file")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

// GetConfigPath returns the --config path, or the default path.
func (ra *RootArgs) GetConfigPath() string {
	if ra.ConfigPath != "" {
		return ra.ConfigPath
	}

	return config.GetPath()
}

// LoadConfig loads the configuration. The default configuration file is
// written first if it does not exist yet.
func (ra *RootArgs) LoadConfig() (*config.Config, error) {
	path := ra.GetConfigPath()

	err := config.WriteDefaultConfig(path, false)
	if err != nil {
		slog.Warn("could not write default config", slog.String("path", path), slog.Any("err", err))
	}

	cfg, err := config.Load(path, config.WithColor(isTerminal(os.Stderr)))
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped with the path.
	}

	return cfg, nil
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		SilenceUsage:      true,
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewLoadCmd(args),
		NewSaveCmd(args),
		NewRenameCmd(args),
		NewPreviewCmd(args),
		NewConfigCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}
