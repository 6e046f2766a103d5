package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars binds environment variables to the flags of cmd. The variable
// for a flag is FILEFORMAT_<FLAG>, upper-cased with dashes replaced by
// underscores, e.g. "log-level" reads FILEFORMAT_LOG_LEVEL.
//
// Arguments take precedence over environment variables, which take precedence
// over default values. A flag set from the environment counts as changed, so
// it also takes precedence over the configuration file.
//
// Repeatable flags are split into words with shell quoting rules.
//
// The variable name is appended to each flag's usage.
func bindEnvVars(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(func(flag *pflag.Flag) {
			bindFlagToEnv(fs, flag)
		})
	}
}

func bindFlagToEnv(fs *pflag.FlagSet, flag *pflag.Flag) {
	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	values := []string{envValue}

	if flag.Value.Type() == "stringArray" {
		// FILEFORMAT_SET="title='q3 report' year=2024" sets two values.
		words, err := shellwords.Parse(envValue)
		if err != nil {
			slog.Error("failed to split environment variable",
				slog.String("env", envName),
				slog.Any("error", err),
			)

			return
		}

		values = words
	}

	for _, v := range values {
		err := fs.Set(flag.Name, v)
		if err != nil {
			// Keep the default.
			slog.Error("failed to set flag from environment variable",
				slog.String("flag", flag.Name),
				slog.String("env", envName),
				slog.String("value", v),
				slog.Any("error", err),
			)

			return
		}
	}
}

// flagToEnvName converts a flag name to its environment variable name.
// Example: "log-level" -> "FILEFORMAT_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
