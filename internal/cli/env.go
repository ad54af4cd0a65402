package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars sets the flags of cmd and all of its subcommands from
// environment variables named SKIPGRID_<FLAG_NAME>, where the flag name is
// upper-cased and dashes become underscores:
//
//   - "log-level" is read from SKIPGRID_LOG_LEVEL
//   - "serve-mcp" is read from SKIPGRID_SERVE_MCP
//
// Command line arguments take precedence over environment variables, which
// take precedence over defaults. Each flag's usage is extended with the name
// of its variable so that it shows up in help output.
func bindEnvVars(cmd *cobra.Command) {
	bind := func(flag *pflag.Flag) { bindFlagToEnv(flag) }

	cmd.PersistentFlags().VisitAll(bind)
	cmd.Flags().VisitAll(bind)

	for _, sub := range cmd.Commands() {
		bindEnvVars(sub)
	}
}

func bindFlagToEnv(flag *pflag.Flag) {
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

	if err := flag.Value.Set(envValue); err != nil {
		// The default stays in place.
		slog.Error("ignoring invalid environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("err", err),
		)
	}
}

// flagToEnvName returns the environment variable bound to a flag, for
// example "log-level" -> "SKIPGRID_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
