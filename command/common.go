package command

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of the environment
// variables that configure cpm, e.g. CPM_ADDR.
const EnvPrefix = "CPM"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// SetCommon sets up logging, flag-to-environment binding
// and version output for cmd and all of its subcommands.
func SetCommon(cmd *cobra.Command, v *viper.Viper, version string) *cobra.Command {
	cmd.PersistentFlags().CountP("verbose", "V", fmt.Sprintf("Verbosity for %s.", cmd.Name()))
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		var (
			verbosity = v.GetInt("verbose")
			slog      = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.Level(int(slog.LevelError) - 4*verbosity),
			}))
			slogr = logr.FromSlogHandler(slog.Handler())
		)

		cmd.SetContext(logr.NewContext(cmd.Context(), slogr))

		return nil
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Version = version
	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")

	return cmd
}
