package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "ENIGMA"

// applyEnvironment fills every flag the user did not set from the
// environment (ENIGMA_WORKERS for --workers) or, failing that, from the
// config file.
func applyEnvironment(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, flagValue(v, f)); err != nil {
			errs = append(errs, fmt.Errorf("--%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// flagValue renders a viper value in the syntax the flag parses. Lists
// from a config file become comma-separated.
func flagValue(v *viper.Viper, f *pflag.Flag) string {
	if strings.HasSuffix(f.Value.Type(), "Slice") {
		return strings.Join(v.GetStringSlice(f.Name), ",")
	}
	return v.GetString(f.Name)
}
