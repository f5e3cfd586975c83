package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configName = ".meowsum"

// initConfig fills every flag not given on the command line from
// MEOWSUM_<FLAG> environment variables or the config file, in that order.
func (g *globalFlags) initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if g.configFile != "" {
		v.SetConfigFile(g.configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(configName)
	}

	v.SetEnvPrefix("meowsum")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if g.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if setErr := cmd.Flags().Set(f.Name, v.GetString(f.Name)); setErr != nil {
			err = fmt.Errorf("invalid %s from config: %w", f.Name, setErr)
		}
	})
	return err
}
