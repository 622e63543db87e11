package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adikemitra/adike-go/cmd/export"
	"github.com/adikemitra/adike-go/cmd/forecast"
	"github.com/adikemitra/adike-go/cmd/serve"
	"github.com/adikemitra/adike-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adike",
		Short: "Adike Mitra CLI",
		Long:  "Smart arecanut farm management: disease detection, irrigation, market prices and forecasts.",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		serve.Command(settings),
		forecast.Command(settings),
		export.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "database", viper.GetString("output.sqlite.path"), "Path to the SQLite database file")
	rootCmd.PersistentFlags().StringVar(&settings.Main.Timezone, "timezone", viper.GetString("main.timezone"), "IANA timezone for persisted timestamps")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
