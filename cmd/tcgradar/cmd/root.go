// Package cmd implements the tcgradar CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tcgradar/tcgradar/internal/config"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "tcgradar",
		Short: "Classify and resolve collectible card listings",
		Long: "tcgradar filters raw marketplace listings for collectible cards,\n" +
			"resolves accepted listings to canonical card entities with\n" +
			"deterministic SKUs, and issues conservative buy/watch/avoid\n" +
			"recommendations from market features.",
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.tcgradar.yaml)")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.AddCommand(filterCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(decideCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCommand())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tcgradar")
	}

	viper.SetEnvPrefix("TCGRADAR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the file-backed configuration when --config was
// given, the defaults otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
