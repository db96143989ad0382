// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-fetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-fetch/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Run without a subcommand it fetches.
var rootCmd = &cobra.Command{
	Use:   "scholar-fetch",
	Short: "Fetch a researcher's publication list into a JSON file",
	Long: `scholar-fetch retrieves the publication listing of a public researcher
profile page by page, parses every entry (title, authors, venue, year,
citations, links) and writes the result to publications.json with a
timestamp and count.

Run without a subcommand to fetch with the configured defaults. Written
documents can be kept in a local SQLite archive with the archive subcommands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Progress and per-entry failures are part of the run's report.
		logging.Setup(logging.Config{
			Level:  viper.GetString("log_level"),
			JSON:   viper.GetBool("log_json"),
			Output: cmd.OutOrStdout(),
		})
		return nil
	},
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: scholar-fetch.yaml in . or ~/.config/scholar-fetch)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON lines instead of console output")
	rootCmd.PersistentFlags().String("profile", defaultProfile, "profile identifier of the listing")

	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"log_level":  "log-level",
		"log_json":   "log-json",
		"profile_id": "profile",
	})

	addFetchFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-fetch"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_FETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each viper key to the named flag in fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
