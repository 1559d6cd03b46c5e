// Package main provides the trigwatch CLI: it reads a schema graph
// descriptor and an entity configuration, and renders the PostgreSQL
// trigger and function definitions that keep a search index in sync with
// the database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// verbose enables debug logging.
	verbose bool

	// logger is initialized before any subcommand runs.
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trigwatch",
	Short: "Generate search-index triggers from a relational schema graph",
	Long: `Trigwatch walks a relational schema graph and, for every declared
entity type and relationship path, renders the PostgreSQL trigger functions
and trigger definitions that publish change notifications for an external
search indexer.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogger,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "run configuration file (default: trigwatch.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("trigwatch v0.2.0")
	},
}

func initLogger(cmd *cobra.Command, args []string) error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

// resolveConfigFile returns the config path from flag, environment, or
// default.
func resolveConfigFile() string {
	v := viper.New()
	v.SetDefault("config", "trigwatch.yaml")
	v.SetEnvPrefix("TRIGWATCH")
	_ = v.BindEnv("config")
	if configFile != "" {
		return configFile
	}
	return v.GetString("config")
}
