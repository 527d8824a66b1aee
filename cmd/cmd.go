// Package cmd defines the command-line interface for tempo.
package cmd

import (
	"github.com/huangsam/tempo/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(archetypesCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "Start date in YYYY-MM-DD form (default 2022-01-01)")
	rootCmd.PersistentFlags().String("end", "", "End date in YYYY-MM-DD form, inclusive (default today)")
	rootCmd.PersistentFlags().String("author", "", "Only count commits whose author matches this pattern")
	rootCmd.PersistentFlags().String("name", "", "Display name for the report (default derived from sources)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent retrieval workers")
	rootCmd.PersistentFlags().StringP("output", "o", contract.DefaultOutput, "Output format: text or json or html")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("open", false, "Open the HTML report in a browser after writing it")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the bucket cache entirely")
	rootCmd.PersistentFlags().String("cache-path", "", "Override the bucket cache database location")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
