package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vuetest [paths...]",
	Short: "Test scaffold generator for Vue single-file components",
	Long: `Scan Vue components for data-test attributes and write a vitest spec
next to each one, with a mount helper and one existence check per marker.`,
	Args: cobra.ArbitraryArgs,
	// Configuration and logging are set up once for every subcommand.
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		configureLogger(getBoolWithFallback("verbose", "verbose", false))
		return nil
	},
	// Default behavior: run generate when no subcommand is given.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path")
	rootCmd.PersistentFlags().String("settings", "", "Settings record path (default .vuetest/settings.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (default .vuetest/vuetest.log)")
	rootCmd.PersistentFlags().String("ignore-file", defaultIgnoreFile, "Ignore file applied to discovered paths (empty disables)")

	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
