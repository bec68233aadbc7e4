package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botpipe",
	Short: "botpipe is a Telegram bot update pipeline daemon",
	Long: `botpipe retrieves updates from the Telegram bot API over long polling
or a webhook listener, normalizes them into a closed domain model, and
dispatches each update to registered handlers and bot commands.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
