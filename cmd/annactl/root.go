package main

import (
	"github.com/spf13/cobra"
)

var serverAddr string

var rootCmd = &cobra.Command{
	Use:   "annactl",
	Short: "Client for annad, the on-host assistant daemon",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "http://127.0.0.1:8787", "annad HTTP address")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(changesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
