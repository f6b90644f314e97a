package main

import (
	"fmt"

	"github.com/jjgarcianorway/anna/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the annactl build version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
