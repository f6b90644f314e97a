package main

import (
	"fmt"

	"github.com/jjgarcianorway/anna/pkg/execution"
	"github.com/spf13/cobra"
)

var (
	execLabel  string
	execRisk   string
	execDomain string
)

var executeCmd = &cobra.Command{
	Use:   "execute -- <program> [args...]",
	Short: "Run a single command through the policy-gated executor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"label":  execLabel,
			"domain": execDomain,
			"commands": []map[string]any{
				{"program": args[0], "args": args[1:], "risk_level": execRisk},
			},
		}

		var result execution.ExecutionResult
		if err := newAPIClient(serverAddr).post("/v1/plans/execute", body, &result); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, cr := range result.CommandResults {
			fmt.Fprintf(out, "$ %s\n", cr.FullCommand)
			fmt.Fprintf(out, "  exit=%d success=%v\n", cr.ExitCode, cr.Success)
			if cr.Evidence.Summary != "" {
				fmt.Fprintf(out, "  %s\n", cr.Evidence.Summary)
			}
		}
		fmt.Fprintf(out, "overall success: %v\n", result.Success)
		return nil
	},
}

func init() {
	executeCmd.Flags().StringVar(&execLabel, "label", "ad-hoc command", "human-readable label recorded in the change log")
	executeCmd.Flags().StringVar(&execRisk, "risk", "Safe", "risk level (Safe, Moderate, High)")
	executeCmd.Flags().StringVar(&execDomain, "domain", "general", "action domain (packages, services, config, ...)")
	rootCmd.AddCommand(executeCmd)
}
