package main

import (
	"fmt"
	"strings"

	"github.com/jjgarcianorway/anna/pkg/policy"
	"github.com/spf13/cobra"
)

var (
	evalDomain   string
	evalRisk     string
	evalPaths    []string
	evalServices []string
	evalPackages []string
	evalTags     []string
)

var evaluateCmd = &cobra.Command{
	Use:   "plan",
	Short: "Evaluate a planned action against policy without executing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{
			"domain":          evalDomain,
			"risk_level":      evalRisk,
			"target_paths":    evalPaths,
			"target_services": evalServices,
			"target_packages": evalPackages,
			"tags":            evalTags,
		}

		var decision policy.Decision
		if err := newAPIClient(serverAddr).post("/v1/plans/evaluate", body, &decision); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "allowed: %v\n", decision.Allowed)
		fmt.Fprintf(out, "require_confirm: %v\n", decision.RequireConfirm)
		fmt.Fprintf(out, "require_strong_confirm: %v\n", decision.RequireStrongConfirm)
		fmt.Fprintf(out, "effective_risk_cap: %s\n", decision.EffectiveRiskCap)
		if len(decision.MatchedRules) > 0 {
			fmt.Fprintf(out, "matched_rules: %s\n", strings.Join(decision.MatchedRules, ", "))
		}
		for _, note := range decision.Notes {
			fmt.Fprintf(out, "note: %s\n", note)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evalDomain, "domain", "", "action domain (packages, services, config, ...)")
	evaluateCmd.Flags().StringVar(&evalRisk, "risk", "Safe", "risk level (Safe, Moderate, High)")
	evaluateCmd.Flags().StringSliceVar(&evalPaths, "path", nil, "target file paths")
	evaluateCmd.Flags().StringSliceVar(&evalServices, "service", nil, "target services")
	evaluateCmd.Flags().StringSliceVar(&evalPackages, "package", nil, "target packages")
	evaluateCmd.Flags().StringSliceVar(&evalTags, "tag", nil, "action tags")
	evaluateCmd.MarkFlagRequired("domain")
}
