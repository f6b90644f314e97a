package main

import (
	"fmt"

	"github.com/jjgarcianorway/anna/pkg/changelog"
	"github.com/spf13/cobra"
)

var changesLimit int

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "List recent change units from the change log",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Changes []changelog.ChangeUnit `json:"changes"`
		}
		path := fmt.Sprintf("/v1/changes?limit=%d", changesLimit)
		if err := newAPIClient(serverAddr).get(path, &resp); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(resp.Changes) == 0 {
			fmt.Fprintln(out, "no changes recorded")
			return nil
		}
		for _, unit := range resp.Changes {
			fmt.Fprintf(out, "%s  %-10s  %s\n", unit.StartTime.Format("2006-01-02 15:04:05"), unit.Status, unit.Label)
			for _, action := range unit.Actions {
				outcome := "ok"
				if !action.Success {
					outcome = fmt.Sprintf("failed (exit %d)", action.ExitCode)
				}
				fmt.Fprintf(out, "    %s: %s\n", action.Command, outcome)
			}
		}
		return nil
	},
}

func init() {
	changesCmd.Flags().IntVar(&changesLimit, "limit", 20, "maximum number of change units to list")
}
