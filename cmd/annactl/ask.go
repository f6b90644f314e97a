package main

import (
	"fmt"
	"strings"

	"github.com/jjgarcianorway/anna/pkg/answer"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question and get an evidence-grounded answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		var result answer.FinalAnswer
		if err := newAPIClient(serverAddr).post("/v1/ask", map[string]string{"query": query}, &result); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, result.Text)
		fmt.Fprintf(out, "\n[%s, reliability %.2f, %d/%d subproblems, %d iterations]\n",
			result.Label, result.Reliability, result.SubproblemsSolved, result.SubproblemsTotal, result.IterationCount)
		if result.Partial {
			fmt.Fprintln(out, "(partial answer)")
		}
		return nil
	},
}
