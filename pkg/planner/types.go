// Package planner turns an intended operation into an executable CommandPlan,
// rejecting anything on the safety blacklist before it can ever reach the
// executor.
package planner

import (
	"time"

	"github.com/jjgarcianorway/anna/pkg/policy"
)

// SafetyLevel is the top-level declared risk of an entire plan.
type SafetyLevel string

const (
	SafetyRoutine SafetyLevel = "routine"
	SafetyCareful SafetyLevel = "careful"
	SafetyRisky   SafetyLevel = "risky"
)

// PlannedCommand is one command within a CommandPlan.
type PlannedCommand struct {
	Program       string
	Args          []string
	RequiresTools []string
	RiskLevel     policy.RiskLevel
	WritesFiles   []string
	RequiresRoot  bool
}

// CommandPlan is an executable unit built by Build. Invariant (spec.md §3):
// a plan with SafetyLevel == Risky is never executed, and a plan whose
// attached PolicyDecision is not Allowed is never executed — both are
// enforced by the executor, not the planner, so a plan can be constructed
// and inspected (e.g. for a confirmation prompt) before any side effect.
type CommandPlan struct {
	Commands    []PlannedCommand
	Fallbacks   []PlannedCommand
	SafetyLevel SafetyLevel
	Decision    policy.Decision
	Label       string
	BuiltAt     time.Time
}

// Destructive reports whether any command in the plan writes files or is
// otherwise irreversible, which the executor uses to decide whether a
// RollbackPlan must be captured before running it.
func (p CommandPlan) Destructive() bool {
	for _, cmd := range p.Commands {
		if len(cmd.WritesFiles) > 0 {
			return true
		}
	}
	return false
}
