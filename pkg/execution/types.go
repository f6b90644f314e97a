// Package execution runs a planner.CommandPlan against the real host,
// re-checking policy immediately before anything is spawned, and produces
// an auditable ExecutionResult plus, for destructive commands, a
// RollbackPlan captured before the command runs.
package execution

import (
	"time"

	"github.com/jjgarcianorway/anna/pkg/evidence"
	"github.com/jjgarcianorway/anna/pkg/planner"
)

// CommandResult is the outcome of running one PlannedCommand.
type CommandResult struct {
	Command     planner.PlannedCommand
	FullCommand string
	ExitCode    int
	Stdout      string
	Stderr      string
	Success     bool
	DurationMs  int64
	Evidence    evidence.Item
}

// ExecutionResult is the outcome of running an entire CommandPlan.
type ExecutionResult struct {
	Plan            planner.CommandPlan
	CommandResults  []CommandResult
	Success         bool
	ExecutionTimeMs int64
	Rollback        *RollbackPlan
}

// RollbackPlan is declared before a destructive command runs and never
// deleted afterward (spec.md §3: "Lifecycle: created with the
// ExecutionResult, never deleted (audit-retained)").
type RollbackPlan struct {
	ID               string
	Description      string
	Commands         []planner.PlannedCommand
	FileChecksums    map[string]string
	EstimatedSeconds int
	CreatedAt        time.Time
}
