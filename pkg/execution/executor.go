package execution

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jjgarcianorway/anna/pkg/evidence"
	"github.com/jjgarcianorway/anna/pkg/planner"
	"github.com/jjgarcianorway/anna/pkg/probe"
)

// Redactor is the subset of *masking.Redactor the executor depends on.
type Redactor interface {
	Redact(string) string
}

// Executor runs CommandPlans built by pkg/planner. Ported from
// executor_core.rs::execute_plan: policy re-check, safety-level refusal,
// per-command tool-availability check, sequential execution with optional
// fallbacks, evidence classification on every result.
type Executor struct {
	inventory probe.ToolInventory
	redactor  Redactor
	idSeq     func() string
}

// NewExecutor builds an Executor bound to a detected ToolInventory.
func NewExecutor(inventory probe.ToolInventory, redactor Redactor) *Executor {
	counter := 0
	return &Executor{
		inventory: inventory,
		redactor:  redactor,
		idSeq: func() string {
			counter++
			return "cmd-ev-" + strconv.Itoa(counter)
		},
	}
}

// Run executes plan and returns the full ExecutionResult. It never spawns a
// process for a plan that isn't allowed or is marked Risky.
func (e *Executor) Run(ctx context.Context, plan planner.CommandPlan) (ExecutionResult, error) {
	start := time.Now()

	if !plan.Decision.Allowed {
		return ExecutionResult{}, &PolicyDenialError{MatchedRules: plan.Decision.MatchedRules, Notes: plan.Decision.Notes}
	}
	if plan.SafetyLevel == planner.SafetyRisky {
		return ExecutionResult{}, ErrRiskyPlan
	}

	var rollback *RollbackPlan
	if plan.Destructive() {
		rollback = e.captureRollback(plan)
	}

	results := make([]CommandResult, 0, len(plan.Commands))
	allSuccess := true

	for _, cmd := range plan.Commands {
		result := e.runOne(ctx, cmd)
		if !result.Success {
			allSuccess = false
		}
		results = append(results, result)
	}

	if !allSuccess {
		for _, fb := range plan.Fallbacks {
			if !e.toolsAvailable(fb.RequiresTools) {
				continue
			}
			results = append(results, e.runOne(ctx, fb))
		}
	}

	return ExecutionResult{
		Plan:            plan,
		CommandResults:  results,
		Success:         allSuccess,
		ExecutionTimeMs: time.Since(start).Milliseconds(),
		Rollback:        rollback,
	}, nil
}

func (e *Executor) toolsAvailable(tools []string) bool {
	for _, t := range tools {
		if !e.inventory.HasTool(t) {
			return false
		}
	}
	return true
}

func (e *Executor) runOne(ctx context.Context, cmd planner.PlannedCommand) CommandResult {
	full := formatCommand(cmd)

	var missing []string
	for _, tool := range cmd.RequiresTools {
		if !e.inventory.HasTool(tool) {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("required tools not found: %s", strings.Join(missing, ", "))
		return CommandResult{
			Command:     cmd,
			FullCommand: full,
			ExitCode:    -1,
			Stderr:      msg,
			Success:     false,
			Evidence: evidence.Item{
				ID:            e.idSeq(),
				Command:       full,
				ExitCode:      -1,
				StderrSnippet: msg,
				Summary:       "tool not available",
				Kind:          evidence.Unknown,
			},
		}
	}

	start := time.Now()
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()
	durationMs := time.Since(start).Milliseconds()

	exitCode := 0
	success := err == nil
	if err != nil {
		success = false
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	maskedStderr := e.redactor.Redact(stderr.String())
	ev := evidence.Classify(evidence.Result{
		FullCommand: full,
		CommandName: cmd.Program,
		ExitCode:    exitCode,
		Stdout:      stdout.String(),
		Stderr:      maskedStderr,
		Success:     success,
	}, e.idSeq())

	return CommandResult{
		Command:     cmd,
		FullCommand: full,
		ExitCode:    exitCode,
		Stdout:      stdout.String(),
		Stderr:      maskedStderr,
		Success:     success,
		DurationMs:  durationMs,
		Evidence:    ev,
	}
}

// captureRollback snapshots pre-execution checksums of every file a
// destructive command declares it will write, per spec.md §3's RollbackPlan.
func (e *Executor) captureRollback(plan planner.CommandPlan) *RollbackPlan {
	checksums := make(map[string]string)
	for _, cmd := range plan.Commands {
		for _, path := range cmd.WritesFiles {
			if sum, err := checksumFile(path); err == nil {
				checksums[path] = sum
			}
		}
	}
	return &RollbackPlan{
		ID:            "rb-" + strconv.FormatInt(time.Now().UnixNano(), 36),
		Description:   "pre-execution snapshot for " + plan.Label,
		FileChecksums: checksums,
		CreatedAt:     time.Now(),
	}
}

func checksumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func formatCommand(cmd planner.PlannedCommand) string {
	if len(cmd.Args) == 0 {
		return cmd.Program
	}
	return cmd.Program + " " + strings.Join(cmd.Args, " ")
}
