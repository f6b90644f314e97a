// Package anna is the embedding API that wires the Evidence-Grounded Answer
// Engine, the Policy-Gated Execution core, the change log, and the decision
// journal into the four operations annad and annactl actually call: Ask,
// Evaluate, Execute, RecentChanges. Grounded on the way tarsy's
// pkg/services package composes narrower packages (session, interaction,
// chat) behind one service facade rather than letting cmd/ reach into each
// package directly.
package anna

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jjgarcianorway/anna/pkg/answer"
	"github.com/jjgarcianorway/anna/pkg/changelog"
	"github.com/jjgarcianorway/anna/pkg/execution"
	"github.com/jjgarcianorway/anna/pkg/journal"
	"github.com/jjgarcianorway/anna/pkg/planner"
	"github.com/jjgarcianorway/anna/pkg/policy"
	"github.com/jjgarcianorway/anna/pkg/probe"
)

// Agent is the long-lived object annad constructs once at startup and holds
// for the life of the process; every request handler runs through it.
type Agent struct {
	Answer    *answer.Engine
	Policy    *policy.Set
	Models    policy.ModelPolicy
	Catalog   *probe.Catalog
	Executor  *execution.Executor
	Changelog *changelog.Store
	Journal   *journal.Journal
}

// Ask runs the full Answer Engine loop for query and records the outcome in
// the decision journal. A non-nil error means the engine itself failed
// (e.g. a bug in the oracle wiring), not that the question was unanswerable
// — an unanswerable question still returns a FinalAnswer with a low
// reliability label.
func (a *Agent) Ask(ctx context.Context, query string) (answer.FinalAnswer, error) {
	decisionID := uuid.New().String()

	fa, err := a.Answer.Ask(ctx, query)
	if err != nil {
		a.logDecision(journal.Entry{
			DecisionID: decisionID,
			ActionType: "ask",
			Outcome:    journal.OutcomeFailed,
			Summary:    fmt.Sprintf("ask failed: %v", err),
		})
		return answer.FinalAnswer{}, err
	}

	a.logDecision(journal.Entry{
		DecisionID:       decisionID,
		ActionType:       "ask",
		Outcome:          journal.OutcomeAnswered,
		ReliabilityScore: fa.Reliability,
		Summary:          fmt.Sprintf("answered %q (%d/%d subproblems solved)", query, fa.SubproblemsSolved, fa.SubproblemsTotal),
	})
	return fa, nil
}

// Evaluate runs action through the policy engine and journals the decision.
// It never executes anything — Execute is the only operation with a side
// effect on the host.
func (a *Agent) Evaluate(action policy.PlannedAction) policy.Decision {
	decisionID := uuid.New().String()
	d := policy.Evaluate(a.Policy, action)

	outcome := journal.OutcomeAllowed
	if !d.Allowed {
		outcome = journal.OutcomeDenied
	}
	a.logDecision(journal.Entry{
		DecisionID: decisionID,
		ActionType: "evaluate",
		Outcome:    outcome,
		Confidence: float64(len(d.MatchedRules)),
		Summary:    fmt.Sprintf("domain=%s risk=%s allowed=%v", action.Domain, action.RiskLevel, d.Allowed),
	})
	return d
}

// Execute runs plan, persists a ChangeUnit recording every command that ran,
// and journals the outcome. Execute refuses nothing itself — plan.Decision
// and plan.SafetyLevel were already checked by Build/Evaluate, and
// execution.Executor re-checks both before touching the host.
func (a *Agent) Execute(ctx context.Context, label string, plan planner.CommandPlan) (execution.ExecutionResult, error) {
	decisionID := uuid.New().String()
	start := time.Now()

	result, err := a.Executor.Run(ctx, plan)
	if err != nil {
		a.logDecision(journal.Entry{
			DecisionID: decisionID,
			ActionType: "execute",
			Outcome:    journal.OutcomeDenied,
			Summary:    fmt.Sprintf("execution refused: %v", err),
		})
		return execution.ExecutionResult{}, err
	}

	unit := changeUnitFrom(decisionID, label, start, result)
	if saveErr := a.Changelog.SaveChangeUnit(ctx, unit); saveErr != nil {
		return result, fmt.Errorf("anna: execute: save change unit: %w", saveErr)
	}

	outcome := journal.OutcomeExecuted
	if !result.Success {
		outcome = journal.OutcomeFailed
	}
	a.logDecision(journal.Entry{
		DecisionID: decisionID,
		ActionType: "execute",
		Outcome:    outcome,
		Summary:    fmt.Sprintf("%s: %d commands, success=%v", label, len(result.CommandResults), result.Success),
	})

	return result, nil
}

// RecentChanges returns the most recent ChangeUnits, newest first.
func (a *Agent) RecentChanges(ctx context.Context, limit int) ([]changelog.ChangeUnit, error) {
	return a.Changelog.RecentChangeUnits(ctx, limit)
}

// logDecision appends to the journal and swallows the write error beyond a
// warning: a journal write failure must never fail the user-facing
// operation it is recording.
func (a *Agent) logDecision(e journal.Entry) {
	if a.Journal == nil {
		return
	}
	e.Timestamp = time.Now()
	_ = a.Journal.Append(e)
}

func changeUnitFrom(id, label string, start time.Time, result execution.ExecutionResult) changelog.ChangeUnit {
	end := time.Now()
	status := changelog.StatusSuccess
	if !result.Success {
		status = changelog.StatusPartial
	}

	actions := make([]changelog.ChangeAction, 0, len(result.CommandResults))
	for i, cr := range result.CommandResults {
		actions = append(actions, changelog.ChangeAction{
			ID:           fmt.Sprintf("%s-act-%d", id, i+1),
			Seq:          i + 1,
			Command:      cr.FullCommand,
			ExitCode:     cr.ExitCode,
			Success:      cr.Success,
			EvidenceKind: string(cr.Evidence.Kind),
			Summary:      cr.Evidence.Summary,
			RanAt:        start,
		})
	}

	return changelog.ChangeUnit{
		ID:        id,
		Label:     label,
		Request:   label,
		Status:    status,
		StartTime: start,
		EndTime:   &end,
		Actions:   actions,
	}
}
