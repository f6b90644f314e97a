package execution

import (
	"errors"
	"fmt"
)

// ErrPolicyDenied is returned when the executor re-checks a plan's attached
// PolicyDecision at entry and finds it not allowed. No process is spawned.
var ErrPolicyDenied = errors.New("execution: policy denied")

// ErrRiskyPlan is returned when a plan's declared SafetyLevel is Risky.
// Refused unconditionally (spec.md §3 CommandPlan invariant).
var ErrRiskyPlan = errors.New("execution: refusing risky plan")

// PolicyDenialError carries the matched rule ids so a human can reproduce
// the denial (spec.md §7).
type PolicyDenialError struct {
	MatchedRules []string
	Notes        []string
}

func (e *PolicyDenialError) Error() string {
	return fmt.Sprintf("%v: rules %v: %v", ErrPolicyDenied, e.MatchedRules, e.Notes)
}

func (e *PolicyDenialError) Unwrap() error { return ErrPolicyDenied }
