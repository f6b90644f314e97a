package policy

import (
	"errors"
	"fmt"
)

// ErrUnknownAction indicates a rule action that doesn't match any declared
// Action constant. Unknown actions are rejected at load time, never at
// evaluation time (spec.md §4.5 failure semantics).
var ErrUnknownAction = errors.New("policy: unknown rule action")

// ErrUnknownRiskLevel indicates a rule's max_risk name doesn't match Safe,
// Moderate, or High.
var ErrUnknownRiskLevel = errors.New("policy: unknown risk level")

// ErrUnknownDomain indicates a rule's domain doesn't match a declared Domain.
var ErrUnknownDomain = errors.New("policy: unknown domain")

// LoadError wraps a failure to load or validate a persisted PolicySet,
// naming the file and the offending rule so a human can fix it (spec.md §7:
// "every hard error includes the rule ids... that let a human reproduce the
// decision").
type LoadError struct {
	File   string
	RuleID string
	Err    error
}

func (e *LoadError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("policy: load %s: rule %s: %v", e.File, e.RuleID, e.Err)
	}
	return fmt.Sprintf("policy: load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
