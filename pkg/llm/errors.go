package llm

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates the LLM host could not be reached at all (dial
// failure, connection refused) as opposed to a malformed response. Callers
// use this to decide whether to retry-with-regeneration or fall back
// entirely (spec.md §4.3).
var ErrUnavailable = errors.New("llm: host unavailable")

// ErrBudgetExceeded indicates a role's configured token/time budget
// (policy.RoleBudget) was exceeded before a response was produced.
var ErrBudgetExceeded = errors.New("llm: role budget exceeded")

// ParseFailure is returned once a response still fails schema validation
// after R_MAX regeneration attempts. It carries the last raw payload so the
// journal can record exactly what the model said.
type ParseFailure struct {
	Raw string
	Err error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("llm: parse failure: %v", e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// RequestError wraps a transport-level failure (timeout, non-2xx status)
// with the role and operation that failed, so a retry loop can log context
// without leaking it into the returned error's message for every caller.
type RequestError struct {
	Role      string
	Operation string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("llm: %s.%s: %v", e.Role, e.Operation, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
