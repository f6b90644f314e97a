// Package changelog is the SQLite-backed relational record of ChangeUnits
// and their child ChangeActions: WAL mode, foreign keys on, one transaction
// per unit (spec.md §4.7).
package changelog

import "time"

// Status is a ChangeUnit's lifecycle state.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusSuccess    Status = "success"
	StatusPartial    Status = "partial"
	StatusFailed     Status = "failed"
	StatusRolledBack Status = "rolled_back"
)

// ChangeAction is one command run as part of realising a ChangeUnit.
type ChangeAction struct {
	ID           string
	Seq          int
	Command      string
	ExitCode     int
	Success      bool
	EvidenceKind string
	Summary      string
	RanAt        time.Time
}

// ChangeUnit is the logical grouping of actions that realise a single user
// intent (spec.md §3). Persisted as one row with child change_actions.
type ChangeUnit struct {
	ID        string
	Label     string
	Request   string
	Status    Status
	StartTime time.Time
	EndTime   *time.Time
	Actions   []ChangeAction
}
