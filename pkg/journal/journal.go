// Package journal is the append-only JSONL decision journal: one JournalEntry
// per line, flushed and fsynced on every write, never truncated or rotated
// by the core (spec.md §4.7). The writer/encoder shape is adapted from
// iambrandonn-lorch's internal/ndjson.Encoder + internal/eventlog.EventLog.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EntryOutcome is the terminal disposition recorded for a decision.
type EntryOutcome string

const (
	OutcomeAllowed  EntryOutcome = "allowed"
	OutcomeDenied   EntryOutcome = "denied"
	OutcomeExecuted EntryOutcome = "executed"
	OutcomeFailed   EntryOutcome = "failed"
	OutcomeAnswered EntryOutcome = "answered"
	OutcomeDegraded EntryOutcome = "degraded"
)

// Entry is one line in the decision journal.
type Entry struct {
	Timestamp        time.Time    `json:"timestamp"`
	DecisionID       string       `json:"decision_id"`
	ActionType       string       `json:"action_type"`
	Outcome          EntryOutcome `json:"outcome"`
	ReliabilityScore float64      `json:"reliability_score,omitempty"`
	Confidence       float64      `json:"confidence,omitempty"`
	Summary          string       `json:"summary"`
}

// Journal is a single-writer, append-only JSONL sink. Safe for concurrent
// use; every write is serialised, flushed, and fsynced before returning.
type Journal struct {
	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
}

// Open opens (creating if necessary) the journal file at path in append-only
// mode. The writer never seeks; readers may tail the file independently.
func Open(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}

	return &Journal{
		file: file,
		w:    bufio.NewWriter(file),
	}, nil
}

// Append writes one entry as a single JSON line, flushing and fsyncing
// before returning. Every approved and every denied action produces exactly
// one journal entry before the executor returns (spec.md §4.7 invariant).
func (j *Journal) Append(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("journal: marshal entry %s: %w", e.DecisionID, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.w.Write(data); err != nil {
		return fmt.Errorf("journal: write entry %s: %w", e.DecisionID, err)
	}
	if err := j.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("journal: write newline for %s: %w", e.DecisionID, err)
	}
	if err := j.w.Flush(); err != nil {
		return fmt.Errorf("journal: flush entry %s: %w", e.DecisionID, err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("journal: fsync entry %s: %w", e.DecisionID, err)
	}
	return nil
}

// Close closes the underlying file. The journal is never truncated or
// rotated by the core; rotation is an external collaborator's concern.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
