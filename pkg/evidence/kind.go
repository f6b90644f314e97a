// Package evidence classifies raw probe/command output into a four-valued
// kind so the rest of the system never confuses "the system says no" with
// "we could not determine" (spec.md §4.2).
package evidence

// Kind is the classification of a single command execution's result.
type Kind string

const (
	// Positive: the command succeeded and its output clearly supports a fact.
	Positive Kind = "positive"
	// Negative: the command succeeded (or exited in a well-understood
	// "not found" way) and clearly refutes a fact.
	Negative Kind = "negative"
	// Unknown: the command failed in a way that doesn't encode a clear
	// negative — OS error, missing tool, timeout, corruption.
	Unknown Kind = "unknown"
	// Conflicting: two or more items about the same fact disagree. Only the
	// answer engine produces this, never the classifier (spec.md §4.2 rule 6).
	Conflicting Kind = "conflicting"
)

// Item is an immutable record of one probe/command execution. Once
// constructed it never mutates (spec.md §3 EvidenceItem invariant).
type Item struct {
	ID            string
	Command       string
	ExitCode      int
	StderrSnippet string
	Summary       string
	Kind          Kind
}

const stderrSnippetCap = 200

// TruncateStderr caps a stderr string at the same 200-byte snippet length the
// classifier and journal use for display.
func TruncateStderr(stderr string) string {
	if len(stderr) <= stderrSnippetCap {
		return stderr
	}
	return stderr[:stderrSnippetCap] + "..."
}
