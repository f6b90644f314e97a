package evidence

import (
	"fmt"
	"strings"
)

// Result is the raw shape the classifier consumes: one command's execution
// outcome before it is reduced to an Item.
type Result struct {
	FullCommand string
	CommandName string
	ExitCode    int
	Stdout      string
	Stderr      string
	Success     bool
}

// Classify turns a raw command Result into an Item, deciding Positive,
// Negative, or Unknown. It never produces Conflicting — that kind is only
// assigned by the answer engine when it reconciles multiple items about the
// same fact (spec.md §4.2).
//
// Ported rule-for-rule from executor_core.rs::classify_evidence.
func Classify(r Result, id string) Item {
	kind := classifyKind(r)
	return Item{
		ID:            id,
		Command:       r.FullCommand,
		ExitCode:      r.ExitCode,
		StderrSnippet: TruncateStderr(r.Stderr),
		Summary:       summarize(kind, r),
		Kind:          kind,
	}
}

func classifyKind(r Result) Kind {
	switch {
	case !r.Success:
		if isClearNegative(r.ExitCode, r.Stderr, r.CommandName) {
			return Negative
		}
		return Unknown
	case strings.TrimSpace(r.Stdout) == "" && strings.TrimSpace(r.Stderr) == "":
		return Negative
	default:
		// Non-empty stdout, or success with only stderr output: both count as
		// positive evidence (the command ran and produced something).
		return Positive
	}
}

// isClearNegative decides whether a non-zero exit encodes a well-understood
// "not found" rather than an opaque system error. Only a narrow, named set
// of tool/exit-code/stderr combinations qualify; everything else is Unknown
// so the answer engine never mistakes "I couldn't check" for "no".
func isClearNegative(exitCode int, stderr, commandName string) bool {
	if commandName == "pacman" && exitCode == 1 {
		if strings.Contains(stderr, "error: package") && strings.Contains(stderr, "was not found") {
			return true
		}
		if strings.Contains(stderr, "error: target not found") {
			return true
		}
	}

	if commandName == "grep" && exitCode == 1 && stderr == "" {
		return true
	}

	switch {
	case strings.Contains(stderr, "No such file or directory"):
		return false
	case strings.Contains(stderr, "Permission denied"):
		return false
	case strings.Contains(stderr, "could not open database"):
		return false
	case strings.Contains(stderr, "failed to initialize"):
		return false
	}

	return false
}

// summaryStdoutCap bounds how much of stdout's first line rides along in the
// one-line Positive summary, keeping the "one summary line" invariant while
// still carrying enough of the probe's actual output for direct-answer
// formatting (spec.md §9 scenarios 1-2 require the summary to contain the
// literal figures a probe reported, not just a line count).
const summaryStdoutCap = 160

func summarize(kind Kind, r Result) string {
	switch kind {
	case Positive:
		excerpt := firstLine(r.Stdout)
		lines := countLines(r.Stdout)
		if excerpt == "" {
			return fmt.Sprintf("success from %s", r.CommandName)
		}
		if lines > 1 {
			return fmt.Sprintf("%s (+%d more lines)", excerpt, lines-1)
		}
		return excerpt
	case Negative:
		return fmt.Sprintf("no matches/results from %s", r.CommandName)
	case Unknown:
		if r.Stderr != "" {
			snippet := r.Stderr
			if len(snippet) > 100 {
				snippet = snippet[:100]
			}
			return fmt.Sprintf("error from %s: %s", r.CommandName, snippet)
		}
		return fmt.Sprintf("failed with no clear error from %s", r.CommandName)
	default:
		return "conflicting results from multiple commands"
	}
}

func countLines(s string) int {
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "\n") + 1
}

// firstLine returns stdout's first non-empty line, capped at
// summaryStdoutCap bytes.
func firstLine(stdout string) string {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if len(trimmed) > summaryStdoutCap {
		return trimmed[:summaryStdoutCap] + "..."
	}
	return trimmed
}
