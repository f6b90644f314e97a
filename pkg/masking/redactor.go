package masking

import (
	"log/slog"
	"regexp"
)

// Redactor applies a fixed set of compiled patterns to text. Created once at
// daemon startup and shared; stateless and safe for concurrent use aside
// from the read-only compiled pattern slice.
type Redactor struct {
	patterns []compiledPattern
}

// NewRedactor compiles the built-in pattern set. A pattern that fails to
// compile is logged and skipped rather than aborting startup.
func NewRedactor() *Redactor {
	builtin := builtinPatterns()
	r := &Redactor{patterns: make([]compiledPattern, 0, len(builtin))}
	for _, p := range builtin {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			slog.Error("masking: skipping pattern with invalid regex", "pattern", p.Name, "error", err)
			continue
		}
		r.patterns = append(r.patterns, compiledPattern{name: p.Name, regex: re, replacement: p.Replacement})
	}
	return r
}

// Redact runs every compiled pattern over text in order and returns the
// result. Empty input is returned unchanged without allocating.
func (r *Redactor) Redact(text string) string {
	if text == "" {
		return text
	}
	masked := text
	for _, p := range r.patterns {
		masked = p.regex.ReplaceAllString(masked, p.replacement)
	}
	return masked
}
