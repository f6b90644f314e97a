package policy

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// document is the on-disk shape of the policy file (spec.md §6: "Persisted as
// a single document (TOML or equivalent) holding version, a list of rules,
// and for models an auxiliary [global]/[translator]/[junior]/[weights]
// block. Unknown fields are tolerated at load time; unknown rule actions are
// rejected.").
type document struct {
	Version uint32       `toml:"version"`
	Rules   []ruleRecord `toml:"rules"`
	Models  ModelPolicy  `toml:"models"`
}

// ruleRecord is the wire shape of a Rule: risk level and action are stored as
// names, not the numeric/typed Go representation.
type ruleRecord struct {
	ID          string    `toml:"id"`
	Description string    `toml:"description"`
	Domain      string    `toml:"domain"`
	MaxRisk     string    `toml:"max_risk"`
	PathGlobs   []string  `toml:"path_globs,omitempty"`
	Tags        []string  `toml:"tags,omitempty"`
	Action      string    `toml:"action"`
	CreatedAt   time.Time `toml:"created_at"`
	SourceKind  string    `toml:"source_kind"`
	SourceText  string    `toml:"source_text,omitempty"`
}

// ModelPolicy holds the per-role model budget block from spec.md §6,
// recovered from original_source/crates/anna_common/src/model_policy.rs.
type ModelPolicy struct {
	Global     RoleBudget `toml:"global"`
	Translator RoleBudget `toml:"translator"`
	Junior     RoleBudget `toml:"junior"`
	Weights    Weights    `toml:"weights"`
}

// RoleBudget bounds a single LLM role's request shape.
type RoleBudget struct {
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	TimeoutMs   int     `toml:"timeout_ms"`
}

// Weights are the reliability-signal weights the answer engine reads
// (spec.md §4.4 scoring); kept alongside policy because both are
// operator-tunable knobs in the same document.
type Weights struct {
	ProbeCoverage      float64 `toml:"probe_coverage"`
	AnswerGrounded     float64 `toml:"answer_grounded"`
	NoInvention        float64 `toml:"no_invention"`
	ClarificationBonus float64 `toml:"clarification_not_needed"`
}

// DefaultModelPolicy returns sane per-role defaults.
func DefaultModelPolicy() ModelPolicy {
	return ModelPolicy{
		Global:     RoleBudget{MaxTokens: 2048, Temperature: 0.2, TimeoutMs: 30000},
		Translator: RoleBudget{MaxTokens: 1024, Temperature: 0.1, TimeoutMs: 20000},
		Junior:     RoleBudget{MaxTokens: 1536, Temperature: 0.3, TimeoutMs: 25000},
		Weights: Weights{
			ProbeCoverage:      0.25,
			AnswerGrounded:     0.25,
			NoInvention:        0.25,
			ClarificationBonus: 0.25,
		},
	}
}

// Load reads and validates a policy document from path. Unknown top-level
// fields are tolerated (go-toml/v2 ignores them by default); an unknown rule
// action or risk level is a hard load-time error, never deferred to
// evaluation.
func Load(path string) (*Set, ModelPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ModelPolicy{}, &LoadError{File: path, Err: err}
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, ModelPolicy{}, &LoadError{File: path, Err: err}
	}

	set := &Set{Version: doc.Version}
	for _, rr := range doc.Rules {
		rule, err := rr.toRule()
		if err != nil {
			return nil, ModelPolicy{}, &LoadError{File: path, RuleID: rr.ID, Err: err}
		}
		set.Rules = append(set.Rules, rule)
	}

	return set, doc.Models, nil
}

// Save writes set and models to path as TOML, overwriting any existing file.
func Save(path string, set *Set, models ModelPolicy) error {
	doc := document{Version: set.Version, Models: models}
	for _, r := range set.Rules {
		doc.Rules = append(doc.Rules, fromRule(r))
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("policy: marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (rr ruleRecord) toRule() (Rule, error) {
	risk, err := parseRiskLevel(rr.MaxRisk)
	if err != nil {
		return Rule{}, err
	}
	domain := Domain(rr.Domain)
	if !domain.IsValid() {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownDomain, rr.Domain)
	}
	action := Action(rr.Action)
	if !action.IsValid() {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownAction, rr.Action)
	}

	return Rule{
		ID:          rr.ID,
		Description: rr.Description,
		Domain:      domain,
		MaxRisk:     risk,
		PathGlobs:   rr.PathGlobs,
		Tags:        rr.Tags,
		Action:      action,
		CreatedAt:   rr.CreatedAt,
		Source:      Source{Kind: SourceKind(rr.SourceKind), Text: rr.SourceText},
	}, nil
}

func fromRule(r Rule) ruleRecord {
	return ruleRecord{
		ID:          r.ID,
		Description: r.Description,
		Domain:      string(r.Domain),
		MaxRisk:     r.MaxRisk.String(),
		PathGlobs:   r.PathGlobs,
		Tags:        r.Tags,
		Action:      string(r.Action),
		CreatedAt:   r.CreatedAt,
		SourceKind:  string(r.Source.Kind),
		SourceText:  r.Source.Text,
	}
}

func parseRiskLevel(name string) (RiskLevel, error) {
	switch name {
	case "Safe":
		return RiskSafe, nil
	case "Moderate":
		return RiskModerate, nil
	case "High":
		return RiskHigh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRiskLevel, name)
	}
}
