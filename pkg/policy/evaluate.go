package policy

import (
	"fmt"
	"sort"
	"strings"
)

// Evaluate decides whether action is allowed, requires confirmation, or is
// denied under set. Evaluation is pure and total: the same (set, action) pair
// always yields the same Decision (spec.md §8 round-trip property).
//
// Ported from the Rust reference implementation's evaluate_plan_against_policy
// (crates/anna_common/src/policy_engine.rs): collect matching rules, sort by
// specificity (most specific first), then fold outcomes in that order with an
// early return on the first Deny.
func Evaluate(set *Set, action PlannedAction) Decision {
	decision := Decision{
		Allowed:          true,
		EffectiveRiskCap: RiskHigh,
	}

	matching := matchingRules(set, action)
	sort.SliceStable(matching, func(i, j int) bool {
		return specificity(&matching[i]) > specificity(&matching[j])
	})

	for i := range matching {
		rule := &matching[i]
		decision.MatchedRules = append(decision.MatchedRules, rule.ID)

		if rule.HasPathsOrTags() {
			if applyUnconditional(&decision, rule) {
				return decision
			}
		} else if rule.Domain == DomainGeneral {
			if action.RiskLevel > rule.MaxRisk {
				if applyRiskGated(&decision, rule, action.RiskLevel) {
					return decision
				}
			}
		} else {
			if action.RiskLevel <= rule.MaxRisk {
				if applyRiskGated(&decision, rule, action.RiskLevel) {
					return decision
				}
			}
		}

		if rule.MaxRisk < decision.EffectiveRiskCap {
			decision.EffectiveRiskCap = rule.MaxRisk
		}
	}

	return decision
}

// applyUnconditional applies a path/tag-specific rule's action regardless of
// risk level ("never touch SSH config" style). Returns true if evaluation
// should stop immediately (a Deny was hit).
func applyUnconditional(d *Decision, rule *Rule) bool {
	switch rule.Action {
	case ActionDeny:
		d.Allowed = false
		d.Notes = append(d.Notes, fmt.Sprintf("Denied by rule %s: %q", rule.ID, rule.Description))
		return true
	case ActionRequireStrongConfirm:
		d.RequireStrongConfirm = true
		d.Notes = append(d.Notes, fmt.Sprintf("Strong confirmation required by rule %s: %q", rule.ID, rule.Description))
	case ActionRequireConfirm:
		d.RequireConfirm = true
		d.Notes = append(d.Notes, fmt.Sprintf("Confirmation required by rule %s: %q", rule.ID, rule.Description))
	case ActionAllow:
		d.Notes = append(d.Notes, fmt.Sprintf("Allowed by rule %s: %q", rule.ID, rule.Description))
	}
	return false
}

// applyRiskGated applies a domain-wide (no path/tag) risk-cap rule once it has
// already been determined to be in scope for the action's risk level.
func applyRiskGated(d *Decision, rule *Rule, risk RiskLevel) bool {
	switch rule.Action {
	case ActionDeny:
		d.Allowed = false
		d.Notes = append(d.Notes, fmt.Sprintf(
			"Denied by rule %s: %q (risk %s vs max %s)", rule.ID, rule.Description, risk, rule.MaxRisk))
		return true
	case ActionRequireStrongConfirm:
		d.RequireStrongConfirm = true
		d.Notes = append(d.Notes, fmt.Sprintf(
			"Strong confirmation required by rule %s: %q (risk %s vs max %s)", rule.ID, rule.Description, risk, rule.MaxRisk))
	case ActionRequireConfirm:
		d.RequireConfirm = true
		d.Notes = append(d.Notes, fmt.Sprintf(
			"Confirmation required by rule %s: %q (risk %s vs max %s)", rule.ID, rule.Description, risk, rule.MaxRisk))
	case ActionAllow:
		d.Notes = append(d.Notes, fmt.Sprintf("Allowed by rule %s: %q", rule.ID, rule.Description))
	}
	return false
}

// matchingRules filters set.Rules down to rules that could apply to action:
// domain must match (or be General), and then either the path globs match,
// the tags match, or the rule has neither (a bare domain/risk rule).
func matchingRules(set *Set, action PlannedAction) []Rule {
	var out []Rule
	for _, rule := range set.Rules {
		if rule.Domain != DomainGeneral && rule.Domain != action.Domain {
			continue
		}

		if len(rule.PathGlobs) > 0 && pathsMatch(action.TargetPaths, rule.PathGlobs) {
			out = append(out, rule)
			continue
		}
		if len(rule.Tags) > 0 && tagsMatch(action.Tags, rule.Tags) {
			out = append(out, rule)
			continue
		}
		if len(rule.PathGlobs) == 0 && len(rule.Tags) == 0 {
			out = append(out, rule)
		}
	}
	return out
}

func pathsMatch(paths, globs []string) bool {
	for _, p := range paths {
		for _, g := range globs {
			if MatchGlob(p, g) {
				return true
			}
		}
	}
	return false
}

func tagsMatch(actionTags, ruleTags []string) bool {
	for _, t := range actionTags {
		for _, rt := range ruleTags {
			if strings.EqualFold(t, rt) {
				return true
			}
		}
	}
	return false
}

// specificity ranks rules so the most specific apply first. Weights mirror
// the Rust reference: 100 per path glob, 10 per tag, 5 for a non-General
// domain, 1000 for a Deny action.
func specificity(r *Rule) int {
	score := len(r.PathGlobs)*100 + len(r.Tags)*10
	if r.Domain != DomainGeneral {
		score += 5
	}
	if r.Action == ActionDeny {
		score += 1000
	}
	return score
}

// MatchGlob implements the restricted glob grammar from spec.md §4.5: a
// literal match, or a path ending in "/*" matching any path with that prefix
// (note: "/etc/*" matches "/etc/ssh/sshd_config" but NOT "/etc" itself,
// because there is no trailing slash to anchor the prefix match against).
func MatchGlob(path, glob string) bool {
	if strings.HasSuffix(glob, "/*") {
		prefix := strings.TrimSuffix(glob, "/*")
		return strings.HasPrefix(path, prefix+"/")
	}
	return path == glob
}
