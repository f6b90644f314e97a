package answer

import (
	"github.com/jjgarcianorway/anna/pkg/evidence"
	"github.com/jjgarcianorway/anna/pkg/policy"
)

// signals are the four [0,1] reliability inputs spec.md §4.4 names.
type signals struct {
	probeCoverage     float64
	answerGrounded    bool
	noInvention       bool
	clarificationFree bool
}

// computeSignals derives the four signals from a session's final state.
// askedMentorAtEnd is true when synthesis ended with an AskMentor action
// rather than a direct Synthesize/CorrectAnswer. evidenceByID resolves an
// "E<n>" ref to its classified Kind, so probe coverage only counts
// non-Unknown evidence (spec.md §4.4: "at least one Positive or Negative
// (non-Unknown) evidence item").
func computeSignals(subs []Subproblem, citedIDs []string, knownIDs map[string]bool, evidenceByID map[string]evidence.Item, askedMentorAtEnd bool) signals {
	if len(subs) == 0 {
		return signals{probeCoverage: 0, answerGrounded: true, noInvention: true, clarificationFree: !askedMentorAtEnd}
	}

	grounded := 0
	for _, s := range subs {
		if s.Status == SubproblemSolved || hasNonUnknownEvidence(s, evidenceByID) {
			grounded++
		}
	}

	noInvention := true
	for _, id := range citedIDs {
		if !knownIDs[id] {
			noInvention = false
			break
		}
	}

	return signals{
		probeCoverage:     float64(grounded) / float64(len(subs)),
		answerGrounded:    len(citedIDs) > 0 || len(subs) == 0,
		noInvention:       noInvention,
		clarificationFree: !askedMentorAtEnd,
	}
}

func hasNonUnknownEvidence(s Subproblem, evidenceByID map[string]evidence.Item) bool {
	for _, id := range s.EvidenceIDs {
		if item, ok := evidenceByID[id]; ok && item.Kind != evidence.Unknown {
			return true
		}
	}
	return false
}

// score combines the four weighted signals per spec.md §4.4, then applies
// the Senior bonus/penalty: +0.1 (capped at 1.0) if the Senior reviewed and
// approved, or ×0.6 if the Senior was unavailable for the whole session.
func score(w policy.Weights, sig signals, seniorApproved, seniorAvailable bool) float64 {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}

	s := w.ProbeCoverage*sig.probeCoverage +
		w.AnswerGrounded*b(sig.answerGrounded) +
		w.NoInvention*b(sig.noInvention) +
		w.ClarificationBonus*b(sig.clarificationFree)

	if seniorApproved {
		s += 0.1
	}
	if s > 1.0 {
		s = 1.0
	}
	if !seniorAvailable {
		s *= 0.6
	}
	return s
}

// capIfAllUnknown enforces the edge case: when every remaining sub-problem
// has only Unknown evidence, synthesis is still allowed but reliability is
// capped at Low (spec.md §4.4).
func capIfAllUnknown(subs []Subproblem, evidenceByID map[string]evidence.Item, s float64) float64 {
	allUnknown := true
	any := false
	for _, sub := range subs {
		for _, id := range sub.EvidenceIDs {
			any = true
			if item, ok := evidenceByID[id]; ok && item.Kind != evidence.Unknown {
				allUnknown = false
			}
		}
	}
	if any && allUnknown && s >= 0.4 {
		return 0.39
	}
	return s
}
