package fallback

import (
	"fmt"

	"github.com/jjgarcianorway/anna/pkg/evidence"
	"github.com/jjgarcianorway/anna/pkg/policy"
)

// Answer is the deterministic answerer's result: an ungrounded-free answer
// scored with the standard reliability signals.
type Answer struct {
	Text        string
	Reliability float64
	Label       ReliabilityLabel
	ProbeIDs    []string
	EvidenceIDs []string
}

// ReliabilityLabel mirrors the answer engine's tier derivation (spec.md:
// "High ≥ 0.9, Medium ≥ 0.7, Low ≥ 0.4, else VeryLow").
type ReliabilityLabel string

const (
	LabelHigh    ReliabilityLabel = "High"
	LabelMedium  ReliabilityLabel = "Medium"
	LabelLow     ReliabilityLabel = "Low"
	LabelVeryLow ReliabilityLabel = "VeryLow"
)

// LabelFor derives a ReliabilityLabel from a numeric score.
func LabelFor(score float64) ReliabilityLabel {
	switch {
	case score >= 0.9:
		return LabelHigh
	case score >= 0.7:
		return LabelMedium
	case score >= 0.4:
		return LabelLow
	default:
		return LabelVeryLow
	}
}

// Answer classifies query, finds the matching evidence item among items
// (the output of having already run the class's required probe), and
// formats a short markdown answer. Returns false for ClassUnknown or when
// the required probe's evidence is missing or itself Unknown/Negative in a
// way that carries no answerable content.
//
// The score uses the same four weighted signals the LLM-driven answer
// engine uses (policy.Weights); because this answerer never invents
// content beyond what the probe reported, no_invention and answer_grounded
// are always 1.0, landing the score around 0.80 with default weights.
func Answer(query string, byProbeID map[string]evidence.Item, weights policy.Weights) (Answer, bool) {
	class := Classify(query)
	if class == ClassUnknown {
		return Answer{}, false
	}

	probeID := RequiredProbeID(class)
	item, ok := byProbeID[probeID]
	if !ok || item.Kind == evidence.Unknown {
		return Answer{}, false
	}

	text := formatAnswer(class, item)
	if text == "" {
		return Answer{}, false
	}

	score := score(weights, item.Kind)
	return Answer{
		Text:        text,
		Reliability: score,
		Label:       LabelFor(score),
		ProbeIDs:    []string{probeID},
		EvidenceIDs: []string{item.ID},
	}, true
}

// score computes the weighted reliability signal the way the answer engine
// would for a fully grounded, non-invented answer: probe_coverage=1 (the
// probe ran), answer_grounded=1, no_invention=1, and no clarification bonus
// since the deterministic path never asks one.
func score(w policy.Weights, kind evidence.Kind) float64 {
	probeCoverage := 1.0
	if kind == evidence.Conflicting {
		probeCoverage = 0.5
	}
	return w.ProbeCoverage*probeCoverage + w.AnswerGrounded*1.0 + w.NoInvention*1.0 + w.ClarificationBonus*0.0
}

func formatAnswer(class QueryClass, item evidence.Item) string {
	if item.Kind == evidence.Negative {
		return fmt.Sprintf("**%s**: %s", classLabel(class), item.Summary)
	}
	if item.Summary == "" {
		return ""
	}
	return fmt.Sprintf("**%s**:\n\n```\n%s\n```", classLabel(class), item.Summary)
}

func classLabel(class QueryClass) string {
	switch class {
	case ClassCPUInfo:
		return "CPU"
	case ClassRAMInfo:
		return "Memory"
	case ClassGPUInfo:
		return "GPU"
	case ClassTopMemoryProcesses:
		return "Top memory consumers"
	case ClassDiskSpace:
		return "Disk space"
	case ClassNetworkInterfaces:
		return "Network interfaces"
	default:
		return "Answer"
	}
}
