// Package answer drives the decomposition-work-synthesis loop (spec.md
// §4.4), coordinating probes, the Junior/Senior LLM roles, and the
// deterministic fallback into one bounded-budget FinalAnswer. The iteration
// shape is grounded on tarsy's ReActController.Run
// (pkg/agent/controller/react.go): a for loop up to a configured iteration
// cap, one LLM call per iteration, state recorded as it goes, and a forced
// conclusion when the cap is hit.
package answer

import (
	"time"

	"github.com/jjgarcianorway/anna/pkg/evidence"
)

// SubproblemStatus is where a sub-problem sits in the Working phase.
type SubproblemStatus string

const (
	SubproblemPending    SubproblemStatus = "pending"
	SubproblemWorking    SubproblemStatus = "working"
	SubproblemSolved     SubproblemStatus = "solved"
	SubproblemUnresolved SubproblemStatus = "unresolved"
)

// Subproblem is one decomposed piece of the original question.
type Subproblem struct {
	ID              string
	Description     string
	CandidateProbes []string
	Status          SubproblemStatus
	ProbeHistory    []string
	EvidenceIDs     []string
	PartialAnswer   string
	Confidence      float64
}

// AnswerSession owns everything in flight for one question (spec.md §3).
// Created by the engine, destroyed once a FinalAnswer is emitted.
type AnswerSession struct {
	Query           string
	Subproblems     []Subproblem
	Evidence        []evidence.Item
	Iteration       int
	SeniorConsulted bool
	SeniorAvailable bool
	StartTime       time.Time
}

// ReliabilityLabel mirrors the spec's four-tier bucket.
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

// FinalAnswer is the immutable result of an AnswerSession.
type FinalAnswer struct {
	Text              string
	Reliability       float64
	Label             ReliabilityLabel
	EvidenceRefs      []string
	ProbeIDs          []string
	SubproblemsSolved int
	SubproblemsTotal  int
	IterationCount    int
	Partial           bool
}
