package llm

import (
	"encoding/json"
	"fmt"
)

// wireAction is the single discriminated-union shape every junior.* call
// returns on the wire. Exactly one JSON document, validated against this
// shape; anything else is a ParseFailure (spec.md §4.3: "the client
// validates against a fixed schema and rejects any free-form text").
type wireAction struct {
	Type string `json:"type"`

	Subproblems []SubproblemSeed `json:"subproblems,omitempty"`

	SubproblemID string `json:"subproblem_id,omitempty"`
	ProbeID      string `json:"probe_id,omitempty"`
	Reason       string `json:"reason,omitempty"`

	PartialAnswer string  `json:"partial_answer,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`

	Question     string `json:"question,omitempty"`
	CurrentState string `json:"current_state,omitempty"`

	Text                string             `json:"text,omitempty"`
	SubproblemSummaries []string           `json:"subproblem_summaries,omitempty"`
	Scores              map[string]float64 `json:"scores,omitempty"`
}

func parseJuniorAction(data []byte) (JuniorAction, error) {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &ParseFailure{Raw: string(data), Err: err}
	}

	switch w.Type {
	case "decompose":
		return Decompose{Subproblems: w.Subproblems}, nil
	case "work_subproblem":
		if w.SubproblemID == "" || w.ProbeID == "" {
			return nil, &ParseFailure{Raw: string(data), Err: fmt.Errorf("work_subproblem missing subproblem_id or probe_id")}
		}
		return WorkSubproblem{SubproblemID: w.SubproblemID, ProbeID: w.ProbeID, Reason: w.Reason}, nil
	case "solve_subproblem":
		if w.SubproblemID == "" {
			return nil, &ParseFailure{Raw: string(data), Err: fmt.Errorf("solve_subproblem missing subproblem_id")}
		}
		return SolveSubproblem{SubproblemID: w.SubproblemID, PartialAnswer: w.PartialAnswer, Confidence: w.Confidence}, nil
	case "ask_mentor":
		if w.Question == "" {
			return nil, &ParseFailure{Raw: string(data), Err: fmt.Errorf("ask_mentor missing question")}
		}
		return AskMentor{Question: w.Question, CurrentState: w.CurrentState}, nil
	case "synthesize":
		return Synthesize{Text: w.Text, SubproblemSummaries: w.SubproblemSummaries, Scores: w.Scores}, nil
	default:
		return nil, &ParseFailure{Raw: string(data), Err: fmt.Errorf("unknown junior action type %q", w.Type)}
	}
}

// wireMentor is the discriminated-union shape every senior.* call returns.
type wireMentor struct {
	Type string `json:"type"`

	Feedback       string             `json:"feedback,omitempty"`
	Additions      []SubproblemSeed   `json:"additions,omitempty"`
	Removals       []string           `json:"removals,omitempty"`
	Merges         [][]string         `json:"merges,omitempty"`
	NewApproach    string             `json:"new_approach,omitempty"`
	KeySubproblems []string           `json:"key_subproblems,omitempty"`
	CorrectedText  string             `json:"corrected_text,omitempty"`
	Corrections    []string           `json:"corrections,omitempty"`
	Scores         map[string]float64 `json:"scores,omitempty"`
}

func parseSeniorMentor(data []byte) (SeniorMentor, error) {
	var w wireMentor
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &ParseFailure{Raw: string(data), Err: err}
	}

	switch w.Type {
	case "approve_approach":
		return ApproveApproach{Feedback: w.Feedback}, nil
	case "refine_subproblems":
		return RefineSubproblems{Additions: w.Additions, Removals: w.Removals, Merges: w.Merges, Feedback: w.Feedback}, nil
	case "suggest_approach":
		return SuggestApproach{Feedback: w.Feedback, NewApproach: w.NewApproach, KeySubproblems: w.KeySubproblems}, nil
	case "approve_answer":
		return ApproveAnswer{Scores: w.Scores}, nil
	case "correct_answer":
		if w.CorrectedText == "" {
			return nil, &ParseFailure{Raw: string(data), Err: fmt.Errorf("correct_answer missing corrected_text")}
		}
		return CorrectAnswer{CorrectedText: w.CorrectedText, Corrections: w.Corrections, Scores: w.Scores}, nil
	default:
		return nil, &ParseFailure{Raw: string(data), Err: fmt.Errorf("unknown senior mentor type %q", w.Type)}
	}
}

type wireDecomposition struct {
	Subproblems []SubproblemSeed `json:"subproblems"`
}

func parseDecomposition(data []byte) (Decomposition, error) {
	var w wireDecomposition
	if err := json.Unmarshal(data, &w); err != nil {
		return Decomposition{}, &ParseFailure{Raw: string(data), Err: err}
	}
	return Decomposition{Subproblems: w.Subproblems}, nil
}

type wireSynthesis struct {
	Text                string             `json:"text"`
	SubproblemSummaries []string           `json:"subproblem_summaries"`
	Scores              map[string]float64 `json:"scores"`
}

func parseSynthesis(data []byte) (Synthesis, error) {
	var w wireSynthesis
	if err := json.Unmarshal(data, &w); err != nil {
		return Synthesis{}, &ParseFailure{Raw: string(data), Err: err}
	}
	return Synthesis{Text: w.Text, SubproblemSummaries: w.SubproblemSummaries, Scores: w.Scores}, nil
}
