package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt construction is intentionally plain string formatting: the wire
// contract is carried entirely by the response JSON schema, so the prompt
// only needs to tell the model which schema to emit and supply context.

func decomposePrompt(question string, knownFacts map[string]string, availableProbeIDs []string) string {
	facts, _ := json.Marshal(knownFacts)
	return fmt.Sprintf(
		"Question: %s\nKnown facts: %s\nAvailable probe ids: %s\n\n"+
			"Respond with one JSON document: {\"type\":\"decompose\",\"subproblems\":[{\"description\":...,\"candidate_probe_ids\":[...]}]}",
		question, facts, strings.Join(availableProbeIDs, ", "),
	)
}

func workPrompt(question, subproblemsJSON string, probeHistory []string, iteration int) string {
	return fmt.Sprintf(
		"Question: %s\nIteration: %d\nSub-problems: %s\nProbe history: %s\n\n"+
			"Choose exactly one action and respond with one JSON document of type "+
			"work_subproblem, solve_subproblem, ask_mentor, or synthesize.",
		question, iteration, subproblemsJSON, strings.Join(probeHistory, ", "),
	)
}

func synthesisePrompt(question, subproblemsJSON, evidenceJSON string) string {
	return fmt.Sprintf(
		"Question: %s\nSub-problems: %s\nEvidence: %s\n\n"+
			"Respond with one JSON document: {\"text\":...,\"subproblem_summaries\":[...],\"scores\":{...}}",
		question, subproblemsJSON, evidenceJSON,
	)
}

func reviewPrompt(question, text, subproblemsJSON string, scores map[string]float64, probesJSON string) string {
	scoreJSON, _ := json.Marshal(scores)
	return fmt.Sprintf(
		"Question: %s\nProposed answer: %s\nSub-problems: %s\nScores: %s\nProbes used: %s\n\n"+
			"Respond with one JSON document of type approve_answer or correct_answer.",
		question, text, subproblemsJSON, scoreJSON, probesJSON,
	)
}

func mentorPrompt(question, stateJSON, mentorQuestion string) string {
	return fmt.Sprintf(
		"Question: %s\nCurrent state: %s\nMentor question: %s\n\n"+
			"Respond with one JSON document of type approve_approach, refine_subproblems, or suggest_approach.",
		question, stateJSON, mentorQuestion,
	)
}
