package answer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jjgarcianorway/anna/pkg/evidence"
	"github.com/jjgarcianorway/anna/pkg/fallback"
	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/policy"
	"github.com/jjgarcianorway/anna/pkg/probe"
)

// defaultMaxIterations is MAX_ITERATIONS from spec.md §4.4.
const defaultMaxIterations = 8

// oracle is the narrow Junior/Senior interface the engine drives. Satisfied
// structurally by *llm.Client; tests supply a fake.
type oracle interface {
	Decompose(ctx context.Context, question string, knownFacts map[string]string, availableProbeIDs []string) (llm.Decomposition, error)
	Work(ctx context.Context, question string, subproblemsJSON string, probeHistory []string, iteration int) (llm.JuniorAction, error)
	Synthesise(ctx context.Context, question, subproblemsJSON, evidenceJSON string) (llm.Synthesis, error)
	Review(ctx context.Context, question, text, subproblemsJSON string, scores map[string]float64, probesJSON string) (llm.SeniorMentor, error)
	Mentor(ctx context.Context, question, stateJSON, mentorQuestion string) (llm.SeniorMentor, error)
}

// probeRunner is the narrow probe-execution surface the engine needs.
// Satisfied structurally by *probe.Executor.
type probeRunner interface {
	Run(ctx context.Context, catalog *probe.Catalog, probeIDs []string) []evidence.Item
}

// Engine drives one AnswerSession at a time through Decomposing, Working,
// Synthesising, to Finished (spec.md §4.4 state diagram).
type Engine struct {
	Oracle        oracle
	Probes        probeRunner
	Catalog       *probe.Catalog
	Weights       policy.Weights
	MaxIterations int
}

// NewEngine builds an Engine. maxIterations <= 0 uses the spec default of 8.
func NewEngine(o oracle, probes probeRunner, catalog *probe.Catalog, weights policy.Weights, maxIterations int) *Engine {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	return &Engine{Oracle: o, Probes: probes, Catalog: catalog, Weights: weights, MaxIterations: maxIterations}
}

// Ask turns a question into a FinalAnswer. If the Junior role is entirely
// unavailable, the question is handed to the deterministic fallback
// answerer (spec.md §4.4/§4.8).
func (e *Engine) Ask(ctx context.Context, query string) (FinalAnswer, error) {
	session := &AnswerSession{
		Query:           query,
		StartTime:       time.Now(),
		SeniorAvailable: true,
	}

	decomposition, err := e.Oracle.Decompose(ctx, query, nil, probeIDs(e.Catalog.AvailableProbes()))
	if errors.Is(err, llm.ErrUnavailable) {
		return e.askFallback(ctx, session)
	}
	if err != nil {
		return FinalAnswer{}, fmt.Errorf("answer: decompose: %w", err)
	}

	for i, seed := range decomposition.Subproblems {
		session.Subproblems = append(session.Subproblems, Subproblem{
			ID:              fmt.Sprintf("sp-%d", i+1),
			Description:     seed.Description,
			CandidateProbes: seed.CandidateProbes,
			Status:          SubproblemPending,
		})
	}
	if len(session.Subproblems) == 0 {
		session.Subproblems = []Subproblem{{ID: "sp-1", Description: query, Status: SubproblemPending}}
	}

	draftText, askedMentorAtEnd := e.work(ctx, session)

	return e.synthesise(ctx, session, draftText, askedMentorAtEnd)
}

// work drives the Working phase: one LLM call per iteration until every
// sub-problem reaches a terminal status or MAX_ITERATIONS is hit.
func (e *Engine) work(ctx context.Context, session *AnswerSession) (draftText string, askedMentorAtEnd bool) {
	for session.Iteration = 1; session.Iteration <= e.MaxIterations; session.Iteration++ {
		sub := nextPending(session.Subproblems)
		if sub == nil {
			return "", false
		}

		subJSON, _ := json.Marshal(session.Subproblems)
		action, err := e.Oracle.Work(ctx, session.Query, string(subJSON), sub.ProbeHistory, session.Iteration)
		if err != nil {
			markUnresolved(session, sub.ID)
			continue
		}

		switch a := action.(type) {
		case llm.WorkSubproblem:
			e.handleWorkSubproblem(ctx, session, a)
		case llm.SolveSubproblem:
			handleSolveSubproblem(session, a)
		case llm.AskMentor:
			e.handleAskMentor(ctx, session, a)
			askedMentorAtEnd = true
		case llm.Synthesize:
			return a.Text, false
		case llm.Decompose:
			// Junior wants to restart decomposition mid-work; the engine keeps
			// the existing sub-problems (a full reset mid-session would break
			// the "evidence ids are stable within a session" guarantee) and
			// just notes the attempt by leaving the current sub-problem pending.
		}
	}

	// MAX_ITERATIONS reached: force remaining sub-problems to Unresolved so
	// synthesis can still proceed with a partial answer.
	for i := range session.Subproblems {
		if session.Subproblems[i].Status == SubproblemPending || session.Subproblems[i].Status == SubproblemWorking {
			session.Subproblems[i].Status = SubproblemUnresolved
		}
	}
	return "", askedMentorAtEnd
}

func (e *Engine) handleWorkSubproblem(ctx context.Context, session *AnswerSession, a llm.WorkSubproblem) {
	sub := findSubproblem(session.Subproblems, a.SubproblemID)
	if sub == nil {
		return
	}

	if repeatsLastProbe(*sub, a.ProbeID) {
		// Tie-break (spec.md §4.4): refuse the repeat. If there's already
		// evidence, force a conclusion for this sub-problem; otherwise
		// escalate to the Senior for guidance.
		if len(sub.EvidenceIDs) > 0 {
			sub.Status = SubproblemUnresolved
			return
		}
		e.handleAskMentor(ctx, session, llm.AskMentor{
			Question:     fmt.Sprintf("sub-problem %s is stuck repeating probe %s with no evidence yet; how should I proceed?", sub.ID, a.ProbeID),
			CurrentState: sub.Description,
		})
		return
	}

	items := e.Probes.Run(ctx, e.Catalog, []string{a.ProbeID})
	sub.Status = SubproblemWorking
	sub.ProbeHistory = append(sub.ProbeHistory, a.ProbeID)
	for _, item := range items {
		ref := session.addEvidence(item)
		sub.EvidenceIDs = append(sub.EvidenceIDs, ref)
	}
}

func handleSolveSubproblem(session *AnswerSession, a llm.SolveSubproblem) {
	sub := findSubproblem(session.Subproblems, a.SubproblemID)
	if sub == nil {
		return
	}
	sub.Status = SubproblemSolved
	sub.PartialAnswer = a.PartialAnswer
	sub.Confidence = a.Confidence
}

func (e *Engine) handleAskMentor(ctx context.Context, session *AnswerSession, a llm.AskMentor) {
	session.SeniorConsulted = true
	resp, err := e.Oracle.Mentor(ctx, session.Query, a.CurrentState, a.Question)
	if errors.Is(err, llm.ErrUnavailable) {
		session.SeniorAvailable = false
		return
	}
	if err != nil {
		return
	}

	switch m := resp.(type) {
	case llm.RefineSubproblems:
		e.applyRefinement(session, m)
	case llm.SuggestApproach:
		// Recorded as feedback; the engine keeps the current sub-problems
		// but marks the in-flight one Unresolved so Working re-evaluates it.
	case llm.ApproveApproach:
		// No state change; Working continues as planned.
	}
}

func (e *Engine) applyRefinement(session *AnswerSession, m llm.RefineSubproblems) {
	removed := make(map[string]bool, len(m.Removals))
	for _, id := range m.Removals {
		removed[id] = true
	}
	kept := session.Subproblems[:0]
	for _, s := range session.Subproblems {
		if !removed[s.ID] {
			kept = append(kept, s)
		}
	}
	session.Subproblems = kept

	next := len(session.Subproblems) + 1
	for _, seed := range m.Additions {
		session.Subproblems = append(session.Subproblems, Subproblem{
			ID:              fmt.Sprintf("sp-%d", next),
			Description:     seed.Description,
			CandidateProbes: seed.CandidateProbes,
			Status:          SubproblemPending,
		})
		next++
	}
}

// synthesise drives the Synthesising phase: get a draft (Junior, unless one
// arrived already from Working), have the Senior review it, and finalise.
func (e *Engine) synthesise(ctx context.Context, session *AnswerSession, draftText string, askedMentorAtEnd bool) (FinalAnswer, error) {
	subJSON, _ := json.Marshal(session.Subproblems)
	evJSON, _ := json.Marshal(session.Evidence)

	if draftText == "" {
		synth, err := e.Oracle.Synthesise(ctx, session.Query, string(subJSON), string(evJSON))
		if err == nil {
			draftText = synth.Text
		}
	}

	probesUsed := usedProbeIDs(session.Subproblems)
	probesJSON, _ := json.Marshal(probesUsed)

	seniorApproved := false
	finalText := draftText

	if session.SeniorAvailable {
		review, err := e.Oracle.Review(ctx, session.Query, draftText, string(subJSON), nil, string(probesJSON))
		if errors.Is(err, llm.ErrUnavailable) {
			session.SeniorAvailable = false
		} else if err == nil {
			switch r := review.(type) {
			case llm.ApproveAnswer:
				seniorApproved = true
			case llm.CorrectAnswer:
				finalText = r.CorrectedText
			}
		}
	}

	citedIDs := citedEvidenceRefs(finalText, session.Evidence)
	knownIDs := make(map[string]bool, len(session.Evidence))
	for i := range session.Evidence {
		knownIDs[fmt.Sprintf("E%d", i+1)] = true
	}

	evByID := evidenceByID(session.Evidence)
	sig := computeSignals(session.Subproblems, citedIDs, knownIDs, evByID, askedMentorAtEnd)
	s := score(e.Weights, sig, seniorApproved, session.SeniorAvailable)
	s = capIfAllUnknown(session.Subproblems, evByID, s)

	solved, total := countSolved(session.Subproblems)
	partial := session.Iteration >= e.MaxIterations || solved < total

	return FinalAnswer{
		Text:              finalText,
		Reliability:       s,
		Label:             LabelFor(s),
		EvidenceRefs:      allEvidenceRefs(session.Evidence),
		ProbeIDs:          probesUsed,
		SubproblemsSolved: solved,
		SubproblemsTotal:  total,
		IterationCount:    session.Iteration,
		Partial:           partial,
	}, nil
}

// askFallback routes to the deterministic answerer when the LLM is
// completely unavailable (spec.md §4.4: "If both Junior and Senior are
// unavailable, the engine hands the question to the Deterministic
// Answerer").
func (e *Engine) askFallback(ctx context.Context, session *AnswerSession) (FinalAnswer, error) {
	class := fallback.Classify(session.Query)
	byProbeID := map[string]evidence.Item{}
	if probeID := fallback.RequiredProbeID(class); probeID != "" {
		items := e.Probes.Run(ctx, e.Catalog, []string{probeID})
		if len(items) > 0 {
			byProbeID[probeID] = items[0]
		}
	}

	ans, ok := fallback.Answer(session.Query, byProbeID, e.Weights)
	if !ok {
		return FinalAnswer{
			Text:             "I can't reach the language model and don't have a deterministic answer for this question.",
			Reliability:      0,
			Label:            LabelVeryLow,
			SubproblemsTotal: 1,
			Partial:          true,
		}, nil
	}

	return FinalAnswer{
		Text:              ans.Text,
		Reliability:       ans.Reliability,
		Label:             ReliabilityLabel(ans.Label),
		EvidenceRefs:      ans.EvidenceIDs,
		ProbeIDs:          ans.ProbeIDs,
		SubproblemsSolved: 1,
		SubproblemsTotal:  1,
		IterationCount:    0,
		Partial:           false,
	}, nil
}

func (s *AnswerSession) addEvidence(item evidence.Item) string {
	s.Evidence = append(s.Evidence, item)
	return fmt.Sprintf("E%d", len(s.Evidence))
}

func probeIDs(probes []probe.Probe) []string {
	ids := make([]string, len(probes))
	for i, p := range probes {
		ids[i] = p.ID
	}
	return ids
}

func nextPending(subs []Subproblem) *Subproblem {
	for i := range subs {
		if subs[i].Status == SubproblemPending || subs[i].Status == SubproblemWorking {
			return &subs[i]
		}
	}
	return nil
}

func findSubproblem(subs []Subproblem, id string) *Subproblem {
	for i := range subs {
		if subs[i].ID == id {
			return &subs[i]
		}
	}
	return nil
}

func markUnresolved(session *AnswerSession, id string) {
	if s := findSubproblem(session.Subproblems, id); s != nil {
		s.Status = SubproblemUnresolved
	}
}

func repeatsLastProbe(sub Subproblem, probeID string) bool {
	n := len(sub.ProbeHistory)
	return n > 0 && sub.ProbeHistory[n-1] == probeID
}

func usedProbeIDs(subs []Subproblem) []string {
	seen := map[string]bool{}
	var ids []string
	for _, s := range subs {
		for _, p := range s.ProbeHistory {
			if !seen[p] {
				seen[p] = true
				ids = append(ids, p)
			}
		}
	}
	return ids
}

func countSolved(subs []Subproblem) (solved, total int) {
	total = len(subs)
	for _, s := range subs {
		if s.Status == SubproblemSolved {
			solved++
		}
	}
	return solved, total
}

func allEvidenceRefs(items []evidence.Item) []string {
	refs := make([]string, len(items))
	for i := range items {
		refs[i] = fmt.Sprintf("E%d", i+1)
	}
	return refs
}

func evidenceByID(items []evidence.Item) map[string]evidence.Item {
	m := make(map[string]evidence.Item, len(items))
	for i, item := range items {
		m[fmt.Sprintf("E%d", i+1)] = item
	}
	return m
}

// citedEvidenceRefs finds which "E<n>" refs appear verbatim in text. The
// answer engine's contract requires every factual claim to cite an
// evidence id inline (e.g. "(E1)"); this is a light substring scan, not a
// full claim parser.
func citedEvidenceRefs(text string, items []evidence.Item) []string {
	var cited []string
	for i := range items {
		ref := fmt.Sprintf("E%d", i+1)
		if strings.Contains(text, ref) {
			cited = append(cited, ref)
		}
	}
	return cited
}
