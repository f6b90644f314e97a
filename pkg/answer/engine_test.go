package answer

import (
	"context"
	"testing"

	"github.com/jjgarcianorway/anna/pkg/llm"
	"github.com/jjgarcianorway/anna/pkg/policy"
	"github.com/jjgarcianorway/anna/pkg/probe"
	"github.com/stretchr/testify/require"
)

type noopRedactor struct{}

func (noopRedactor) Redact(s string) string { return s }

func testCatalog() *probe.Catalog {
	return probe.NewCatalog(
		probe.Probe{ID: "cpu.info", Command: "echo", Args: []string{"Intel Core i9, 32 cores"}},
		probe.Probe{ID: "ram.info", Command: "echo", Args: []string{"16Gi total"}},
	)
}

func testExecutor() *probe.Executor {
	return probe.NewExecutor(probe.ToolInventory{}, noopRedactor{})
}

// fakeOracle is a scripted implementation of the oracle interface: each
// method pops the next value off its queue, so a test can script an exact
// sequence of Junior/Senior turns.
type fakeOracle struct {
	decompose    llm.Decomposition
	decomposeErr error
	workQueue    []llm.JuniorAction
	workErr      error
	synthesis    llm.Synthesis
	reviews      []llm.SeniorMentor
	mentors      []llm.SeniorMentor
}

func (f *fakeOracle) Decompose(ctx context.Context, question string, knownFacts map[string]string, availableProbeIDs []string) (llm.Decomposition, error) {
	return f.decompose, f.decomposeErr
}

func (f *fakeOracle) Work(ctx context.Context, question, subproblemsJSON string, probeHistory []string, iteration int) (llm.JuniorAction, error) {
	if f.workErr != nil {
		return nil, f.workErr
	}
	if len(f.workQueue) == 0 {
		return llm.Synthesize{Text: "no more actions"}, nil
	}
	a := f.workQueue[0]
	f.workQueue = f.workQueue[1:]
	return a, nil
}

func (f *fakeOracle) Synthesise(ctx context.Context, question, subproblemsJSON, evidenceJSON string) (llm.Synthesis, error) {
	return f.synthesis, nil
}

func (f *fakeOracle) Review(ctx context.Context, question, text, subproblemsJSON string, scores map[string]float64, probesJSON string) (llm.SeniorMentor, error) {
	if len(f.reviews) == 0 {
		return llm.ApproveAnswer{}, nil
	}
	r := f.reviews[0]
	f.reviews = f.reviews[1:]
	return r, nil
}

func (f *fakeOracle) Mentor(ctx context.Context, question, stateJSON, mentorQuestion string) (llm.SeniorMentor, error) {
	if len(f.mentors) == 0 {
		return llm.ApproveApproach{}, nil
	}
	m := f.mentors[0]
	f.mentors = f.mentors[1:]
	return m, nil
}

func TestEngine_Ask_HappyPath_SolvesAndSynthesisesWithApproval(t *testing.T) {
	oracle := &fakeOracle{
		decompose: llm.Decomposition{Subproblems: []llm.SubproblemSeed{
			{Description: "what CPU is installed", CandidateProbes: []string{"cpu.info"}},
		}},
		workQueue: []llm.JuniorAction{
			llm.WorkSubproblem{SubproblemID: "sp-1", ProbeID: "cpu.info", Reason: "need cpu model"},
			llm.SolveSubproblem{SubproblemID: "sp-1", PartialAnswer: "Intel Core i9, 32 cores", Confidence: 0.9},
		},
		synthesis: llm.Synthesis{Text: "You have an Intel Core i9 with 32 cores (E1)."},
		reviews:   []llm.SeniorMentor{llm.ApproveAnswer{Scores: map[string]float64{"sp-1": 0.9}}},
	}

	engine := NewEngine(oracle, testExecutor(), testCatalog(), policy.DefaultModelPolicy().Weights, 8)
	ans, err := engine.Ask(context.Background(), "what cpu do i have?")

	require.NoError(t, err)
	require.Contains(t, ans.Text, "Intel Core i9")
	require.Equal(t, 1, ans.SubproblemsSolved)
	require.Equal(t, 1, ans.SubproblemsTotal)
	require.False(t, ans.Partial)
	require.Greater(t, ans.Reliability, 0.5)
	require.Contains(t, ans.EvidenceRefs, "E1")
}

func TestEngine_Ask_RoutesToFallbackWhenJuniorUnavailable(t *testing.T) {
	oracle := &fakeOracle{decomposeErr: llm.ErrUnavailable}
	engine := NewEngine(oracle, testExecutor(), testCatalog(), policy.DefaultModelPolicy().Weights, 8)

	ans, err := engine.Ask(context.Background(), "what cpu do i have?")

	require.NoError(t, err)
	require.Contains(t, ans.Text, "Intel Core i9")
	require.False(t, ans.Partial)
}

func TestEngine_Ask_FallbackUnknownQueryWhenLLMUnavailable(t *testing.T) {
	oracle := &fakeOracle{decomposeErr: llm.ErrUnavailable}
	engine := NewEngine(oracle, testExecutor(), testCatalog(), policy.DefaultModelPolicy().Weights, 8)

	ans, err := engine.Ask(context.Background(), "tell me a joke")

	require.NoError(t, err)
	require.Equal(t, LabelVeryLow, ans.Label)
	require.True(t, ans.Partial)
}

func TestEngine_Ask_ForcesPartialAnswerAfterMaxIterations(t *testing.T) {
	loopingActions := make([]llm.JuniorAction, 0, 20)
	for i := 0; i < 20; i++ {
		loopingActions = append(loopingActions, llm.WorkSubproblem{SubproblemID: "sp-1", ProbeID: "cpu.info", Reason: "again"})
	}
	oracle := &fakeOracle{
		decompose: llm.Decomposition{Subproblems: []llm.SubproblemSeed{
			{Description: "loop forever", CandidateProbes: []string{"cpu.info"}},
		}},
		workQueue: loopingActions,
		synthesis: llm.Synthesis{Text: "partial"},
	}

	engine := NewEngine(oracle, testExecutor(), testCatalog(), policy.DefaultModelPolicy().Weights, 8)
	ans, err := engine.Ask(context.Background(), "loop forever")

	require.NoError(t, err)
	require.True(t, ans.Partial)
	require.LessOrEqual(t, ans.IterationCount, 8)
}

func TestEngine_Ask_RefusesRepeatedProbeForSameSubproblem(t *testing.T) {
	oracle := &fakeOracle{
		decompose: llm.Decomposition{Subproblems: []llm.SubproblemSeed{
			{Description: "cpu question", CandidateProbes: []string{"cpu.info"}},
		}},
		workQueue: []llm.JuniorAction{
			llm.WorkSubproblem{SubproblemID: "sp-1", ProbeID: "cpu.info"},
			llm.WorkSubproblem{SubproblemID: "sp-1", ProbeID: "cpu.info"},
		},
		synthesis: llm.Synthesis{Text: "answer (E1)"},
	}

	engine := NewEngine(oracle, testExecutor(), testCatalog(), policy.DefaultModelPolicy().Weights, 8)
	ans, err := engine.Ask(context.Background(), "what cpu do i have?")

	require.NoError(t, err)
	require.LessOrEqual(t, len(ans.EvidenceRefs), 1)
}

func TestEngine_Ask_CapsReliabilityWhenSeniorUnavailable(t *testing.T) {
	oracle := &fakeOracle{
		decompose: llm.Decomposition{Subproblems: []llm.SubproblemSeed{
			{Description: "cpu question", CandidateProbes: []string{"cpu.info"}},
		}},
		workQueue: []llm.JuniorAction{
			llm.WorkSubproblem{SubproblemID: "sp-1", ProbeID: "cpu.info"},
			llm.SolveSubproblem{SubproblemID: "sp-1", PartialAnswer: "Intel", Confidence: 0.9},
		},
		synthesis: llm.Synthesis{Text: "answer (E1)"},
	}
	engine := NewEngine(oracle, testExecutor(), testCatalog(), policy.DefaultModelPolicy().Weights, 8)

	// Force Review to fail with ErrUnavailable by swapping in a oracle variant.
	oracle.reviews = nil
	unavailableOracle := &unavailableReviewOracle{fakeOracle: oracle}
	engine.Oracle = unavailableOracle

	ans, err := engine.Ask(context.Background(), "what cpu do i have?")
	require.NoError(t, err)
	require.LessOrEqual(t, ans.Reliability, 0.60)
}

type unavailableReviewOracle struct {
	*fakeOracle
}

func (u *unavailableReviewOracle) Review(ctx context.Context, question, text, subproblemsJSON string, scores map[string]float64, probesJSON string) (llm.SeniorMentor, error) {
	return nil, llm.ErrUnavailable
}

func TestLabelFor_DerivesTierFromScore(t *testing.T) {
	require.Equal(t, LabelHigh, LabelFor(0.95))
	require.Equal(t, LabelMedium, LabelFor(0.75))
	require.Equal(t, LabelLow, LabelFor(0.5))
	require.Equal(t, LabelVeryLow, LabelFor(0.1))
}
