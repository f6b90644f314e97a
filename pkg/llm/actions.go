package llm

// JuniorAction is the tagged union of everything the Junior/Translator role
// can propose on a single turn (spec.md §3/§4.3). Each concrete type
// implements juniorAction() so the set is sealed to this package's callers
// the same way a Rust enum would be, while still letting callers type-switch
// on the concrete struct.
type JuniorAction interface {
	juniorAction()
}

// Decompose asks the engine to split the question into fresh sub-problems.
type Decompose struct {
	Subproblems []SubproblemSeed
}

// SubproblemSeed is one sub-problem proposed during decomposition, before
// the engine assigns it a stable sp_<n> id.
type SubproblemSeed struct {
	Description     string   `json:"description"`
	CandidateProbes []string `json:"candidate_probe_ids"`
}

// WorkSubproblem asks the engine to run one probe against one sub-problem.
type WorkSubproblem struct {
	SubproblemID string
	ProbeID      string
	Reason       string
}

// SolveSubproblem marks a sub-problem solved with a partial answer.
type SolveSubproblem struct {
	SubproblemID  string
	PartialAnswer string
	Confidence    float64
}

// AskMentor escalates to the Senior role with the current state attached.
type AskMentor struct {
	Question     string
	CurrentState string
}

// Synthesize proposes a final answer text built from resolved sub-problems.
type Synthesize struct {
	Text                string
	SubproblemSummaries []string
	Scores              map[string]float64
}

func (Decompose) juniorAction()       {}
func (WorkSubproblem) juniorAction()  {}
func (SolveSubproblem) juniorAction() {}
func (AskMentor) juniorAction()       {}
func (Synthesize) juniorAction()      {}

// SeniorMentor is the tagged union of everything the Senior/Mentor role can
// respond with (spec.md §4.3).
type SeniorMentor interface {
	seniorMentor()
}

// ApproveApproach endorses the current decomposition/working plan.
type ApproveApproach struct {
	Feedback string
}

// RefineSubproblems asks for sub-problems to be added, removed, or merged.
type RefineSubproblems struct {
	Additions []SubproblemSeed
	Removals  []string
	Merges    [][]string
	Feedback  string
}

// SuggestApproach rejects the current approach and proposes a new one.
type SuggestApproach struct {
	Feedback       string
	NewApproach    string
	KeySubproblems []string
}

// ApproveAnswer endorses a proposed synthesis, attaching the final scores.
type ApproveAnswer struct {
	Scores map[string]float64
}

// CorrectAnswer rewrites a proposed synthesis.
type CorrectAnswer struct {
	CorrectedText string
	Corrections   []string
	Scores        map[string]float64
}

func (ApproveApproach) seniorMentor()   {}
func (RefineSubproblems) seniorMentor() {}
func (SuggestApproach) seniorMentor()   {}
func (ApproveAnswer) seniorMentor()     {}
func (CorrectAnswer) seniorMentor()     {}

// Decomposition is the result of junior.decompose.
type Decomposition struct {
	Subproblems []SubproblemSeed
}

// Synthesis is the result of junior.synthesise.
type Synthesis struct {
	Text                string
	SubproblemSummaries []string
	Scores              map[string]float64
}
