// Package llm is the single narrow interface to the Junior/Translator and
// Senior/Mentor oracle roles: timeouts, schema-validated JSON, and a bounded
// regenerate-on-malformed-output retry.
//
// Generalized from the gRPC transport in tarsy's pkg/llm/client.go to HTTP
// POST + JSON, since spec.md §6 mandates a JSON wire contract rather than
// protobuf; the connection-lifecycle shape (one client, one base address,
// role-scoped request budgets) is kept.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Role names the two oracle roles the contract distinguishes.
type Role string

const (
	RoleJunior Role = "junior"
	RoleSenior Role = "senior"
)

// RequestBudget bounds a single role's request shape, mirroring
// policy.RoleBudget without importing pkg/policy (llm stays a leaf package).
type RequestBudget struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client is the HTTP-backed implementation of the oracle contract. Created
// once at daemon startup and shared; safe for concurrent use (stdlib
// http.Client is).
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	budgets    map[Role]RequestBudget
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithMaxRetries overrides R_MAX, the number of regeneration attempts on a
// malformed response (spec.md §4.3 default 2).
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBudget sets the request budget for a role.
func WithBudget(role Role, budget RequestBudget) Option {
	return func(c *Client) { c.budgets[role] = budget }
}

// NewClient builds a Client against baseURL (e.g. a local model host per
// spec.md §6). R_MAX defaults to 2.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		maxRetries: 2,
		budgets: map[Role]RequestBudget{
			RoleJunior: {MaxTokens: 1536, Temperature: 0.3, Timeout: 25 * time.Second},
			RoleSenior: {MaxTokens: 2048, Temperature: 0.2, Timeout: 30 * time.Second},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping performs a minimal health check against the LLM host, used by the
// sentinel daemon at startup to decide whether to mark the LLM degraded
// before the first real question arrives (recovered from original_source's
// annad/src/llm_bootstrap.rs bootstrap probe).
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// chatRequest is the JSON body posted for every role call.
type chatRequest struct {
	Role        Role    `json:"role"`
	Operation   string  `json:"operation"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Retry       int     `json:"retry_attempt"`
}

// post sends one chat request and returns the raw JSON document the model
// produced, without parsing it — parsing and the regenerate retry live in
// the generic call() helper below.
func (c *Client) post(ctx context.Context, role Role, operation, prompt string, retry int) ([]byte, error) {
	budget := c.budgets[role]
	reqCtx, cancel := context.WithTimeout(ctx, budget.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Role:        role,
		Operation:   operation,
		Prompt:      prompt,
		MaxTokens:   budget.MaxTokens,
		Temperature: budget.Temperature,
		Retry:       retry,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &RequestError{Role: string(role), Operation: operation, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{Role: string(role), Operation: operation, Err: fmt.Errorf("status %d: %s", resp.StatusCode, respBody)}
	}

	return respBody, nil
}

// call runs post, parses the result with parse, and on parse failure
// retries up to c.maxRetries times with the regeneration instruction
// appended to the prompt (spec.md §4.3). The final failure is returned
// typed as *ParseFailure so callers can distinguish it from ErrUnavailable.
func call[T any](ctx context.Context, c *Client, role Role, operation, prompt string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		effectivePrompt := prompt
		if attempt > 0 {
			effectivePrompt = prompt + "\n\nYour previous response did not match the required JSON schema. Respond with exactly one JSON document and nothing else."
		}

		raw, err := c.post(ctx, role, operation, effectivePrompt, attempt)
		if err != nil {
			return zero, err
		}

		parsed, err := parse(raw)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}

	return zero, lastErr
}

// Decompose implements junior.decompose.
func (c *Client) Decompose(ctx context.Context, question string, knownFacts map[string]string, availableProbeIDs []string) (Decomposition, error) {
	prompt := decomposePrompt(question, knownFacts, availableProbeIDs)
	return call(ctx, c, RoleJunior, "decompose", prompt, parseDecomposition)
}

// Work implements junior.work.
func (c *Client) Work(ctx context.Context, question string, subproblemsJSON string, probeHistory []string, iteration int) (JuniorAction, error) {
	prompt := workPrompt(question, subproblemsJSON, probeHistory, iteration)
	return call(ctx, c, RoleJunior, "work", prompt, parseJuniorAction)
}

// Synthesise implements junior.synthesise.
func (c *Client) Synthesise(ctx context.Context, question string, subproblemsJSON string, evidenceJSON string) (Synthesis, error) {
	prompt := synthesisePrompt(question, subproblemsJSON, evidenceJSON)
	return call(ctx, c, RoleJunior, "synthesise", prompt, parseSynthesis)
}

// Review implements senior.review.
func (c *Client) Review(ctx context.Context, question, text, subproblemsJSON string, scores map[string]float64, probesJSON string) (SeniorMentor, error) {
	prompt := reviewPrompt(question, text, subproblemsJSON, scores, probesJSON)
	return call(ctx, c, RoleSenior, "review", prompt, parseSeniorMentor)
}

// Mentor implements senior.mentor.
func (c *Client) Mentor(ctx context.Context, question, stateJSON, mentorQuestion string) (SeniorMentor, error) {
	prompt := mentorPrompt(question, stateJSON, mentorQuestion)
	return call(ctx, c, RoleSenior, "mentor", prompt, parseSeniorMentor)
}
