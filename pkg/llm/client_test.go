package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Decompose_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wireDecomposition{
			Subproblems: []SubproblemSeed{{Description: "check cpu", CandidateProbes: []string{"cpu.info"}}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.Decompose(context.Background(), "what cpu do i have?", nil, []string{"cpu.info"})

	require.NoError(t, err)
	require.Len(t, result.Subproblems, 1)
	assert.Equal(t, "check cpu", result.Subproblems[0].Description)
}

func TestClient_Work_ParsesEachActionType(t *testing.T) {
	tests := []struct {
		name string
		body string
		want JuniorAction
	}{
		{"work_subproblem", `{"type":"work_subproblem","subproblem_id":"sp_1","probe_id":"cpu.info","reason":"need data"}`,
			WorkSubproblem{SubproblemID: "sp_1", ProbeID: "cpu.info", Reason: "need data"}},
		{"solve_subproblem", `{"type":"solve_subproblem","subproblem_id":"sp_1","partial_answer":"yes","confidence":0.9}`,
			SolveSubproblem{SubproblemID: "sp_1", PartialAnswer: "yes", Confidence: 0.9}},
		{"ask_mentor", `{"type":"ask_mentor","question":"is this safe?","current_state":"{}"}`,
			AskMentor{Question: "is this safe?", CurrentState: "{}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			action, err := c.Work(context.Background(), "q", "[]", nil, 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}
}

func TestClient_RetriesOnMalformedResponseThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.Write([]byte("not json at all"))
			return
		}
		w.Write([]byte(`{"type":"ask_mentor","question":"ok?"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithMaxRetries(2))
	action, err := c.Work(context.Background(), "q", "[]", nil, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, AskMentor{Question: "ok?"}, action)
}

func TestClient_ExhaustsRetriesReturnsParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("still not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithMaxRetries(1))
	_, err := c.Work(context.Background(), "q", "[]", nil, 1)

	require.Error(t, err)
	var pf *ParseFailure
	assert.ErrorAs(t, err, &pf)
}

func TestClient_Ping_HealthyServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_Ping_UnreachableHostIsUnavailable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := c.Ping(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
