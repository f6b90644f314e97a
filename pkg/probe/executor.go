package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jjgarcianorway/anna/pkg/evidence"
	"github.com/jjgarcianorway/anna/pkg/masking"
)

const defaultProbeTimeout = 10 * time.Second

// Redactor is the subset of *masking.Redactor the executor depends on, so
// tests can supply a no-op.
type Redactor interface {
	Redact(string) string
}

// Executor runs probes from a Catalog against the real host and turns each
// run into exactly one evidence.Item, per spec.md §4.1: "every execution
// produces exactly one EvidenceItem, even on timeout."
type Executor struct {
	inventory ToolInventory
	redactor  Redactor
	idSeq     func() string
}

// NewExecutor builds an Executor bound to a detected ToolInventory. idSeq
// generates evidence item ids; pass nil to use a monotonic counter.
func NewExecutor(inventory ToolInventory, redactor Redactor) *Executor {
	if redactor == nil {
		redactor = masking.NewRedactor()
	}
	counter := 0
	return &Executor{
		inventory: inventory,
		redactor:  redactor,
		idSeq: func() string {
			counter++
			return "ev-" + strconv.Itoa(counter)
		},
	}
}

// Run executes every probe id against catalog, sequentially by default (the
// implementer's choice spec.md §OPEN QUESTIONS leaves to sequential
// execution for simplicity). An unknown id or a probe missing a required
// tool produces an Unknown item instead of aborting the run.
func (e *Executor) Run(ctx context.Context, catalog *Catalog, probeIDs []string) []evidence.Item {
	items := make([]evidence.Item, 0, len(probeIDs))
	for _, id := range probeIDs {
		items = append(items, e.runOne(ctx, catalog, id))
	}
	return items
}

func (e *Executor) runOne(ctx context.Context, catalog *Catalog, id string) evidence.Item {
	p, ok := catalog.Get(id)
	if !ok {
		return evidence.Item{
			ID:            e.idSeq(),
			Command:       id,
			ExitCode:      -1,
			StderrSnippet: "unknown probe id",
			Summary:       "probe not registered in catalog",
			Kind:          evidence.Unknown,
		}
	}

	var missing []string
	for _, tool := range p.RequiredTools {
		if !e.inventory.HasTool(tool) {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("required tools not found: %s", strings.Join(missing, ", "))
		return evidence.Item{
			ID:            e.idSeq(),
			Command:       formatCommand(p),
			ExitCode:      -1,
			StderrSnippet: msg,
			Summary:       "tool not available",
			Kind:          evidence.Unknown,
		}
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := e.execute(runCtx, p)
	return evidence.Classify(result, e.idSeq())
}

func (e *Executor) execute(ctx context.Context, p Probe) evidence.Result {
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	success := err == nil
	if err != nil {
		success = false
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			// Spawn failure or context deadline: no meaningful exit code.
			exitCode = -1
		}
	}

	return evidence.Result{
		FullCommand: formatCommand(p),
		CommandName: p.Command,
		ExitCode:    exitCode,
		Stdout:      stdout.String(),
		Stderr:      e.redactor.Redact(stderr.String()),
		Success:     success,
	}
}

func formatCommand(p Probe) string {
	if len(p.Args) == 0 {
		return p.Command
	}
	return p.Command + " " + strings.Join(p.Args, " ")
}
