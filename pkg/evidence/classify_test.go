package evidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_PacmanPackageNotFound(t *testing.T) {
	r := Result{
		FullCommand: "pacman -Qi steam",
		CommandName: "pacman",
		ExitCode:    1,
		Stderr:      "error: package 'steam' was not found",
		Success:     false,
	}

	item := Classify(r, "ev-1")

	assert.Equal(t, Negative, item.Kind)
	assert.Equal(t, "ev-1", item.ID)
}

func TestClassify_PacmanTargetNotFound(t *testing.T) {
	r := Result{
		CommandName: "pacman",
		ExitCode:    1,
		Stderr:      "error: target not found: bogus-pkg",
		Success:     false,
	}

	assert.Equal(t, Negative, Classify(r, "id").Kind)
}

func TestClassify_GrepNoMatches(t *testing.T) {
	r := Result{
		CommandName: "grep",
		ExitCode:    1,
		Stderr:      "",
		Success:     false,
	}

	assert.Equal(t, Negative, Classify(r, "id").Kind)
}

func TestClassify_GrepFailureWithStderrIsUnknown(t *testing.T) {
	r := Result{
		CommandName: "grep",
		ExitCode:    2,
		Stderr:      "grep: /proc/bogus: No such file or directory",
		Success:     false,
	}

	assert.Equal(t, Unknown, Classify(r, "id").Kind)
}

func TestClassify_PermissionDeniedIsUnknown(t *testing.T) {
	r := Result{
		CommandName: "cat",
		ExitCode:    1,
		Stderr:      "cat: /etc/shadow: Permission denied",
		Success:     false,
	}

	assert.Equal(t, Unknown, Classify(r, "id").Kind)
}

func TestClassify_DatabaseCorruptionIsUnknown(t *testing.T) {
	r := Result{
		CommandName: "pacman",
		ExitCode:    1,
		Stderr:      "error: could not open database",
		Success:     false,
	}

	assert.Equal(t, Unknown, Classify(r, "id").Kind)
}

func TestClassify_SuccessWithOutputIsPositive(t *testing.T) {
	r := Result{
		CommandName: "systemctl",
		ExitCode:    0,
		Stdout:      "active\n",
		Success:     true,
	}

	item := Classify(r, "id")
	assert.Equal(t, Positive, item.Kind)
	assert.Equal(t, "active", item.Summary)
}

func TestClassify_PositiveSummaryCarriesMultiLineExcerpt(t *testing.T) {
	r := Result{
		CommandName: "lscpu",
		ExitCode:    0,
		Stdout:      "Intel Core i9, 32 cores\nArchitecture: x86_64\n",
		Success:     true,
	}

	item := Classify(r, "id")
	assert.Equal(t, Positive, item.Kind)
	assert.Contains(t, item.Summary, "Intel Core i9, 32 cores")
	assert.Contains(t, item.Summary, "+1 more lines")
}

func TestClassify_PositiveSummaryFallsBackWhenStdoutEmpty(t *testing.T) {
	r := Result{
		CommandName: "systemctl",
		ExitCode:    0,
		Stdout:      "",
		Stderr:      "warning: unit file changed on disk",
		Success:     true,
	}

	item := Classify(r, "id")
	assert.Equal(t, Positive, item.Kind)
	assert.Contains(t, item.Summary, "systemctl")
}

func TestClassify_SuccessWithNoOutputIsNegative(t *testing.T) {
	r := Result{
		CommandName: "grep",
		ExitCode:    0,
		Stdout:      "",
		Stderr:      "",
		Success:     true,
	}

	assert.Equal(t, Negative, Classify(r, "id").Kind)
}

func TestClassify_UnknownFailureHasNoClearErrorSummary(t *testing.T) {
	r := Result{
		CommandName: "weirdtool",
		ExitCode:    127,
		Stderr:      "",
		Success:     false,
	}

	item := Classify(r, "id")
	assert.Equal(t, Unknown, item.Kind)
	assert.Contains(t, item.Summary, "no clear error")
}

func TestTruncateStderr(t *testing.T) {
	short := "short stderr"
	assert.Equal(t, short, TruncateStderr(short))

	long := strings.Repeat("x", 250)
	truncated := TruncateStderr(long)
	assert.Len(t, truncated, 203)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		want  Kind
	}{
		{"empty", nil, Unknown},
		{"all positive", []Kind{Positive, Positive}, Positive},
		{"all negative", []Kind{Negative, Negative}, Negative},
		{"positive and negative conflict", []Kind{Positive, Negative}, Conflicting},
		{"positive with unknown", []Kind{Positive, Unknown}, Positive},
		{"negative with unknown", []Kind{Negative, Unknown}, Negative},
		{"all unknown", []Kind{Unknown, Unknown}, Unknown},
		{"already conflicting poisons group", []Kind{Positive, Conflicting}, Conflicting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]Item, len(tt.kinds))
			for i, k := range tt.kinds {
				items[i] = Item{Kind: k}
			}
			assert.Equal(t, tt.want, Reconcile(items))
		})
	}
}
