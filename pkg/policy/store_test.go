package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")

	set := DefaultSet()
	models := DefaultModelPolicy()

	require.NoError(t, Save(path, set, models))

	loaded, loadedModels, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, set.Version, loaded.Version)
	assert.Len(t, loaded.Rules, len(set.Rules))
	assert.Equal(t, set.Rules[0].ID, loaded.Rules[0].ID)
	assert.Equal(t, set.Rules[5].PathGlobs, loaded.Rules[5].PathGlobs)
	assert.Equal(t, models.Junior.MaxTokens, loadedModels.Junior.MaxTokens)
}

func TestLoad_RejectsUnknownAction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")

	data := `version = 1

[[rules]]
id = "bad-rule"
description = "broken"
domain = "config"
max_risk = "Moderate"
action = "maybe"
created_at = 2024-01-01T00:00:00Z
source_kind = "default"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestLoad_RejectsUnknownRiskLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")

	data := `version = 1

[[rules]]
id = "bad-rule"
description = "broken"
domain = "config"
max_risk = "Extreme"
action = "deny"
created_at = 2024-01-01T00:00:00Z
source_kind = "default"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRiskLevel)
}
