package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_AvailableProbesIsSortedAndPure(t *testing.T) {
	c := NewCatalog(
		Probe{ID: "z.probe", Command: "true"},
		Probe{ID: "a.probe", Command: "true"},
	)

	first := c.AvailableProbes()
	second := c.AvailableProbes()

	assert.Equal(t, first, second)
	assert.Equal(t, "a.probe", first[0].ID)
	assert.Equal(t, "z.probe", first[1].ID)
}

func TestCatalog_IsValid(t *testing.T) {
	c := NewCatalog(Probe{ID: "cpu.info", Command: "lscpu"})

	assert.True(t, c.IsValid("cpu.info"))
	assert.False(t, c.IsValid("bogus.probe"))
}

func TestCatalog_PanicsOnDuplicateID(t *testing.T) {
	assert.Panics(t, func() {
		NewCatalog(
			Probe{ID: "dup", Command: "true"},
			Probe{ID: "dup", Command: "false"},
		)
	})
}

func TestCatalog_PanicsOnMutatingCommand(t *testing.T) {
	assert.Panics(t, func() {
		NewCatalog(Probe{ID: "bad.probe", Command: "rm"})
	})
}

func TestBuiltin_AllRegisterWithoutPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCatalog(Builtin()...)
	})
}

func TestBuiltin_DomainsAreValid(t *testing.T) {
	for _, p := range Builtin() {
		assert.True(t, p.Domain.IsValid(), "probe %s has invalid domain %q", p.ID, p.Domain)
	}
}
