package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidate_RejectsEmptyRequiredField(t *testing.T) {
	cfg := Default()
	cfg.Paths.ChangeLogDB = ""
	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestValidate_RejectsNegativeMaxRetries(t *testing.T) {
	cfg := Default()
	cfg.LLM.MaxRetries = -1
	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsZeroMaxIterations(t *testing.T) {
	cfg := Default()
	cfg.Daemon.MaxIterations = 0
	assert.Error(t, Validate(cfg))
}
