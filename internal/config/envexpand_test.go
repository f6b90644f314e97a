package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv_SubstitutesBracedAndBareForms(t *testing.T) {
	t.Setenv("ANNA_TEST_HOST", "localhost")
	t.Setenv("ANNA_TEST_PORT", "11434")

	in := "junior_base_url: http://${ANNA_TEST_HOST}:$ANNA_TEST_PORT"
	want := "junior_base_url: http://localhost:11434"

	assert.Equal(t, want, string(ExpandEnv([]byte(in))))
}

func TestExpandEnv_MissingVariableExpandsEmpty(t *testing.T) {
	assert.Equal(t, "token: ", string(ExpandEnv([]byte("token: ${ANNA_TEST_UNSET_VAR}"))))
}
