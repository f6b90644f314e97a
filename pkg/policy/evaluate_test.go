package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_DeniesSSHConfigChange(t *testing.T) {
	set := DefaultSet()
	action := PlannedAction{
		Domain:      DomainConfig,
		RiskLevel:   RiskModerate,
		TargetPaths: []string{"/etc/ssh/sshd_config"},
	}

	decision := Evaluate(set, action)

	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.MatchedRules, "R-006")
}

func TestEvaluate_StrongConfirmOnEtcChange(t *testing.T) {
	set := DefaultSet()
	action := PlannedAction{
		Domain:      DomainConfig,
		RiskLevel:   RiskModerate,
		TargetPaths: []string{"/etc/pacman.conf"},
	}

	decision := Evaluate(set, action)

	require.True(t, decision.Allowed)
	assert.True(t, decision.RequireStrongConfirm)
	assert.Contains(t, decision.MatchedRules, "R-005")
	assert.Contains(t, decision.MatchedRules, "R-002")
}

func TestEvaluate_GeneralDomainDeniesHighRisk(t *testing.T) {
	set := DefaultSet()
	action := PlannedAction{
		Domain:    DomainNetwork,
		RiskLevel: RiskHigh,
	}

	decision := Evaluate(set, action)

	assert.False(t, decision.Allowed)
	assert.Contains(t, decision.MatchedRules, "R-001")
}

func TestEvaluate_PackagesRequireConfirm(t *testing.T) {
	set := DefaultSet()
	action := PlannedAction{
		Domain:         DomainPackages,
		RiskLevel:      RiskModerate,
		TargetPackages: []string{"steam"},
	}

	decision := Evaluate(set, action)

	assert.True(t, decision.Allowed)
	assert.True(t, decision.RequireConfirm)
	assert.Contains(t, decision.MatchedRules, "R-003")
}

func TestEvaluate_SafeActionUnaffected(t *testing.T) {
	set := DefaultSet()
	action := PlannedAction{
		Domain:    DomainGeneral,
		RiskLevel: RiskSafe,
	}

	decision := Evaluate(set, action)

	assert.True(t, decision.Allowed)
	assert.False(t, decision.RequireConfirm)
	assert.False(t, decision.RequireStrongConfirm)
}

func TestEvaluate_PureAndDeterministic(t *testing.T) {
	set := DefaultSet()
	action := PlannedAction{Domain: DomainServices, RiskLevel: RiskModerate, TargetServices: []string{"sshd"}}

	first := Evaluate(set, action)
	second := Evaluate(set, action)

	assert.Equal(t, first, second)
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name string
		path string
		glob string
		want bool
	}{
		{"prefix match", "/etc/ssh/sshd_config", "/etc/*", true},
		{"no trailing slash boundary", "/etc", "/etc/*", false},
		{"exact match", "/etc/passwd", "/etc/passwd", true},
		{"exact mismatch", "/etc/passwd2", "/etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchGlob(tt.path, tt.glob))
		})
	}
}

func TestSet_AddRemoveRuleBumpsVersion(t *testing.T) {
	set := &Set{Version: 1}

	set.AddRule(Rule{ID: "custom-1", Domain: DomainConfig, MaxRisk: RiskModerate, Action: ActionDeny})
	assert.EqualValues(t, 2, set.Version)

	removed := set.RemoveRule("custom-1")
	assert.True(t, removed)
	assert.EqualValues(t, 3, set.Version)

	removedAgain := set.RemoveRule("custom-1")
	assert.False(t, removedAgain)
	assert.EqualValues(t, 3, set.Version)
}

func TestRiskLevel_Ordering(t *testing.T) {
	assert.True(t, RiskHigh > RiskModerate)
	assert.True(t, RiskModerate > RiskSafe)
}
