package policy

import "time"

// DefaultSet returns the conservative ruleset Anna ships with (spec.md §4.5
// default ruleset table, R-001..R-007).
func DefaultSet() *Set {
	now := time.Now()
	mk := func(id, desc string, domain Domain, maxRisk RiskLevel, globs, tags []string, action Action) Rule {
		return Rule{
			ID:          id,
			Description: desc,
			Domain:      domain,
			MaxRisk:     maxRisk,
			PathGlobs:   globs,
			Tags:        tags,
			Action:      action,
			CreatedAt:   now,
			Source:      Source{Kind: SourceDefault},
		}
	}

	return &Set{
		Version: 1,
		Rules: []Rule{
			mk("R-001", "Deny High risk operations by default",
				DomainGeneral, RiskModerate, nil, nil, ActionDeny),
			mk("R-002", "Require confirmation for Moderate risk config changes",
				DomainConfig, RiskModerate, nil, nil, ActionRequireConfirm),
			mk("R-003", "Require confirmation for package install/remove",
				DomainPackages, RiskModerate, nil, nil, ActionRequireConfirm),
			mk("R-004", "Require confirmation for service changes",
				DomainServices, RiskModerate, nil, nil, ActionRequireConfirm),
			mk("R-005", "Strong confirmation required for /etc/* changes",
				DomainConfig, RiskModerate, []string{"/etc/*"}, nil, ActionRequireStrongConfirm),
			mk("R-006", "Deny changes to SSH configuration",
				DomainConfig, RiskHigh, []string{"/etc/ssh/sshd_config", "/etc/ssh/ssh_config"},
				[]string{"ssh", "network", "auth"}, ActionDeny),
			mk("R-007", "Deny changes to critical system files",
				DomainConfig, RiskHigh, []string{"/etc/shadow", "/etc/passwd", "/etc/sudoers"},
				[]string{"security", "auth"}, ActionDeny),
		},
	}
}
