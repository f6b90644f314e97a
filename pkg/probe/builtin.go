package probe

import (
	"time"

	"github.com/jjgarcianorway/anna/pkg/policy"
)

// Builtin returns the probes shipped with the daemon, covering the
// hardware/inventory classes the deterministic fallback answerer recognizes
// (spec.md §4.8: CpuInfo, RamInfo, GpuInfo, TopMemoryProcesses, DiskSpace,
// NetworkInterfaces) plus the services/packages/logs probes the LLM-driven
// answer engine schedules for everything else.
func Builtin() []Probe {
	return []Probe{
		{
			ID:            "cpu.info",
			Command:       "lscpu",
			RequiredTools: []string{"lscpu"},
			Timeout:       5 * time.Second,
			Purpose:       "report CPU model, core and thread counts",
			Domain:        policy.DomainGeneral,
			Independent:   true,
		},
		{
			ID:            "ram.info",
			Command:       "free",
			Args:          []string{"-h"},
			RequiredTools: []string{"free"},
			Timeout:       5 * time.Second,
			Purpose:       "report total/used/free memory",
			Domain:        policy.DomainGeneral,
			Independent:   true,
		},
		{
			ID:            "gpu.info",
			Command:       "lspci",
			RequiredTools: []string{"lspci"},
			Timeout:       5 * time.Second,
			Purpose:       "report GPU vendor and model from the PCI bus",
			Domain:        policy.DomainGeneral,
			Independent:   true,
		},
		{
			ID:            "process.top_memory",
			Command:       "ps",
			Args:          []string{"-eo", "pid,comm,%mem,rss", "--sort=-%mem"},
			RequiredTools: []string{"ps"},
			Timeout:       5 * time.Second,
			Purpose:       "list the processes using the most resident memory",
			Domain:        policy.DomainGeneral,
			Independent:   true,
		},
		{
			ID:            "disk.space",
			Command:       "df",
			Args:          []string{"-h"},
			RequiredTools: []string{"df"},
			Timeout:       5 * time.Second,
			Purpose:       "report free/used space per mounted filesystem",
			Domain:        policy.DomainGeneral,
			Independent:   true,
		},
		{
			ID:            "network.interfaces",
			Command:       "ip",
			Args:          []string{"-brief", "address"},
			RequiredTools: []string{"ip"},
			Timeout:       5 * time.Second,
			Purpose:       "list network interfaces and their addresses",
			Domain:        policy.DomainNetwork,
			Independent:   true,
		},
		{
			ID:            "package.query_installed",
			Command:       "pacman",
			Args:          []string{"-Qi"},
			RequiredTools: []string{"pacman"},
			Timeout:       5 * time.Second,
			Purpose:       "check whether a package is installed and show its metadata",
			Domain:        policy.DomainPackages,
		},
		{
			ID:            "service.status",
			Command:       "systemctl",
			Args:          []string{"status"},
			RequiredTools: []string{"systemctl"},
			Timeout:       5 * time.Second,
			Purpose:       "report a systemd unit's active/enabled state",
			Domain:        policy.DomainServices,
		},
		{
			ID:            "service.list_failed",
			Command:       "systemctl",
			Args:          []string{"list-units", "--failed", "--no-legend"},
			RequiredTools: []string{"systemctl"},
			Timeout:       5 * time.Second,
			Purpose:       "list systemd units currently in a failed state",
			Domain:        policy.DomainServices,
			Independent:   true,
		},
		{
			ID:            "log.grep_journal",
			Command:       "journalctl",
			Args:          []string{"-n", "200", "--no-pager"},
			RequiredTools: []string{"journalctl"},
			Timeout:       8 * time.Second,
			Purpose:       "search recent journal entries for a pattern",
			Domain:        policy.DomainGeneral,
		},
	}
}
