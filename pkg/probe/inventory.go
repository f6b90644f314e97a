package probe

import (
	"context"
	"os/exec"
)

// defaultPackageManagers and defaultTools are the same fixed probe lists
// executor_core.rs::ToolInventory::detect checks for.
var (
	defaultPackageManagers = []string{"pacman", "yay", "paru", "apt", "dnf", "zypper", "flatpak", "snap"}
	defaultTools           = []string{"grep", "awk", "sed", "du", "df", "find", "ps", "systemctl", "lscpu", "lspci", "free", "ip", "journalctl"}
)

// ToolInventory is a snapshot of which package managers and common tools are
// available on the host, used to decide whether a planned command can even
// be attempted.
type ToolInventory struct {
	PackageManagers []string
	Tools           []string
}

// LookPather abstracts exec.LookPath so Detect can be exercised with a fake
// PATH resolver in tests without touching the real filesystem.
type LookPather func(name string) (string, error)

// Detect probes the host for every known package manager and tool using
// exec.LookPath, returning only the ones actually present.
func Detect(ctx context.Context, lookPath LookPather) ToolInventory {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	inv := ToolInventory{}
	for _, pm := range defaultPackageManagers {
		if ctx.Err() != nil {
			break
		}
		if _, err := lookPath(pm); err == nil {
			inv.PackageManagers = append(inv.PackageManagers, pm)
		}
	}
	for _, tool := range defaultTools {
		if ctx.Err() != nil {
			break
		}
		if _, err := lookPath(tool); err == nil {
			inv.Tools = append(inv.Tools, tool)
		}
	}
	return inv
}

// AllTools returns package managers and tools combined into one list.
func (inv ToolInventory) AllTools() []string {
	all := make([]string, 0, len(inv.PackageManagers)+len(inv.Tools))
	all = append(all, inv.PackageManagers...)
	all = append(all, inv.Tools...)
	return all
}

// HasTool reports whether name is present in either list.
func (inv ToolInventory) HasTool(name string) bool {
	for _, t := range inv.AllTools() {
		if t == name {
			return true
		}
	}
	return false
}
