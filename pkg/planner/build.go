package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jjgarcianorway/anna/pkg/policy"
)

// ErrBlacklistedCommand is returned when Build is asked to include a command
// on the safety blacklist. Rejected at build time, never at execution time
// (spec.md §4.6: "The planner rejects at build time").
var ErrBlacklistedCommand = errors.New("planner: command is blacklisted")

// blacklistedPrograms mirrors spec.md §4.6's safety blacklist exactly.
var blacklistedPrograms = map[string]bool{
	"rm": true, "dd": true, "mkfs": true, "fdisk": true, "parted": true,
	"shutdown": true, "reboot": true,
}

// removalFlags are package-manager flags that indicate a removal operation;
// any package-manager invocation carrying one is blacklisted regardless of
// program name.
var removalFlags = []string{"-R", "-Rs", "-Rns", "--remove", "remove", "uninstall", "erase"}

var packageManagers = map[string]bool{
	"pacman": true, "yay": true, "paru": true, "apt": true, "apt-get": true,
	"dnf": true, "zypper": true, "flatpak": true, "snap": true,
}

// Spec is the input to Build: everything needed to construct a CommandPlan
// for one PlannedAction, already evaluated against policy.
type Spec struct {
	Label     string
	Commands  []PlannedCommand
	Fallbacks []PlannedCommand
	Decision  policy.Decision
}

// Build validates every command against the safety blacklist, derives the
// plan's overall SafetyLevel from the highest per-command risk level, and
// attaches the already-computed PolicyDecision. It does not run anything.
func Build(spec Spec) (CommandPlan, error) {
	for _, cmd := range append(append([]PlannedCommand{}, spec.Commands...), spec.Fallbacks...) {
		if err := checkBlacklist(cmd); err != nil {
			return CommandPlan{}, err
		}
	}

	return CommandPlan{
		Commands:    spec.Commands,
		Fallbacks:   spec.Fallbacks,
		SafetyLevel: deriveSafetyLevel(spec.Commands),
		Decision:    spec.Decision,
		Label:       spec.Label,
	}, nil
}

func checkBlacklist(cmd PlannedCommand) error {
	if blacklistedPrograms[cmd.Program] {
		return fmt.Errorf("%w: %s", ErrBlacklistedCommand, cmd.Program)
	}
	if packageManagers[cmd.Program] {
		for _, arg := range cmd.Args {
			for _, flag := range removalFlags {
				if strings.EqualFold(arg, flag) {
					return fmt.Errorf("%w: %s %s (removal flag)", ErrBlacklistedCommand, cmd.Program, arg)
				}
			}
		}
	}
	return nil
}

// deriveSafetyLevel maps the highest risk level across commands to a plan's
// declared SafetyLevel. A plan touching any High-risk command is Risky and
// will be refused at execution, per spec.md §3's CommandPlan invariant.
func deriveSafetyLevel(commands []PlannedCommand) SafetyLevel {
	highest := policy.RiskSafe
	for _, cmd := range commands {
		if cmd.RiskLevel > highest {
			highest = cmd.RiskLevel
		}
	}

	switch highest {
	case policy.RiskHigh:
		return SafetyRisky
	case policy.RiskModerate:
		return SafetyCareful
	default:
		return SafetyRoutine
	}
}
