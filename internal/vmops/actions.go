package vmops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opsforge/vcadmin/internal/log"
)

// Directory answers inventory questions.
type Directory interface {
	// ListVMs returns every VM whose name contains nameFilter,
	// case-insensitively. An empty filter returns the full inventory.
	ListVMs(ctx context.Context, nameFilter string) ([]VirtualMachine, error)
}

// Invoker executes operations against vCenter. Implementations block until
// the underlying task reaches a terminal state and return the task fault as
// an error.
type Invoker interface {
	PowerOn(ctx context.Context, vm VirtualMachine) error
	PowerOff(ctx context.Context, vm VirtualMachine) error
	CreateSnapshot(ctx context.Context, vm VirtualMachine, name, description string, memory, quiesce bool) error
	Destroy(ctx context.Context, vm VirtualMachine) error
	Reconfigure(ctx context.Context, vm VirtualMachine, numCPU *int32, memoryMB *int64) error
	Rename(ctx context.Context, vm VirtualMachine, newName string) error
}

// Prompter asks the user one question and returns the answer line.
// The console backs this with readline, one-shot commands with stdin,
// and tests with a script.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// Recorder receives one call per protocol outcome for the journal.
type Recorder interface {
	Record(op, target, outcome, detail string)
}

// Outcomes recorded for each operation.
const (
	OutcomeCompleted = "completed"
	OutcomeDeclined  = "declined"
	OutcomeMismatch  = "mismatch"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
	OutcomeDryRun    = "dry-run"
)

// Operation names recorded for each outcome.
const (
	OpPowerOn     = "power_on"
	OpPowerOff    = "power_off"
	OpSnapshot    = "snapshot"
	OpDelete      = "delete"
	OpReconfigure = "reconfigure"
	OpRename      = "rename"
)

// ErrNoMatch tags lookup failures so callers can test them with errors.Is.
var ErrNoMatch = errors.New("no VM found")

// BulkTarget is the journal target recorded for whole-inventory operations.
const BulkTarget = "*"

// Actions runs the gated flows. Directory, Invoker, and Prompter must be set;
// Recorder and Out are optional.
type Actions struct {
	Directory Directory
	Invoker   Invoker
	Prompter  Prompter
	Recorder  Recorder
	Out       io.Writer
	DryRun    bool
}

func (a *Actions) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *Actions) record(op, target, outcome, detail string) {
	log.Debug("outcome recorded", "target", target, "outcome", outcome)
	if a.Recorder != nil {
		a.Recorder.Record(op, target, outcome, detail)
	}
}

// ask trims the user's reply to the given prompt.
func (a *Actions) ask(prompt string) (string, error) {
	line, err := a.Prompter.Ask(prompt)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a Y/N question. Only "y" or "Y" proceeds; anything else,
// including "yes", declines.
func (a *Actions) confirm(prompt string) (bool, error) {
	ans, err := a.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(ans, "y"), nil
}

func (a *Actions) lookupVMs(ctx context.Context) ([]VirtualMachine, error) {
	vms, err := a.Directory.ListVMs(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing virtual machines: %w", err)
	}
	return vms, nil
}

// printInventory lists the VM names the way the menu always has, so the user
// sees what a target prompt can match.
func (a *Actions) printInventory(vms []VirtualMachine) {
	w := a.out()
	fmt.Fprintln(w, "\nVMs managed by vCenter:")
	for _, vm := range vms {
		fmt.Fprintf(w, "  - %s\n", vm.Name)
	}
}

// firstMatch resolves a target name to a single VM: the first
// case-insensitive substring match, mirroring the menu's pick-first rule.
func firstMatch(vms []VirtualMachine, name string) (VirtualMachine, error) {
	if name == "" {
		return VirtualMachine{}, fmt.Errorf("%w: no name given", ErrNoMatch)
	}
	matches := FilterByName(vms, name)
	if len(matches) == 0 {
		return VirtualMachine{}, fmt.Errorf("%w matching '%s'", ErrNoMatch, name)
	}
	return matches[0], nil
}
