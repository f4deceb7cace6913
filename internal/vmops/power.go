package vmops

import (
	"context"
	"fmt"

	"github.com/opsforge/vcadmin/internal/log"
)

// powerDirection parameterizes the two power flows, which differ only in the
// desired end state and their wording.
type powerDirection struct {
	op      string
	verb    string
	header  string
	prompt  string
	bulkAsk string
	desired PowerState
	already string
	acting  string
	done    string
	failed  string
	dryRun  string
}

var powerOnDirection = powerDirection{
	op:      OpPowerOn,
	verb:    "power on",
	header:  "=== Power On VM(s) ===",
	prompt:  "\nEnter VM name to power on (leave empty for ALL): ",
	bulkAsk: "Are you sure you want to power on ALL VMs? (Y/N): ",
	desired: PoweredOn,
	already: "%s is already powered on, skipping!\n",
	acting:  "%s is not powered on, powering on now!\n",
	done:    "%s is now powered on!\n",
	failed:  "Failed to power on %s: %v\n",
	dryRun:  "Dry run - would power on %s\n",
}

var powerOffDirection = powerDirection{
	op:      OpPowerOff,
	verb:    "power off",
	header:  "=== Power Off VM(s) ===",
	prompt:  "\nEnter VM name to power off (leave empty for ALL): ",
	bulkAsk: "Are you sure you want to power off ALL VMs? (Y/N): ",
	desired: PoweredOff,
	already: "%s is already powered off, skipping!\n",
	acting:  "%s is powered on, powering off now!\n",
	done:    "%s is now powered off!\n",
	failed:  "Failed to power off %s: %v\n",
	dryRun:  "Dry run - would power off %s\n",
}

// PowerOn powers on the named VM, or the whole inventory when target is
// empty after the bulk confirmation. An empty target prompts, offering the
// inventory first.
func (a *Actions) PowerOn(ctx context.Context, target string) error {
	return a.power(ctx, powerOnDirection, target)
}

// PowerOff is PowerOn's mirror; see there.
func (a *Actions) PowerOff(ctx context.Context, target string) error {
	return a.power(ctx, powerOffDirection, target)
}

func (a *Actions) power(ctx context.Context, dir powerDirection, target string) error {
	log.SetOperation(dir.op)
	defer log.ClearOperation()

	w := a.out()
	fmt.Fprintf(w, "\n%s\n", dir.header)

	vms, err := a.lookupVMs(ctx)
	if err != nil {
		return err
	}

	if target == "" {
		a.printInventory(vms)
		if target, err = a.ask(dir.prompt); err != nil {
			return err
		}
	}

	var targets []VirtualMachine
	if target != "" {
		targets = FilterByName(vms, target)
		if len(targets) == 0 {
			return fmt.Errorf("%w matching '%s'", ErrNoMatch, target)
		}
	} else {
		ok, err := a.confirm(dir.bulkAsk)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Cancelled.")
			a.record(dir.op, BulkTarget, OutcomeDeclined, "bulk confirmation declined")
			return nil
		}
		targets = vms
	}

	// Each VM is handled on its own: already-in-state VMs are skipped and a
	// failure never stops the rest of the batch.
	var failed int
	for _, vm := range targets {
		if vm.PowerState == dir.desired {
			fmt.Fprintf(w, dir.already, vm.Name)
			a.record(dir.op, vm.Name, OutcomeSkipped, "already "+string(dir.desired))
			continue
		}
		if a.DryRun {
			fmt.Fprintf(w, dir.dryRun, vm.Name)
			a.record(dir.op, vm.Name, OutcomeDryRun, "")
			continue
		}
		fmt.Fprintf(w, dir.acting, vm.Name)
		var invokeErr error
		if dir.desired == PoweredOn {
			invokeErr = a.Invoker.PowerOn(ctx, vm)
		} else {
			invokeErr = a.Invoker.PowerOff(ctx, vm)
		}
		if invokeErr != nil {
			fmt.Fprintf(w, dir.failed, vm.Name, invokeErr)
			a.record(dir.op, vm.Name, OutcomeFailed, invokeErr.Error())
			failed++
			continue
		}
		fmt.Fprintf(w, dir.done, vm.Name)
		a.record(dir.op, vm.Name, OutcomeCompleted, "")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d VMs failed to %s", failed, len(targets), dir.verb)
	}
	return nil
}
