package vmops

import (
	"context"
	"fmt"
	"strings"

	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/ui"
)

// Delete removes the first VM matching target from disk. Three checks stand
// between the prompt and the Destroy call: a typed YES (any case), an
// exact-name retype (case-sensitive), and a powered-off requirement with an
// offered power-off.
func (a *Actions) Delete(ctx context.Context, target string) error {
	log.SetOperation(OpDelete)
	defer log.ClearOperation()

	w := a.out()
	fmt.Fprintln(w, "\n=== Delete a VM ===")

	vms, err := a.lookupVMs(ctx)
	if err != nil {
		return err
	}

	if target == "" {
		a.printInventory(vms)
		if target, err = a.ask("\nEnter VM name to DELETE: "); err != nil {
			return err
		}
	}

	vm, err := firstMatch(vms, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s WARNING: You are about to DELETE '%s' permanently!\n", ui.WarnTag(), vm.Name)

	ans, err := a.ask(fmt.Sprintf("Are you ABSOLUTELY SURE you want to delete '%s'? (YES/NO): ", vm.Name))
	if err != nil {
		return err
	}
	if !strings.EqualFold(ans, "yes") {
		fmt.Fprintln(w, "Cancelled.")
		a.record(OpDelete, vm.Name, OutcomeDeclined, "first confirmation")
		return nil
	}

	typed, err := a.ask(fmt.Sprintf("Type the VM name '%s' to confirm deletion: ", vm.Name))
	if err != nil {
		return err
	}
	if typed != vm.Name {
		fmt.Fprintln(w, "VM name does not match. Deletion cancelled.")
		a.record(OpDelete, vm.Name, OutcomeMismatch, fmt.Sprintf("typed %q", typed))
		return nil
	}

	if vm.PowerState != PoweredOff {
		fmt.Fprintf(w, "\n%s must be powered off before deletion.\n", vm.Name)
		ok, err := a.confirm("Power off now? (Y/N): ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Deletion cancelled.")
			a.record(OpDelete, vm.Name, OutcomeDeclined, "power off refused")
			return nil
		}
		if a.DryRun {
			fmt.Fprintf(w, "Dry run - would power off %s\n", vm.Name)
		} else {
			if err := a.Invoker.PowerOff(ctx, vm); err != nil {
				a.record(OpDelete, vm.Name, OutcomeFailed, "power off: "+err.Error())
				return fmt.Errorf("powering off %s: %w", vm.Name, err)
			}
			fmt.Fprintf(w, "%s powered off.\n", vm.Name)
		}
	}

	if a.DryRun {
		fmt.Fprintf(w, "Dry run - would delete %s\n", vm.Name)
		a.record(OpDelete, vm.Name, OutcomeDryRun, "")
		return nil
	}

	fmt.Fprintf(w, "\nDeleting %s from disk...\n", vm.Name)
	if err := a.Invoker.Destroy(ctx, vm); err != nil {
		a.record(OpDelete, vm.Name, OutcomeFailed, err.Error())
		return fmt.Errorf("deleting %s: %w", vm.Name, err)
	}
	fmt.Fprintf(w, "%s %s has been deleted successfully!\n", ui.OKTag(), vm.Name)
	a.record(OpDelete, vm.Name, OutcomeCompleted, "")
	return nil
}
