package vmops

import (
	"context"
	"fmt"

	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/ui"
)

// Rename renames the first VM matching target. newName may be pre-supplied;
// empty means prompt for it. An empty new name is rejected before anything
// is invoked.
func (a *Actions) Rename(ctx context.Context, target, newName string) error {
	log.SetOperation(OpRename)
	defer log.ClearOperation()

	w := a.out()
	fmt.Fprintln(w, "\n=== Rename a VM ===")

	vms, err := a.lookupVMs(ctx)
	if err != nil {
		return err
	}

	if target == "" {
		a.printInventory(vms)
		if target, err = a.ask("\nEnter VM name to rename: "); err != nil {
			return err
		}
	}

	vm, err := firstMatch(vms, target)
	if err != nil {
		return err
	}

	ok, err := a.confirm(fmt.Sprintf("Rename '%s'? (Y/N): ", vm.Name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Cancelled.")
		a.record(OpRename, vm.Name, OutcomeDeclined, "")
		return nil
	}

	if newName == "" {
		if newName, err = a.ask("Enter new VM name: "); err != nil {
			return err
		}
	}
	if newName == "" {
		fmt.Fprintln(w, "Name cannot be empty")
		a.record(OpRename, vm.Name, OutcomeFailed, "empty name")
		return nil
	}

	if a.DryRun {
		fmt.Fprintf(w, "Dry run - would rename %s to %s\n", vm.Name, newName)
		a.record(OpRename, vm.Name, OutcomeDryRun, "new_name="+newName)
		return nil
	}

	fmt.Fprintf(w, "\nRenaming %s to %s...\n", vm.Name, newName)
	if err := a.Invoker.Rename(ctx, vm, newName); err != nil {
		a.record(OpRename, vm.Name, OutcomeFailed, err.Error())
		return fmt.Errorf("renaming %s: %w", vm.Name, err)
	}
	fmt.Fprintf(w, "%s VM renamed successfully to '%s'!\n", ui.OKTag(), newName)
	a.record(OpRename, vm.Name, OutcomeCompleted, "new_name="+newName)
	return nil
}
