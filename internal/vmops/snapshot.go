package vmops

import (
	"context"
	"fmt"
	"time"

	"github.com/opsforge/vcadmin/internal/log"
)

// SnapshotOptions carries pre-supplied snapshot fields. Nil means prompt for
// them interactively.
type SnapshotOptions struct {
	Name        string
	Description string
}

// CreateSnapshot snapshots the first VM matching target after a Y/N
// confirmation. Snapshots never include guest memory and never quiesce.
// An empty snapshot name gets a timestamped default.
func (a *Actions) CreateSnapshot(ctx context.Context, target string, opts *SnapshotOptions) error {
	log.SetOperation(OpSnapshot)
	defer log.ClearOperation()

	w := a.out()
	fmt.Fprintln(w, "\n=== Take a Snapshot ===")

	vms, err := a.lookupVMs(ctx)
	if err != nil {
		return err
	}

	if target == "" {
		a.printInventory(vms)
		if target, err = a.ask("\nEnter VM name to snapshot: "); err != nil {
			return err
		}
	}

	vm, err := firstMatch(vms, target)
	if err != nil {
		return err
	}

	ok, err := a.confirm(fmt.Sprintf("Create snapshot of '%s'? (Y/N): ", vm.Name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Cancelled.")
		a.record(OpSnapshot, vm.Name, OutcomeDeclined, "")
		return nil
	}

	var name, description string
	if opts != nil {
		name, description = opts.Name, opts.Description
	} else {
		if name, err = a.ask("Enter snapshot name: "); err != nil {
			return err
		}
		if description, err = a.ask("Enter snapshot description (optional): "); err != nil {
			return err
		}
	}
	if name == "" {
		name = "Snapshot-" + time.Now().Format("20060102-150405")
	}

	if a.DryRun {
		fmt.Fprintf(w, "Dry run - would create snapshot '%s' for %s\n", name, vm.Name)
		a.record(OpSnapshot, vm.Name, OutcomeDryRun, "name="+name)
		return nil
	}

	fmt.Fprintf(w, "\nCreating snapshot '%s' for %s...\n", name, vm.Name)
	if err := a.Invoker.CreateSnapshot(ctx, vm, name, description, false, false); err != nil {
		a.record(OpSnapshot, vm.Name, OutcomeFailed, err.Error())
		return fmt.Errorf("creating snapshot: %w", err)
	}
	fmt.Fprintf(w, "Snapshot '%s' created successfully!\n", name)
	a.record(OpSnapshot, vm.Name, OutcomeCompleted, "name="+name)
	return nil
}
