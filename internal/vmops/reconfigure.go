package vmops

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/ui"
)

// ReconfigureOptions carries pre-supplied hardware values. Nil means prompt
// for them interactively; a zero field leaves that setting unchanged.
type ReconfigureOptions struct {
	NumCPU   int
	MemoryGB int
}

// Reconfigure changes the CPU count and/or memory of the first VM matching
// target. The VM must already be powered off; hot-add is not offered. A
// non-numeric or non-positive value aborts the whole operation before
// anything is invoked.
func (a *Actions) Reconfigure(ctx context.Context, target string, opts *ReconfigureOptions) error {
	log.SetOperation(OpReconfigure)
	defer log.ClearOperation()

	w := a.out()
	fmt.Fprintln(w, "\n=== Reconfigure a VM ===")

	vms, err := a.lookupVMs(ctx)
	if err != nil {
		return err
	}

	if target == "" {
		a.printInventory(vms)
		if target, err = a.ask("\nEnter VM name to reconfigure: "); err != nil {
			return err
		}
	}

	vm, err := firstMatch(vms, target)
	if err != nil {
		return err
	}

	if vm.PowerState != PoweredOff {
		fmt.Fprintf(w, "\n%s %s must be powered off to reconfigure hardware!\n", ui.WarnTag(), vm.Name)
		fmt.Fprintln(w, "Please power off the VM first.")
		a.record(OpReconfigure, vm.Name, OutcomeSkipped, "not powered off")
		return nil
	}

	ok, err := a.confirm(fmt.Sprintf("Reconfigure '%s'? (Y/N): ", vm.Name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "Cancelled.")
		a.record(OpReconfigure, vm.Name, OutcomeDeclined, "")
		return nil
	}

	var numCPU *int32
	var memoryMB *int64
	if opts != nil {
		if opts.NumCPU > 0 {
			v := int32(opts.NumCPU)
			numCPU = &v
		}
		if opts.MemoryGB > 0 {
			v := int64(opts.MemoryGB) * 1024
			memoryMB = &v
		}
	} else {
		change, err := a.confirm("Change CPU count? (Y/N): ")
		if err != nil {
			return err
		}
		if change {
			ans, err := a.ask("Enter new CPU count: ")
			if err != nil {
				return err
			}
			n, convErr := strconv.Atoi(ans)
			if convErr != nil || n <= 0 {
				fmt.Fprintln(w, "Invalid CPU count")
				a.record(OpReconfigure, vm.Name, OutcomeFailed, fmt.Sprintf("invalid cpu count %q", ans))
				return nil
			}
			v := int32(n)
			numCPU = &v
		}

		change, err = a.confirm("Change Memory? (Y/N): ")
		if err != nil {
			return err
		}
		if change {
			ans, err := a.ask("Enter new Memory in GB: ")
			if err != nil {
				return err
			}
			n, convErr := strconv.Atoi(ans)
			if convErr != nil || n <= 0 {
				fmt.Fprintln(w, "Invalid memory size")
				a.record(OpReconfigure, vm.Name, OutcomeFailed, fmt.Sprintf("invalid memory size %q", ans))
				return nil
			}
			v := int64(n) * 1024
			memoryMB = &v
		}
	}

	if numCPU == nil && memoryMB == nil {
		fmt.Fprintln(w, "No changes requested.")
		a.record(OpReconfigure, vm.Name, OutcomeSkipped, "no changes requested")
		return nil
	}

	if a.DryRun {
		fmt.Fprintf(w, "Dry run - would reconfigure %s\n", vm.Name)
		a.record(OpReconfigure, vm.Name, OutcomeDryRun, reconfigureDetail(numCPU, memoryMB))
		return nil
	}

	fmt.Fprintf(w, "\nReconfiguring %s...\n", vm.Name)
	if err := a.Invoker.Reconfigure(ctx, vm, numCPU, memoryMB); err != nil {
		a.record(OpReconfigure, vm.Name, OutcomeFailed, err.Error())
		return fmt.Errorf("reconfiguring %s: %w", vm.Name, err)
	}
	fmt.Fprintf(w, "%s %s has been reconfigured!\n", ui.OKTag(), vm.Name)
	if numCPU != nil {
		fmt.Fprintf(w, "  - CPUs: %d\n", *numCPU)
	}
	if memoryMB != nil {
		fmt.Fprintf(w, "  - Memory: %d GB\n", *memoryMB/1024)
	}
	a.record(OpReconfigure, vm.Name, OutcomeCompleted, reconfigureDetail(numCPU, memoryMB))
	return nil
}

func reconfigureDetail(numCPU *int32, memoryMB *int64) string {
	var parts []string
	if numCPU != nil {
		parts = append(parts, fmt.Sprintf("cpus=%d", *numCPU))
	}
	if memoryMB != nil {
		parts = append(parts, fmt.Sprintf("memory_mb=%d", *memoryMB))
	}
	return strings.Join(parts, " ")
}
