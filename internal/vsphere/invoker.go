package vsphere

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/vmops"
)

// PowerOn starts the VM and waits until vCenter reports it powered on.
func (c *Client) PowerOn(ctx context.Context, vm vmops.VirtualMachine) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	task, err := c.object(vm).PowerOn(ctx)
	if err != nil {
		return fmt.Errorf("starting power on task: %w", err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("power on task: %w", err)
	}
	return c.waitForPowerState(ctx, vm, types.VirtualMachinePowerStatePoweredOn)
}

// PowerOff stops the VM hard and waits until vCenter reports it powered off.
func (c *Client) PowerOff(ctx context.Context, vm vmops.VirtualMachine) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	task, err := c.object(vm).PowerOff(ctx)
	if err != nil {
		return fmt.Errorf("starting power off task: %w", err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("power off task: %w", err)
	}
	return c.waitForPowerState(ctx, vm, types.VirtualMachinePowerStatePoweredOff)
}

// CreateSnapshot snapshots the VM and waits for the task.
func (c *Client) CreateSnapshot(ctx context.Context, vm vmops.VirtualMachine, name, description string, memory, quiesce bool) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	task, err := c.object(vm).CreateSnapshot(ctx, name, description, memory, quiesce)
	if err != nil {
		return fmt.Errorf("starting snapshot task: %w", err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("snapshot task: %w", err)
	}
	log.Debug("snapshot created", "vm", vm.Name, "name", name)
	return nil
}

// Destroy deletes the VM from disk. vCenter rejects this for powered-on VMs;
// the flow above is expected to have powered it off already.
func (c *Client) Destroy(ctx context.Context, vm vmops.VirtualMachine) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	task, err := c.object(vm).Destroy(ctx)
	if err != nil {
		return fmt.Errorf("starting destroy task: %w", err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("destroy task: %w", err)
	}
	log.Debug("vm destroyed", "vm", vm.Name)
	return nil
}

// Reconfigure applies new CPU and/or memory settings. Nil fields are left
// unchanged.
func (c *Client) Reconfigure(ctx context.Context, vm vmops.VirtualMachine, numCPU *int32, memoryMB *int64) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	var spec types.VirtualMachineConfigSpec
	if numCPU != nil {
		spec.NumCPUs = *numCPU
	}
	if memoryMB != nil {
		spec.MemoryMB = *memoryMB
	}

	task, err := c.object(vm).Reconfigure(ctx, spec)
	if err != nil {
		return fmt.Errorf("starting reconfigure task: %w", err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("reconfigure task: %w", err)
	}
	log.Debug("vm reconfigured", "vm", vm.Name)
	return nil
}

// Rename renames the VM and waits for the task.
func (c *Client) Rename(ctx context.Context, vm vmops.VirtualMachine, newName string) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	task, err := c.object(vm).Rename(ctx, newName)
	if err != nil {
		return fmt.Errorf("starting rename task: %w", err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("rename task: %w", err)
	}
	log.Debug("vm renamed", "vm", vm.Name, "new_name", newName)
	return nil
}

func (c *Client) object(vm vmops.VirtualMachine) *object.VirtualMachine {
	return object.NewVirtualMachine(c.vc.Client, vm.Ref)
}

// waitForPowerState polls until the VM reports the wanted state. The power
// task can complete slightly before the runtime state settles, so the first
// read after a transition is retried with backoff.
func (c *Client) waitForPowerState(ctx context.Context, vm vmops.VirtualMachine, want types.VirtualMachinePowerState) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	obj := c.object(vm)
	check := func() error {
		state, err := obj.PowerState(ctx)
		if err != nil {
			return backoff.Permanent(err)
		}
		if state != want {
			return fmt.Errorf("state is %s", state)
		}
		return nil
	}
	if err := backoff.Retry(check, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("waiting for %s to reach %s: %w", vm.Name, want, err)
	}
	return nil
}
