package vsphere

import (
	"context"
	"fmt"
	"sort"

	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25/mo"

	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/vmops"
)

// vmProps are the only properties the console ever shows, so the retrieval
// stays cheap on large inventories.
var vmProps = []string{"name", "summary", "runtime", "guest"}

// ListVMs walks the whole inventory through a container view and returns the
// VMs whose names contain nameFilter, sorted by name.
func (c *Client) ListVMs(ctx context.Context, nameFilter string) ([]vmops.VirtualMachine, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	m := view.NewManager(c.vc.Client)
	v, err := m.CreateContainerView(ctx, c.vc.ServiceContent.RootFolder, []string{"VirtualMachine"}, true)
	if err != nil {
		return nil, fmt.Errorf("creating container view: %w", err)
	}
	defer func() {
		if err := v.Destroy(ctx); err != nil {
			log.Debug("destroying container view", "error", err)
		}
	}()

	var objs []mo.VirtualMachine
	if err := v.Retrieve(ctx, []string{"VirtualMachine"}, vmProps, &objs); err != nil {
		return nil, fmt.Errorf("retrieving virtual machines: %w", err)
	}

	vms := make([]vmops.VirtualMachine, 0, len(objs))
	for _, obj := range objs {
		vms = append(vms, fromManagedObject(obj))
	}
	vms = vmops.FilterByName(vms, nameFilter)
	sort.Slice(vms, func(i, j int) bool { return vms[i].Name < vms[j].Name })

	log.Debug("listed virtual machines", "total", len(objs), "matched", len(vms), "filter", nameFilter)
	return vms, nil
}

func fromManagedObject(obj mo.VirtualMachine) vmops.VirtualMachine {
	vm := vmops.VirtualMachine{
		Name:       obj.Name,
		PowerState: vmops.PowerState(obj.Runtime.PowerState),
		NumCPU:     obj.Summary.Config.NumCpu,
		MemoryMB:   obj.Summary.Config.MemorySizeMB,
		Ref:        obj.Self,
	}
	if obj.Guest != nil {
		vm.GuestIP = obj.Guest.IpAddress
	}
	return vm
}
