package vsphere

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/opsforge/vcadmin/internal/vmops"
)

func TestListVMs(t *testing.T) {
	c := newSimClient(t)

	vms, err := c.ListVMs(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, vms)

	sorted := sort.SliceIsSorted(vms, func(i, j int) bool { return vms[i].Name < vms[j].Name })
	assert.True(t, sorted, "inventory must come back sorted by name")

	for _, vm := range vms {
		assert.NotEmpty(t, vm.Name)
		assert.Equal(t, vmops.PoweredOn, vm.PowerState, "%s should start powered on", vm.Name)
		assert.Equal(t, "VirtualMachine", vm.Ref.Type)
		assert.NotEmpty(t, vm.Ref.Value)
	}
}

func TestListVMs_FilterIsCaseInsensitive(t *testing.T) {
	c := newSimClient(t)

	all, err := c.ListVMs(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, all)

	matched, err := c.ListVMs(context.Background(), "dc0_h0")
	require.NoError(t, err)
	require.NotEmpty(t, matched)
	assert.Less(t, len(matched), len(all))

	for _, vm := range matched {
		assert.Contains(t, vm.Name, "DC0_H0")
	}
}

func TestListVMs_NoMatch(t *testing.T) {
	c := newSimClient(t)

	vms, err := c.ListVMs(context.Background(), "no-such-vm")
	require.NoError(t, err)
	assert.Empty(t, vms)
}

func TestFromManagedObject(t *testing.T) {
	obj := mo.VirtualMachine{
		ManagedEntity: mo.ManagedEntity{
			ExtensibleManagedObject: mo.ExtensibleManagedObject{
				Self: types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-42"},
			},
			Name: "web01",
		},
		Summary: types.VirtualMachineSummary{
			Config: types.VirtualMachineConfigSummary{NumCpu: 2, MemorySizeMB: 4096},
		},
		Runtime: types.VirtualMachineRuntimeInfo{
			PowerState: types.VirtualMachinePowerStatePoweredOn,
		},
		Guest: &types.GuestInfo{IpAddress: "10.0.0.5"},
	}

	vm := fromManagedObject(obj)
	assert.Equal(t, "web01", vm.Name)
	assert.Equal(t, vmops.PoweredOn, vm.PowerState)
	assert.Equal(t, int32(2), vm.NumCPU)
	assert.Equal(t, int32(4096), vm.MemoryMB)
	assert.Equal(t, "10.0.0.5", vm.GuestIP)
	assert.Equal(t, "vm-42", vm.Ref.Value)
}

func TestFromManagedObject_NoGuestInfo(t *testing.T) {
	obj := mo.VirtualMachine{
		ManagedEntity: mo.ManagedEntity{Name: "bare"},
		Runtime: types.VirtualMachineRuntimeInfo{
			PowerState: types.VirtualMachinePowerStatePoweredOff,
		},
	}

	vm := fromManagedObject(obj)
	assert.Equal(t, "bare", vm.Name)
	assert.Equal(t, vmops.PoweredOff, vm.PowerState)
	assert.Empty(t, vm.GuestIP)
}
