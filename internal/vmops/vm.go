// Package vmops implements the confirmation protocol that sits between the
// vcadmin menus and vCenter. Every mutating operation passes through a gate
// (Y/N, a typed YES plus an exact-name retype for deletion) before anything
// is invoked, and every outcome is printed and journaled.
package vmops

import (
	"strings"

	"github.com/vmware/govmomi/vim25/types"
)

// PowerState mirrors the vSphere power state enum.
type PowerState string

const (
	PoweredOn  PowerState = "poweredOn"
	PoweredOff PowerState = "poweredOff"
	Suspended  PowerState = "suspended"
)

// VirtualMachine is the inventory snapshot of one VM: what the menus display
// and what the gates decide on. Ref is the handle operations act through.
type VirtualMachine struct {
	Name       string                       `json:"name"`
	PowerState PowerState                   `json:"power_state"`
	NumCPU     int32                        `json:"num_cpu"`
	MemoryMB   int32                        `json:"memory_mb"`
	GuestIP    string                       `json:"guest_ip,omitempty"`
	Ref        types.ManagedObjectReference `json:"-"`
}

// MemoryGB returns the configured memory in gigabytes.
func (vm VirtualMachine) MemoryGB() float64 {
	return float64(vm.MemoryMB) / 1024
}

// FilterByName returns the VMs whose name contains name, case-insensitively.
// An empty name matches everything.
func FilterByName(vms []VirtualMachine, name string) []VirtualMachine {
	if name == "" {
		return vms
	}
	lower := strings.ToLower(name)
	var out []VirtualMachine
	for _, vm := range vms {
		if strings.Contains(strings.ToLower(vm.Name), lower) {
			out = append(out, vm)
		}
	}
	return out
}
