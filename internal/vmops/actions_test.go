package vmops

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/vmware/govmomi/vim25/types"
)

// scriptPrompter replays queued answers and records every prompt it was
// asked, so tests can assert both the dialogue and its order.
type scriptPrompter struct {
	answers []string
	prompts []string
}

func (p *scriptPrompter) Ask(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return "", errors.New("prompter script exhausted")
	}
	ans := p.answers[0]
	p.answers = p.answers[1:]
	return ans, nil
}

// fakeDirectory serves a fixed inventory.
type fakeDirectory struct {
	vms []VirtualMachine
	err error
}

func (d *fakeDirectory) ListVMs(ctx context.Context, nameFilter string) ([]VirtualMachine, error) {
	if d.err != nil {
		return nil, d.err
	}
	return FilterByName(d.vms, nameFilter), nil
}

type snapshotCall struct {
	vm          string
	name        string
	description string
	memory      bool
	quiesce     bool
}

type reconfigureCall struct {
	vm       string
	numCPU   *int32
	memoryMB *int64
}

type renameCall struct {
	vm      string
	newName string
}

// fakeInvoker counts every invocation and can be told to fail named VMs.
type fakeInvoker struct {
	powerOns     []string
	powerOffs    []string
	snapshots    []snapshotCall
	destroys     []string
	reconfigures []reconfigureCall
	renames      []renameCall
	failOn       map[string]error
}

func (i *fakeInvoker) fail(vm VirtualMachine) error {
	if i.failOn == nil {
		return nil
	}
	return i.failOn[vm.Name]
}

func (i *fakeInvoker) PowerOn(ctx context.Context, vm VirtualMachine) error {
	i.powerOns = append(i.powerOns, vm.Name)
	return i.fail(vm)
}

func (i *fakeInvoker) PowerOff(ctx context.Context, vm VirtualMachine) error {
	i.powerOffs = append(i.powerOffs, vm.Name)
	return i.fail(vm)
}

func (i *fakeInvoker) CreateSnapshot(ctx context.Context, vm VirtualMachine, name, description string, memory, quiesce bool) error {
	i.snapshots = append(i.snapshots, snapshotCall{vm.Name, name, description, memory, quiesce})
	return i.fail(vm)
}

func (i *fakeInvoker) Destroy(ctx context.Context, vm VirtualMachine) error {
	i.destroys = append(i.destroys, vm.Name)
	return i.fail(vm)
}

func (i *fakeInvoker) Reconfigure(ctx context.Context, vm VirtualMachine, numCPU *int32, memoryMB *int64) error {
	i.reconfigures = append(i.reconfigures, reconfigureCall{vm.Name, numCPU, memoryMB})
	return i.fail(vm)
}

func (i *fakeInvoker) Rename(ctx context.Context, vm VirtualMachine, newName string) error {
	i.renames = append(i.renames, renameCall{vm.Name, newName})
	return i.fail(vm)
}

// calls returns the total number of invocations of any kind, for the
// "declined means zero calls" assertions.
func (i *fakeInvoker) calls() int {
	return len(i.powerOns) + len(i.powerOffs) + len(i.snapshots) +
		len(i.destroys) + len(i.reconfigures) + len(i.renames)
}

type recordedOp struct {
	op      string
	target  string
	outcome string
	detail  string
}

// memRecorder captures journal records in memory.
type memRecorder struct {
	records []recordedOp
}

func (r *memRecorder) Record(op, target, outcome, detail string) {
	r.records = append(r.records, recordedOp{op, target, outcome, detail})
}

func (r *memRecorder) outcomes() []string {
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.outcome
	}
	return out
}

func testVM(name string, state PowerState) VirtualMachine {
	return VirtualMachine{
		Name:       name,
		PowerState: state,
		NumCPU:     2,
		MemoryMB:   4096,
		Ref:        types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-" + name},
	}
}

// testHarness bundles the fakes behind an Actions value.
type testHarness struct {
	actions *Actions
	invoker *fakeInvoker
	prompt  *scriptPrompter
	rec     *memRecorder
	out     *bytes.Buffer
}

func newHarness(vms []VirtualMachine, answers ...string) *testHarness {
	h := &testHarness{
		invoker: &fakeInvoker{},
		prompt:  &scriptPrompter{answers: answers},
		rec:     &memRecorder{},
		out:     &bytes.Buffer{},
	}
	h.actions = &Actions{
		Directory: &fakeDirectory{vms: vms},
		Invoker:   h.invoker,
		Prompter:  h.prompt,
		Recorder:  h.rec,
		Out:       h.out,
	}
	return h
}

func (h *testHarness) output() string {
	return h.out.String()
}

var errBoom = fmt.Errorf("task failed: simulated fault")
