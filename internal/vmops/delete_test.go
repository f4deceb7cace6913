package vmops

import (
	"context"
	"strings"
	"testing"
)

func TestDelete_FullConfirmation(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOff)}, "YES", "db01")

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(h.invoker.destroys) != 1 || h.invoker.destroys[0] != "db01" {
		t.Errorf("destroy calls = %v, want [db01]", h.invoker.destroys)
	}
	if !strings.Contains(h.output(), "WARNING: You are about to DELETE 'db01' permanently!") {
		t.Errorf("missing warning banner:\n%s", h.output())
	}
	if !strings.Contains(h.output(), "db01 has been deleted successfully!") {
		t.Errorf("missing success line:\n%s", h.output())
	}
	if got := h.rec.outcomes(); len(got) != 1 || got[0] != OutcomeCompleted {
		t.Errorf("recorded outcomes = %v, want [completed]", got)
	}
}

func TestDelete_FirstGateAcceptsAnyCaseYes(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOff)}, "yes", "db01")

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(h.invoker.destroys) != 1 {
		t.Errorf("lowercase yes should pass the first gate, destroys = %v", h.invoker.destroys)
	}
}

func TestDelete_FirstGateRejectsBareY(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOff)}, "Y")

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if h.invoker.calls() != 0 {
		t.Errorf("bare Y must not pass the YES gate, invoked %d operations", h.invoker.calls())
	}
	if !strings.Contains(h.output(), "Cancelled.") {
		t.Errorf("missing Cancelled. in output:\n%s", h.output())
	}
	if got := h.rec.outcomes(); len(got) != 1 || got[0] != OutcomeDeclined {
		t.Errorf("recorded outcomes = %v, want [declined]", got)
	}
}

func TestDelete_NameRetypeIsCaseSensitive(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOff)}, "YES", "DB01")

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if h.invoker.calls() != 0 {
		t.Errorf("name mismatch still invoked %d operations", h.invoker.calls())
	}
	if !strings.Contains(h.output(), "VM name does not match. Deletion cancelled.") {
		t.Errorf("missing mismatch line:\n%s", h.output())
	}
	if len(h.rec.records) != 1 || h.rec.records[0].outcome != OutcomeMismatch {
		t.Errorf("recorded = %+v, want one mismatch record", h.rec.records)
	}
	if !strings.Contains(h.rec.records[0].detail, `"DB01"`) {
		t.Errorf("mismatch detail = %q, want the typed name", h.rec.records[0].detail)
	}
}

func TestDelete_PoweredOnOffersPowerOff(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOn)}, "YES", "db01", "Y")

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(h.invoker.powerOffs) != 1 || h.invoker.powerOffs[0] != "db01" {
		t.Errorf("power off calls = %v, want [db01]", h.invoker.powerOffs)
	}
	if len(h.invoker.destroys) != 1 {
		t.Errorf("destroy calls = %v, want [db01] after the power off", h.invoker.destroys)
	}
	if !strings.Contains(h.output(), "db01 must be powered off before deletion.") {
		t.Errorf("missing power state line:\n%s", h.output())
	}
	if !strings.Contains(h.output(), "db01 powered off.") {
		t.Errorf("missing powered off line:\n%s", h.output())
	}
}

func TestDelete_PowerOffRefusedCancels(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOn)}, "YES", "db01", "N")

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if h.invoker.calls() != 0 {
		t.Errorf("refused power off still invoked %d operations", h.invoker.calls())
	}
	if !strings.Contains(h.output(), "Deletion cancelled.") {
		t.Errorf("missing Deletion cancelled. line:\n%s", h.output())
	}
}

func TestDelete_SubstringTargetDeletesFirstMatchOnly(t *testing.T) {
	h := newHarness([]VirtualMachine{
		testVM("web01", PoweredOff),
		testVM("web02", PoweredOff),
	}, "YES", "web01")

	if err := h.actions.Delete(context.Background(), "web"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(h.invoker.destroys) != 1 || h.invoker.destroys[0] != "web01" {
		t.Errorf("destroy calls = %v, want only the first match", h.invoker.destroys)
	}
}

func TestDelete_DryRun(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOff)}, "YES", "db01")
	h.actions.DryRun = true

	if err := h.actions.Delete(context.Background(), "db01"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if h.invoker.calls() != 0 {
		t.Errorf("dry run still invoked %d operations", h.invoker.calls())
	}
	if !strings.Contains(h.output(), "Dry run - would delete db01") {
		t.Errorf("missing dry run line:\n%s", h.output())
	}
	if got := h.rec.outcomes(); len(got) != 1 || got[0] != OutcomeDryRun {
		t.Errorf("recorded outcomes = %v, want [dry-run]", got)
	}
}

func TestDelete_PowerOffFailureAborts(t *testing.T) {
	h := newHarness([]VirtualMachine{testVM("db01", PoweredOn)}, "YES", "db01", "Y")
	h.invoker.failOn = map[string]error{"db01": errBoom}

	err := h.actions.Delete(context.Background(), "db01")
	if err == nil || !strings.Contains(err.Error(), "powering off db01") {
		t.Fatalf("error = %v, want wrapped power off failure", err)
	}
	if len(h.invoker.destroys) != 0 {
		t.Errorf("destroy must not run after a failed power off, calls = %v", h.invoker.destroys)
	}
}
