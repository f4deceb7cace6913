package vmops

import (
	"bytes"
	"strings"
	"testing"
)

func TestReaderPrompter_ReadsLine(t *testing.T) {
	var out bytes.Buffer
	p := NewReaderPrompter(strings.NewReader("web01\n"), &out)

	got, err := p.Ask("Enter VM name: ")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if got != "web01" {
		t.Errorf("Ask returned %q, want %q", got, "web01")
	}
	if out.String() != "Enter VM name: " {
		t.Errorf("prompt written = %q", out.String())
	}
}

func TestReaderPrompter_FinalLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := NewReaderPrompter(strings.NewReader("yes"), &out)

	got, err := p.Ask("(YES/NO): ")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if got != "yes" {
		t.Errorf("Ask returned %q, want %q", got, "yes")
	}
}

func TestReaderPrompter_EOF(t *testing.T) {
	var out bytes.Buffer
	p := NewReaderPrompter(strings.NewReader(""), &out)

	if _, err := p.Ask("anything? "); err == nil {
		t.Fatal("expected error on empty input, got nil")
	}
}

func TestReaderPrompter_SequentialAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewReaderPrompter(strings.NewReader("Y\ndb01\n"), &out)

	first, err := p.Ask("sure? ")
	if err != nil {
		t.Fatalf("first Ask: %v", err)
	}
	second, err := p.Ask("name? ")
	if err != nil {
		t.Fatalf("second Ask: %v", err)
	}
	if first != "Y" || second != "db01" {
		t.Errorf("answers = %q, %q", first, second)
	}
}
