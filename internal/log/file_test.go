package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWriter_CreatesDatedFile(t *testing.T) {
	dir := t.TempDir()

	fw, err := newFileWriter(dir)
	if err != nil {
		t.Fatalf("newFileWriter: %v", err)
	}
	defer fw.Close()

	if _, err := fw.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := time.Now().Format("2006-01-02") + ".jsonl"
	if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
		t.Errorf("expected %s to exist: %v", want, err)
	}

	// latest symlink should point at the current file
	target, err := os.Readlink(filepath.Join(dir, "latest"))
	if err != nil {
		t.Fatalf("Readlink latest: %v", err)
	}
	if target != want {
		t.Errorf("latest -> %s, want %s", target, want)
	}
}

func TestCleanupOld(t *testing.T) {
	dir := t.TempDir()

	old := time.Now().AddDate(0, 0, -30).Format("2006-01-02") + ".jsonl"
	recent := time.Now().Format("2006-01-02") + ".jsonl"
	unrelated := "notes.txt"

	for _, name := range []string{old, recent, unrelated} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}

	cleanupOld(dir, 7)

	if _, err := os.Stat(filepath.Join(dir, old)); !os.IsNotExist(err) {
		t.Errorf("old file %s should be removed", old)
	}
	if _, err := os.Stat(filepath.Join(dir, recent)); err != nil {
		t.Errorf("recent file %s should survive: %v", recent, err)
	}
	if _, err := os.Stat(filepath.Join(dir, unrelated)); err != nil {
		t.Errorf("unrelated file %s should survive: %v", unrelated, err)
	}
}
