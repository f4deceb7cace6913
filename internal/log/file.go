package log

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"
)

// datePattern matches the dated debug files this package writes.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.jsonl$`)

const dayFormat = "2006-01-02"

// fileWriter appends to dir/YYYY-MM-DD.jsonl, rolling to a new file when the
// date changes and keeping a "latest" symlink pointed at the current one.
type fileWriter struct {
	dir string

	mu  sync.Mutex
	f   *os.File
	day string
}

func newFileWriter(dir string) (*fileWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating debug log dir: %w", err)
	}
	fw := &fileWriter{dir: dir}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if err := fw.open(time.Now().Format(dayFormat)); err != nil {
		return nil, err
	}
	return fw, nil
}

func (fw *fileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if today := time.Now().Format(dayFormat); today != fw.day {
		if err := fw.open(today); err != nil {
			return 0, err
		}
	}
	return fw.f.Write(p)
}

func (fw *fileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.f == nil {
		return nil
	}
	err := fw.f.Close()
	fw.f = nil
	fw.day = ""
	return err
}

// open switches the writer to the file for day. Callers hold mu.
func (fw *fileWriter) open(day string) error {
	if fw.f != nil {
		fw.f.Close()
	}

	name := day + ".jsonl"
	f, err := os.OpenFile(filepath.Join(fw.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening debug log file: %w", err)
	}
	fw.f = f
	fw.day = day

	// Repoint "latest" through a temp name and rename.
	link := filepath.Join(fw.dir, "latest")
	tmp := link + ".tmp"
	os.Remove(tmp)
	if err := os.Symlink(name, tmp); err == nil {
		os.Rename(tmp, link)
	}
	return nil
}

// cleanupOld removes dated debug files older than retentionDays.
func cleanupOld(dir string, retentionDays int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !datePattern.MatchString(name) {
			continue
		}
		day, err := time.Parse(dayFormat, name[:len(dayFormat)])
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}
