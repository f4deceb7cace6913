package vmops

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReaderPrompter asks questions over a plain reader/writer pair. One-shot
// commands use it with stdin/stdout; the console uses readline instead.
type ReaderPrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewReaderPrompter returns a Prompter reading lines from r and printing
// prompts to w.
func NewReaderPrompter(r io.Reader, w io.Writer) *ReaderPrompter {
	return &ReaderPrompter{r: bufio.NewReader(r), w: w}
}

// Ask prints the prompt and reads one line. A final unterminated line (piped
// input without a trailing newline) is still accepted.
func (p *ReaderPrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
