// Package ioutil prints the protocol-significant lines that spec.md §6
// requires on standard output ("Server: Received request at position N",
// "Inserting key: X", "Value: Y", "Queue is full", and so on). These lines
// are grepped verbatim by external test harnesses, so they are never
// decorated with timestamps, levels, or prefixes — that's what
// internal/diag is for. See SPEC_FULL.md §10.1.
package ioutil

import (
	"fmt"
	"io"
	"os"
)

// Writer prints undecorated protocol output.
type Writer struct {
	out io.Writer
}

// NewWriter wraps an arbitrary io.Writer; NewWriter(nil) behaves like
// Stdout().
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out}
}

// Stdout returns a Writer over os.Stdout.
func Stdout() *Writer { return NewWriter(os.Stdout) }

// Printf writes a formatted line, appending a trailing newline.
func (w *Writer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(w.out, format+"\n", a...)
}

// Println writes its arguments space-separated with a trailing newline.
func (w *Writer) Println(a ...any) {
	_, _ = fmt.Fprintln(w.out, a...)
}
