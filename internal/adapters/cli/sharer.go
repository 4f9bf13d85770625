package cli

import (
	"fmt"
	"io"

	"github.com/example/todo/internal/ports/secondary"
)

// WriterSharer shares text by printing it, ready to be piped elsewhere.
type WriterSharer struct {
	out io.Writer
}

// NewWriterSharer creates a WriterSharer writing to out.
func NewWriterSharer(out io.Writer) *WriterSharer {
	return &WriterSharer{out: out}
}

// Share writes text followed by a newline.
func (s *WriterSharer) Share(text string) error {
	if _, err := fmt.Fprintln(s.out, text); err != nil {
		return fmt.Errorf("failed to share: %w", err)
	}
	return nil
}

var _ secondary.Sharer = (*WriterSharer)(nil)
