package cli

import (
	"io"
	"sync"
)

// Console is the one terminal shared by every screen of a command. Screens
// deliver on their own goroutines; Console keeps each delivery whole.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole wraps out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Write writes p as a single delivery.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}

// Print runs fn with exclusive use of the terminal. fn must not write to c.
func (c *Console) Print(fn func(w io.Writer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.out)
}
