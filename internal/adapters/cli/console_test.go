package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/example/todo/internal/ports/primary"
)

// overlapWriter records whether two writes were ever in progress at once.
type overlapWriter struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (w *overlapWriter) Write(p []byte) (int, error) {
	if w.inFlight.Add(1) > 1 {
		w.overlap.Store(true)
	}
	defer w.inFlight.Add(-1)
	time.Sleep(50 * time.Microsecond)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *overlapWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestConsole_ScreensNeverWriteAtOnce(t *testing.T) {
	out := &overlapWriter{}
	console := NewConsole(out)
	list := NewListView(console)
	detail := NewDetailView(console)

	tasks := []*primary.Task{
		{ID: 1, Title: "Buy milk"},
		{ID: 2, Title: "Walk dog"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); list.ShowTasks(tasks) }()
		go func() { defer wg.Done(); detail.SaveCompleted() }()
		go func() { defer wg.Done(); detail.ShowError("Task not found") }()
	}
	wg.Wait()

	if out.overlap.Load() {
		t.Error("list and detail screens wrote to the terminal at the same time")
	}

	output := out.String()
	if n := strings.Count(output, "✓ Task saved\n"); n != 20 {
		t.Errorf("expected 20 whole save lines, got %d", n)
	}
	if n := strings.Count(output, "ID   DONE"); n != 20 {
		t.Errorf("expected 20 whole tables, got %d", n)
	}
}

func TestConsole_PrintHoldsTerminal(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf)

	err := console.Print(func(w io.Writer) error {
		_, err := io.WriteString(w, "first\n")
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := console.Write([]byte("second\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf.String() != "first\nsecond\n" {
		t.Errorf("output = %q", buf.String())
	}
}
