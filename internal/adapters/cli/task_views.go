package cli

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/todo/internal/core/task"
	"github.com/example/todo/internal/ports/primary"
)

// ListView renders the list screen as a table on a terminal.
// It is a thin view: it prints what the presenter hands it and remembers the
// last failure so the command can exit non-zero.
type ListView struct {
	console *Console

	mu      sync.Mutex
	tasks   []*primary.Task
	failure string
	quiet   bool
}

// NewListView creates a ListView printing to console.
func NewListView(console *Console) *ListView {
	return &ListView{console: console}
}

// SetQuiet suppresses table output until re-enabled. Errors are still shown.
func (v *ListView) SetQuiet(quiet bool) {
	v.mu.Lock()
	v.quiet = quiet
	v.mu.Unlock()
}

// ShowTasks stores the snapshot and prints it unless quiet.
func (v *ListView) ShowTasks(tasks []*primary.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tasks = tasks
	if v.quiet {
		return
	}
	_ = v.console.Print(func(w io.Writer) error {
		return renderTasks(w, tasks)
	})
}

// ShowError prints message in red.
func (v *ListView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failure = message
	showError(v.console, message)
}

// Tasks returns the last rendered snapshot.
func (v *ListView) Tasks() []*primary.Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tasks
}

// Failure returns the last error shown, or "".
func (v *ListView) Failure() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.failure
}

func showError(console *Console, message string) {
	fmt.Fprintf(console, "%s %s\n", color.New(color.FgRed).Sprint("✗"), message)
}

func renderTasks(out io.Writer, tasks []*primary.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Create your first task:")
		fmt.Fprintln(out, `  todo add "Buy milk" --description "2 liters"`)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tCREATED\tTITLE\tDESCRIPTION")
	fmt.Fprintln(w, "--\t----\t-------\t-----\t-----------")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.ID,
			doneMark(t.Completed),
			task.FormatCreatedDate(t.CreatedAt),
			t.Title,
			t.Description,
		)
	}
	return w.Flush()
}

func doneMark(completed bool) string {
	if completed {
		return color.New(color.FgGreen).Sprint("[x]")
	}
	return "[ ]"
}

// DetailView renders the create/edit screen. It records the prefilled task
// and whether the last save completed.
type DetailView struct {
	console *Console

	mu        sync.Mutex
	prefill   *primary.Task
	failure   string
	completed bool
}

// NewDetailView creates a DetailView printing to console.
func NewDetailView(console *Console) *DetailView {
	return &DetailView{console: console}
}

// ShowTask prints the task being edited.
func (v *DetailView) ShowTask(t *primary.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prefill = t
	fmt.Fprintf(v.console, "Editing task %d: %s (created %s)\n", t.ID, t.Title, task.FormatCreatedDate(t.CreatedAt))
}

// ShowError prints message in red.
func (v *DetailView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failure = message
	showError(v.console, message)
}

// SaveCompleted prints a confirmation.
func (v *DetailView) SaveCompleted() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.completed = true
	fmt.Fprintf(v.console, "%s Task saved\n", color.New(color.FgGreen).Sprint("✓"))
}

// Prefill returns the task shown in edit mode, or nil.
func (v *DetailView) Prefill() *primary.Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.prefill
}

// Completed reports whether a save completed.
func (v *DetailView) Completed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.completed
}

// Failure returns the last error shown, or "".
func (v *DetailView) Failure() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.failure
}

var (
	_ primary.TaskListView   = (*ListView)(nil)
	_ primary.TaskDetailView = (*DetailView)(nil)
)
