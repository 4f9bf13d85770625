// Package primary defines the driving ports: what the application offers to
// the screens (services, interactors) and what the screens must implement.
package primary

import (
	"context"
	"time"
)

// TaskService defines the primary port for task operations.
type TaskService interface {
	// ListTasks returns every task, ordered by ascending ID.
	ListTasks(ctx context.Context) ([]*Task, error)

	// SearchTasks returns tasks whose title or description contains query,
	// ignoring case. An empty query is equivalent to ListTasks.
	SearchTasks(ctx context.Context, query string) ([]*Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, taskID int64) (*Task, error)

	// SaveTask creates or updates a task depending on the request intent.
	SaveTask(ctx context.Context, req SaveTaskRequest) (*SaveTaskResponse, error)

	// ToggleTask flips the completed flag of a task.
	ToggleTask(ctx context.Context, taskID int64) (*Task, error)

	// DeleteTask deletes a task. Deleting a missing task succeeds.
	DeleteTask(ctx context.Context, taskID int64) error
}

// SaveTaskRequest contains parameters for saving a task.
type SaveTaskRequest struct {
	Intent      DetailIntent
	Title       string
	Description string
}

// SaveTaskResponse contains the result of saving a task.
type SaveTaskResponse struct {
	TaskID  int64
	Task    *Task
	Created bool
}

// Task represents a task entity at the port boundary.
type Task struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
	Completed   bool
}

// DetailIntent selects the mode of a detail screen. It is fixed when the
// screen is built: either CreateIntent or EditIntent.
type DetailIntent interface {
	detailIntent()
}

// CreateIntent opens the detail screen with no backing task.
type CreateIntent struct{}

// EditIntent opens the detail screen for an existing task.
type EditIntent struct {
	Task *Task
}

func (CreateIntent) detailIntent() {}
func (EditIntent) detailIntent()   {}
