// Package secondary defines the driven ports: interfaces the application
// layer calls out to (persistence, sharing).
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is wrapped by repository errors when the target record does not exist.
var ErrNotFound = errors.New("not found")

// TaskRepository defines the secondary port for task persistence.
// It exclusively owns the durable set of task records.
type TaskRepository interface {
	// GetNextID allocates a new task ID. The returned value is strictly greater
	// than every ID previously allocated or persisted, deleted ones included.
	// Safe for concurrent use.
	GetNextID(ctx context.Context) (int64, error)

	// Create persists a new task. The caller guarantees ID uniqueness via GetNextID.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, id int64) (*TaskRecord, error)

	// List retrieves tasks matching the given filters, ordered by ascending ID.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// Update writes title, description and completed for an existing task.
	Update(ctx context.Context, task *TaskRecord) error

	// UpdateDetails writes only title and description, leaving completed as
	// stored.
	UpdateDetails(ctx context.Context, id int64, title, description string) error

	// Delete removes a task. Deleting a missing ID succeeds.
	Delete(ctx context.Context, id int64) error
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          int64
	Title       string
	Description string // Empty string means null
	CreatedAt   time.Time
	Completed   bool
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	// Query is matched case-insensitively against title or description.
	// Empty matches everything.
	Query string
}
