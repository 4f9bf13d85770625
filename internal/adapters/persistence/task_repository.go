// Package persistence contains repository adapters that wrap another
// repository implementation.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/example/todo/internal/logger"
	"github.com/example/todo/internal/metrics"
	"github.com/example/todo/internal/ports/secondary"
)

// InstrumentedTaskRepository wraps a TaskRepository to record operation
// counts and latency, and to log storage faults.
type InstrumentedTaskRepository struct {
	next    secondary.TaskRepository
	metrics *metrics.Metrics
}

// NewInstrumentedTaskRepository creates a new InstrumentedTaskRepository.
func NewInstrumentedTaskRepository(next secondary.TaskRepository, m *metrics.Metrics) *InstrumentedTaskRepository {
	return &InstrumentedTaskRepository{next: next, metrics: m}
}

func (r *InstrumentedTaskRepository) observe(op string, start time.Time, err error) {
	r.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, secondary.ErrNotFound):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
		logger.Error("task store operation failed", "operation", op, "error", err)
	}
	r.metrics.Operations.WithLabelValues(op, result).Inc()
}

// GetNextID allocates a new task ID.
func (r *InstrumentedTaskRepository) GetNextID(ctx context.Context) (id int64, err error) {
	defer func(start time.Time) { r.observe("next_id", start, err) }(time.Now())
	return r.next.GetNextID(ctx)
}

// Create persists a new task.
func (r *InstrumentedTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) (err error) {
	defer func(start time.Time) { r.observe("create", start, err) }(time.Now())
	return r.next.Create(ctx, task)
}

// GetByID retrieves a task by its ID.
func (r *InstrumentedTaskRepository) GetByID(ctx context.Context, id int64) (task *secondary.TaskRecord, err error) {
	defer func(start time.Time) { r.observe("get", start, err) }(time.Now())
	return r.next.GetByID(ctx, id)
}

// List retrieves tasks matching the given filters.
func (r *InstrumentedTaskRepository) List(ctx context.Context, filters secondary.TaskFilters) (tasks []*secondary.TaskRecord, err error) {
	op := "list"
	if filters.Query != "" {
		op = "search"
	}
	defer func(start time.Time) { r.observe(op, start, err) }(time.Now())
	return r.next.List(ctx, filters)
}

// Update updates an existing task.
func (r *InstrumentedTaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) (err error) {
	defer func(start time.Time) { r.observe("update", start, err) }(time.Now())
	return r.next.Update(ctx, task)
}

// UpdateDetails updates title and description of an existing task.
func (r *InstrumentedTaskRepository) UpdateDetails(ctx context.Context, id int64, title, description string) (err error) {
	defer func(start time.Time) { r.observe("update_details", start, err) }(time.Now())
	return r.next.UpdateDetails(ctx, id, title, description)
}

// Delete removes a task.
func (r *InstrumentedTaskRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { r.observe("delete", start, err) }(time.Now())
	return r.next.Delete(ctx, id)
}

// Ensure InstrumentedTaskRepository implements the interface
var _ secondary.TaskRepository = (*InstrumentedTaskRepository)(nil)
