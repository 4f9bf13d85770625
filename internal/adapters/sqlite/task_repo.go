// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/example/todo/internal/db"
	"github.com/example/todo/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB

	// idMu serializes ID allocation within the process.
	idMu sync.Mutex
	// reads collapses identical concurrent List calls into one query.
	reads singleflight.Group
	// generation advances on every write so no List started after a write
	// joins a flight that began before it.
	generation atomic.Uint64
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var desc sql.NullString

	record := &secondary.TaskRecord{}
	err := scanner.Scan(&record.ID, &record.Title, &desc, &record.Completed, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	return record, nil
}

const taskSelectCols = "id, title, description, completed, created_at"

// GetNextID allocates the next task ID from the sequence row. The sequence
// is lifted above any persisted ID first, so IDs are never handed out twice
// even for rows written outside the allocator.
func (r *TaskRepository) GetNextID(ctx context.Context) (int64, error) {
	r.idMu.Lock()
	defer r.idMu.Unlock()

	var next int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE sequences
		SET value = MAX(value, (SELECT COALESCE(MAX(id), 0) FROM tasks)) + 1
		WHERE name = 'tasks'
		RETURNING value`,
	).Scan(&next)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("failed to get next task ID: task sequence missing")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get next task ID: %w", err)
	}

	return next, nil
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	var desc sql.NullString
	if task.Description != "" {
		desc = sql.NullString{String: task.Description, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, title, description, completed, created_at) VALUES (?, ?, ?, ?, ?)",
		task.ID, task.Title, desc, task.Completed, task.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	r.generation.Add(1)

	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ?",
		id,
	)

	record, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return record, nil
}

// List retrieves tasks matching the given filters, ordered by ID.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	needle := db.Fold(filters.Query)

	key := strconv.FormatUint(r.generation.Load(), 10) + ":" + needle
	v, err, _ := r.reads.Do(key, func() (any, error) {
		return r.list(ctx, needle)
	})
	if err != nil {
		return nil, err
	}

	// Callers of a shared flight get their own copies.
	shared := v.([]*secondary.TaskRecord)
	tasks := make([]*secondary.TaskRecord, len(shared))
	for i, t := range shared {
		copied := *t
		tasks[i] = &copied
	}
	return tasks, nil
}

func (r *TaskRepository) list(ctx context.Context, needle string) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	args := []any{}

	if needle != "" {
		query += " AND (instr(casefold(title), ?) > 0 OR instr(casefold(COALESCE(description, '')), ?) > 0)"
		args = append(args, needle, needle)
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*secondary.TaskRecord{}
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Update writes title, description and completed. ID and created_at are never touched.
func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	var desc sql.NullString
	if task.Description != "" {
		desc = sql.NullString{String: task.Description, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, completed = ? WHERE id = ?",
		task.Title, desc, task.Completed, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	r.generation.Add(1)

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("task %d: %w", task.ID, secondary.ErrNotFound)
	}

	return nil
}

// UpdateDetails writes title and description. Completed, ID and created_at
// are never touched.
func (r *TaskRepository) UpdateDetails(ctx context.Context, id int64, title, description string) error {
	var desc sql.NullString
	if description != "" {
		desc = sql.NullString{String: description, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ? WHERE id = ?",
		title, desc, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	r.generation.Add(1)

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("task %d: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// Delete removes a task from persistence. A missing ID is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	r.generation.Add(1)
	return nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
