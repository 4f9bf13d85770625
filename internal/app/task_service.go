package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/todo/internal/core/task"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// ListTasks returns every task.
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]*primary.Task, error) {
	return s.list(ctx, secondary.TaskFilters{})
}

// SearchTasks returns tasks matching query in title or description.
func (s *TaskServiceImpl) SearchTasks(ctx context.Context, query string) ([]*primary.Task, error) {
	return s.list(ctx, secondary.TaskFilters{Query: strings.TrimSpace(query)})
}

func (s *TaskServiceImpl) list(ctx context.Context, filters secondary.TaskFilters) ([]*primary.Task, error) {
	records, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID int64) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// SaveTask is the single create-versus-update decision point. A CreateIntent
// allocates an ID and inserts; an EditIntent rewrites title and description
// of the carried task, keeping its ID and creation time.
func (s *TaskServiceImpl) SaveTask(ctx context.Context, req primary.SaveTaskRequest) (*primary.SaveTaskResponse, error) {
	if err := task.CanSaveTask(task.SaveTaskContext{Title: req.Title}).Error(); err != nil {
		return nil, err
	}

	switch intent := req.Intent.(type) {
	case primary.EditIntent:
		return s.updateTask(ctx, intent, req)
	case primary.CreateIntent, nil:
		return s.createTask(ctx, req)
	default:
		return nil, fmt.Errorf("unknown save intent %T", req.Intent)
	}
}

func (s *TaskServiceImpl) createTask(ctx context.Context, req primary.SaveTaskRequest) (*primary.SaveTaskResponse, error) {
	nextID, err := s.taskRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	record := &secondary.TaskRecord{
		ID:          nextID,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   s.now().UTC(),
		Completed:   false,
	}

	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &primary.SaveTaskResponse{
		TaskID:  record.ID,
		Task:    recordToTask(record),
		Created: true,
	}, nil
}

func (s *TaskServiceImpl) updateTask(ctx context.Context, intent primary.EditIntent, req primary.SaveTaskRequest) (*primary.SaveTaskResponse, error) {
	guard := task.CanEditTask(task.EditTaskContext{
		HasBackingTask: intent.Task != nil,
		TaskID:         taskIDOf(intent.Task),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	// Completed is owned by ToggleTask; the snapshot's value may be stale.
	if err := s.taskRepo.UpdateDetails(ctx, intent.Task.ID, req.Title, req.Description); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	record, err := s.taskRepo.GetByID(ctx, intent.Task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return &primary.SaveTaskResponse{
		TaskID: record.ID,
		Task:   recordToTask(record),
	}, nil
}

// ToggleTask flips the completed flag of a task.
func (s *TaskServiceImpl) ToggleTask(ctx context.Context, taskID int64) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	record.Completed = !record.Completed

	if err := s.taskRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return recordToTask(record), nil
}

// DeleteTask deletes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID int64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func taskIDOf(t *primary.Task) int64 {
	if t == nil {
		return 0
	}
	return t.ID
}

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		Completed:   r.Completed,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
