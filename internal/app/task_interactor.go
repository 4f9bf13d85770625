package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/example/todo/internal/core/task"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
)

// User-facing failure messages reported through TaskOutput.OperationFailed.
const (
	MsgLoadFailed   = "Failed to load tasks"
	MsgSearchFailed = "Failed to search tasks"
	MsgDeleteFailed = "Failed to delete task"
	MsgUpdateFailed = "Failed to update task"
	MsgCreateFailed = "Failed to create task"
	MsgSaveFailed   = "Failed to save task"
	MsgNotFound     = "Task not found"
	MsgEmptyTitle   = "Title cannot be empty"
	MsgScreenClosed = "Screen is closed"
)

// TaskInteractorImpl runs TaskService calls on a screen's dispatcher and
// translates their outcomes into TaskOutput signals.
type TaskInteractorImpl struct {
	service    primary.TaskService
	dispatcher *Dispatcher
	log        *slog.Logger

	mu  sync.RWMutex
	out primary.TaskOutput
}

// NewTaskInteractor creates a TaskInteractor with its own dispatcher.
func NewTaskInteractor(ctx context.Context, service primary.TaskService, log *slog.Logger) *TaskInteractorImpl {
	return &TaskInteractorImpl{
		service:    service,
		dispatcher: NewDispatcher(ctx),
		log:        log,
	}
}

// SetOutput binds the receiver of results.
func (i *TaskInteractorImpl) SetOutput(out primary.TaskOutput) {
	i.mu.Lock()
	i.out = out
	i.mu.Unlock()
}

func (i *TaskInteractorImpl) output() primary.TaskOutput {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.out
}

func (i *TaskInteractorImpl) submit(op string, job func(ctx context.Context, out primary.TaskOutput)) {
	queued := i.dispatcher.Submit(func(ctx context.Context) {
		out := i.output()
		if out == nil {
			i.log.Warn("dropping result with no output bound", "operation", op)
			return
		}
		job(ctx, out)
	})
	if queued {
		return
	}
	// The dispatcher has stopped, so this is the only goroutine that can
	// reach the output now.
	i.log.Warn("interactor closed, request rejected", "operation", op)
	if out := i.output(); out != nil {
		out.OperationFailed(MsgScreenClosed)
	}
}

// FetchTasks loads all tasks and emits DataReady.
func (i *TaskInteractorImpl) FetchTasks() {
	i.submit("fetch", func(ctx context.Context, out primary.TaskOutput) {
		tasks, err := i.service.ListTasks(ctx)
		if err != nil {
			i.fail(out, "fetch", err, MsgLoadFailed)
			return
		}
		i.log.Debug("tasks fetched", "count", len(tasks))
		out.DataReady(tasks)
	})
}

// SearchTasks loads matching tasks and emits DataReady.
func (i *TaskInteractorImpl) SearchTasks(query string) {
	i.submit("search", func(ctx context.Context, out primary.TaskOutput) {
		tasks, err := i.service.SearchTasks(ctx, query)
		if err != nil {
			i.fail(out, "search", err, MsgSearchFailed)
			return
		}
		i.log.Debug("tasks searched", "query", query, "count", len(tasks))
		out.DataReady(tasks)
	})
}

// DeleteTask deletes a task and emits DataChanged.
func (i *TaskInteractorImpl) DeleteTask(taskID int64) {
	i.submit("delete", func(ctx context.Context, out primary.TaskOutput) {
		if err := i.service.DeleteTask(ctx, taskID); err != nil {
			i.fail(out, "delete", err, MsgDeleteFailed)
			return
		}
		i.log.Debug("task deleted", "task_id", taskID)
		out.DataChanged()
	})
}

// ToggleCompletion flips a task's completed flag and emits DataChanged.
func (i *TaskInteractorImpl) ToggleCompletion(taskID int64) {
	i.submit("toggle", func(ctx context.Context, out primary.TaskOutput) {
		toggled, err := i.service.ToggleTask(ctx, taskID)
		if err != nil {
			i.fail(out, "toggle", err, MsgUpdateFailed)
			return
		}
		i.log.Debug("task toggled", "task_id", taskID, "completed", toggled.Completed)
		out.DataChanged()
	})
}

// SaveTask creates or updates a task and emits DataChanged.
func (i *TaskInteractorImpl) SaveTask(intent primary.DetailIntent, title, description string) {
	fallback := MsgCreateFailed
	if _, editing := intent.(primary.EditIntent); editing {
		fallback = MsgSaveFailed
	}

	i.submit("save", func(ctx context.Context, out primary.TaskOutput) {
		resp, err := i.service.SaveTask(ctx, primary.SaveTaskRequest{
			Intent:      intent,
			Title:       title,
			Description: description,
		})
		if err != nil {
			i.fail(out, "save", err, fallback)
			return
		}
		i.log.Debug("task saved", "task_id", resp.TaskID, "created", resp.Created)
		out.DataChanged()
	})
}

// fail maps err to a user-facing message and reports it.
func (i *TaskInteractorImpl) fail(out primary.TaskOutput, op string, err error, fallback string) {
	msg := fallback
	switch {
	case errors.Is(err, task.ErrEmptyTitle):
		msg = MsgEmptyTitle
	case errors.Is(err, secondary.ErrNotFound):
		msg = MsgNotFound
	}
	i.log.Debug("task operation failed", "operation", op, "error", err)
	out.OperationFailed(msg)
}

// Wait blocks until all queued requests have completed.
func (i *TaskInteractorImpl) Wait() {
	i.dispatcher.Wait()
}

// Close drains queued requests and stops the interactor. Later requests are
// answered at once with OperationFailed(MsgScreenClosed).
func (i *TaskInteractorImpl) Close() {
	i.dispatcher.Close()
}

// Ensure TaskInteractorImpl implements the interface
var _ primary.TaskInteractor = (*TaskInteractorImpl)(nil)
