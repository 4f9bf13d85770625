// Package task contains the pure business logic for task operations.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTitle is returned when a task would be saved without a title.
var ErrEmptyTitle = errors.New("title cannot be empty")

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Cause   error // optional sentinel, matched with errors.Is
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Cause != nil {
		return r.Cause
	}
	return fmt.Errorf("%s", r.Reason)
}

// SaveTaskContext provides context for save guards.
type SaveTaskContext struct {
	Title string
}

// EditTaskContext provides context for edit-mode guards.
type EditTaskContext struct {
	HasBackingTask bool
	TaskID         int64
}

// IsBlankTitle reports whether title is empty once surrounding whitespace is trimmed.
func IsBlankTitle(title string) bool {
	return strings.TrimSpace(title) == ""
}

// CanSaveTask evaluates whether a task can be persisted.
// Rules:
// - Title must not be blank
func CanSaveTask(ctx SaveTaskContext) GuardResult {
	if IsBlankTitle(ctx.Title) {
		return GuardResult{
			Allowed: false,
			Reason:  ErrEmptyTitle.Error(),
			Cause:   ErrEmptyTitle,
		}
	}

	return GuardResult{Allowed: true}
}

// CanEditTask evaluates whether an edit can proceed.
// Rules:
// - Edit mode must carry a backing task with an allocated ID
func CanEditTask(ctx EditTaskContext) GuardResult {
	if !ctx.HasBackingTask {
		return GuardResult{
			Allowed: false,
			Reason:  "edit requires an existing task",
		}
	}
	if ctx.TaskID <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid task id %d", ctx.TaskID),
		}
	}

	return GuardResult{Allowed: true}
}
