package primary

// TaskListView renders the list screen.
type TaskListView interface {
	ShowTasks(tasks []*Task)
	ShowError(message string)
}

// TaskDetailView renders the create/edit screen.
type TaskDetailView interface {
	// ShowTask prefills the fields in edit mode.
	ShowTask(task *Task)
	ShowError(message string)
	// SaveCompleted signals a successful save; the view decides whether to close.
	SaveCompleted()
}

// DetailDelegate is notified by a detail screen after it saved a task.
// Implementations must not keep the notified screen alive.
type DetailDelegate interface {
	DidSaveTask()
}

// Navigator opens the detail screen on behalf of the list screen.
type Navigator interface {
	OpenDetail(intent DetailIntent, delegate DetailDelegate)
}

// DetailRouter closes the detail screen.
type DetailRouter interface {
	GoBack()
}
