package primary

// TaskInteractor is the asynchronous, per-screen face of the task rules.
// Every call is queued and answered later through TaskOutput; callers must
// not assume completion before the call returns.
type TaskInteractor interface {
	// FetchTasks loads all tasks and emits DataReady.
	FetchTasks()

	// SearchTasks loads matching tasks and emits DataReady.
	SearchTasks(query string)

	// DeleteTask deletes a task and emits DataChanged.
	DeleteTask(taskID int64)

	// ToggleCompletion flips a task's completed flag and emits DataChanged.
	ToggleCompletion(taskID int64)

	// SaveTask creates or updates a task and emits DataChanged.
	SaveTask(intent DetailIntent, title, description string)

	// SetOutput binds the receiver of results. Must be called before any request.
	SetOutput(out TaskOutput)

	// Wait blocks until every queued request, including follow-ups issued by
	// output callbacks, has completed.
	Wait()

	// Close drains queued requests and stops the interactor.
	Close()
}

// TaskOutput receives interactor results.
type TaskOutput interface {
	// DataReady delivers a full, freshly fetched snapshot.
	DataReady(tasks []*Task)

	// DataChanged reports a successful mutation; the receiver should refetch.
	DataChanged()

	// OperationFailed reports a user-facing failure message.
	OperationFailed(message string)
}
