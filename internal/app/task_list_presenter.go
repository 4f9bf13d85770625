package app

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/example/todo/internal/core/task"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
)

// TaskListPresenter coordinates the list screen. It holds the last snapshot
// delivered by the interactor and refetches after every mutation.
type TaskListPresenter struct {
	interactor primary.TaskInteractor
	view       primary.TaskListView
	navigator  primary.Navigator
	sharer     secondary.Sharer
	log        *slog.Logger

	mu    sync.RWMutex
	tasks []*primary.Task
}

// NewTaskListPresenter creates a list presenter and binds it as the
// interactor's output.
func NewTaskListPresenter(
	interactor primary.TaskInteractor,
	view primary.TaskListView,
	navigator primary.Navigator,
	sharer secondary.Sharer,
	log *slog.Logger,
) *TaskListPresenter {
	p := &TaskListPresenter{
		interactor: interactor,
		view:       view,
		navigator:  navigator,
		sharer:     sharer,
		log:        log,
	}
	interactor.SetOutput(p)
	return p
}

// OnScreenShown reloads the list every time the screen becomes visible.
func (p *TaskListPresenter) OnScreenShown() {
	p.interactor.FetchTasks()
}

// OnSelect opens the selected task for editing.
func (p *TaskListPresenter) OnSelect(t *primary.Task) {
	if t == nil {
		return
	}
	p.log.Debug("opening task", "task_id", t.ID)
	p.navigator.OpenDetail(primary.EditIntent{Task: t}, newWeakListDelegate(p))
}

// OnAddRequested opens an empty detail screen.
func (p *TaskListPresenter) OnAddRequested() {
	p.log.Debug("opening new task")
	p.navigator.OpenDetail(primary.CreateIntent{}, newWeakListDelegate(p))
}

// OnDelete deletes the task.
func (p *TaskListPresenter) OnDelete(t *primary.Task) {
	if t == nil {
		return
	}
	p.interactor.DeleteTask(t.ID)
}

// OnToggle flips the task's completed flag.
func (p *TaskListPresenter) OnToggle(t *primary.Task) {
	if t == nil {
		return
	}
	p.interactor.ToggleCompletion(t.ID)
}

// OnSearch filters the list. A blank query shows every task.
func (p *TaskListPresenter) OnSearch(query string) {
	if strings.TrimSpace(query) == "" {
		p.interactor.FetchTasks()
		return
	}
	p.interactor.SearchTasks(query)
}

// OnShare hands the task's text to the sharer.
func (p *TaskListPresenter) OnShare(t *primary.Task) {
	if t == nil {
		return
	}
	if err := p.sharer.Share(task.ShareText(t.Title, t.Description)); err != nil {
		p.log.Warn("share failed", "task_id", t.ID, "error", err)
		p.view.ShowError("Failed to share task")
	}
}

// Wait blocks until the screen's queued requests, including refetches they
// trigger, have completed.
func (p *TaskListPresenter) Wait() {
	p.interactor.Wait()
}

// Close drains the screen's queue and stops its interactor.
func (p *TaskListPresenter) Close() {
	p.interactor.Close()
}

// Tasks returns the last delivered snapshot.
func (p *TaskListPresenter) Tasks() []*primary.Task {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*primary.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// TaskByID looks a task up in the last snapshot.
func (p *TaskListPresenter) TaskByID(id int64) (*primary.Task, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, t := range p.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// DataReady replaces the snapshot and renders it.
func (p *TaskListPresenter) DataReady(tasks []*primary.Task) {
	p.mu.Lock()
	p.tasks = tasks
	p.mu.Unlock()
	p.view.ShowTasks(tasks)
}

// DataChanged reloads the whole list.
func (p *TaskListPresenter) DataChanged() {
	p.interactor.FetchTasks()
}

// OperationFailed shows the message.
func (p *TaskListPresenter) OperationFailed(message string) {
	p.view.ShowError(message)
}

// DidSaveTask reloads the list after the detail screen saved.
func (p *TaskListPresenter) DidSaveTask() {
	p.log.Debug("detail screen saved, reloading")
	p.interactor.FetchTasks()
}

var (
	_ primary.TaskOutput     = (*TaskListPresenter)(nil)
	_ primary.DetailDelegate = (*TaskListPresenter)(nil)
)
