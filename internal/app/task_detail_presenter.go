package app

import (
	"log/slog"
	"sync"

	"github.com/example/todo/internal/core/task"
	"github.com/example/todo/internal/ports/primary"
)

// TaskDetailPresenter coordinates the create/edit screen. Its mode is fixed
// by the intent it is built with.
type TaskDetailPresenter struct {
	intent     primary.DetailIntent
	interactor primary.TaskInteractor
	view       primary.TaskDetailView
	router     primary.DetailRouter
	autoSave   bool
	log        *slog.Logger

	mu       sync.Mutex
	delegate primary.DetailDelegate
	closed   bool
}

// NewTaskDetailPresenter creates a detail presenter and binds it as the
// interactor's output. A nil intent means create mode.
func NewTaskDetailPresenter(
	intent primary.DetailIntent,
	interactor primary.TaskInteractor,
	view primary.TaskDetailView,
	router primary.DetailRouter,
	delegate primary.DetailDelegate,
	autoSave bool,
	log *slog.Logger,
) *TaskDetailPresenter {
	if intent == nil {
		intent = primary.CreateIntent{}
	}
	p := &TaskDetailPresenter{
		intent:     intent,
		interactor: interactor,
		view:       view,
		router:     router,
		delegate:   delegate,
		autoSave:   autoSave,
		log:        log,
	}
	interactor.SetOutput(p)
	return p
}

// Intent returns the mode the screen was opened in.
func (p *TaskDetailPresenter) Intent() primary.DetailIntent {
	return p.intent
}

// OnScreenShown prefills the fields in edit mode.
func (p *TaskDetailPresenter) OnScreenShown() {
	if edit, ok := p.intent.(primary.EditIntent); ok && edit.Task != nil {
		p.view.ShowTask(edit.Task)
	}
}

// OnSave persists the fields. A blank title is rejected without touching storage.
func (p *TaskDetailPresenter) OnSave(title, description string) {
	if task.IsBlankTitle(title) {
		p.view.ShowError(MsgEmptyTitle)
		return
	}
	p.interactor.SaveTask(p.intent, title, description)
}

// OnGoBack leaves the screen, saving first when auto-save is on and the
// title is not blank.
func (p *TaskDetailPresenter) OnGoBack(title, description string) {
	if p.autoSave && !task.IsBlankTitle(title) {
		p.log.Debug("auto-saving on exit")
		p.interactor.SaveTask(p.intent, title, description)
	}
	p.router.GoBack()
}

// Close waits for in-flight work and drops the delegate. Saves requested
// afterwards are rejected through view.ShowError and never reach storage.
func (p *TaskDetailPresenter) Close() {
	p.interactor.Close()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if r, ok := p.delegate.(releasable); ok {
		r.release()
	}
	p.delegate = nil
}

// DataReady is unused by the detail screen.
func (p *TaskDetailPresenter) DataReady(tasks []*primary.Task) {}

// DataChanged reports a successful save: the delegate first, then the view.
func (p *TaskDetailPresenter) DataChanged() {
	p.mu.Lock()
	delegate := p.delegate
	p.mu.Unlock()

	if delegate != nil {
		delegate.DidSaveTask()
	}
	p.view.SaveCompleted()
}

// OperationFailed shows the message; the screen stays open.
func (p *TaskDetailPresenter) OperationFailed(message string) {
	p.view.ShowError(message)
}

var _ primary.TaskOutput = (*TaskDetailPresenter)(nil)
