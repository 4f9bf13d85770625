package app

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/example/todo/internal/ports/primary"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeListView struct {
	mu     sync.Mutex
	shown  [][]*primary.Task
	errors []string
}

func (v *fakeListView) ShowTasks(tasks []*primary.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shown = append(v.shown, tasks)
}

func (v *fakeListView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, message)
}

func (v *fakeListView) last() []*primary.Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.shown) == 0 {
		return nil
	}
	return v.shown[len(v.shown)-1]
}

func (v *fakeListView) errorLog() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.errors...)
}

type fakeDetailView struct {
	mu        sync.Mutex
	shown     *primary.Task
	errors    []string
	completed int
}

func (v *fakeDetailView) ShowTask(task *primary.Task) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shown = task
}

func (v *fakeDetailView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, message)
}

func (v *fakeDetailView) SaveCompleted() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.completed++
}

func (v *fakeDetailView) state() (*primary.Task, []string, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.shown, append([]string(nil), v.errors...), v.completed
}

type fakeNavigator struct {
	intent   primary.DetailIntent
	delegate primary.DetailDelegate
	opened   int
}

func (n *fakeNavigator) OpenDetail(intent primary.DetailIntent, delegate primary.DetailDelegate) {
	n.intent = intent
	n.delegate = delegate
	n.opened++
}

type fakeRouter struct {
	mu     sync.Mutex
	closed int
}

func (r *fakeRouter) GoBack() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
}

type fakeSharer struct {
	shared []string
	err    error
}

func (s *fakeSharer) Share(text string) error {
	if s.err != nil {
		return s.err
	}
	s.shared = append(s.shared, text)
	return nil
}

type countingDelegate struct {
	mu    sync.Mutex
	saved int
}

func (d *countingDelegate) DidSaveTask() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saved++
}

func (d *countingDelegate) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// ============================================================================
// Test Harness
// ============================================================================

type listHarness struct {
	service    *TaskServiceImpl
	repo       *mockTaskRepository
	interactor *TaskInteractorImpl
	presenter  *TaskListPresenter
	view       *fakeListView
	navigator  *fakeNavigator
	sharer     *fakeSharer
}

func newListHarness(t *testing.T) *listHarness {
	t.Helper()
	service, repo := newTestTaskService()
	interactor := NewTaskInteractor(context.Background(), service, discardLogger())
	t.Cleanup(interactor.Close)

	h := &listHarness{
		service:    service,
		repo:       repo,
		interactor: interactor,
		view:       &fakeListView{},
		navigator:  &fakeNavigator{},
		sharer:     &fakeSharer{},
	}
	h.presenter = NewTaskListPresenter(interactor, h.view, h.navigator, h.sharer, discardLogger())
	return h
}

// openDetail builds a detail screen for whatever the navigator was last asked to open.
func (h *listHarness) openDetail(t *testing.T, view *fakeDetailView, router *fakeRouter, autoSave bool) *TaskDetailPresenter {
	t.Helper()
	if h.navigator.opened == 0 {
		t.Fatal("navigator was never asked to open a detail screen")
	}
	interactor := NewTaskInteractor(context.Background(), h.service, discardLogger())
	return NewTaskDetailPresenter(h.navigator.intent, interactor, view, router, h.navigator.delegate, autoSave, discardLogger())
}

// settle waits for the list screen's queue to go idle.
func (h *listHarness) settle() {
	h.interactor.Wait()
}

// ============================================================================
// List Presenter Tests
// ============================================================================

func TestListPresenter_OnScreenShownFetchesEveryTime(t *testing.T) {
	h := newListHarness(t)
	h.repo.seed(1, "One", "", false)

	h.presenter.OnScreenShown()
	h.settle()
	h.repo.seed(2, "Two", "", false)
	h.presenter.OnScreenShown()
	h.settle()

	if got := taskIDs(h.view.last()); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("got IDs %v, want [1 2]", got)
	}
	if got := taskIDs(h.presenter.Tasks()); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("snapshot IDs %v, want [1 2]", got)
	}
}

func TestListPresenter_DeleteRefreshes(t *testing.T) {
	h := newListHarness(t)
	h.repo.seed(1, "One", "", false)
	h.repo.seed(2, "Two", "", false)
	h.presenter.OnScreenShown()
	h.settle()

	target, ok := h.presenter.TaskByID(1)
	if !ok {
		t.Fatal("expected task 1 in snapshot")
	}
	h.presenter.OnDelete(target)
	h.settle()

	if got := taskIDs(h.view.last()); !equalIDs(got, []int64{2}) {
		t.Errorf("got IDs %v, want [2]", got)
	}
	if _, ok := h.presenter.TaskByID(1); ok {
		t.Error("deleted task still in snapshot")
	}
}

func TestListPresenter_ToggleRefreshes(t *testing.T) {
	h := newListHarness(t)
	h.repo.seed(1, "One", "", false)
	h.presenter.OnScreenShown()
	h.settle()

	target, _ := h.presenter.TaskByID(1)
	h.presenter.OnToggle(target)
	h.settle()

	got, ok := h.presenter.TaskByID(1)
	if !ok || !got.Completed {
		t.Errorf("expected task 1 completed after toggle, got %+v", got)
	}
}

func TestListPresenter_ToggleMissingShowsError(t *testing.T) {
	h := newListHarness(t)

	h.presenter.OnToggle(&primary.Task{ID: 5})
	h.settle()

	errs := h.view.errorLog()
	if len(errs) != 1 || errs[0] != MsgNotFound {
		t.Errorf("errors = %v, want [%q]", errs, MsgNotFound)
	}
}

func TestListPresenter_OnSearch(t *testing.T) {
	h := newListHarness(t)
	h.repo.seed(1, "Cat food", "", false)
	h.repo.seed(2, "Groceries", "buy cat litter", false)
	h.repo.seed(3, "Dentist", "", false)

	tests := []struct {
		query   string
		wantIDs []int64
	}{
		{query: "cat", wantIDs: []int64{1, 2}},
		{query: "   ", wantIDs: []int64{1, 2, 3}},
		{query: "dent", wantIDs: []int64{3}},
		{query: "", wantIDs: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		h.presenter.OnSearch(tt.query)
		h.settle()
		if got := taskIDs(h.view.last()); !equalIDs(got, tt.wantIDs) {
			t.Errorf("OnSearch(%q) IDs = %v, want %v", tt.query, got, tt.wantIDs)
		}
	}
}

func TestListPresenter_OnShare(t *testing.T) {
	h := newListHarness(t)

	h.presenter.OnShare(&primary.Task{ID: 1, Title: "Buy milk", Description: "2 liters"})

	if len(h.sharer.shared) != 1 || h.sharer.shared[0] != "Buy milk\n2 liters" {
		t.Errorf("shared = %q", h.sharer.shared)
	}

	h.sharer.err = errors.New("no clipboard")
	h.presenter.OnShare(&primary.Task{ID: 1, Title: "Buy milk"})
	if errs := h.view.errorLog(); len(errs) != 1 {
		t.Errorf("expected share failure to be shown, got %v", errs)
	}
}

func TestListPresenter_Navigation(t *testing.T) {
	h := newListHarness(t)

	h.presenter.OnAddRequested()
	if _, ok := h.navigator.intent.(primary.CreateIntent); !ok {
		t.Errorf("expected CreateIntent, got %T", h.navigator.intent)
	}

	task := &primary.Task{ID: 3, Title: "Edit me"}
	h.presenter.OnSelect(task)
	edit, ok := h.navigator.intent.(primary.EditIntent)
	if !ok {
		t.Fatalf("expected EditIntent, got %T", h.navigator.intent)
	}
	if edit.Task != task {
		t.Error("expected edit intent to carry the selected task")
	}
	if h.navigator.delegate == nil {
		t.Error("expected a delegate to be passed")
	}
}

// ============================================================================
// Detail Presenter Tests
// ============================================================================

func newDetailPresenter(t *testing.T, intent primary.DetailIntent, autoSave bool) (*TaskDetailPresenter, *fakeDetailView, *fakeRouter, *countingDelegate, *mockTaskRepository) {
	t.Helper()
	service, repo := newTestTaskService()
	interactor := NewTaskInteractor(context.Background(), service, discardLogger())
	view := &fakeDetailView{}
	router := &fakeRouter{}
	delegate := &countingDelegate{}
	p := NewTaskDetailPresenter(intent, interactor, view, router, delegate, autoSave, discardLogger())
	t.Cleanup(p.Close)
	return p, view, router, delegate, repo
}

func TestDetailPresenter_OnScreenShown(t *testing.T) {
	task := &primary.Task{ID: 2, Title: "Prefilled", Description: "text"}

	p, view, _, _, _ := newDetailPresenter(t, primary.EditIntent{Task: task}, true)
	p.OnScreenShown()
	if shown, _, _ := view.state(); shown != task {
		t.Errorf("expected edit mode to show the task, got %+v", shown)
	}

	p, view, _, _, _ = newDetailPresenter(t, primary.CreateIntent{}, true)
	p.OnScreenShown()
	if shown, _, _ := view.state(); shown != nil {
		t.Errorf("expected create mode to show nothing, got %+v", shown)
	}
}

func TestDetailPresenter_NilIntentIsCreate(t *testing.T) {
	p, _, _, _, _ := newDetailPresenter(t, nil, true)
	if _, ok := p.Intent().(primary.CreateIntent); !ok {
		t.Errorf("expected CreateIntent, got %T", p.Intent())
	}
}

func TestDetailPresenter_OnSaveEmptyTitle(t *testing.T) {
	p, view, router, delegate, repo := newDetailPresenter(t, primary.CreateIntent{}, true)

	p.OnSave("   ", "some description")
	p.Close()

	_, errs, completed := view.state()
	if len(errs) != 1 || errs[0] != MsgEmptyTitle {
		t.Errorf("errors = %v, want [%q]", errs, MsgEmptyTitle)
	}
	if completed != 0 || delegate.count() != 0 || router.closed != 0 {
		t.Error("expected screen to stay open with no save")
	}
	if calls := repo.callLog(); len(calls) != 0 {
		t.Errorf("expected no repository calls, got %v", calls)
	}
}

func TestDetailPresenter_OnSaveSuccess(t *testing.T) {
	p, view, _, delegate, repo := newDetailPresenter(t, primary.CreateIntent{}, true)

	p.OnSave("Buy milk", "2 liters")
	p.Close()

	_, errs, completed := view.state()
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if completed != 1 {
		t.Errorf("expected SaveCompleted once, got %d", completed)
	}
	if delegate.count() != 1 {
		t.Errorf("expected delegate notified once, got %d", delegate.count())
	}
	if _, ok := repo.get(1); !ok {
		t.Error("expected task to be stored")
	}
}

func TestDetailPresenter_OnSaveFailureKeepsScreenOpen(t *testing.T) {
	p, view, router, delegate, repo := newDetailPresenter(t, primary.CreateIntent{}, true)
	repo.createErr = errors.New("disk full")

	p.OnSave("Buy milk", "")
	p.Close()

	_, errs, completed := view.state()
	if len(errs) != 1 || errs[0] != MsgCreateFailed {
		t.Errorf("errors = %v, want [%q]", errs, MsgCreateFailed)
	}
	if completed != 0 || delegate.count() != 0 || router.closed != 0 {
		t.Error("expected no completion on failure")
	}
}

func TestDetailPresenter_OnGoBack(t *testing.T) {
	tests := []struct {
		name      string
		autoSave  bool
		title     string
		wantSaved bool
	}{
		{name: "auto-save with title", autoSave: true, title: "Draft", wantSaved: true},
		{name: "auto-save with blank title", autoSave: true, title: "  ", wantSaved: false},
		{name: "auto-save disabled", autoSave: false, title: "Draft", wantSaved: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, router, delegate, repo := newDetailPresenter(t, primary.CreateIntent{}, tt.autoSave)

			p.OnGoBack(tt.title, "")
			p.Close()

			if router.closed != 1 {
				t.Errorf("expected GoBack once, got %d", router.closed)
			}
			_, saved := repo.get(1)
			if saved != tt.wantSaved {
				t.Errorf("saved = %v, want %v", saved, tt.wantSaved)
			}
			wantNotified := 0
			if tt.wantSaved {
				wantNotified = 1
			}
			if delegate.count() != wantNotified {
				t.Errorf("delegate notified %d times, want %d", delegate.count(), wantNotified)
			}
		})
	}
}

func TestDetailPresenter_OnSaveAfterClose(t *testing.T) {
	p, view, _, delegate, repo := newDetailPresenter(t, primary.CreateIntent{}, true)
	p.Close()

	p.OnSave("Buy milk", "")

	_, errs, completed := view.state()
	if len(errs) != 1 || errs[0] != MsgScreenClosed {
		t.Errorf("errors = %v, want [%q]", errs, MsgScreenClosed)
	}
	if completed != 0 || delegate.count() != 0 {
		t.Error("expected no completion after close")
	}
	if _, ok := repo.get(1); ok {
		t.Error("expected nothing stored after close")
	}
}

func TestDetailPresenter_CloseIsIdempotent(t *testing.T) {
	p, _, _, _, _ := newDetailPresenter(t, primary.CreateIntent{}, true)
	p.Close()
	p.Close()
}

// ============================================================================
// Cross-screen Tests
// ============================================================================

func TestBuyMilkScenario(t *testing.T) {
	h := newListHarness(t)
	h.presenter.OnScreenShown()
	h.settle()
	if len(h.view.last()) != 0 {
		t.Fatalf("expected empty list, got %v", h.view.last())
	}

	// Create.
	h.presenter.OnAddRequested()
	createView := &fakeDetailView{}
	create := h.openDetail(t, createView, &fakeRouter{}, true)
	create.OnScreenShown()
	create.OnSave("Buy milk", "2 liters")
	create.Close()
	h.settle()

	tasks := h.presenter.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected one task after create, got %d", len(tasks))
	}
	created := tasks[0]
	if created.ID != 1 || created.Title != "Buy milk" || created.Description != "2 liters" || created.Completed {
		t.Fatalf("unexpected created task: %+v", created)
	}
	if _, _, completed := createView.state(); completed != 1 {
		t.Errorf("expected create screen SaveCompleted once, got %d", completed)
	}

	// Edit.
	h.presenter.OnSelect(created)
	editView := &fakeDetailView{}
	edit := h.openDetail(t, editView, &fakeRouter{}, true)
	edit.OnScreenShown()
	if shown, _, _ := editView.state(); shown != created {
		t.Errorf("expected edit screen prefilled with created task")
	}
	edit.OnSave("Buy oat milk", "2 liters")
	edit.Close()
	h.settle()

	tasks = h.presenter.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected exactly one task after edit, got %d", len(tasks))
	}
	edited := tasks[0]
	if edited.ID != 1 || edited.Title != "Buy oat milk" || edited.Description != "2 liters" {
		t.Errorf("unexpected edited task: %+v", edited)
	}
	if !edited.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", created.CreatedAt, edited.CreatedAt)
	}
}

func TestAutoSaveOnGoBackRefreshesList(t *testing.T) {
	h := newListHarness(t)
	h.presenter.OnScreenShown()
	h.settle()

	h.presenter.OnAddRequested()
	router := &fakeRouter{}
	detail := h.openDetail(t, &fakeDetailView{}, router, true)
	detail.OnGoBack("Remember me", "")
	detail.Close()
	h.settle()

	if router.closed != 1 {
		t.Errorf("expected GoBack once, got %d", router.closed)
	}
	if got := taskIDs(h.presenter.Tasks()); !equalIDs(got, []int64{1}) {
		t.Errorf("got IDs %v, want [1]", got)
	}
}

func TestDelegateReleasedOnClose(t *testing.T) {
	h := newListHarness(t)
	h.presenter.OnAddRequested()
	delegate := h.navigator.delegate

	detail := h.openDetail(t, &fakeDetailView{}, &fakeRouter{}, true)
	detail.Close()
	h.settle()
	h.view.mu.Lock()
	before := len(h.view.shown)
	h.view.mu.Unlock()

	delegate.DidSaveTask()
	h.settle()

	h.view.mu.Lock()
	after := len(h.view.shown)
	h.view.mu.Unlock()
	if after != before {
		t.Error("released delegate still reached the list presenter")
	}
}

func TestWeakDelegateDoesNotKeepListAlive(t *testing.T) {
	delegate := func() primary.DetailDelegate {
		service, _ := newTestTaskService()
		interactor := NewTaskInteractor(context.Background(), service, discardLogger())
		defer interactor.Close()
		navigator := &fakeNavigator{}
		presenter := NewTaskListPresenter(interactor, &fakeListView{}, navigator, &fakeSharer{}, discardLogger())
		presenter.OnAddRequested()
		return navigator.delegate
	}()

	weakDelegate, ok := delegate.(*weakListDelegate)
	if !ok {
		t.Fatalf("expected *weakListDelegate, got %T", delegate)
	}

	for i := 0; i < 5 && weakDelegate.target.Value() != nil; i++ {
		runtime.GC()
	}
	if weakDelegate.target.Value() != nil {
		t.Error("list presenter still reachable through delegate")
	}

	// Notifying a collected presenter is a no-op.
	weakDelegate.DidSaveTask()
}
