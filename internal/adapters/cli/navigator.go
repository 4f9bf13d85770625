package cli

import (
	"github.com/example/todo/internal/ports/primary"
)

// DetailScreen is the part of a detail presenter the navigator drives.
type DetailScreen interface {
	OnScreenShown()
	OnSave(title, description string)
	OnGoBack(title, description string)
	Close()
}

// DetailScreenFactory builds a detail screen for one navigation.
type DetailScreenFactory func(
	intent primary.DetailIntent,
	view primary.TaskDetailView,
	router primary.DetailRouter,
	delegate primary.DetailDelegate,
) DetailScreen

// DetailForm holds the field values a command types into the detail screen.
// Unset fields keep what the screen was prefilled with.
type DetailForm struct {
	Title          string
	Description    string
	SetTitle       bool
	SetDescription bool
	// LeaveWithBack closes the screen with back navigation instead of Save.
	LeaveWithBack bool
}

func (f DetailForm) fill(prefill *primary.Task) (title, description string) {
	if prefill != nil {
		title, description = prefill.Title, prefill.Description
	}
	if f.SetTitle {
		title = f.Title
	}
	if f.SetDescription {
		description = f.Description
	}
	return title, description
}

// Router records back navigation from a detail screen.
type Router struct {
	closed bool
}

// GoBack marks the screen closed.
func (r *Router) GoBack() {
	r.closed = true
}

// Closed reports whether GoBack was called.
func (r *Router) Closed() bool {
	return r.closed
}

// Navigator opens detail screens synchronously: it builds the screen, fills
// in the form, submits it and waits for the screen to finish.
type Navigator struct {
	factory DetailScreenFactory
	console *Console
	form    DetailForm

	lastView   *DetailView
	lastRouter *Router
}

// NewNavigator creates a Navigator that will submit form on every screen it
// opens. Detail screens print to the same console as the list.
func NewNavigator(factory DetailScreenFactory, console *Console, form DetailForm) *Navigator {
	return &Navigator{factory: factory, console: console, form: form}
}

// OpenDetail runs one detail screen to completion.
func (n *Navigator) OpenDetail(intent primary.DetailIntent, delegate primary.DetailDelegate) {
	view := NewDetailView(n.console)
	router := &Router{}
	screen := n.factory(intent, view, router, delegate)

	screen.OnScreenShown()
	title, description := n.form.fill(view.Prefill())
	if n.form.LeaveWithBack {
		screen.OnGoBack(title, description)
	} else {
		screen.OnSave(title, description)
	}
	screen.Close()

	n.lastView = view
	n.lastRouter = router
}

// LastView returns the view of the most recently opened screen, or nil.
func (n *Navigator) LastView() *DetailView {
	return n.lastView
}

// LastRouter returns the router of the most recently opened screen, or nil.
func (n *Navigator) LastRouter() *Router {
	return n.lastRouter
}

var (
	_ primary.Navigator    = (*Navigator)(nil)
	_ primary.DetailRouter = (*Router)(nil)
)
