package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	cliadapter "github.com/example/todo/internal/adapters/cli"
	"github.com/example/todo/internal/ports/primary"
	"github.com/example/todo/internal/ports/secondary"
	"github.com/example/todo/internal/wire"
)

// ErrReported marks a failure the screen has already shown to the user.
var ErrReported = errors.New("operation failed")

// listScreen is the list presenter surface the commands drive.
type listScreen interface {
	OnScreenShown()
	OnSelect(task *primary.Task)
	OnAddRequested()
	OnDelete(task *primary.Task)
	OnToggle(task *primary.Task)
	OnSearch(query string)
	OnShare(task *primary.Task)
	TaskByID(id int64) (*primary.Task, bool)
	Wait()
	Close()
}

// Screen builders, replaced in tests.
var (
	newListScreen = func(view primary.TaskListView, navigator primary.Navigator, sharer secondary.Sharer) listScreen {
		return wire.NewTaskListPresenter(view, navigator, sharer)
	}
	detailScreenFactory = wire.DetailScreenFactory
)

// screen is one run of the list screen inside a command.
type screen struct {
	out  io.Writer
	view *cliadapter.ListView
	nav  *cliadapter.Navigator
	list listScreen
}

func openScreen(out io.Writer, form cliadapter.DetailForm) *screen {
	console := cliadapter.NewConsole(out)
	view := cliadapter.NewListView(console)
	nav := cliadapter.NewNavigator(detailScreenFactory(), console, form)
	return &screen{
		out:  console,
		view: view,
		nav:  nav,
		list: newListScreen(view, nav, cliadapter.NewWriterSharer(console)),
	}
}

// show loads the list. When quiet, the table is not printed.
func (s *screen) show(quiet bool) error {
	s.view.SetQuiet(quiet)
	s.list.OnScreenShown()
	s.list.Wait()
	s.view.SetQuiet(false)
	return s.failed()
}

// settle waits for queued work, including refetches.
func (s *screen) settle() error {
	s.list.Wait()
	return s.failed()
}

func (s *screen) failed() error {
	if s.view.Failure() != "" {
		return ErrReported
	}
	return nil
}

// task looks up id in the loaded list.
func (s *screen) task(id int64) (*primary.Task, error) {
	t, ok := s.list.TaskByID(id)
	if !ok {
		return nil, fmt.Errorf("task %d not found", id)
	}
	return t, nil
}

func (s *screen) close() {
	s.list.Close()
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
