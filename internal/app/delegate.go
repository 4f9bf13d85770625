package app

import (
	"sync"
	"weak"

	"github.com/example/todo/internal/ports/primary"
)

// weakListDelegate forwards DidSaveTask to a list presenter without keeping
// it reachable. Once the presenter is collected, or the delegate released,
// notifications are dropped.
type weakListDelegate struct {
	mu     sync.Mutex
	target weak.Pointer[TaskListPresenter]
	live   bool
}

func newWeakListDelegate(p *TaskListPresenter) *weakListDelegate {
	return &weakListDelegate{target: weak.Make(p), live: true}
}

// DidSaveTask notifies the list presenter if it is still alive.
func (d *weakListDelegate) DidSaveTask() {
	d.mu.Lock()
	if !d.live {
		d.mu.Unlock()
		return
	}
	p := d.target.Value()
	d.mu.Unlock()

	if p != nil {
		p.DidSaveTask()
	}
}

// release drops the reference for good.
func (d *weakListDelegate) release() {
	d.mu.Lock()
	d.live = false
	d.target = weak.Pointer[TaskListPresenter]{}
	d.mu.Unlock()
}

// releasable is satisfied by delegates that can be dropped explicitly.
type releasable interface {
	release()
}

var _ primary.DetailDelegate = (*weakListDelegate)(nil)
