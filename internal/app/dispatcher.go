// Package app contains the application layer: services, interactors and
// screen presenters.
package app

import (
	"context"
	"sync"
)

// Dispatcher runs jobs one at a time, in submission order, on its own
// goroutine. Each screen owns one, which gives it a single logical actor:
// at most one request in flight and per-task operations applied in issue order.
type Dispatcher struct {
	ctx context.Context

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func(context.Context)
	running bool
	closed  bool
	done    chan struct{}
}

// NewDispatcher starts a dispatcher. Jobs receive a context detached from
// ctx's cancellation: issued work always runs to completion.
func NewDispatcher(ctx context.Context) *Dispatcher {
	d := &Dispatcher{
		ctx:  context.WithoutCancel(ctx),
		done: make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	go d.loop()
	return d
}

// Submit queues a job. It never blocks and may be called from inside a job.
// Jobs submitted after Close are dropped and Submit reports false.
func (d *Dispatcher) Submit(job func(context.Context)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.queue = append(d.queue, job)
	d.cond.Broadcast()
	return true
}

// Wait blocks until the queue is empty and no job is running, including jobs
// queued by other jobs. Must not be called from inside a job.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.queue) > 0 || d.running {
		d.cond.Wait()
	}
}

// Close stops accepting jobs, runs what is already queued, and returns once
// the dispatcher goroutine has exited. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		job := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.running = true
		d.mu.Unlock()

		job(d.ctx)

		d.mu.Lock()
		d.running = false
		d.cond.Broadcast()
		d.mu.Unlock()
	}
}
