package usecase

import (
	"context"
	"fmt"
	"sync"

	"task-planner/internal/task"
)

type job struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

// writer runs every task-store mutation on one goroutine, so a
// read-then-write sequence such as materialization never interleaves with
// another. Jobs must not call Do themselves.
type writer struct {
	jobs chan job
	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func newWriter() *writer {
	w := &writer{
		jobs: make(chan job),
		quit: make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

func (w *writer) loop() {
	defer w.wg.Done()
	for {
		select {
		case j := <-w.jobs:
			j.done <- run(j)
		case <-w.quit:
			return
		}
	}
}

func run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("writer job panicked: %v", r)
		}
	}()
	return j.fn(j.ctx)
}

// Do hands fn to the writer and waits for its result. Once accepted the job
// runs to completion even if ctx is cancelled meanwhile.
func (w *writer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-w.quit:
		return task.ErrPlannerClosed
	}
	return <-j.done
}

// Close stops the loop after the current job. Safe to call twice.
func (w *writer) Close() {
	w.once.Do(func() {
		close(w.quit)
	})
	w.wg.Wait()
}
