package persist

import (
	"context"
	"errors"
)

// ErrNotReady resolves the write task of a mutation issued before the store finished loading.
var ErrNotReady = errors.New("store not loaded")

// Task is the pending result of one snapshot write.
type Task struct {
	done       chan struct{}
	err        error
	superseded bool
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

// Completed returns a task that has already finished with err.
func Completed(err error) *Task {
	t := newTask()
	t.finish(err, false)
	return t
}

func (t *Task) finish(err error, superseded bool) {
	t.err = err
	t.superseded = superseded
	close(t.done)
}

// Done is closed once the write has finished, failed or been skipped.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the write finishes or ctx is done.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the write error, or nil while the task is still pending.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Superseded reports whether the write was skipped because a newer snapshot was already committed.
func (t *Task) Superseded() bool {
	<-t.done
	return t.superseded
}
