package state

import (
	"context"
	"sync/atomic"
)

const (
	taskRunning int32 = iota
	taskDelivered
	taskCancelled
)

// Task is a handle on one asynchronous effect started with Store.Go. Exactly
// one of delivery or cancellation wins.
type Task struct {
	status atomic.Int32
	cancel context.CancelFunc
}

// Cancel stops the task. The action it produces, if any, is never dispatched.
// Cancelling a delivered task does nothing.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	if t.status.CompareAndSwap(taskRunning, taskCancelled) {
		t.cancel()
	}
}

// Done reports whether the task has finished, either delivered or cancelled.
func (t *Task) Done() bool {
	if t == nil {
		return true
	}
	return t.status.Load() != taskRunning
}

// Cancelled reports whether Cancel won against delivery.
func (t *Task) Cancelled() bool {
	return t != nil && t.status.Load() == taskCancelled
}

func (t *Task) deliver() bool {
	ok := t.status.CompareAndSwap(taskRunning, taskDelivered)
	t.cancel()
	return ok
}
