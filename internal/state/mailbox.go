package state

import (
	"context"
	"sync"
)

// Executor runs closures on the goroutine that owns a set of stores.
type Executor interface {
	Post(fn func())
}

const defaultMailboxSize = 64

// Mailbox is a FIFO of closures waiting to run on the owning goroutine. Posts
// from worker goroutines block while the mailbox is full and are dropped once
// it is closed.
type Mailbox struct {
	ch        chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewMailbox returns a mailbox buffering up to size closures.
func NewMailbox(size int) *Mailbox {
	if size <= 0 {
		size = defaultMailboxSize
	}
	return &Mailbox{
		ch:   make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Post queues fn. It returns without queueing when the mailbox is closed.
func (m *Mailbox) Post(fn func()) {
	select {
	case <-m.done:
		return
	default:
	}
	select {
	case m.ch <- fn:
	case <-m.done:
	}
}

// C exposes the queue so an existing event loop can drain it.
func (m *Mailbox) C() <-chan func() {
	return m.ch
}

// Done is closed once Close has been called.
func (m *Mailbox) Done() <-chan struct{} {
	return m.done
}

// Run drains the mailbox on the calling goroutine until ctx is cancelled or
// the mailbox is closed.
func (m *Mailbox) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.done:
			return
		case fn := <-m.ch:
			fn()
		}
	}
}

// Close stops accepting posts and releases blocked posters.
func (m *Mailbox) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}
