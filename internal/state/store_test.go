package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type counterAction interface{ counterAction() }

type (
	increment struct{}
	chain     struct{ times int }
	received  struct{ value int }
	startWork struct{}
)

func (increment) counterAction() {}
func (chain) counterAction()     {}
func (received) counterAction()  {}
func (startWork) counterAction() {}

type counterEffect struct {
	again int
	work  bool
}

type counterEnv struct {
	seen *[]int
	wait chan struct{}
}

type counterStore = Store[int, counterAction, counterEffect, counterEnv]

func reduceCounter(s int, a counterAction) (int, []counterEffect) {
	switch a := a.(type) {
	case increment:
		return s + 1, nil
	case chain:
		if a.times <= 0 {
			return s, nil
		}
		return s + 1, []counterEffect{{again: a.times - 1}}
	case received:
		return a.value, nil
	case startWork:
		return s, []counterEffect{{work: true}}
	default:
		panic("unreachable")
	}
}

func handleCounter(store *counterStore, e counterEffect) {
	env := store.Env()
	if env.seen != nil {
		*env.seen = append(*env.seen, store.State())
	}
	if e.work {
		store.Go(func(ctx context.Context) counterAction {
			if env.wait != nil {
				<-env.wait
			}
			return received{value: 42}
		})
		return
	}
	if e.again >= 0 {
		store.Dispatch(chain{times: e.again})
	}
}

func newCounter(t *testing.T, env counterEnv) (*counterStore, *Mailbox) {
	t.Helper()
	mb := NewMailbox(4)
	t.Cleanup(mb.Close)
	rt := Runtime{Exec: mb, Context: context.Background()}
	return New(rt.Named("counter"), 0, reduceCounter, handleCounter, env), mb
}

func TestStore_DispatchReplacesStateAndNotifies(t *testing.T) {
	s, _ := newCounter(t, counterEnv{})

	var snapshots []int
	s.Subscribe(func(v int) { snapshots = append(snapshots, v) })

	s.Dispatch(increment{})
	s.Dispatch(increment{})

	assert.Equal(t, 2, s.State())
	assert.Equal(t, []int{1, 2}, snapshots)
}

func TestStore_SubscribeReplacesPrevious(t *testing.T) {
	s, _ := newCounter(t, counterEnv{})

	var first, second int
	s.Subscribe(func(int) { first++ })
	s.Subscribe(func(int) { second++ })
	s.Dispatch(increment{})

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	s.Subscribe(nil)
	s.Dispatch(increment{})
	assert.Equal(t, 1, second)
}

func TestStore_ReentrantDispatchObservesTriggeringState(t *testing.T) {
	var seen []int
	s, _ := newCounter(t, counterEnv{seen: &seen})

	s.Dispatch(chain{times: 3})

	// Each effect runs after its dispatch assigned the new state.
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 3, s.State())
}

func TestStore_GoDeliversOnOwningLoop(t *testing.T) {
	s, mb := newCounter(t, counterEnv{})

	s.Dispatch(startWork{})
	assert.Equal(t, 0, s.State(), "result must not be applied off the owning loop")

	select {
	case fn := <-mb.C():
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for task result")
	}
	assert.Equal(t, 42, s.State())
}

func TestTask_CancelDropsAction(t *testing.T) {
	s, mb := newCounter(t, counterEnv{})

	task := s.Go(func(ctx context.Context) counterAction {
		<-ctx.Done()
		return received{value: 7}
	})
	task.Cancel()
	require.True(t, task.Cancelled())

	select {
	case fn := <-mb.C():
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cancelled task to post")
	}
	assert.Equal(t, 0, s.State())
	assert.True(t, task.Done())
}

func TestTask_CancelAfterDeliveryIsNoop(t *testing.T) {
	s, mb := newCounter(t, counterEnv{})

	task := s.Go(func(context.Context) counterAction { return received{value: 9} })
	(<-mb.C())()
	require.Equal(t, 9, s.State())

	task.Cancel()
	assert.False(t, task.Cancelled())
	assert.True(t, task.Done())
	assert.Equal(t, 9, s.State())
}

func TestTask_NilIsSafe(t *testing.T) {
	var task *Task
	task.Cancel()
	assert.True(t, task.Done())
	assert.False(t, task.Cancelled())
}

func TestMailbox_RunPreservesOrderAndStopsOnClose(t *testing.T) {
	mb := NewMailbox(0)
	var got []int
	for i := 1; i <= 3; i++ {
		i := i
		mb.Post(func() { got = append(got, i) })
	}
	mb.Post(mb.Close)

	done := make(chan struct{})
	go func() {
		mb.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, []int{1, 2, 3}, got)

	// Posting after close neither blocks nor queues.
	mb.Post(func() { t.Error("ran after close") })
}

func TestContent_Phases(t *testing.T) {
	c := Loaded([]string{"a"})
	d, ok := c.Data()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, d)

	more := LoadingMore(d)
	assert.Equal(t, PhaseLoadingMore, more.Phase())
	assert.Equal(t, d, more.MustData())

	boom := errors.New("boom")
	failed := Failed[[]string](boom)
	assert.ErrorIs(t, failed.Err(), boom)
	_, ok = failed.Data()
	assert.False(t, ok)
	assert.Nil(t, c.Err())

	assert.Panics(t, func() { Idle[[]string]().MustData() })
	assert.Equal(t, "loadingMore", PhaseLoadingMore.String())
}
