package state

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Reducer computes the next state and the effects to run for one action. It
// must not perform I/O or touch shared mutable data.
type Reducer[S, A, E any] func(state S, action A) (S, []E)

// EffectHandler executes one effect on behalf of a store.
type EffectHandler[S, A, E, Env any] func(store *Store[S, A, E, Env], effect E)

// Runtime is the set of collaborators every store in one program shares: the
// executor that owns all dispatches, the base context for asynchronous tasks,
// and the logger.
type Runtime struct {
	Exec    Executor
	Context context.Context
	Logger  *zap.Logger
}

// Named returns a copy of the runtime whose logger name gains name as a
// segment, so a child store created by "menu" logs as "menu.categories".
func (rt Runtime) Named(name string) Runtime {
	rt.Logger = rt.logger().Named(name)
	return rt
}

func (rt Runtime) logger() *zap.Logger {
	if rt.Logger == nil {
		return zap.NewNop()
	}
	return rt.Logger
}

func (rt Runtime) context() context.Context {
	if rt.Context == nil {
		return context.Background()
	}
	return rt.Context
}

// Store holds the current state of one screen and runs its reducer and effect
// handler.
//
// A Store is not safe for concurrent use. Dispatch, Subscribe and State must
// be called from the goroutine that drains the runtime's executor; work done
// elsewhere reaches the store through Go.
type Store[S, A, E, Env any] struct {
	state      S
	reducer    Reducer[S, A, E]
	handler    EffectHandler[S, A, E, Env]
	env        Env
	subscriber func(S)
	rt         Runtime
}

// New builds a store with the initial state, reducer, effect handler and
// environment.
func New[S, A, E, Env any](rt Runtime, initial S, reducer Reducer[S, A, E], handler EffectHandler[S, A, E, Env], env Env) *Store[S, A, E, Env] {
	if reducer == nil {
		panic("state: nil reducer")
	}
	return &Store[S, A, E, Env]{
		state:   initial,
		reducer: reducer,
		handler: handler,
		env:     env,
		rt:      rt,
	}
}

// Dispatch reduces the action, replaces the state, notifies the subscriber and
// then runs every effect in order. Effect handlers may call Dispatch again; the
// nested dispatch sees the state produced by this one.
func (s *Store[S, A, E, Env]) Dispatch(action A) {
	next, effects := s.reducer(s.state, action)
	s.state = next

	if log := s.rt.logger(); log.Core().Enabled(zap.DebugLevel) {
		log.Debug("dispatch",
			zap.String("action", fmt.Sprintf("%T", action)),
			zap.Int("effects", len(effects)))
	}

	if s.subscriber != nil {
		s.subscriber(next)
	}
	if s.handler == nil {
		return
	}
	for _, effect := range effects {
		s.handler(s, effect)
	}
}

// Subscribe replaces the current subscriber. Passing nil removes it.
func (s *Store[S, A, E, Env]) Subscribe(fn func(S)) {
	s.subscriber = fn
}

// State returns the current state.
func (s *Store[S, A, E, Env]) State() S {
	return s.state
}

// Env returns the store's environment.
func (s *Store[S, A, E, Env]) Env() Env {
	return s.env
}

// Runtime returns the runtime the store was built with so effect handlers can
// pass it on to child stores.
func (s *Store[S, A, E, Env]) Runtime() Runtime {
	return s.rt
}

// Logger returns the store's logger.
func (s *Store[S, A, E, Env]) Logger() *zap.Logger {
	return s.rt.logger()
}

// Go runs fn on its own goroutine and dispatches the action it returns on the
// owning goroutine. The returned task cancels fn's context and drops the
// action if it has not been delivered yet.
func (s *Store[S, A, E, Env]) Go(fn func(ctx context.Context) A) *Task {
	ctx, cancel := context.WithCancel(s.rt.context())
	task := &Task{cancel: cancel}
	exec := s.rt.Exec
	if exec == nil {
		panic("state: store has no executor")
	}

	go func() {
		action := fn(ctx)
		exec.Post(func() {
			if !task.deliver() {
				return
			}
			s.Dispatch(action)
		})
	}()
	return task
}
