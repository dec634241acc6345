// Package state provides the unidirectional store every whattocook screen is
// built on.
//
// # Overview
//
// A Store holds the current state of one screen. UI code sends it actions;
// a pure reducer turns (state, action) into the next state and a list of
// effects; the effect handler runs those effects against the screen's
// environment. Asynchronous results come back as actions.
//
//	 UI event
//	    │
//	    ▼
//	Dispatch(action) ──> reducer(state, action) ──> (next, effects)
//	                         │
//	                         ├─> state = next
//	                         ├─> subscriber(next)        render
//	                         └─> handler(store, effect)  for each effect
//	                                  │
//	                                  ├─> Dispatch(...)  synchronous follow-up
//	                                  └─> Go(fn)         worker goroutine
//	                                         │
//	                                         └─> Executor.Post ──> Dispatch(result)
//
// # Core Types
//
//   - Store[S, A, E, Env]: state container, one per screen
//   - Reducer and EffectHandler: the per-screen functions a Store is built from
//   - Runtime: executor, base context and logger shared by all stores
//   - Task: handle on one in-flight asynchronous effect
//   - Mailbox: the Executor used by the UI loop and by headless runs
//   - Content[D]: idle/loading/data/loadingMore/empty/error lifecycle of a list
//
// # Concurrency Model
//
// Stores take no locks. All dispatches for a program happen on one goroutine:
// the Bubble Tea update loop in the UI, or Mailbox.Run elsewhere. Worker
// goroutines started by Store.Go never touch a store directly; they post a
// closure that dispatches their single terminal action. Because every
// dispatch runs to completion before the next closure is taken from the
// mailbox, reduce, notify and run-effects form one atomic step per action.
//
// Dispatch is re-entrant: an effect handler may dispatch synchronously and the
// nested call observes the state produced by the outer one.
//
// # Cancellation
//
// Store.Go returns a Task. Cancel cancels the task's context and guarantees
// the action is never dispatched. Delivery and cancellation race through a
// single compare-and-swap, so cancelling a task that already delivered is a
// harmless no-op.
//
// # Content Phases
//
// Content[D] models one paginated list:
//
//	idle ──load──> loading ──ok──> data(D) ──end of list──> loadingMore(D)
//	                  │   └─empty─> empty            ▲             │
//	                  └─fail──> error ──retry──┘     └──more/none──┘
//
// Data(D) and LoadingMore(D) both expose D so the last good page stays on
// screen while the next one loads.
package state
