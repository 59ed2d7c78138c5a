// Copyright (c) 2026 ScholarHub. All rights reserved.

package filterstate

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultDebounce is the trailing delay between the last filter change and
// the fetch it triggers. Rapid clicks coalesce into one request.
const DefaultDebounce = 300 * time.Millisecond

/*
Controller drives debounced, superseding fetches from filter transitions.

Every dispatched action advances the state immediately; the fetch fires only
after the debounce window closes with no further actions. When a new fetch
starts, the in-flight one is cancelled and its late result discarded, so
OnResult only ever observes the response matching the newest state.

# Concurrency

All exported methods are safe for concurrent use. Callbacks run on the
fetch goroutine, never concurrently with themselves for the same sequence.
*/
type Controller[R any] struct {
	// Fetch loads the data for a state snapshot. Required.
	Fetch func(context context.Context, state State) (R, error)
	// OnResult receives the response for the newest state. Required.
	OnResult func(state State, result R)
	// OnError receives fetch failures. Cancellations caused by
	// supersession or Close are not reported. Optional.
	OnError func(err error)
	// Debounce overrides [DefaultDebounce] when positive.
	Debounce time.Duration

	mu     sync.Mutex
	state  State
	timer  *time.Timer
	seq    uint64
	cancel context.CancelFunc
	root   context.Context
	closed bool
}

// Start initializes the controller with the viewer's initial state and
// performs the first fetch immediately, skipping the debounce.
func (controller *Controller[R]) Start(root context.Context, initial State) {
	controller.mu.Lock()
	controller.root = root
	controller.state = initial
	controller.mu.Unlock()

	controller.fire(initial)
}

// State returns the current filter snapshot.
func (controller *Controller[R]) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Dispatch applies an action and schedules a debounced fetch. Actions
// arriving inside the debounce window restart it, so only the final state
// of a burst is fetched.
func (controller *Controller[R]) Dispatch(action Action) State {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.closed {
		return controller.state
	}

	controller.state = Reduce(controller.state, action)
	next := controller.state

	if controller.timer != nil {
		controller.timer.Stop()
	}
	controller.timer = time.AfterFunc(controller.debounce(), func() {
		controller.fire(next)
	})

	return next
}

// Refresh re-fetches the current state immediately, bypassing the debounce.
func (controller *Controller[R]) Refresh() {
	controller.mu.Lock()
	state := controller.state
	controller.mu.Unlock()

	controller.fire(state)
}

// Close cancels any pending or in-flight fetch. Late callbacks are
// suppressed. Close is idempotent.
func (controller *Controller[R]) Close() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.closed = true
	if controller.timer != nil {
		controller.timer.Stop()
		controller.timer = nil
	}
	if controller.cancel != nil {
		controller.cancel()
		controller.cancel = nil
	}
}

// fire starts a fetch for the given state, superseding any in-flight one.
func (controller *Controller[R]) fire(state State) {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}

	if controller.cancel != nil {
		controller.cancel()
	}

	root := controller.root
	if root == nil {
		root = context.Background()
	}
	fetchContext, cancel := context.WithCancel(root)
	controller.cancel = cancel

	controller.seq++
	seq := controller.seq
	controller.mu.Unlock()

	go func() {
		defer cancel()

		result, err := controller.Fetch(fetchContext, state)

		controller.mu.Lock()
		current := seq == controller.seq && !controller.closed
		controller.mu.Unlock()
		if !current {
			return
		}

		if err != nil {
			if controller.OnError != nil && !errors.Is(err, context.Canceled) {
				controller.OnError(err)
			}
			return
		}

		controller.OnResult(state, result)
	}()
}

func (controller *Controller[R]) debounce() time.Duration {
	if controller.Debounce > 0 {
		return controller.Debounce
	}
	return DefaultDebounce
}
