// Copyright (c) 2026 ScholarHub. All rights reserved.

package filterstate_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scholarhub/api/internal/filterstate"
)

// recorder collects delivered results under a lock.
type recorder struct {
	mu      sync.Mutex
	results []filterstate.State
	errs    []error
}

func (r *recorder) onResult(state filterstate.State, _ struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, state)
}

func (r *recorder) onError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) snapshot() ([]filterstate.State, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]filterstate.State(nil), r.results...), append([]error(nil), r.errs...)
}

/*
TestController_DebounceCoalescing verifies that a burst of dispatches
produces exactly one fetch, carrying the final state of the burst.
*/
func TestController_DebounceCoalescing(t *testing.T) {
	rec := &recorder{}
	var mu sync.Mutex
	fetches := 0

	controller := &filterstate.Controller[struct{}]{
		Debounce: 20 * time.Millisecond,
		Fetch: func(_ context.Context, _ filterstate.State) (struct{}, error) {
			mu.Lock()
			fetches++
			mu.Unlock()
			return struct{}{}, nil
		},
		OnResult: rec.onResult,
	}
	defer controller.Close()

	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeyRole, Value: "faculty"})
	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeyCollege, Value: "College of Engineering"})
	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeySearch, Value: "robotics"})

	assert.Eventually(t, func() bool {
		results, _ := rec.snapshot()
		return len(results) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, fetches, "the burst coalesces into one fetch")
	mu.Unlock()

	results, _ := rec.snapshot()
	assert.Equal(t, "robotics", results[0].Search)
	assert.Equal(t, "College of Engineering", results[0].College)
}

/*
TestController_Supersession verifies that a newer fetch cancels and
discards the in-flight one: only the response for the newest state is
delivered.
*/
func TestController_Supersession(t *testing.T) {
	rec := &recorder{}
	release := make(chan struct{})

	controller := &filterstate.Controller[struct{}]{
		Debounce: time.Millisecond,
		Fetch: func(fetchContext context.Context, state filterstate.State) (struct{}, error) {
			if state.Role == "faculty" {
				// Simulate a slow first request.
				select {
				case <-release:
				case <-fetchContext.Done():
					return struct{}{}, fetchContext.Err()
				}
			}
			return struct{}{}, nil
		},
		OnResult: rec.onResult,
		OnError:  rec.onError,
	}
	defer controller.Close()

	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeyRole, Value: "faculty"})
	time.Sleep(10 * time.Millisecond)
	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeyRole, Value: "faculty"})
	close(release)

	assert.Eventually(t, func() bool {
		results, _ := rec.snapshot()
		return len(results) == 1
	}, time.Second, 5*time.Millisecond)

	results, errs := rec.snapshot()
	assert.Equal(t, filterstate.All, results[0].Role, "only the newest state's response is delivered")
	assert.Empty(t, errs, "supersession cancellations are not reported as errors")
}

/*
TestController_CloseSuppressesCallbacks verifies that Close prevents late
deliveries and that further dispatches are no-ops.
*/
func TestController_CloseSuppressesCallbacks(t *testing.T) {
	rec := &recorder{}
	controller := &filterstate.Controller[struct{}]{
		Debounce: time.Millisecond,
		Fetch: func(fetchContext context.Context, _ filterstate.State) (struct{}, error) {
			<-fetchContext.Done()
			return struct{}{}, fetchContext.Err()
		},
		OnResult: rec.onResult,
		OnError:  rec.onError,
	}

	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeyRole, Value: "faculty"})
	time.Sleep(10 * time.Millisecond)
	controller.Close()

	state := controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeySearch, Value: "late"})
	assert.Empty(t, state.Search, "dispatch after close is a no-op")

	time.Sleep(20 * time.Millisecond)
	results, errs := rec.snapshot()
	assert.Empty(t, results)
	assert.Empty(t, errs)
}

/*
TestController_ReleasesContextAfterFetch verifies that a completed fetch
releases its own context instead of holding it until the next supersession
or Close.
*/
func TestController_ReleasesContextAfterFetch(t *testing.T) {
	rec := &recorder{}
	var mu sync.Mutex
	var fetchContext context.Context

	controller := &filterstate.Controller[struct{}]{
		Debounce: time.Millisecond,
		Fetch: func(ctx context.Context, _ filterstate.State) (struct{}, error) {
			mu.Lock()
			fetchContext = ctx
			mu.Unlock()
			return struct{}{}, nil
		},
		OnResult: rec.onResult,
	}
	defer controller.Close()

	controller.Dispatch(filterstate.SetFilter{Key: filterstate.KeyRole, Value: "faculty"})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fetchContext != nil && fetchContext.Err() != nil
	}, time.Second, 5*time.Millisecond, "the fetch context is cancelled once the fetch returns")
}

/*
TestController_StartFetchesImmediately verifies that Start performs the
initial load without waiting for the debounce window.
*/
func TestController_StartFetchesImmediately(t *testing.T) {
	rec := &recorder{}
	controller := &filterstate.Controller[struct{}]{
		Debounce: time.Hour,
		Fetch: func(_ context.Context, _ filterstate.State) (struct{}, error) {
			return struct{}{}, nil
		},
		OnResult: rec.onResult,
	}
	defer controller.Close()

	controller.Start(context.Background(), filterstate.NewState(nil))

	assert.Eventually(t, func() bool {
		results, _ := rec.snapshot()
		return len(results) == 1
	}, time.Second, 5*time.Millisecond)
}
