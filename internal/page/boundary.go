// Package page holds the deferred content boundary used by server-rendered
// pages: a region that shows a placeholder until one asynchronous fetch
// resolves, then shows either the data or an error.
package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State of a deferred boundary.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAlreadySettled is returned when a boundary that left Loading is resolved again.
var ErrAlreadySettled = errors.New("boundary already settled")

// Boundary is a deferred region. It starts in Loading and moves exactly once,
// to Ready or to Failed. It is safe for concurrent use.
type Boundary[T any] struct {
	ID string

	mu    sync.RWMutex
	state State
	data  T
	err   error
	done  chan struct{}
}

// NewBoundary returns a boundary in the Loading state.
func NewBoundary[T any](id string) *Boundary[T] {
	return &Boundary[T]{ID: id, done: make(chan struct{})}
}

// Resolve moves the boundary from Loading to Ready.
func (b *Boundary[T]) Resolve(data T) error {
	return b.settle(Ready, data, nil)
}

// Fail moves the boundary from Loading to Failed. A nil err is rejected.
func (b *Boundary[T]) Fail(err error) error {
	if err == nil {
		return errors.New("boundary: Fail called with nil error")
	}
	var zero T
	return b.settle(Failed, zero, err)
}

func (b *Boundary[T]) settle(to State, data T, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Loading {
		return fmt.Errorf("%w: %s -> %s", ErrAlreadySettled, b.state, to)
	}
	b.state, b.data, b.err = to, data, err
	close(b.done)
	return nil
}

// Done is closed once the boundary has settled.
func (b *Boundary[T]) Done() <-chan struct{} {
	return b.done
}

// State reports the current state.
func (b *Boundary[T]) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Result returns the data and error. Both are zero while Loading.
func (b *Boundary[T]) Result() (T, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.data, b.err
}

// Wait blocks until the boundary settles or ctx is done.
func (b *Boundary[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-b.done:
		return b.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Defer starts fetch on its own goroutine and returns a boundary that settles
// with its outcome. fetch is called exactly once.
func Defer[T any](ctx context.Context, id string, fetch func(context.Context) (T, error)) *Boundary[T] {
	b := NewBoundary[T](id)
	go func() {
		data, err := fetch(ctx)
		if err != nil {
			_ = b.Fail(err)
			return
		}
		_ = b.Resolve(data)
	}()
	return b
}
