package harness

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadyCompleted is returned when a completion is resolved or rejected a second time
var ErrAlreadyCompleted = errors.New("completion already settled")

// Completion is a one-shot result container. It is settled exactly once,
// by Resolve or Reject, from any goroutine; Wait blocks until then.
type Completion[T any] struct {
	mu    sync.Mutex
	done  chan struct{}
	value T
	err   error
}

// NewCompletion returns an unsettled completion
func NewCompletion[T any]() *Completion[T] {
	return &Completion[T]{done: make(chan struct{})}
}

// Resolve settles the completion with v
func (c *Completion[T]) Resolve(v T) error {
	return c.settle(v, nil)
}

// Reject settles the completion with err
func (c *Completion[T]) Reject(err error) error {
	var zero T
	return c.settle(zero, err)
}

func (c *Completion[T]) settle(v T, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return ErrAlreadyCompleted
	default:
	}
	c.value = v
	c.err = err
	close(c.done)
	return nil
}

// Done is closed once the completion is settled
func (c *Completion[T]) Done() <-chan struct{} {
	return c.done
}

// Wait returns the settled value, or the context's error if ctx ends first
func (c *Completion[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
