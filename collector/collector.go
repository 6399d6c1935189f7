// Package collector provides the timeout-bounded request/response
// primitive behind every multi-step command flow: present a choice to one
// authorized user, wait up to a deadline for exactly one qualifying
// response, and resolve to the response, a timeout, or a cancellation.
//
// A collector is single-use. Chained flows (choose, then confirm) arm a
// fresh collector per step and abort the whole chain on the first
// non-resolved outcome; persistence writes happen only after the final
// step resolves.
package collector

import (
	"context"
	"sync"
	"time"
)

// Outcome is the terminal state of a collector.
type Outcome int

const (
	// Resolved means a qualifying response arrived before the deadline.
	Resolved Outcome = iota
	// TimedOut means the deadline elapsed with no qualifying response.
	// This is a normal outcome, not an error.
	TimedOut
	// Cancelled means the collector was cancelled externally, e.g. the
	// prompt message was deleted or the user chose to abort.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Result carries the outcome and, when Resolved, the response value.
type Result[T any] struct {
	Outcome  Outcome
	Response T
}

// Collector waits for one qualifying response of type T.
type Collector[T any] struct {
	accept   func(T) bool
	deadline time.Duration

	mu   sync.Mutex
	done bool
	ch   chan T
	quit chan struct{}
}

// New arms a collector. accept is the qualification predicate: it must
// return true only for responses from the authorized initiator (and,
// when relevant, matching control IDs). deadline bounds the wait; call
// sites take it from configuration.
func New[T any](deadline time.Duration, accept func(T) bool) *Collector[T] {
	return &Collector[T]{
		accept:   accept,
		deadline: deadline,
		ch:       make(chan T, 1),
		quit:     make(chan struct{}),
	}
}

// Deliver offers a response to the collector. Non-qualifying responses
// are ignored and the collector keeps waiting. The first qualifying
// response wins; later deliveries are dropped. Deliver never blocks and
// reports whether the response was accepted.
func (c *Collector[T]) Deliver(response T) bool {
	if c.accept != nil && !c.accept(response) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return false
	}
	select {
	case c.ch <- response:
		c.done = true
		return true
	default:
		return false
	}
}

// Cancel moves the collector to Cancelled if it has not yet resolved.
func (c *Collector[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.done = true
	close(c.quit)
}

// Await blocks until the collector reaches a terminal state. The context
// doubles as an external cancellation signal. Await must be called at
// most once.
func (c *Collector[T]) Await(ctx context.Context) Result[T] {
	timer := time.NewTimer(c.deadline)
	defer timer.Stop()

	select {
	case resp := <-c.ch:
		return Result[T]{Outcome: Resolved, Response: resp}
	case <-timer.C:
		return c.expire(TimedOut)
	case <-c.quit:
		return Result[T]{Outcome: Cancelled}
	case <-ctx.Done():
		return c.expire(Cancelled)
	}
}

// expire closes the collector with the given outcome unless a qualifying
// response slipped in concurrently, in which case that response wins.
func (c *Collector[T]) expire(outcome Outcome) Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case resp := <-c.ch:
		return Result[T]{Outcome: Resolved, Response: resp}
	default:
	}
	c.done = true
	return Result[T]{Outcome: outcome}
}
