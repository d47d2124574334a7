// Package condition implements boolean Condition predicates and the
// edge-triggered conditional scheduler that reschedules a preserved command
// on a rising or falling edge of a Condition's sampled value.
package condition

import (
	"context"

	"github.com/roboctl/cmdsched/engine"
)

// Condition wraps a boolean-producing predicate. And, Or and Negate combine
// conditions without evaluating the predicates until the result is sampled.
type Condition struct {
	fn func() bool
}

// New wraps fn as a Condition.
func New(fn func() bool) *Condition {
	return &Condition{fn: fn}
}

// Get samples the condition.
func (c *Condition) Get() bool { return c.fn() }

// And returns a new Condition that is true iff both c and other are true,
// short-circuiting on c.
func (c *Condition) And(other func() bool) *Condition {
	self := c.fn
	return &Condition{fn: func() bool { return self() && other() }}
}

// Or returns a new Condition that is true iff either c or other is true.
// Unlike And it does not short-circuit, since both branches may carry side
// effects a caller relies on sampling every poll — matching the source's
// bitwise-or composition.
func (c *Condition) Or(other func() bool) *Condition {
	self := c.fn
	return &Condition{fn: func() bool { a := self(); b := other(); return a || b }}
}

// Negate returns the logical complement of c.
func (c *Condition) Negate() *Condition {
	self := c.fn
	return &Condition{fn: func() bool { return !self() }}
}

func risingEdge(fn func() bool) func() bool {
	lastPoll := false
	return func() bool {
		poll := fn()
		prev := lastPoll
		lastPoll = poll
		return !prev && poll
	}
}

func fallingEdge(fn func() bool) func() bool {
	lastPoll := false
	return func() bool {
		poll := fn()
		prev := lastPoll
		lastPoll = poll
		return prev && !poll
	}
}

// OnTrue registers a conditional scheduler with the scheduler bound to ctx
// that admits cmd on the rising edge of c (previous sample false, current
// sample true). It returns c unchanged for chaining.
func (c *Condition) OnTrue(ctx context.Context, cmd engine.Command) (*Condition, error) {
	sched := newScheduler(risingEdge(c.fn), cmd)
	handle, err := engine.FromContext(ctx)
	if err != nil {
		return c, err
	}
	if err := handle.EnqueueCond(sched); err != nil {
		return c, err
	}
	return c, nil
}

// OnFalse registers a conditional scheduler with the scheduler bound to ctx
// that admits cmd on the falling edge of c (previous sample true, current
// sample false). It returns c unchanged for chaining.
func (c *Condition) OnFalse(ctx context.Context, cmd engine.Command) (*Condition, error) {
	sched := newScheduler(fallingEdge(c.fn), cmd)
	handle, err := engine.FromContext(ctx)
	if err != nil {
		return c, err
	}
	if err := handle.EnqueueCond(sched); err != nil {
		return c, err
	}
	return c, nil
}
