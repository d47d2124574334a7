package command

import (
	"context"

	"github.com/roboctl/cmdsched/engine"
)

// Schedule enqueues cmd for admission at the next tick of the scheduler
// bound to ctx. It returns engine.ErrWrongContext if ctx has no scheduler
// bound — the idiomatic Go replacement for the source's panicking
// schedule()/fallible try_schedule() pair; Go callers always get an error
// back rather than a panic.
func Schedule(ctx context.Context, cmd engine.Command) error {
	handle, err := engine.FromContext(ctx)
	if err != nil {
		return err
	}
	return handle.Enqueue(cmd)
}
