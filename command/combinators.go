package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Empty returns a requirement-free, init-only no-op command.
func Empty() engine.Command {
	return &Simple{}
}

// AlongWith builds a Parallel of a and b that finishes when both finish.
func AlongWith(a, b engine.Command) engine.Command {
	return newParallel([]engine.Command{a, b}, false)
}

// AlongWithMany builds a Parallel of first followed by others, finishing
// when all of them finish.
func AlongWithMany(first engine.Command, others []engine.Command) engine.Command {
	cmds := append([]engine.Command{first}, others...)
	return newParallel(cmds, false)
}

// RaceWith builds a Parallel of a and b that finishes as soon as either
// finishes.
func RaceWith(a, b engine.Command) engine.Command {
	return newParallel([]engine.Command{a, b}, true)
}

// RaceWithMany builds a Parallel of first followed by others, finishing as
// soon as any one of them finishes.
func RaceWithMany(first engine.Command, others []engine.Command) engine.Command {
	cmds := append([]engine.Command{first}, others...)
	return newParallel(cmds, true)
}

// Timeout races cmd against a Wait of the given duration, bounding cmd's
// runtime regardless of whether cmd itself ever finishes.
func Timeout(cmd engine.Command, d time.Duration) engine.Command {
	return RaceWith(cmd, WaitFor(d))
}

// Before builds a Sequential running a then b.
func Before(a, b engine.Command) engine.Command {
	return newSequential([]engine.Command{a, b})
}

// After builds a Sequential running b then a (a runs after b).
func After(a, b engine.Command) engine.Command {
	return newSequential([]engine.Command{b, a})
}

// AndThenMany builds a Sequential running first followed by others in
// order.
func AndThenMany(first engine.Command, others []engine.Command) engine.Command {
	cmds := append([]engine.Command{first}, others...)
	return newSequential(cmds)
}

// WithName wraps cmd, overriding its Name.
func WithName(cmd engine.Command, name string) engine.Command {
	return &Named{Inner: cmd, CmdName: name}
}

// WithExtraRequirements wraps cmd, widening its requirement set by extra.
func WithExtraRequirements(cmd engine.Command, extra map[engine.SUID]struct{}) engine.Command {
	return &ExtraRequirements{Inner: cmd, Extra: extra}
}

// ParallelMany builds a Parallel of every command in cmds, finishing when
// all of them finish. The commands do not actually run concurrently; they
// each run once per tick, in order, unlike Sequential where only the
// current command runs per tick.
func ParallelMany(cmds ...engine.Command) engine.Command {
	return newParallel(cmds, false)
}

// RaceMany builds a Parallel of every command in cmds, finishing as soon as
// any one of them finishes.
func RaceMany(cmds ...engine.Command) engine.Command {
	return newParallel(cmds, true)
}

// SequentialMany builds a Sequential running every command in cmds in
// order.
func SequentialMany(cmds ...engine.Command) engine.Command {
	return newSequential(cmds)
}
