// Package graph implements the Scheduler: the per-tick state machine that
// drains submission queues, runs subsystems, polls conditions, admits and
// interrupts commands, and reaps terminated ones, per the scheduler
// contract defined in engine.
package graph

import "github.com/roboctl/cmdsched/engine"

// slot holds one arena entry. A non-nil *slot with a nil cmd represents a
// registered-but-commandless default-command entry (a subsystem with no
// default command still occupies a DefaultCommand slot, so its SUID can map
// to a stable index). A nil *slot is a vacancy available for reuse.
type slot struct {
	cmd engine.Command
}

// arena is a vacancy-tracked slice of command slots, one of the three the
// scheduler keeps (Command, DefaultCommand, PreservedCommand). Freed slots
// are nulled rather than compacted, so that CommandIndex values handed out
// earlier remain valid as long as the entry they name hasn't itself been
// freed.
type arena struct {
	kind  engine.CommandIndexKind
	slots []*slot
}

func newArena(kind engine.CommandIndexKind) *arena {
	return &arena{kind: kind}
}

// insert places cmd (which may be nil) into the first vacancy, or appends a
// new slot if there is none, and returns the resulting index.
func (a *arena) insert(cmd engine.Command) engine.CommandIndex {
	for i, s := range a.slots {
		if s == nil {
			a.slots[i] = &slot{cmd: cmd}
			return engine.CommandIndex{Kind: a.kind, Idx: i}
		}
	}
	a.slots = append(a.slots, &slot{cmd: cmd})
	return engine.CommandIndex{Kind: a.kind, Idx: len(a.slots) - 1}
}

// get returns the command at idx, or nil if idx is out of range or vacant.
func (a *arena) get(idx int) engine.Command {
	if idx < 0 || idx >= len(a.slots) || a.slots[idx] == nil {
		return nil
	}
	return a.slots[idx].cmd
}

// free empties the slot at idx, making it available for reuse.
func (a *arena) free(idx int) {
	if idx >= 0 && idx < len(a.slots) {
		a.slots[idx] = nil
	}
}

// reset discards every slot, starting the arena over empty.
func (a *arena) reset() {
	a.slots = nil
}

// all iterates every occupied slot, yielding its CommandIndex and command.
func (a *arena) all(yield func(engine.CommandIndex, engine.Command)) {
	for i, s := range a.slots {
		if s != nil {
			yield(engine.CommandIndex{Kind: a.kind, Idx: i}, s.cmd)
		}
	}
}
