package command

import (
	"strings"
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Parallel runs a fixed list of children every tick, adopting the union of
// their requirements. If Race is false it finishes when every child has
// finished; if true, it finishes as soon as any one child finishes. A
// racing Parallel does not pre-end still-running siblings the tick a
// winner finishes — those are ended with interrupted=true only when the
// composite itself is ended (End interrupts every unfinished child whatever
// its own argument).
type Parallel struct {
	Commands []engine.Command
	Finished []bool
	Reqs     map[engine.SUID]struct{}
	Race     bool
}

var _ engine.Command = (*Parallel)(nil)

func newParallel(cmds []engine.Command, race bool) *Parallel {
	reqs := make(map[engine.SUID]struct{})
	for _, c := range cmds {
		for s := range c.Requirements() {
			reqs[s] = struct{}{}
		}
	}
	return &Parallel{
		Commands: cmds,
		Finished: make([]bool, len(cmds)),
		Reqs:     reqs,
		Race:     race,
	}
}

func (p *Parallel) Init() {
	for i := range p.Commands {
		p.Finished[i] = false
	}
	for _, c := range p.Commands {
		c.Init()
	}
}

func (p *Parallel) Periodic(dt time.Duration) {
	for i, c := range p.Commands {
		if p.Finished[i] {
			continue
		}
		c.Periodic(dt)
		if c.IsFinished() {
			c.End(false)
			p.Finished[i] = true
		}
	}
}

// End always ends every not-yet-finished child with interrupted=true,
// regardless of its own interrupted argument: when the composite is itself
// interrupted this is the normal interrupt-propagation case, and when the
// composite self-completed (a race winner finished) this is how the still-
// running losers are ended, since nothing else ever calls End on them. In
// the non-race all-finished case the loop is a no-op, since every child is
// already marked finished by then.
func (p *Parallel) End(bool) {
	for i, c := range p.Commands {
		if !p.Finished[i] {
			c.End(true)
			p.Finished[i] = true
		}
	}
}

func (p *Parallel) IsFinished() bool {
	if p.Race {
		for _, f := range p.Finished {
			if f {
				return true
			}
		}
		return false
	}
	for _, f := range p.Finished {
		if !f {
			return false
		}
	}
	return true
}

func (p *Parallel) Requirements() map[engine.SUID]struct{} { return p.Reqs }
func (p *Parallel) RunWhenDisabled() bool                   { return false }
func (p *Parallel) CancelIncoming() bool                     { return false }

func (p *Parallel) Name() string {
	names := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		names[i] = c.Name()
	}
	return strings.Join(names, ",")
}
