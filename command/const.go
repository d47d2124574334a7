package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Const is a copyable command bound to static function pointers and a fixed
// requirement slice. It mirrors Simple but is intended for commands declared
// once at package scope rather than assembled per-call, matching the
// source's ConstCommand distinction between closures and static fns.
type Const struct {
	InitFn       func()
	PeriodicFn   func(time.Duration)
	EndFn        func(bool)
	IsFinishedFn func() bool
	Reqs         []engine.SUID
}

var _ engine.Command = (*Const)(nil)

func (c *Const) Init() {
	if c.InitFn != nil {
		c.InitFn()
	}
}

func (c *Const) Periodic(dt time.Duration) {
	if c.PeriodicFn != nil {
		c.PeriodicFn(dt)
	}
}

func (c *Const) End(interrupted bool) {
	if c.EndFn != nil {
		c.EndFn(interrupted)
	}
}

func (c *Const) IsFinished() bool {
	if c.IsFinishedFn != nil {
		return c.IsFinishedFn()
	}
	return false
}

// Requirements builds a fresh set from the fixed requirement slice on every
// call; Const keeps no set of its own so that the same value can be shared
// safely by multiple goroutines of the embedding program between ticks.
func (c *Const) Requirements() map[engine.SUID]struct{} {
	set := make(map[engine.SUID]struct{}, len(c.Reqs))
	for _, s := range c.Reqs {
		set[s] = struct{}{}
	}
	return set
}

func (c *Const) RunWhenDisabled() bool { return false }
func (c *Const) CancelIncoming() bool  { return false }
func (c *Const) Name() string          { return "unnamed" }
