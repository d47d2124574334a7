package condition

import "github.com/roboctl/cmdsched/engine"

// Scheduler is the engine.CondScheduler implementation backing Condition's
// OnTrue/OnFalse. It holds the preserved command until the graph scheduler
// takes it during drain, then reports the bound CommandIndex each poll the
// edge-detecting predicate fires.
type Scheduler struct {
	cond  func() bool
	cmd   engine.Command
	idx   engine.CommandIndex
	bound bool
}

var _ engine.CondScheduler = (*Scheduler)(nil)

func newScheduler(cond func() bool, cmd engine.Command) *Scheduler {
	return &Scheduler{cond: cond, cmd: cmd}
}

// TakeCommand hands over the preserved command. It must be called at most
// once; subsequent calls return nil.
func (s *Scheduler) TakeCommand() engine.Command {
	cmd := s.cmd
	s.cmd = nil
	return cmd
}

// Bind records the arena index the graph scheduler assigned to this
// scheduler's preserved command.
func (s *Scheduler) Bind(idx engine.CommandIndex) {
	s.idx = idx
	s.bound = true
}

// Poll samples the edge-detecting predicate exactly once once Bind has
// been called, and reports the bound index iff this sample's edge fired.
// Before Bind it does not sample and reports false.
func (s *Scheduler) Poll() (engine.CommandIndex, bool) {
	if !s.bound {
		return engine.CommandIndex{}, false
	}
	if s.cond() {
		return s.idx, true
	}
	return engine.CommandIndex{}, false
}
