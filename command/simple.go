// Package command provides the leaf and composite command implementations
// used to build behaviours scheduled by the engine/graph Scheduler.
package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Simple stores an optional callback for each lifecycle hook plus a
// requirement set. An unset hook is a no-op; an unset IsFinishedFn means the
// command runs forever until externally cancelled.
type Simple struct {
	InitFn       func()
	PeriodicFn   func(time.Duration)
	EndFn        func(bool)
	IsFinishedFn func() bool
	Reqs         map[engine.SUID]struct{}
	RunDisabled  bool
	Refuse       bool
	CmdName      string
}

var _ engine.Command = (*Simple)(nil)

// Init runs InitFn if set.
func (s *Simple) Init() {
	if s.InitFn != nil {
		s.InitFn()
	}
}

// Periodic runs PeriodicFn if set.
func (s *Simple) Periodic(dt time.Duration) {
	if s.PeriodicFn != nil {
		s.PeriodicFn(dt)
	}
}

// End runs EndFn if set.
func (s *Simple) End(interrupted bool) {
	if s.EndFn != nil {
		s.EndFn(interrupted)
	}
}

// IsFinished runs IsFinishedFn if set, else reports false.
func (s *Simple) IsFinished() bool {
	if s.IsFinishedFn != nil {
		return s.IsFinishedFn()
	}
	return false
}

// Requirements returns this command's requirement set.
func (s *Simple) Requirements() map[engine.SUID]struct{} { return s.Reqs }

// RunWhenDisabled reports whether this command runs while the owning
// program considers itself disabled.
func (s *Simple) RunWhenDisabled() bool { return s.RunDisabled }

// CancelIncoming reports whether this command refuses to be interrupted.
func (s *Simple) CancelIncoming() bool { return s.Refuse }

// Name returns CmdName, or "unnamed" if it is empty.
func (s *Simple) Name() string {
	if s.CmdName != "" {
		return s.CmdName
	}
	return "unnamed"
}
