package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// ExtraRequirements wraps another command, widening its effective
// requirement set by a supplied extra set (union).
type ExtraRequirements struct {
	Inner engine.Command
	Extra map[engine.SUID]struct{}
}

var _ engine.Command = (*ExtraRequirements)(nil)

func (e *ExtraRequirements) Init()                    { e.Inner.Init() }
func (e *ExtraRequirements) Periodic(dt time.Duration) { e.Inner.Periodic(dt) }
func (e *ExtraRequirements) End(interrupted bool)      { e.Inner.End(interrupted) }
func (e *ExtraRequirements) IsFinished() bool          { return e.Inner.IsFinished() }

func (e *ExtraRequirements) Requirements() map[engine.SUID]struct{} {
	set := make(map[engine.SUID]struct{}, len(e.Inner.Requirements())+len(e.Extra))
	for s := range e.Inner.Requirements() {
		set[s] = struct{}{}
	}
	for s := range e.Extra {
		set[s] = struct{}{}
	}
	return set
}

func (e *ExtraRequirements) RunWhenDisabled() bool { return false }
func (e *ExtraRequirements) CancelIncoming() bool  { return false }
func (e *ExtraRequirements) Name() string          { return e.Inner.Name() }
