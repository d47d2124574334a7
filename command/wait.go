package command

import (
	"fmt"
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Wait finishes once a duration has elapsed since its own Init. It has no
// requirements and is the building block `Timeout` races against.
type Wait struct {
	Duration time.Duration
	Clock    engine.Clock // defaults to engine.RealClock{} if nil

	start time.Time
}

var _ engine.Command = (*Wait)(nil)

// WaitFor returns a Wait command bound to the real clock.
func WaitFor(d time.Duration) *Wait {
	return &Wait{Duration: d, Clock: engine.RealClock{}}
}

func (w *Wait) clock() engine.Clock {
	if w.Clock == nil {
		return engine.RealClock{}
	}
	return w.Clock
}

func (w *Wait) Init()                                  { w.start = w.clock().Now() }
func (w *Wait) Periodic(time.Duration)                 {}
func (w *Wait) End(bool)                               {}
func (w *Wait) IsFinished() bool                       { return w.clock().Now().Sub(w.start) >= w.Duration }
func (w *Wait) Requirements() map[engine.SUID]struct{} { return nil }
func (w *Wait) RunWhenDisabled() bool                  { return false }
func (w *Wait) CancelIncoming() bool                   { return false }
func (w *Wait) Name() string                           { return fmt.Sprintf("Wait(%s)", w.Duration) }
