package command

import (
	"strings"
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Sequential holds an ordered list of children and a cursor. Each tick it
// runs only the current child; when that child finishes it is ended
// non-interrupted and the cursor advances, initialising the next child
// immediately in the same tick. The aggregate requirement set is the union
// of all children regardless of cursor position — a Sequential holds every
// child's subsystems for its entire lifetime, not just the current child's.
type Sequential struct {
	Commands []engine.Command
	Reqs     map[engine.SUID]struct{}

	current int
}

var _ engine.Command = (*Sequential)(nil)

func newSequential(cmds []engine.Command) *Sequential {
	reqs := make(map[engine.SUID]struct{})
	for _, c := range cmds {
		for s := range c.Requirements() {
			reqs[s] = struct{}{}
		}
	}
	return &Sequential{Commands: cmds, Reqs: reqs}
}

func (s *Sequential) Init() {
	s.current = 0
	if len(s.Commands) == 0 {
		return
	}
	s.Commands[0].Init()
}

func (s *Sequential) Periodic(dt time.Duration) {
	if s.current >= len(s.Commands) {
		return
	}
	cur := s.Commands[s.current]
	cur.Periodic(dt)
	if cur.IsFinished() {
		cur.End(false)
		s.current++
		if s.current < len(s.Commands) {
			s.Commands[s.current].Init()
		}
	}
}

func (s *Sequential) End(interrupted bool) {
	if !interrupted {
		return
	}
	if s.current < len(s.Commands) {
		s.Commands[s.current].End(true)
	}
}

func (s *Sequential) IsFinished() bool { return s.current >= len(s.Commands) }

func (s *Sequential) Requirements() map[engine.SUID]struct{} { return s.Reqs }
func (s *Sequential) RunWhenDisabled() bool                   { return false }
func (s *Sequential) CancelIncoming() bool                     { return false }

func (s *Sequential) Name() string {
	names := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		names[i] = c.Name()
	}
	return strings.Join(names, "->")
}
