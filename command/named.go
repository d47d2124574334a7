package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Named wraps another command, overriding only its Name. Like the other
// wrapper commands, RunWhenDisabled and CancelIncoming are not forwarded to
// the wrapped command — they take the contract's default of false, the same
// choice the source makes for every wrapper that doesn't explicitly
// override them.
type Named struct {
	Inner   engine.Command
	CmdName string
}

var _ engine.Command = (*Named)(nil)

func (n *Named) Init()                                  { n.Inner.Init() }
func (n *Named) Periodic(dt time.Duration)              { n.Inner.Periodic(dt) }
func (n *Named) End(interrupted bool)                   { n.Inner.End(interrupted) }
func (n *Named) IsFinished() bool                       { return n.Inner.IsFinished() }
func (n *Named) Requirements() map[engine.SUID]struct{} { return n.Inner.Requirements() }
func (n *Named) RunWhenDisabled() bool                  { return false }
func (n *Named) CancelIncoming() bool                   { return false }
func (n *Named) Name() string                           { return n.CmdName }
