package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// Proxy holds a deferred supplier producing a command when first invoked
// after Init. Requirements are declared at construction time and do not
// depend on the produced command, which lets admission run before the
// supplier is ever called. Accessing the produced command before Init has
// ever run is a programmer error, not a recoverable condition, and panics
// rather than silently invoking Supplier out of sequence.
type Proxy struct {
	Supplier func() engine.Command
	Reqs     map[engine.SUID]struct{}

	cmd         engine.Command
	initialized bool
}

var _ engine.Command = (*Proxy)(nil)

// NewProxy builds a Proxy with the given supplier and static requirement
// set.
func NewProxy(supplier func() engine.Command, reqs map[engine.SUID]struct{}) *Proxy {
	return &Proxy{Supplier: supplier, Reqs: reqs}
}

func (p *Proxy) get() engine.Command {
	if !p.initialized {
		panic("command: Proxy accessed before Init")
	}
	if p.cmd == nil {
		p.cmd = p.Supplier()
	}
	return p.cmd
}

// Init discards any previously produced command and invokes the supplier
// again, then initialises the fresh result.
func (p *Proxy) Init() {
	p.cmd = nil
	p.initialized = true
	p.get().Init()
}

func (p *Proxy) Periodic(dt time.Duration)  { p.get().Periodic(dt) }
func (p *Proxy) End(interrupted bool)       { p.get().End(interrupted) }
func (p *Proxy) IsFinished() bool           { return p.get().IsFinished() }

func (p *Proxy) Requirements() map[engine.SUID]struct{} { return p.Reqs }
func (p *Proxy) RunWhenDisabled() bool                  { return false }
func (p *Proxy) CancelIncoming() bool                    { return false }

// Name returns "Proxy(?)" before Init has ever run, and the produced
// command's name thereafter.
func (p *Proxy) Name() string {
	if !p.initialized {
		return "Proxy(?)"
	}
	return p.get().Name()
}
