package command

import (
	"time"

	"github.com/roboctl/cmdsched/engine"
)

// CommandBuilder chains lifecycle hooks and requirements into a Simple
// command. It is not reusable after Build.
type CommandBuilder struct {
	initFn       func()
	periodicFn   func(time.Duration)
	endFn        func(bool)
	isFinishedFn func() bool
	reqs         map[engine.SUID]struct{}
	runDisabled  bool
	refuse       bool
	name         string
}

// NewBuilder returns an empty CommandBuilder with no requirements and no
// hooks set.
func NewBuilder() *CommandBuilder {
	return &CommandBuilder{reqs: make(map[engine.SUID]struct{})}
}

// Init sets the init hook.
func (b *CommandBuilder) Init(fn func()) *CommandBuilder { b.initFn = fn; return b }

// Periodic sets the periodic hook.
func (b *CommandBuilder) Periodic(fn func(time.Duration)) *CommandBuilder {
	b.periodicFn = fn
	return b
}

// End sets the end hook.
func (b *CommandBuilder) End(fn func(bool)) *CommandBuilder { b.endFn = fn; return b }

// IsFinished sets the is-finished hook.
func (b *CommandBuilder) IsFinished(fn func() bool) *CommandBuilder {
	b.isFinishedFn = fn
	return b
}

// WithSubsystem adds a single subsystem's SUID to the requirement set.
func (b *CommandBuilder) WithSubsystem(s engine.Subsystem) *CommandBuilder {
	b.reqs[s.SUID()] = struct{}{}
	return b
}

// WithSubsystems adds every given subsystem's SUID to the requirement set.
func (b *CommandBuilder) WithSubsystems(ss []engine.Subsystem) *CommandBuilder {
	for _, s := range ss {
		b.reqs[s.SUID()] = struct{}{}
	}
	return b
}

// WithRequirement adds a single SUID to the requirement set.
func (b *CommandBuilder) WithRequirement(suid engine.SUID) *CommandBuilder {
	b.reqs[suid] = struct{}{}
	return b
}

// WithRequirements adds every given SUID to the requirement set.
func (b *CommandBuilder) WithRequirements(suids []engine.SUID) *CommandBuilder {
	for _, s := range suids {
		b.reqs[s] = struct{}{}
	}
	return b
}

// WithName sets the command's name.
func (b *CommandBuilder) WithName(name string) *CommandBuilder { b.name = name; return b }

// WithRunWhenDisabled sets whether the built command runs while the owning
// program is disabled.
func (b *CommandBuilder) WithRunWhenDisabled(v bool) *CommandBuilder {
	b.runDisabled = v
	return b
}

// WithCancelIncoming sets whether the built command refuses to be
// interrupted by a conflicting incoming admission.
func (b *CommandBuilder) WithCancelIncoming(v bool) *CommandBuilder {
	b.refuse = v
	return b
}

// Build consumes the builder and returns the assembled command.
func (b *CommandBuilder) Build() engine.Command {
	return &Simple{
		InitFn:       b.initFn,
		PeriodicFn:   b.periodicFn,
		EndFn:        b.endFn,
		IsFinishedFn: b.isFinishedFn,
		Reqs:         b.reqs,
		RunDisabled:  b.runDisabled,
		Refuse:       b.refuse,
		CmdName:      b.name,
	}
}

// The following free functions are named convenience constructors for the
// eleven meaningful hook-presence combinations, sparing callers the
// builder's chain for the common cases.

func InitOnly(init func(), reqs []engine.SUID) engine.Command {
	return NewBuilder().Init(init).WithRequirements(reqs).Build()
}

func PeriodicOnly(periodic func(time.Duration), reqs []engine.SUID) engine.Command {
	return NewBuilder().Periodic(periodic).WithRequirements(reqs).Build()
}

func EndOnly(end func(bool), reqs []engine.SUID) engine.Command {
	return NewBuilder().End(end).WithRequirements(reqs).Build()
}

func InitPeriodic(init func(), periodic func(time.Duration), reqs []engine.SUID) engine.Command {
	return NewBuilder().Init(init).Periodic(periodic).WithRequirements(reqs).Build()
}

func PeriodicEnd(periodic func(time.Duration), end func(bool), reqs []engine.SUID) engine.Command {
	return NewBuilder().Periodic(periodic).End(end).WithRequirements(reqs).Build()
}

func InitEnd(init func(), end func(bool), reqs []engine.SUID) engine.Command {
	return NewBuilder().Init(init).End(end).WithRequirements(reqs).Build()
}

func InitPeriodicEnd(init func(), periodic func(time.Duration), end func(bool), reqs []engine.SUID) engine.Command {
	return NewBuilder().Init(init).Periodic(periodic).End(end).WithRequirements(reqs).Build()
}

func RunUntil(periodic func(time.Duration), isFinished func() bool, reqs []engine.SUID) engine.Command {
	return NewBuilder().Periodic(periodic).IsFinished(isFinished).WithRequirements(reqs).Build()
}

func PeriodicEndUntil(periodic func(time.Duration), end func(bool), isFinished func() bool, reqs []engine.SUID) engine.Command {
	return NewBuilder().Periodic(periodic).End(end).IsFinished(isFinished).WithRequirements(reqs).Build()
}

func InitPeriodicUntil(init func(), isFinished func() bool, reqs []engine.SUID) engine.Command {
	return NewBuilder().Init(init).IsFinished(isFinished).WithRequirements(reqs).Build()
}

func Full(init func(), periodic func(time.Duration), end func(bool), isFinished func() bool, reqs []engine.SUID) engine.Command {
	return NewBuilder().Init(init).Periodic(periodic).End(end).IsFinished(isFinished).WithRequirements(reqs).Build()
}
