package graph

import (
	"context"
	"time"

	"github.com/roboctl/cmdsched/engine"
	"github.com/roboctl/cmdsched/util/errwrap"
)

// MetricsSink receives scheduler-level instrumentation, if one is
// registered. subsystems.Metrics satisfies this interface without either
// package importing the other.
type MetricsSink interface {
	ObserveTick(activeCommands int)
}

// Scheduler is the single-threaded, cooperative command scheduler. A zero
// Scheduler is not usable; build one with New.
type Scheduler struct {
	// Logf is called for scheduler-level diagnostics (admission refusals,
	// subsystem registration). A nil Logf is a no-op.
	Logf func(format string, v ...interface{})
	// Metrics, if set, is notified at the end of every Tick.
	Metrics MetricsSink

	clock engine.Clock

	commands  *arena
	defaults  *arena
	preserved *arena

	requirements       map[engine.SUID]engine.CommandIndex
	subsystemToDefault map[engine.SUID]engine.CommandIndex
	initialized        map[engine.CommandIndex]struct{}
	interruptState     map[engine.CommandIndex]bool
	orphaned           map[engine.CommandIndex]struct{}

	subsystems        map[engine.SUID]engine.Subsystem
	subsystemOrder    []engine.SUID
	lastSubsystemCall map[engine.SUID]time.Time

	lastCommandCall map[engine.CommandIndex]time.Time

	condSchedulers []engine.CondScheduler

	submissionQueue []engine.Command
	conditionQueue  []engine.CondScheduler
}

var _ engine.SchedulerHandle = (*Scheduler)(nil)

// New returns an empty Scheduler. Pass opts to override defaults (currently
// only WithClock).
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:              engine.RealClock{},
		commands:           newArena(engine.KindCommand),
		defaults:           newArena(engine.KindDefaultCommand),
		preserved:          newArena(engine.KindPreservedCommand),
		requirements:       make(map[engine.SUID]engine.CommandIndex),
		subsystemToDefault: make(map[engine.SUID]engine.CommandIndex),
		initialized:        make(map[engine.CommandIndex]struct{}),
		interruptState:     make(map[engine.CommandIndex]bool),
		orphaned:           make(map[engine.CommandIndex]struct{}),
		subsystems:         make(map[engine.SUID]engine.Subsystem),
		lastSubsystemCall:  make(map[engine.SUID]time.Time),
		lastCommandCall:    make(map[engine.CommandIndex]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithClock overrides the scheduler's clock, for deterministic tests.
func WithClock(clock engine.Clock) Option {
	return func(s *Scheduler) { s.clock = clock }
}

// Bind returns a context carrying this scheduler, so free functions like
// command.Schedule and Condition.OnTrue can submit work without a direct
// reference to it.
func (s *Scheduler) Bind(ctx context.Context) context.Context {
	return engine.WithScheduler(ctx, s)
}

func (s *Scheduler) logf(format string, v ...interface{}) {
	if s.Logf != nil {
		s.Logf(format, v...)
	}
}

// RegisterSubsystem adds a subsystem, failing with engine.ErrAlreadyRegistered
// if its SUID collides with one already registered. sub.DefaultCommand() may
// return nil.
func (s *Scheduler) RegisterSubsystem(sub engine.Subsystem) error {
	suid := sub.SUID()
	if _, ok := s.subsystemToDefault[suid]; ok {
		return errwrap.Wrapf(engine.ErrAlreadyRegistered, "suid %v", suid)
	}
	idx := s.defaults.insert(sub.DefaultCommand())
	s.subsystems[suid] = sub
	s.subsystemOrder = append(s.subsystemOrder, suid)
	s.subsystemToDefault[suid] = idx
	s.interruptState[idx] = false
	s.logf("registered subsystem %v at %v", suid, idx)
	return nil
}

// Enqueue stages cmd for admission at the next Tick. It implements
// engine.SchedulerHandle.
func (s *Scheduler) Enqueue(cmd engine.Command) error {
	s.submissionQueue = append(s.submissionQueue, cmd)
	return nil
}

// EnqueueCond stages cs for registration at the next Tick. It implements
// engine.SchedulerHandle.
func (s *Scheduler) EnqueueCond(cs engine.CondScheduler) error {
	s.conditionQueue = append(s.conditionQueue, cs)
	return nil
}

// ScheduleDirect admits cmd immediately, bypassing the submission queue,
// and so mutates scheduler state directly. Like Enqueue, it takes no lock
// and must only be called from the scheduler's own execution context.
func (s *Scheduler) ScheduleDirect(cmd engine.Command) engine.CommandIndex {
	idx := s.addCommand(cmd)
	s.admit(idx, cmd)
	return idx
}

func (s *Scheduler) addCommand(cmd engine.Command) engine.CommandIndex {
	idx := s.commands.insert(cmd)
	s.interruptState[idx] = false
	return idx
}

func (s *Scheduler) lookup(idx engine.CommandIndex) engine.Command {
	switch idx.Kind {
	case engine.KindCommand:
		return s.commands.get(idx.Idx)
	case engine.KindDefaultCommand:
		return s.defaults.get(idx.Idx)
	case engine.KindPreservedCommand:
		return s.preserved.get(idx.Idx)
	default:
		return nil
	}
}

// CancelAll ends every live scheduled command as interrupted, clears the
// ordinary-command arena, and clears the requirement, initialization and
// orphan bookkeeping in one shot. That bookkeeping is cleared for every
// kind of command: default and preserved commands keep their arena slots
// but lose their ownerships and initialization state, so a running
// preserved command leaves the active set without End being called, and a
// default command is initialized again the next time it runs.
func (s *Scheduler) CancelAll() {
	s.commands.all(func(idx engine.CommandIndex, cmd engine.Command) {
		if cmd != nil {
			cmd.End(true)
		}
		delete(s.interruptState, idx)
		delete(s.lastCommandCall, idx)
	})
	s.commands.reset()
	s.requirements = make(map[engine.SUID]engine.CommandIndex)
	s.initialized = make(map[engine.CommandIndex]struct{})
	s.orphaned = make(map[engine.CommandIndex]struct{})
}

// ClearConditions drops all conditional schedulers. Their preserved command
// slots are left in place for potential reuse; nothing currently reclaims
// them automatically.
func (s *Scheduler) ClearConditions() {
	s.condSchedulers = nil
}

// Tick runs one scheduling cycle: drain submission queues, run subsystem
// periodics, poll conditions, run the active command set, and reap
// terminated commands, in that order. Tick never blocks and never paces
// itself; the caller is responsible for the loop's rate.
func (s *Scheduler) Tick() {
	now := s.clock.Now()

	s.drain()
	s.runSubsystems(now)
	s.runConditions()
	active := s.runActive(now)

	if s.Metrics != nil {
		s.Metrics.ObserveTick(len(active))
	}
}

func (s *Scheduler) drain() {
	queue := s.submissionQueue
	s.submissionQueue = nil
	for _, cmd := range queue {
		idx := s.addCommand(cmd)
		s.admit(idx, cmd)
	}

	condQueue := s.conditionQueue
	s.conditionQueue = nil
	for _, cs := range condQueue {
		cmd := cs.TakeCommand()
		idx := s.preserved.insert(cmd)
		cs.Bind(idx)
		s.interruptState[idx] = false
		s.condSchedulers = append(s.condSchedulers, cs)
	}
}

func (s *Scheduler) runSubsystems(now time.Time) {
	for _, suid := range s.subsystemOrder {
		sub := s.subsystems[suid]
		prev, had := s.lastSubsystemCall[suid]
		var dt time.Duration
		if had {
			dt = now.Sub(prev)
		}
		sub.Periodic(dt)
		s.lastSubsystemCall[suid] = now
	}
	for suid, idx := range s.subsystemToDefault {
		if _, ok := s.requirements[suid]; !ok {
			s.requirements[suid] = idx
		}
	}
}

func (s *Scheduler) runConditions() {
	for _, cs := range s.condSchedulers {
		if idx, fired := cs.Poll(); fired {
			s.admit(idx, s.lookup(idx))
		}
	}
}

type reapEntry struct {
	idx engine.CommandIndex
	cmd engine.Command
}

func (s *Scheduler) runActive(now time.Time) map[engine.CommandIndex]struct{} {
	active := make(map[engine.CommandIndex]struct{})
	for _, idx := range s.requirements {
		active[idx] = struct{}{}
	}
	for idx := range s.orphaned {
		active[idx] = struct{}{}
	}

	var toReap []reapEntry
	for idx := range active {
		cmd := s.lookup(idx)
		if cmd == nil {
			delete(active, idx)
			continue
		}

		if s.interruptState[idx] {
			cmd.End(true)
			toReap = append(toReap, reapEntry{idx, cmd})
			continue
		}

		if _, ok := s.initialized[idx]; !ok {
			cmd.Init()
			s.initialized[idx] = struct{}{}
		}

		cmd.Periodic(s.commandDt(idx, now))

		if cmd.IsFinished() {
			cmd.End(false)
			toReap = append(toReap, reapEntry{idx, cmd})
		}
	}

	for _, r := range toReap {
		s.reap(r.idx)
	}
	return active
}

func (s *Scheduler) commandDt(idx engine.CommandIndex, now time.Time) time.Duration {
	prev, had := s.lastCommandCall[idx]
	s.lastCommandCall[idx] = now
	if !had {
		return 0
	}
	return now.Sub(prev)
}

func (s *Scheduler) reap(idx engine.CommandIndex) {
	delete(s.initialized, idx)
	delete(s.interruptState, idx)
	delete(s.orphaned, idx)
	for suid, owner := range s.requirements {
		if owner == idx {
			delete(s.requirements, suid)
		}
	}
	if idx.Kind == engine.KindCommand {
		s.commands.free(idx.Idx)
		delete(s.lastCommandCall, idx)
	}
}
