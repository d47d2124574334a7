package cli

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/roboctl/cmdsched/command"
	"github.com/roboctl/cmdsched/engine"
	"github.com/roboctl/cmdsched/engine/graph"
	"github.com/roboctl/cmdsched/subsystems"
	"github.com/sanity-io/litter"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

// Run drives a thin FRC-style robot loop: register two demo subsystems,
// schedule a sequential autonomous-style command, and tick at a fixed rate
// until args.Ticks ticks have run (or forever, if Ticks is 0). This is
// ambient scaffolding proving the library works end-to-end; it is not part
// of the scheduler's own contract.
func Run(ctx context.Context, args *Args) error {
	runID := uuid.New()
	logf := func(format string, v ...interface{}) {
		log.Printf("["+runID.String()[:8]+"] "+format, v...)
	}

	metrics := subsystems.NewMetrics()
	metrics.Start()

	recorder := subsystems.NewRecorder()

	sched := graph.New()
	sched.Metrics = metrics
	if args.Debug {
		sched.Logf = logf
	}
	ctx = sched.Bind(ctx)

	if err := sched.RegisterSubsystem(metrics); err != nil {
		return err
	}
	if err := sched.RegisterSubsystem(recorder); err != nil {
		return err
	}

	var watcher *subsystems.Watcher
	if args.Watch != "" {
		w, err := newLoggingWatcher(args.Watch, logf)
		if err != nil {
			return err
		}
		watcher = w
		defer watcher.Close()
		if err := sched.RegisterSubsystem(watcher); err != nil {
			return err
		}
	}

	auto := autonomous(recorder, watcher)
	if err := command.Schedule(ctx, auto); err != nil {
		return err
	}

	limiter := rate.NewLimiter(rate.Limit(args.Hz), 1)
	for i := 0; args.Ticks == 0 || i < args.Ticks; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		sched.Tick()
		if args.Debug && i%50 == 0 {
			logf("tick %d: %s", i, litter.Sdump(sched))
		}
	}

	data, err := readRecorded(recorder)
	if err == nil {
		logf("recorded log:\n%s", data)
	}
	return nil
}

func newLoggingWatcher(path string, logf func(string, ...interface{})) (*subsystems.Watcher, error) {
	w, err := subsystems.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	w.Logf = logf
	return w, nil
}

// autonomous builds a small sequential command chain, the demo's stand-in
// for an FRC "autonomous" routine: log a line to the recorder, wait
// briefly, then wait for the watcher (if any) to see a filesystem event.
func autonomous(recorder *subsystems.Recorder, watcher *subsystems.Watcher) engine.Command {
	logLine := command.NewBuilder().
		Init(func() { _ = recorder.Append("run.log", "autonomous: starting") }).
		WithRequirement(recorder.SUID()).
		Build()

	settle := command.WaitFor(250 * time.Millisecond)

	chain := command.AndThenMany(logLine, []engine.Command{settle})

	if watcher == nil {
		return command.WithName(chain, "autonomous")
	}

	watchStep := command.NewBuilder().
		IsFinished(watcher.Dirty).
		WithRequirement(watcher.SUID()).
		Build()

	full := command.AndThenMany(chain, []engine.Command{watchStep})
	return command.WithName(full, "autonomous")
}

func readRecorded(recorder *subsystems.Recorder) (string, error) {
	data, err := afero.ReadFile(recorder.Fs, "run.log")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
