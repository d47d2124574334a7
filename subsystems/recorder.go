package subsystems

import (
	"os"
	"time"

	"github.com/roboctl/cmdsched/engine"
	"github.com/spf13/afero"
)

// Recorder is a Subsystem backed by an in-memory virtual filesystem that a
// command's Periodic can write scratch/log output into without touching
// the real disk, the same sandboxed-I/O pattern mgmt's `cli/run.go` uses
// for its temporary run directories in tests and demos.
type Recorder struct {
	Fs afero.Fs

	suid engine.SUID
}

var _ engine.Subsystem = (*Recorder)(nil)

// NewRecorder builds a Recorder backed by a fresh in-memory filesystem.
func NewRecorder() *Recorder {
	mmFs := afero.NewMemMapFs()
	return &Recorder{
		Fs:   &afero.Afero{Fs: mmFs},
		suid: engine.NewSUID("subsystems.Recorder"),
	}
}

// SUID returns this subsystem's stable identity.
func (r *Recorder) SUID() engine.SUID { return r.suid }

// Periodic is a no-op; the recorder is purely a passive sink that owning
// commands write into directly through Fs.
func (r *Recorder) Periodic(time.Duration) {}

// DefaultCommand returns nil: there is nothing useful to run against a
// scratch filesystem when no command owns it.
func (r *Recorder) DefaultCommand() engine.Command { return nil }

// Append opens path for appending (creating it if necessary) and writes
// line plus a trailing newline, a convenience for commands that just want
// to log a line of scratch output.
func (r *Recorder) Append(path, line string) error {
	f, err := r.Fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}
