// Package cli handles command-line parsing for the demo binary. It's the
// first entry point after main, and it imports and runs the demo driver
// loop; the scheduler library itself takes no CLI (see engine and
// engine/graph).
package cli

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/roboctl/cmdsched/util/errwrap"
)

// Args is the top-level CLI parsing structure for the cmdsched-demo binary.
type Args struct {
	Hz    float64 `arg:"--hz" default:"50" help:"tick rate in Hz"`
	Ticks int     `arg:"--ticks" default:"200" help:"number of ticks to run before exiting, 0 runs forever"`
	Debug bool    `arg:"--debug" help:"enable verbose scheduler logging"`
	Watch string  `arg:"--watch" help:"directory for the demo filesystem-watcher subsystem to watch"`

	version string `arg:"-"` // ignored from parsing
}

// Version implements the API the arg parser's --version flag expects.
func (a *Args) Version() string { return a.version }

// Parse parses argv (excluding argv[0]) into Args, handling --help/--version
// the same way mgmt's `cli.CLI`'s `arg.NewParser`/`parser.Parse` handling
// does: write help/version to stdout and report that no further work should
// happen, rather than treating it as an error.
func Parse(version string, argv []string) (*Args, bool, error) {
	args := &Args{version: version}
	config := arg.Config{Program: "cmdsched-demo"}
	parser, err := arg.NewParser(config, args)
	if err != nil {
		return nil, false, errwrap.Wrapf(err, "cli: config error")
	}

	err = parser.Parse(argv)
	if err == arg.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil, true, nil
	}
	if err == arg.ErrVersion {
		fmt.Println(version)
		return nil, true, nil
	}
	if err != nil {
		return nil, false, errwrap.Wrapf(err, "cli: parse error")
	}
	return args, false, nil
}
