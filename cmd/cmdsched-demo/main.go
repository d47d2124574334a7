// Command cmdsched-demo is a thin demonstration driver for the cmdsched
// scheduler library: it registers a couple of example subsystems, schedules
// a small autonomous-style command chain, and ticks the scheduler at a
// fixed rate. It exists to prove the library works end-to-end; it is not
// part of the scheduler's own contract.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roboctl/cmdsched/cli"
)

// version is set at release time; the demo has no formal release process
// yet so it stays a placeholder.
var version = "0.0.1"

func main() {
	args, done, err := cli.Parse(version, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if done {
		return
	}

	if err := cli.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
