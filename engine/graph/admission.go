package graph

import (
	"fmt"

	"github.com/roboctl/cmdsched/engine"
	"github.com/roboctl/cmdsched/util/errwrap"
)

// admit runs the resource-locking admission policy for the command at idx
// (already placed in its arena slot). A command with no requirements is
// orphaned and always accepted. Otherwise every distinct current owner of a
// required SUID is inspected: if any refuses cancellation, the whole
// admission is rejected as a unit and the new command is reaped immediately
// as interrupted (the spec's resolution of the source's latent-leak open
// question — the source instead leaves the slot populated and never calls
// end on it). Otherwise every accepting owner that is a scheduled (not
// default) command is marked interrupted, and the new command takes
// ownership of every required SUID.
func (s *Scheduler) admit(idx engine.CommandIndex, cmd engine.Command) {
	if cmd == nil {
		return
	}
	reqs := cmd.Requirements()
	if len(reqs) == 0 {
		s.orphaned[idx] = struct{}{}
		s.interruptState[idx] = false
		return
	}

	owners := make(map[engine.CommandIndex]struct{})
	var refusals error
	for suid := range reqs {
		owner, ok := s.requirements[suid]
		if !ok {
			continue
		}
		ownerCmd := s.lookup(owner)
		if ownerCmd == nil {
			continue
		}
		if owner.Kind != engine.KindDefaultCommand && ownerCmd.CancelIncoming() {
			refusals = errwrap.Append(refusals, fmt.Errorf("%s (%v) refuses cancellation", ownerCmd.Name(), owner))
			continue
		}
		owners[owner] = struct{}{}
	}

	if refusals != nil {
		s.logf("admission refused for %v, reaping as interrupted: %v", idx, refusals)
		cmd.End(true)
		if idx.Kind == engine.KindCommand {
			s.commands.free(idx.Idx)
			delete(s.interruptState, idx)
		}
		return
	}

	for owner := range owners {
		if owner.Kind != engine.KindDefaultCommand {
			s.interruptState[owner] = true
		}
		// default-command owners are silently displaced: no interrupt
		// flag, no end call.
	}
	for suid := range reqs {
		s.requirements[suid] = idx
	}
	s.interruptState[idx] = false
}
