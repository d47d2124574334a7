package command

import (
	"testing"
	"time"

	"github.com/roboctl/cmdsched/engine"
)

type trace struct {
	events []string
}

func (t *trace) log(s string) { t.events = append(t.events, s) }

type tracked struct {
	name       string
	tr         *trace
	reqs       map[engine.SUID]struct{}
	finishAt   int
	periodics  int
	endCalls   int
	interrupts []bool
}

func newTracked(tr *trace, name string, reqs map[engine.SUID]struct{}, finishAt int) *tracked {
	return &tracked{name: name, tr: tr, reqs: reqs, finishAt: finishAt}
}

func (c *tracked) Init()                { c.tr.log(c.name + ".init") }
func (c *tracked) Periodic(time.Duration) {
	c.periodics++
	c.tr.log(c.name + ".periodic")
}
func (c *tracked) End(interrupted bool) {
	c.endCalls++
	c.interrupts = append(c.interrupts, interrupted)
	c.tr.log(c.name + ".end")
}
func (c *tracked) IsFinished() bool                        { return c.finishAt > 0 && c.periodics >= c.finishAt }
func (c *tracked) Requirements() map[engine.SUID]struct{} { return c.reqs }
func (c *tracked) RunWhenDisabled() bool                   { return false }
func (c *tracked) CancelIncoming() bool                     { return false }
func (c *tracked) Name() string                             { return c.name }

func TestParallelAllMustFinish(t *testing.T) {
	tr := &trace{}
	a := newTracked(tr, "A", nil, 1)
	b := newTracked(tr, "B", nil, 2)
	p := newParallel([]engine.Command{a, b}, false)

	p.Init()
	p.Periodic(0) // a finishes, b doesn't
	if p.IsFinished() {
		t.Fatalf("all-finish Parallel reported finished with one child still running")
	}
	p.Periodic(0) // b finishes
	if !p.IsFinished() {
		t.Fatalf("all-finish Parallel did not report finished once every child finished")
	}
	if a.endCalls != 1 || b.endCalls != 1 {
		t.Fatalf("expected each child ended exactly once, got a=%d b=%d", a.endCalls, b.endCalls)
	}
}

func TestParallelRaceFinishesOnFirst(t *testing.T) {
	tr := &trace{}
	a := newTracked(tr, "A", nil, 1)
	b := newTracked(tr, "B", nil, 100)
	p := newParallel([]engine.Command{a, b}, true)

	p.Init()
	p.Periodic(0)
	if !p.IsFinished() {
		t.Fatalf("racing Parallel did not finish once a winner finished")
	}
	if b.endCalls != 0 {
		t.Fatalf("race loser should not be ended until the composite itself is ended")
	}

	p.End(true)
	if b.endCalls != 1 || !b.interrupts[0] {
		t.Fatalf("race loser must be ended with interrupted=true when the composite reaps")
	}
}

func TestParallelNameJoinsWithComma(t *testing.T) {
	tr := &trace{}
	a := newTracked(tr, "A", nil, 0)
	b := newTracked(tr, "B", nil, 0)
	p := newParallel([]engine.Command{a, b}, false)
	if p.Name() != "A,B" {
		t.Fatalf("Parallel.Name() = %q, want A,B", p.Name())
	}
}

func TestSequentialAdvancesInSameTick(t *testing.T) {
	tr := &trace{}
	a := newTracked(tr, "A", nil, 1)
	b := newTracked(tr, "B", nil, 1)
	c := newTracked(tr, "C", nil, 1)
	seq := newSequential([]engine.Command{a, b, c})

	seq.Init()
	if tr.events[len(tr.events)-1] != "A.init" {
		t.Fatalf("Sequential.Init must init only the first child")
	}

	seq.Periodic(0) // A finishes -> ends, B inits, same tick
	want := []string{"A.init", "A.periodic", "A.end", "B.init"}
	for i, e := range want {
		if tr.events[i] != e {
			t.Fatalf("events = %v, want prefix %v", tr.events, want)
		}
	}
	if seq.IsFinished() {
		t.Fatalf("Sequential reported finished with children remaining")
	}

	seq.Periodic(0) // B finishes -> ends, C inits
	seq.Periodic(0) // C finishes -> ends, cursor past end
	if !seq.IsFinished() {
		t.Fatalf("Sequential did not finish after its last child finished")
	}
}

func TestSequentialInterruptOnlyEndsCurrent(t *testing.T) {
	tr := &trace{}
	a := newTracked(tr, "A", nil, 1)
	b := newTracked(tr, "B", nil, 1)
	seq := newSequential([]engine.Command{a, b})

	seq.Init()
	seq.Periodic(0) // A finishes, B inits
	seq.End(true)   // interrupt while B is current

	if a.endCalls != 1 {
		t.Fatalf("A should have ended exactly once via normal completion")
	}
	if b.endCalls != 1 || !b.interrupts[0] {
		t.Fatalf("B (the current child) must be ended with interrupted=true")
	}
}

func TestSequentialRequirementsUnionSurvivesCursor(t *testing.T) {
	sA := engine.NewSUID("a")
	sB := engine.NewSUID("b")
	tr := &trace{}
	a := newTracked(tr, "A", map[engine.SUID]struct{}{sA: {}}, 1)
	b := newTracked(tr, "B", map[engine.SUID]struct{}{sB: {}}, 1)
	seq := newSequential([]engine.Command{a, b})

	seq.Init()
	seq.Periodic(0) // cursor moves onto B

	reqs := seq.Requirements()
	if _, ok := reqs[sA]; !ok {
		t.Fatalf("Sequential must keep A's requirement even after its cursor passed A")
	}
	if _, ok := reqs[sB]; !ok {
		t.Fatalf("Sequential must include B's requirement")
	}
}

func TestProxyRebuildsOnEachInit(t *testing.T) {
	tr := &trace{}
	calls := 0
	var last *tracked
	supplier := func() engine.Command {
		calls++
		last = newTracked(tr, "inner", nil, 1)
		return last
	}
	reqs := map[engine.SUID]struct{}{engine.NewSUID("s"): {}}
	p := NewProxy(supplier, reqs)

	p.Init()
	if calls != 1 {
		t.Fatalf("supplier called %d times, want 1", calls)
	}
	first := last
	p.Periodic(0)
	if first.periodics != 1 {
		t.Fatalf("Proxy did not forward Periodic to the produced command")
	}

	p.Init() // discard and rebuild
	if calls != 2 {
		t.Fatalf("second Init did not invoke the supplier again")
	}
	if last == first {
		t.Fatalf("second Init reused the stale cached command")
	}
}

func TestProxyRequirementsAreStatic(t *testing.T) {
	reqs := map[engine.SUID]struct{}{engine.NewSUID("s"): {}}
	p := NewProxy(func() engine.Command { return Empty() }, reqs)
	if len(p.Requirements()) != 1 {
		t.Fatalf("Proxy.Requirements() must return the declared static set before Init")
	}
}

func TestNamedOverridesOnlyName(t *testing.T) {
	inner := &Simple{CmdName: "inner"}
	n := &Named{Inner: inner, CmdName: "outer"}
	if n.Name() != "outer" {
		t.Fatalf("Named.Name() = %q, want outer", n.Name())
	}
	if n.RunWhenDisabled() || n.CancelIncoming() {
		t.Fatalf("Named must not forward RunWhenDisabled/CancelIncoming")
	}
}

func TestExtraRequirementsUnion(t *testing.T) {
	base := engine.NewSUID("base")
	extra := engine.NewSUID("extra")
	inner := &Simple{Reqs: map[engine.SUID]struct{}{base: {}}}
	wrapped := &ExtraRequirements{Inner: inner, Extra: map[engine.SUID]struct{}{extra: {}}}

	reqs := wrapped.Requirements()
	if len(reqs) != 2 {
		t.Fatalf("Requirements() = %v, want union of 2 SUIDs", reqs)
	}
	if _, ok := reqs[base]; !ok {
		t.Fatalf("missing base requirement")
	}
	if _, ok := reqs[extra]; !ok {
		t.Fatalf("missing extra requirement")
	}
}
