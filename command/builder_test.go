package command

import (
	"testing"
	"time"

	"github.com/roboctl/cmdsched/engine"
)

func TestBuilderChain(t *testing.T) {
	var initCalled, endCalled bool
	var gotDt time.Duration
	suid := engine.NewSUID("drive")

	cmd := NewBuilder().
		Init(func() { initCalled = true }).
		Periodic(func(dt time.Duration) { gotDt = dt }).
		End(func(bool) { endCalled = true }).
		IsFinished(func() bool { return true }).
		WithRequirement(suid).
		WithName("chained").
		WithCancelIncoming(true).
		Build()

	cmd.Init()
	cmd.Periodic(5 * time.Millisecond)
	if !cmd.IsFinished() {
		t.Fatalf("IsFinished hook not honoured")
	}
	cmd.End(false)

	if !initCalled || !endCalled {
		t.Fatalf("init/end hooks did not fire")
	}
	if gotDt != 5*time.Millisecond {
		t.Fatalf("periodic dt = %v, want 5ms", gotDt)
	}
	if cmd.Name() != "chained" {
		t.Fatalf("Name() = %q, want chained", cmd.Name())
	}
	if !cmd.CancelIncoming() {
		t.Fatalf("CancelIncoming() should be true")
	}
	if _, ok := cmd.Requirements()[suid]; !ok {
		t.Fatalf("requirement not recorded")
	}
}

func TestNamedConstructorsSetExpectedHooks(t *testing.T) {
	var order []string
	reqs := []engine.SUID{engine.NewSUID("x")}

	initOnly := InitOnly(func() { order = append(order, "init") }, reqs)
	initOnly.Init()
	initOnly.Periodic(0)
	if len(order) != 1 {
		t.Fatalf("InitOnly must not run a periodic hook")
	}

	periodicOnly := PeriodicOnly(func(time.Duration) { order = append(order, "periodic") }, reqs)
	periodicOnly.Init()
	periodicOnly.Periodic(0)
	if len(order) != 2 || order[1] != "periodic" {
		t.Fatalf("PeriodicOnly must not run an init hook, got %v", order)
	}

	endOnly := EndOnly(func(bool) { order = append(order, "end") }, reqs)
	endOnly.End(false)
	if order[len(order)-1] != "end" {
		t.Fatalf("EndOnly hook did not fire")
	}

	full := Full(
		func() { order = append(order, "full-init") },
		func(time.Duration) { order = append(order, "full-periodic") },
		func(bool) { order = append(order, "full-end") },
		func() bool { return true },
		reqs,
	)
	full.Init()
	full.Periodic(0)
	if !full.IsFinished() {
		t.Fatalf("Full's is-finished hook not honoured")
	}
	full.End(false)
	tailWant := []string{"full-init", "full-periodic", "full-end"}
	got := order[len(order)-3:]
	for i := range tailWant {
		if got[i] != tailWant[i] {
			t.Fatalf("Full hook order = %v, want %v", got, tailWant)
		}
	}

	if len(full.Requirements()) != 1 {
		t.Fatalf("Full must carry the given requirements")
	}
}

func TestRunUntilUsesIsFinishedNotPeriodicCount(t *testing.T) {
	calls := 0
	cmd := RunUntil(func(time.Duration) { calls++ }, func() bool { return calls >= 3 }, nil)
	cmd.Init()
	for i := 0; i < 3; i++ {
		cmd.Periodic(0)
	}
	if !cmd.IsFinished() {
		t.Fatalf("RunUntil command should finish once its predicate is true")
	}
}
