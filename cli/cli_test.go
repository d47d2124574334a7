package cli

import "testing"

func TestParseDefaults(t *testing.T) {
	args, done, err := Parse("1.2.3", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if done {
		t.Fatalf("Parse reported done for an empty argv")
	}
	if args.Hz != 50 {
		t.Errorf("Hz = %v, want 50", args.Hz)
	}
	if args.Ticks != 200 {
		t.Errorf("Ticks = %v, want 200", args.Ticks)
	}
	if args.Debug {
		t.Errorf("Debug = true, want false")
	}
}

func TestParseOverrides(t *testing.T) {
	args, done, err := Parse("1.2.3", []string{"--hz", "100", "--ticks", "10", "--debug"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if done {
		t.Fatalf("Parse reported done for a valid argv")
	}
	if args.Hz != 100 {
		t.Errorf("Hz = %v, want 100", args.Hz)
	}
	if args.Ticks != 10 {
		t.Errorf("Ticks = %v, want 10", args.Ticks)
	}
	if !args.Debug {
		t.Errorf("Debug = false, want true")
	}
}

func TestParseHelp(t *testing.T) {
	_, done, err := Parse("1.2.3", []string{"--help"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !done {
		t.Errorf("Parse should report done for --help")
	}
}
