package game

import (
	"strings"
	"testing"
)

func TestSimLog_FilterAndCount(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, 1, "build", "build", "piece_placed", "total 1", 1)
	sl.Add(2, 1, "build", "build", "piece_placed", "total 2", 2)
	sl.Add(3, 1, "combat", "combat", "ship_destroyed", "scout #1", 75)

	if n := sl.CountCategory("build", "piece_placed"); n != 2 {
		t.Fatalf("expected 2 placements, got %d", n)
	}
	if n := len(sl.Filter("combat", "")); n != 1 {
		t.Fatalf("expected 1 combat entry, got %d", n)
	}
	if n := len(sl.Filter("", "")); n != 3 {
		t.Fatalf("empty filter should match everything, got %d", n)
	}
}

func TestSimLog_FirstTickAndLastOf(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(10, 1, "combat", "combat", "ship_destroyed", "scout #1", 75)
	sl.Add(40, 1, "combat", "combat", "ship_destroyed", "boss #2", 500)

	if tick := sl.FirstTick("combat", "ship_destroyed", ""); tick != 10 {
		t.Fatalf("expected first kill at tick 10, got %d", tick)
	}
	if tick := sl.FirstTick("combat", "ship_destroyed", "boss"); tick != 40 {
		t.Fatalf("expected first boss kill at tick 40, got %d", tick)
	}
	if tick := sl.FirstTick("combat", "cannon_destroyed", ""); tick != -1 {
		t.Fatalf("expected -1 for no match, got %d", tick)
	}

	last, ok := sl.LastOf("combat", "ship_destroyed")
	if !ok || last.Tick != 40 {
		t.Fatalf("expected last kill at tick 40, got %+v ok=%v", last, ok)
	}
	if !sl.HasEntry("combat", "ship_destroyed", "boss") {
		t.Fatal("HasEntry should find the boss kill")
	}
}

func TestSimLog_FilterRound(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, 1, "build", "round", "begin", "level 1 wave 1", 1)
	sl.Add(900, 2, "build", "round", "begin", "level 1 wave 2", 2)

	if n := len(sl.FilterRound(2)); n != 1 {
		t.Fatalf("expected 1 entry in round 2, got %d", n)
	}
}

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, 1, "combat", "combat", "fire_at", "(3,3)", 0)
	if len(quiet.Entries()) != 0 {
		t.Fatal("verbose entries must be dropped when verbose is off")
	}

	loud := NewSimLog(true)
	loud.AddVerbose(1, 1, "combat", "combat", "fire_at", "(3,3)", 0)
	if len(loud.Entries()) != 1 {
		t.Fatal("verbose entries must be kept when verbose is on")
	}
}

func TestSimLogEntry_Format(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(42, 1, "combat", "combat", "ship_destroyed", "frigate #3 (+100)", 100)
	out := sl.Format()
	if !strings.Contains(out, "[T=0042 r1 combat ]") {
		t.Fatalf("unexpected format: %q", out)
	}
	if !strings.Contains(out, "frigate #3 (+100)") {
		t.Fatalf("value missing from format: %q", out)
	}
}
