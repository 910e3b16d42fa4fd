package game

import (
	"math"
	"testing"
)

// --- Construction ---

func TestNewShip_UsesProfileAndLevelSpeed(t *testing.T) {
	path := []Point{{X: 1, Y: 0}, {X: 2, Y: 0}}
	s := newShip(7, ShipFrigate, 3, Point{X: 0, Y: 0}, path)

	if s.ID != 7 {
		t.Fatalf("expected ID 7, got %d", s.ID)
	}
	if s.Health != 100 || s.MaxHealth != 100 {
		t.Fatalf("expected frigate health 100/100, got %d/%d", s.Health, s.MaxHealth)
	}
	if s.Damage != 35 {
		t.Fatalf("expected frigate damage 35, got %d", s.Damage)
	}
	want := 1.5 * 1.10 // level 3 is +10% over base
	if math.Abs(s.Speed-want) > 1e-9 {
		t.Fatalf("expected level-3 speed %.3f, got %.3f", want, s.Speed)
	}
	if !s.Alive {
		t.Fatalf("expected new ship to be alive")
	}
	if s.PathIndex != 0 {
		t.Fatalf("expected path index 0, got %d", s.PathIndex)
	}
}

func TestShip_CellRoundsPosition(t *testing.T) {
	s := &Ship{X: 3.4, Y: 2.6}
	if c := s.Cell(); c != (Point{X: 3, Y: 3}) {
		t.Fatalf("expected cell (3,3), got %v", c)
	}
	s.X, s.Y = 3.5, 2.49
	if c := s.Cell(); c != (Point{X: 4, Y: 2}) {
		t.Fatalf("expected cell (4,2), got %v", c)
	}
}

// --- Movement ---

func TestShip_AdvanceMovesTowardWaypoint(t *testing.T) {
	s := &Ship{X: 0, Y: 0, Speed: 2.0, Path: []Point{{X: 4, Y: 0}}, Alive: true}
	s.advance(0.5)

	if math.Abs(s.X-1.0) > 1e-9 || math.Abs(s.Y) > 1e-9 {
		t.Fatalf("expected position (1.0, 0.0), got (%.3f, %.3f)", s.X, s.Y)
	}
	if math.Abs(s.VX-2.0) > 1e-9 || math.Abs(s.VY) > 1e-9 {
		t.Fatalf("expected velocity (2.0, 0.0), got (%.3f, %.3f)", s.VX, s.VY)
	}
	if s.PathIndex != 0 {
		t.Fatalf("expected ship still heading to first waypoint, got index %d", s.PathIndex)
	}
}

func TestShip_AdvanceSnapsNearWaypoint(t *testing.T) {
	s := &Ship{X: 3.95, Y: 0, Speed: 2.0, Path: []Point{{X: 4, Y: 0}, {X: 4, Y: 3}}, Alive: true}
	s.advance(1.0 / 60.0)

	if s.X != 4.0 || s.Y != 0.0 {
		t.Fatalf("expected snap onto (4,0), got (%.3f, %.3f)", s.X, s.Y)
	}
	if s.PathIndex != 1 {
		t.Fatalf("expected path index to advance to 1, got %d", s.PathIndex)
	}
}

func TestShip_AdvanceNeverOvershoots(t *testing.T) {
	s := &Ship{X: 3.5, Y: 0, Speed: 10.0, Path: []Point{{X: 4, Y: 0}}, Alive: true}
	s.advance(1.0)
	if math.Abs(s.X-4.0) > 1e-9 {
		t.Fatalf("expected step clamped to waypoint at x=4, got %.3f", s.X)
	}
	// Sitting on the waypoint, the next tick snaps and consumes it.
	s.advance(1.0)
	if s.PathIndex != 1 {
		t.Fatalf("expected waypoint consumed on next tick, got index %d", s.PathIndex)
	}
}

func TestShip_AtPathEndHoldsPosition(t *testing.T) {
	s := &Ship{X: 4, Y: 3, Speed: 2.0, Path: []Point{{X: 4, Y: 3}}, PathIndex: 1, Alive: true}
	if !s.AtPathEnd() {
		t.Fatalf("expected ship at path end")
	}
	s.VX, s.VY = 1.5, -1.5
	s.advance(1.0)
	if s.X != 4 || s.Y != 3 {
		t.Fatalf("expected ship to hold (4,3), got (%.3f, %.3f)", s.X, s.Y)
	}
	if s.VX != 0 || s.VY != 0 {
		t.Fatalf("expected velocity zeroed at path end, got (%.3f, %.3f)", s.VX, s.VY)
	}
}

func TestShip_WalksWholePath(t *testing.T) {
	path := buildShipPath(Point{X: 0, Y: 0}, Point{X: 3, Y: 2})
	s := newShip(1, ShipScout, 1, Point{X: 0, Y: 0}, path)

	for i := 0; i < 10000 && !s.AtPathEnd(); i++ {
		s.advance(tickSeconds)
	}
	if !s.AtPathEnd() {
		t.Fatalf("expected ship to finish path, stuck at index %d of %d", s.PathIndex, len(s.Path))
	}
	if s.X != 3 || s.Y != 2 {
		t.Fatalf("expected ship parked on (3,2), got (%.3f, %.3f)", s.X, s.Y)
	}
}

// --- Path building ---

func TestBuildShipPath_AxisDominantStaircase(t *testing.T) {
	path := buildShipPath(Point{X: 0, Y: 0}, Point{X: 3, Y: 1})
	want := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 1}}
	if len(path) != len(want) {
		t.Fatalf("expected %d waypoints, got %d (%v)", len(want), len(path), path)
	}
	for i, p := range want {
		if path[i] != p {
			t.Fatalf("expected waypoint %d to be %v, got %v", i, p, path[i])
		}
	}
}

func TestBuildShipPath_TieStepsAlongX(t *testing.T) {
	path := buildShipPath(Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	want := []Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 2}}
	for i, p := range want {
		if path[i] != p {
			t.Fatalf("expected waypoint %d to be %v, got %v", i, p, path[i])
		}
	}
}

func TestBuildShipPath_SingleTileSteps(t *testing.T) {
	path := buildShipPath(Point{X: 10, Y: 2}, Point{X: 1, Y: 9})
	if path[0] != (Point{X: 10, Y: 2}) {
		t.Fatalf("expected path to start at spawn, got %v", path[0])
	}
	if path[len(path)-1] != (Point{X: 1, Y: 9}) {
		t.Fatalf("expected path to end at target, got %v", path[len(path)-1])
	}
	for i := 1; i < len(path); i++ {
		dx := absInt(path[i].X - path[i-1].X)
		dy := absInt(path[i].Y - path[i-1].Y)
		if dx+dy != 1 {
			t.Fatalf("expected unit step between %v and %v", path[i-1], path[i])
		}
	}
}

func TestBuildShipPath_SpawnEqualsTarget(t *testing.T) {
	path := buildShipPath(Point{X: 5, Y: 5}, Point{X: 5, Y: 5})
	if len(path) != 1 || path[0] != (Point{X: 5, Y: 5}) {
		t.Fatalf("expected single-waypoint path at spawn, got %v", path)
	}
}

// --- Target fanning ---

func TestFanTarget_AlternatesAxes(t *testing.T) {
	tm := NewTileMap(32, 24)

	// Even indexes offset X from centre (16,12), odd indexes offset Y.
	cases := []struct {
		index, total int
		want         Point
	}{
		{0, 4, Point{X: 8, Y: 12}},
		{1, 4, Point{X: 16, Y: 8}},
		{2, 4, Point{X: 16, Y: 12}},
		{3, 4, Point{X: 16, Y: 16}},
	}
	for _, c := range cases {
		got := fanTarget(tm, c.index, c.total)
		if got != c.want {
			t.Fatalf("expected target %v for ship %d/%d, got %v", c.want, c.index, c.total, got)
		}
	}
}

func TestFanTarget_SoloShipTakesLowEdgeOfFan(t *testing.T) {
	tm := NewTileMap(32, 24)
	got := fanTarget(tm, 0, 1)
	if got != (Point{X: 8, Y: 12}) {
		t.Fatalf("expected (8,12), got %v", got)
	}
}

func TestFanTarget_ClampsToInterior(t *testing.T) {
	tm := NewTileMap(6, 6)
	for i := 0; i < 8; i++ {
		p := fanTarget(tm, i, 8)
		if p.X < 1 || p.X > tm.Width-2 || p.Y < 1 || p.Y > tm.Height-2 {
			t.Fatalf("expected target inside interior, got %v for ship %d", p, i)
		}
	}
	if p := fanTarget(tm, 0, 8); p.X != 1 {
		t.Fatalf("expected negative overflow clamped to x=1, got %v", p)
	}
	if p := fanTarget(tm, 6, 8); p.X != tm.Width-2 {
		t.Fatalf("expected positive overflow clamped to x=%d, got %v", tm.Width-2, p)
	}
}
