package game

import "testing"

// ringWallMap builds a 10x10 land map with a closed wall ring from (2,2) to
// (6,6) around a castle cell at (4,4).
func ringWallMap() *TileMap {
	tm := NewTileMap(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			tm.SetType(x, y, TileLand)
		}
	}
	for i := 2; i <= 6; i++ {
		tm.SetType(i, 2, TileWall)
		tm.SetType(i, 6, TileWall)
		tm.SetType(2, i, TileWall)
		tm.SetType(6, i, TileWall)
	}
	tm.SetType(4, 4, TileCastle)
	return tm
}

func TestSolveTerritory_ClosedRing(t *testing.T) {
	tm := ringWallMap()
	res := SolveTerritory(tm, Point{X: 4, Y: 4})
	if !res.Enclosed {
		t.Fatal("closed ring should enclose the castle")
	}
	// Interior is the 3x3 block from (3,3) to (5,5).
	if len(res.Tiles) != 9 {
		t.Fatalf("expected 9 interior tiles, got %d", len(res.Tiles))
	}
	if !res.Contains(Point{X: 3, Y: 5}) {
		t.Fatal("interior corner should be territory")
	}
	if res.Contains(Point{X: 2, Y: 2}) {
		t.Fatal("wall cell must not be territory")
	}
	if res.Contains(Point{X: 7, Y: 4}) {
		t.Fatal("cell outside the ring must not be territory")
	}
	// The fill touches the 12 edge walls; ring corners are diagonal to the
	// interior and are never visited by a 4-connected expansion.
	if len(res.Walls) != 12 {
		t.Fatalf("expected 12 enclosing wall cells, got %d", len(res.Walls))
	}
}

func TestSolveTerritory_GapLeaks(t *testing.T) {
	tm := ringWallMap()
	tm.SetType(4, 2, TileLand) // breach the north wall
	res := SolveTerritory(tm, Point{X: 4, Y: 4})
	if res.Enclosed {
		t.Fatal("a breached ring must not count as enclosed")
	}
	if len(res.Tiles) != 0 || len(res.Walls) != 0 {
		t.Fatal("a leaked fill must report empty tile sets")
	}
}

func TestSolveTerritory_CraterDoesNotSeal(t *testing.T) {
	tm := ringWallMap()
	// A crater where wall used to be still lets the fill through.
	tm.SetType(4, 2, TileCrater)
	res := SolveTerritory(tm, Point{X: 4, Y: 4})
	if res.Enclosed {
		t.Fatal("crater in the ring should leak, only walls block the fill")
	}
}

func TestSolveTerritory_StartOnWallOrOutside(t *testing.T) {
	tm := ringWallMap()
	if res := SolveTerritory(tm, Point{X: 2, Y: 2}); res.Enclosed {
		t.Fatal("starting on a wall cell cannot be enclosed")
	}
	if res := SolveTerritory(tm, Point{X: -1, Y: 4}); res.Enclosed {
		t.Fatal("starting out of bounds cannot be enclosed")
	}
}

func TestValidateCastles_PerCastle(t *testing.T) {
	tm := ringWallMap()
	inside := &Castle{ID: 0, Pos: Point{X: 4, Y: 4}, Home: true}
	outside := &Castle{ID: 1, Pos: Point{X: 8, Y: 8}}
	tm.SetType(8, 8, TileCastle)

	results := ValidateCastles(tm, []*Castle{inside, outside})
	if !inside.Enclosed {
		t.Fatal("castle inside the ring should be enclosed")
	}
	if outside.Enclosed {
		t.Fatal("castle outside the ring should not be enclosed")
	}
	if !results[0].Enclosed || results[1].Enclosed {
		t.Fatal("results map should mirror the per-castle flags")
	}
	if EnclosedCount([]*Castle{inside, outside}) != 1 {
		t.Fatalf("expected 1 enclosed castle, got %d", EnclosedCount([]*Castle{inside, outside}))
	}
}

func TestSolveTerritory_SharedInterior(t *testing.T) {
	tm := ringWallMap()
	// Second castle inside the same ring: both enclose, same interior.
	tm.SetType(3, 3, TileCastle)
	a := SolveTerritory(tm, Point{X: 4, Y: 4})
	b := SolveTerritory(tm, Point{X: 3, Y: 3})
	if !a.Enclosed || !b.Enclosed {
		t.Fatal("both castles in one ring should be enclosed")
	}
	if len(a.Tiles) != len(b.Tiles) {
		t.Fatalf("expected identical interiors, got %d vs %d", len(a.Tiles), len(b.Tiles))
	}
}
