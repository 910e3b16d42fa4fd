package game

// TerritoryResult is the outcome of one enclosure fill from a castle.
// When Enclosed is false the tile sets are empty: an open region is not a
// territory, and callers must not treat a partial fill as one.
type TerritoryResult struct {
	Enclosed bool
	Tiles    map[Point]struct{} // reachable non-wall tiles, castle cell included
	Walls    map[Point]struct{} // wall tiles bounding the territory
}

// Contains reports whether the territory includes the given cell.
func (tr *TerritoryResult) Contains(p Point) bool {
	_, ok := tr.Tiles[p]
	return ok
}

// territoryNeighbours is the 4-connected expansion used by the fill.
var territoryNeighbours = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// SolveTerritory runs a breadth-first flood fill from start. WALL tiles block
// expansion; every other tile type passes. Reaching any tile on the outer
// boundary means the region leaks to open sea, so the castle is not enclosed.
//
// Both the build and deploy systems resolve enclosure through this one
// function, so the two phases can never disagree about what is territory.
func SolveTerritory(tm *TileMap, start Point) TerritoryResult {
	if !tm.InBounds(start.X, start.Y) || tm.TypeAt(start.X, start.Y) == TileWall {
		return TerritoryResult{}
	}

	visited := map[Point]struct{}{start: {}}
	walls := map[Point]struct{}{}
	queue := []Point{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if tm.OnBoundary(cur.X, cur.Y) {
			return TerritoryResult{}
		}

		for _, d := range territoryNeighbours {
			next := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !tm.InBounds(next.X, next.Y) {
				continue
			}
			if tm.TypeAt(next.X, next.Y) == TileWall {
				walls[next] = struct{}{}
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	return TerritoryResult{Enclosed: true, Tiles: visited, Walls: walls}
}

// ValidateCastles runs the territory solver for every castle independently
// and updates each castle's Enclosed flag. Results are keyed by castle ID.
// Castles are evaluated one by one because enclosure is a per-castle
// property: territories may overlap, nest, or be disjoint.
func ValidateCastles(tm *TileMap, castles []*Castle) map[int]TerritoryResult {
	results := make(map[int]TerritoryResult, len(castles))
	for _, c := range castles {
		res := SolveTerritory(tm, c.Pos)
		c.Enclosed = res.Enclosed
		results[c.ID] = res
	}
	return results
}

// EnclosedCount returns how many castles are currently flagged enclosed.
func EnclosedCount(castles []*Castle) int {
	n := 0
	for _, c := range castles {
		if c.Enclosed {
			n++
		}
	}
	return n
}
