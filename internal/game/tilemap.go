package game

// TileType identifies what occupies a grid cell.
type TileType uint8

const (
	TileEmpty  TileType = iota // Void cell, buildable but worthless
	TileLand                   // Open ground inside the island
	TileWater                  // Sea, ship-navigable, never buildable
	TileWall                   // Player-placed rampart segment
	TileCastle                 // Castle keep cell
	TileCrater                 // Shelled ground, blocks future building
	TileDebris                 // Remains of a destroyed cannon
	TileCannon                 // Cell currently occupied by a deployed cannon
	tileTypeCount              // sentinel
)

// String returns the lowercase name used in logs and reports.
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileLand:
		return "land"
	case TileWater:
		return "water"
	case TileWall:
		return "wall"
	case TileCastle:
		return "castle"
	case TileCrater:
		return "crater"
	case TileDebris:
		return "debris"
	case TileCannon:
		return "cannon"
	default:
		return "unknown"
	}
}

// tileBlocksBuild returns true if a wall piece cell may not be placed on the type.
func tileBlocksBuild(t TileType) bool {
	switch t {
	case TileWater, TileWall, TileCastle, TileDebris, TileCrater:
		return true
	default:
		return false
	}
}

// tileAcceptsCannon returns true if a cannon may stand on the type.
// Territory membership is checked separately by the deploy system.
func tileAcceptsCannon(t TileType) bool {
	switch t {
	case TileLand, TileEmpty:
		return true
	default:
		return false
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X int
	Y int
}

// Tile represents one cell of the playfield.
type Tile struct {
	Type TileType
	X    int
	Y    int
}

// TileMap is the authoritative per-cell terrain representation. All phase
// systems share one instance by reference; walls, craters and debris written
// during one round are visible to every later round.
type TileMap struct {
	Width  int
	Height int
	Tiles  []Tile // row-major: index = y*Width + x
}

// NewTileMap creates a tile map with every cell set to open water.
func NewTileMap(width, height int) *TileMap {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i].Type = TileWater
		tiles[i].X = i % width
		tiles[i].Y = i / width
	}
	return &TileMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds returns true if (x, y) is within the map.
func (tm *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < tm.Width && y >= 0 && y < tm.Height
}

// At returns a pointer to the tile at (x, y), or nil if out of bounds.
func (tm *TileMap) At(x, y int) *Tile {
	if !tm.InBounds(x, y) {
		return nil
	}
	return &tm.Tiles[y*tm.Width+x]
}

// TypeAt returns the tile type at (x, y). Out-of-bounds reads as TileEmpty.
func (tm *TileMap) TypeAt(x, y int) TileType {
	if !tm.InBounds(x, y) {
		return TileEmpty
	}
	return tm.Tiles[y*tm.Width+x].Type
}

// SetType sets the tile type at (x, y). Out of bounds is a no-op.
func (tm *TileMap) SetType(x, y int, t TileType) {
	if !tm.InBounds(x, y) {
		return
	}
	tm.Tiles[y*tm.Width+x].Type = t
}

// OnBoundary returns true if (x, y) lies on the outer ring of the map.
func (tm *TileMap) OnBoundary(x, y int) bool {
	return x == 0 || y == 0 || x == tm.Width-1 || y == tm.Height-1
}

// CoastlineTiles returns every WATER tile on the outer ring, in scan order.
// These are the legal ship spawn points.
func (tm *TileMap) CoastlineTiles() []Point {
	var out []Point
	for y := 0; y < tm.Height; y++ {
		for x := 0; x < tm.Width; x++ {
			if !tm.OnBoundary(x, y) {
				continue
			}
			if tm.Tiles[y*tm.Width+x].Type == TileWater {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// LandTiles returns every LAND tile in scan order.
func (tm *TileMap) LandTiles() []Point {
	var out []Point
	for i := range tm.Tiles {
		if tm.Tiles[i].Type == TileLand {
			out = append(out, Point{X: tm.Tiles[i].X, Y: tm.Tiles[i].Y})
		}
	}
	return out
}

// WallTiles returns every WALL tile in scan order.
func (tm *TileMap) WallTiles() []Point {
	var out []Point
	for i := range tm.Tiles {
		if tm.Tiles[i].Type == TileWall {
			out = append(out, Point{X: tm.Tiles[i].X, Y: tm.Tiles[i].Y})
		}
	}
	return out
}

// CraterCountNear counts CRATER tiles within a square radius of (x, y),
// the centre cell included. Used by the ship AI to avoid re-shelling ground
// that is already churned up.
func (tm *TileMap) CraterCountNear(x, y, radius int) int {
	count := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if tm.TypeAt(x+dx, y+dy) == TileCrater {
				count++
			}
		}
	}
	return count
}
