package game

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Castle is a defended keep on the map. Enclosed is derived each round by the
// territory validation pass and never set anywhere else.
type Castle struct {
	ID       int
	Pos      Point
	Home     bool
	Enclosed bool
}

// CastleDef is the JSON form of a castle placement.
type CastleDef struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Home bool `json:"home"`
}

// MapDef is the external map format: dimensions, one rune row per grid row,
// and the castle list. Maps are data, not code; the loader rejects anything
// that does not match its declared dimensions.
//
// Row runes: '~' water, '.' land, ' ' empty, '#' wall, 'C' castle.
type MapDef struct {
	Name    string      `json:"name"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Rows    []string    `json:"rows"`
	Castles []CastleDef `json:"castles"`
}

// runeTile maps a map-definition rune to a tile type.
func runeTile(r rune) (TileType, bool) {
	switch r {
	case '~':
		return TileWater, true
	case '.':
		return TileLand, true
	case ' ':
		return TileEmpty, true
	case '#':
		return TileWall, true
	case 'C':
		return TileCastle, true
	default:
		return TileEmpty, false
	}
}

// LoadMapDef reads a map definition from a JSON file.
func LoadMapDef(path string) (MapDef, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from a command-line flag
	if err != nil {
		return MapDef{}, fmt.Errorf("read map %s: %w", path, err)
	}
	var def MapDef
	if err := json.Unmarshal(data, &def); err != nil {
		return MapDef{}, fmt.Errorf("parse map %s: %w", path, err)
	}
	return def, nil
}

// LoadMap builds a tile map and castle list from a definition. It fails fast
// on any dimension mismatch or unknown rune; a half-loaded map is never
// returned.
func LoadMap(def MapDef) (*TileMap, []*Castle, error) {
	if def.Width <= 0 || def.Height <= 0 {
		return nil, nil, fmt.Errorf("map %q: invalid dimensions %dx%d", def.Name, def.Width, def.Height)
	}
	if len(def.Rows) != def.Height {
		return nil, nil, fmt.Errorf("map %q: %d rows declared, %d provided", def.Name, def.Height, len(def.Rows))
	}
	tm := NewTileMap(def.Width, def.Height)
	for y, row := range def.Rows {
		cells := []rune(row)
		if len(cells) != def.Width {
			return nil, nil, fmt.Errorf("map %q: row %d has %d cells, want %d", def.Name, y, len(cells), def.Width)
		}
		for x, r := range cells {
			t, ok := runeTile(r)
			if !ok {
				return nil, nil, fmt.Errorf("map %q: unknown tile rune %q at (%d,%d)", def.Name, r, x, y)
			}
			tm.SetType(x, y, t)
		}
	}

	castles := make([]*Castle, 0, len(def.Castles))
	for i, cd := range def.Castles {
		if !tm.InBounds(cd.X, cd.Y) {
			return nil, nil, fmt.Errorf("map %q: castle %d at (%d,%d) is out of bounds", def.Name, i, cd.X, cd.Y)
		}
		tm.SetType(cd.X, cd.Y, TileCastle)
		castles = append(castles, &Castle{ID: i, Pos: Point{X: cd.X, Y: cd.Y}, Home: cd.Home})
	}
	return tm, castles, nil
}

// Coastline noise parameters: the scale sets how wide bays and headlands
// are in tiles, the amplitude how far the shore wanders off the base
// ellipse. The jitter stays small enough that the flank castles, at half
// the island radius, can never end up in the water.
const (
	coastNoiseScale     = 0.18
	coastNoiseAmplitude = 0.35
)

// GenerateIslandMap builds the default playfield: an island of land
// surrounded by open water, with the home castle at the centre and two
// satellite castles on the flanks. The shore is an ellipse roughened by
// value noise seeded from the dimensions, so the same size always yields
// the same island. The outer ring is always water so every map has a
// coastline for ships to spawn on.
func GenerateIslandMap(width, height int) MapDef {
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	rx := float64(width)/2 - 3
	ry := float64(height)/2 - 2
	if rx < 3 {
		rx = 3
	}
	if ry < 3 {
		ry = 3
	}
	seed := int64(width)*1000003 + int64(height)

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		line := make([]rune, width)
		for x := 0; x < width; x++ {
			line[x] = '~'
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				continue // outer ring stays water
			}
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			jitter := (valueNoise2D(float64(x)*coastNoiseScale, float64(y)*coastNoiseScale, seed) - 0.5) * coastNoiseAmplitude
			if math.Sqrt(dx*dx+dy*dy) <= 1.0+jitter {
				line[x] = '.'
			}
		}
		rows[y] = string(line)
	}

	flank := int(rx / 2)
	return MapDef{
		Name:   fmt.Sprintf("island-%dx%d", width, height),
		Width:  width,
		Height: height,
		Rows:   rows,
		Castles: []CastleDef{
			{X: int(cx), Y: int(cy), Home: true},
			{X: int(cx) - flank, Y: int(cy), Home: false},
			{X: int(cx) + flank, Y: int(cy), Home: false},
		},
	}
}

// --- Value noise for the coastline ---

// valueNoise2D samples smooth lattice noise in [0,1). Pure function: the
// same coordinates and seed always produce the same value.
func valueNoise2D(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := x - x0
	ty := y - y0
	// Hermite easing keeps the lattice from showing through.
	tx = tx * tx * (3 - 2*tx)
	ty = ty * ty * (3 - 2*ty)

	xi, yi := int(x0), int(y0)
	a := latticeValue(xi, yi, seed)
	b := latticeValue(xi+1, yi, seed)
	c := latticeValue(xi, yi+1, seed)
	d := latticeValue(xi+1, yi+1, seed)

	top := a + (b-a)*tx
	bot := c + (d-c)*tx
	return top + (bot-top)*ty
}

// latticeValue hashes integer lattice coordinates and a seed into [0,1)
// with a splitmix-style finalizer.
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed) ^ uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xbf58476d1ce4e5b9
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return float64(h>>11) / float64(1<<53)
}
