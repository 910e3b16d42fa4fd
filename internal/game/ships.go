package game

import "math"

// Ship is one attacker in the current wave. Position is fractional grid
// space; the path is a list of whole-tile waypoints toward the island.
// Dead ships stay in the wave list with Alive=false until the next combat
// round resets it.
type Ship struct {
	ID        int
	Type      ShipType
	X, Y      float64
	Health    int
	MaxHealth int
	Speed     float64 // tiles per second, level-scaled
	Damage    int
	FireRate  float64
	Path      []Point
	PathIndex int
	VX, VY    float64
	Alive     bool
}

// newShip creates a level-scaled ship of the given class at a spawn tile.
func newShip(id int, t ShipType, level int, spawn Point, path []Point) *Ship {
	p := t.Profile()
	return &Ship{
		ID:        id,
		Type:      t,
		X:         float64(spawn.X),
		Y:         float64(spawn.Y),
		Health:    p.Health,
		MaxHealth: p.Health,
		Speed:     shipSpeedForLevel(t, level),
		Damage:    p.Damage,
		FireRate:  p.FireRate,
		Path:      path,
		Alive:     true,
	}
}

// Cell returns the grid cell the ship currently occupies.
func (s *Ship) Cell() Point {
	return Point{X: int(math.Round(s.X)), Y: int(math.Round(s.Y))}
}

// AtPathEnd reports whether the ship has consumed all waypoints. Such ships
// hold position and keep firing; only attrition removes them.
func (s *Ship) AtPathEnd() bool {
	return s.PathIndex >= len(s.Path)
}

// advance moves the ship toward its next waypoint at Speed tiles/sec.
// Within waypointSnapDistance of a waypoint the ship snaps onto it and the
// path index advances.
func (s *Ship) advance(dt float64) {
	if s.AtPathEnd() {
		s.VX, s.VY = 0, 0
		return
	}
	wp := s.Path[s.PathIndex]
	dx := float64(wp.X) - s.X
	dy := float64(wp.Y) - s.Y
	dist := math.Hypot(dx, dy)
	if dist <= waypointSnapDistance {
		s.X, s.Y = float64(wp.X), float64(wp.Y)
		s.PathIndex++
		return
	}
	step := s.Speed * dt
	if step > dist {
		step = dist
	}
	s.VX = dx / dist * s.Speed
	s.VY = dy / dist * s.Speed
	s.X += dx / dist * step
	s.Y += dy / dist * step
}

// fanTarget spreads ship approach targets around the map centre so a wave
// does not pile onto a single tile. Offsets alternate between the X and Y
// axis by ship index and scale with index/total across ±pathFanSpread tiles.
func fanTarget(tm *TileMap, index, total int) Point {
	cx := tm.Width / 2
	cy := tm.Height / 2
	frac := 0.0
	if total > 1 {
		frac = float64(index) / float64(total)
	}
	offset := int(frac*2*pathFanSpread) - pathFanSpread
	if index%2 == 0 {
		cx += offset
	} else {
		cy += offset
	}
	if cx < 1 {
		cx = 1
	}
	if cx > tm.Width-2 {
		cx = tm.Width - 2
	}
	if cy < 1 {
		cy = 1
	}
	if cy > tm.Height-2 {
		cy = tm.Height - 2
	}
	return Point{X: cx, Y: cy}
}

// buildShipPath walks from spawn toward target one tile at a time, always
// stepping along the axis with the larger remaining delta. The result is a
// straight-ish staircase line, waypoint per tile.
func buildShipPath(spawn, target Point) []Point {
	path := []Point{spawn}
	cur := spawn
	for cur != target {
		dx := target.X - cur.X
		dy := target.Y - cur.Y
		switch {
		case absInt(dx) >= absInt(dy) && dx != 0:
			cur.X += signInt(dx)
		case dy != 0:
			cur.Y += signInt(dy)
		default:
			return path
		}
		path = append(path, cur)
	}
	return path
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
