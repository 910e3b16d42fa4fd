package game

import "math"

// ProjectileSource distinguishes player cannon fire from ship fire.
type ProjectileSource uint8

const (
	SourcePlayer ProjectileSource = iota
	SourceEnemy
)

// String returns "player" or "enemy".
func (s ProjectileSource) String() string {
	if s == SourcePlayer {
		return "player"
	}
	return "enemy"
}

// Projectile is one shot in flight. Progress runs 0..1 from launch to the
// aimed point; the renderer derives arc height from it, and the combat
// system uses it to gate when the shot is allowed to land. SourceID is the
// firing cannon or ship.
type Projectile struct {
	ID       int
	Source   ProjectileSource
	SourceID int
	X, Y     float64
	VX, VY   float64
	Damage   int
	Active   bool
	StartX   float64
	StartY   float64
	TargetX  float64
	TargetY  float64
	Progress float64
}

// newProjectile creates an active shot from start toward target at the given
// speed in tiles/sec. A zero-length shot arrives immediately.
func newProjectile(id int, src ProjectileSource, srcID int, sx, sy, tx, ty, speed float64, damage int) *Projectile {
	dx := tx - sx
	dy := ty - sy
	dist := math.Hypot(dx, dy)
	p := &Projectile{
		ID:       id,
		Source:   src,
		SourceID: srcID,
		X:        sx,
		Y:        sy,
		Damage:   damage,
		Active:   true,
		StartX:   sx,
		StartY:   sy,
		TargetX:  tx,
		TargetY:  ty,
	}
	if dist <= 0 {
		p.Progress = 1
		return p
	}
	p.VX = dx / dist * speed
	p.VY = dy / dist * speed
	return p
}

// advance moves the shot and recomputes progress as travelled/total distance.
// Leaving the grid deactivates it.
func (p *Projectile) advance(dt float64, tm *TileMap) {
	if !p.Active {
		return
	}
	p.X += p.VX * dt
	p.Y += p.VY * dt

	total := math.Hypot(p.TargetX-p.StartX, p.TargetY-p.StartY)
	if total <= 0 {
		p.Progress = 1
	} else {
		p.Progress = math.Hypot(p.X-p.StartX, p.Y-p.StartY) / total
	}

	if !tm.InBounds(int(math.Round(p.X)), int(math.Round(p.Y))) {
		p.Active = false
	}
}

// arrived reports whether the shot has passed the arc gate and may resolve.
func (p *Projectile) arrived() bool {
	return p.Active && p.Progress >= projectileArcGate
}

// TargetCell returns the grid cell the shot was aimed at. Impacts resolve
// against this cell: an arcing shell lands where it was aimed, not wherever
// the interpolated position happens to round to.
func (p *Projectile) TargetCell() Point {
	return Point{X: int(math.Round(p.TargetX)), Y: int(math.Round(p.TargetY))}
}

// Cell returns the grid cell under the shot's current position.
func (p *Projectile) Cell() Point {
	return Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}
