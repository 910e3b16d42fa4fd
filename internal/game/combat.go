package game

import "math"

// --- Targeting constants ---

// Each bias on the priority ladder is gated by its own roll, so two
// identical board states can still produce different shot choices.
const (
	priorityTargetChance  = 0.70 // take the priority ladder at all
	destroyerCastleChance = 0.60 // destroyers lining up on a castle
	cannonTargetChance    = 0.50
	wallTargetChance      = 0.40
	castleTargetChance    = 0.30 // non-destroyers
	bossProjectileCount   = 3
)

// FireCheck is the structured result of a player fire intent.
type FireCheck struct {
	OK       bool
	Reason   string // "", wrong_phase, no_cannons, all_cannons_busy, out_of_bounds
	CannonID int    // firing cannon when OK
}

// CombatPhaseSystem runs one combat round: wave composition, ship movement
// and firing AI, projectile flight, and impact resolution against ships,
// cannons and terrain. Impact outcomes fan out through callbacks; the
// system itself never touches score or lives.
type CombatPhaseSystem struct {
	grid    *TileMap
	rng     *Rand
	castles []*Castle

	cannons     []*Cannon
	ships       []*Ship
	projectiles []*Projectile
	stats       CombatStats

	level      int
	wave       int
	nextShipID int
	nextProjID int

	OnShipHit         func(s *Ship, damage int)
	OnShipDestroyed   func(s *Ship, points int, critical bool)
	OnWallDestroyed   func(cell Point)
	OnTerrainImpact   func(cell Point)
	OnWaterSplash     func(cell Point)
	OnCannonDestroyed func(c *Cannon)
	OnCastleDamaged   func(cell Point)
	OnBossSpawned     func(s *Ship)
}

// NewCombatPhaseSystem creates a combat system over the shared grid and
// castle list. The RNG drives ship-type draws and every targeting roll.
func NewCombatPhaseSystem(grid *TileMap, rng *Rand, castles []*Castle) *CombatPhaseSystem {
	return &CombatPhaseSystem{grid: grid, rng: rng, castles: castles}
}

// Ships returns the current wave, dead ships included.
func (c *CombatPhaseSystem) Ships() []*Ship {
	return c.ships
}

// Projectiles returns all shots currently in flight.
func (c *CombatPhaseSystem) Projectiles() []*Projectile {
	return c.projectiles
}

// Cannons returns the surviving cannons.
func (c *CombatPhaseSystem) Cannons() []*Cannon {
	return c.cannons
}

// Stats returns the running tally for the current round.
func (c *CombatPhaseSystem) Stats() *CombatStats {
	return &c.stats
}

// AliveShips counts ships still in the fight.
func (c *CombatPhaseSystem) AliveShips() int {
	n := 0
	for _, s := range c.ships {
		if s.Alive {
			n++
		}
	}
	return n
}

// Complete reports whether the wave has been wiped out. Ships that reach
// the end of their path stay alive and keep firing, so only attrition or
// the phase timer ends the round.
func (c *CombatPhaseSystem) Complete() bool {
	return c.AliveShips() == 0
}

// StartCombat resets the round state, takes ownership of the finalized
// cannons, and spawns the wave for the level.
func (c *CombatPhaseSystem) StartCombat(level, wave int, cannons []*Cannon) {
	c.level = level
	c.wave = wave
	c.cannons = cannons
	c.ships = c.ships[:0]
	c.projectiles = c.projectiles[:0]
	c.stats = CombatStats{}
	c.spawnWave()
}

// composeWave draws the ship classes for the level from its tier weights,
// appending the boss on every fifth level.
func (c *CombatPhaseSystem) composeWave() []ShipType {
	tier := tierForLevel(c.level)
	count := waveShipCount(c.level)
	types := make([]ShipType, 0, count+1)
	for i := 0; i < count; i++ {
		types = append(types, ShipType(c.rng.WeightedIndex(tier.Weights[:])))
	}
	if isBossLevel(c.level) {
		types = append(types, ShipBoss)
	}
	return types
}

// spawnWave places one ship per composed type on a random coastline tile
// with a fanned approach path. A map with no coastline spawns nothing and
// the round completes immediately.
func (c *CombatPhaseSystem) spawnWave() {
	coast := c.grid.CoastlineTiles()
	if len(coast) == 0 {
		return
	}
	types := c.composeWave()
	for i, t := range types {
		spawn := coast[c.rng.Intn(len(coast))]
		target := fanTarget(c.grid, i, len(types))
		path := buildShipPath(spawn, target)
		s := newShip(c.nextShipID, t, c.level, spawn, path)
		c.nextShipID++
		c.ships = append(c.ships, s)
		if t == ShipBoss && c.OnBossSpawned != nil {
			c.OnBossSpawned(s)
		}
	}
}

// Update advances one fixed simulation step: ships move and fire, shots
// fly, arrivals resolve, spent shots are swept.
func (c *CombatPhaseSystem) Update(dt float64) {
	for _, s := range c.ships {
		if s.Alive {
			s.advance(dt)
		}
	}
	for _, s := range c.ships {
		if s.Alive {
			c.shipFire(s)
		}
	}
	for _, p := range c.projectiles {
		p.advance(dt, c.grid)
		if p.arrived() {
			c.resolveImpact(p)
		}
	}
	kept := c.projectiles[:0]
	for _, p := range c.projectiles {
		if p.Active {
			kept = append(kept, p)
		}
	}
	c.projectiles = kept
}

// inFlight counts active shots belonging to one source entity.
func (c *CombatPhaseSystem) inFlight(src ProjectileSource, srcID int) int {
	n := 0
	for _, p := range c.projectiles {
		if p.Active && p.Source == src && p.SourceID == srcID {
			n++
		}
	}
	return n
}

// shipFire rolls the ship's per-tick fire chance and launches at a chosen
// target. Ships are capped at one shot in flight; bosses carry three and
// fire a triple spread.
func (c *CombatPhaseSystem) shipFire(s *Ship) {
	if c.inFlight(SourceEnemy, s.ID) >= s.Type.Profile().MaxInFlight {
		return
	}
	if !c.rng.Chance(s.FireRate) {
		return
	}
	target, ok := c.selectTarget(s)
	if !ok {
		return
	}
	if s.Type == ShipBoss {
		c.fireBossSpread(s, target)
		return
	}
	c.launch(SourceEnemy, s.ID, s.X, s.Y, float64(target.X), float64(target.Y), enemyProjectileSpeed, s.Damage)
}

// fireBossSpread launches three shots fanned 22.5 degrees either side of
// the target bearing, each at the same range as the aimed point.
func (c *CombatPhaseSystem) fireBossSpread(s *Ship, target Point) {
	dx := float64(target.X) - s.X
	dy := float64(target.Y) - s.Y
	dist := math.Hypot(dx, dy)
	if dist <= 0 {
		return
	}
	base := math.Atan2(dy, dx)
	spread := bossSpreadDegrees * math.Pi / 180
	for i := 0; i < bossProjectileCount; i++ {
		angle := base + spread*float64(i-1)
		tx := s.X + math.Cos(angle)*dist
		ty := s.Y + math.Sin(angle)*dist
		c.launch(SourceEnemy, s.ID, s.X, s.Y, tx, ty, enemyProjectileSpeed, s.Damage)
	}
}

// selectTarget picks what the ship shoots at. Most rolls walk the priority
// ladder (castles for destroyers, then cannons, walls, castles for the
// rest), each rung gated by its own chance; the remainder fall back to
// open land with crater avoidance.
func (c *CombatPhaseSystem) selectTarget(s *Ship) (Point, bool) {
	if c.rng.Chance(priorityTargetChance) {
		if s.Type == ShipDestroyer && len(c.castles) > 0 && c.rng.Chance(destroyerCastleChance) {
			return c.castles[c.rng.Intn(len(c.castles))].Pos, true
		}
		if len(c.cannons) > 0 && c.rng.Chance(cannonTargetChance) {
			return c.cannons[c.rng.Intn(len(c.cannons))].Pos, true
		}
		if walls := c.grid.WallTiles(); len(walls) > 0 && c.rng.Chance(wallTargetChance) {
			return walls[c.rng.Intn(len(walls))], true
		}
		if s.Type != ShipDestroyer && len(c.castles) > 0 && c.rng.Chance(castleTargetChance) {
			return c.castles[c.rng.Intn(len(c.castles))].Pos, true
		}
	}
	return c.fallbackLandTarget()
}

// fallbackLandTarget picks a random LAND tile, skipping ground that is
// already heavily cratered. If every land tile is saturated the first one
// serves; a map with no land yields no shot at all.
func (c *CombatPhaseSystem) fallbackLandTarget() (Point, bool) {
	land := c.grid.LandTiles()
	if len(land) == 0 {
		return Point{}, false
	}
	fresh := land[:0:0]
	for _, p := range land {
		if c.grid.CraterCountNear(p.X, p.Y, craterAvoidRadius) < craterAvoidLimit {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) == 0 {
		return land[0], true
	}
	return fresh[c.rng.Intn(len(fresh))], true
}

// launch creates a projectile and registers it in flight.
func (c *CombatPhaseSystem) launch(src ProjectileSource, srcID int, sx, sy, tx, ty, speed float64, damage int) *Projectile {
	p := newProjectile(c.nextProjID, src, srcID, sx, sy, tx, ty, speed, damage)
	c.nextProjID++
	c.projectiles = append(c.projectiles, p)
	return p
}

// FireAt fires the nearest idle cannon at the target cell. Validation
// failures come back as a structured reason and never mutate anything.
func (c *CombatPhaseSystem) FireAt(target Point) FireCheck {
	if !c.grid.InBounds(target.X, target.Y) {
		return FireCheck{Reason: "out_of_bounds"}
	}
	if len(c.cannons) == 0 {
		return FireCheck{Reason: "no_cannons"}
	}
	var best *Cannon
	bestDist := math.MaxFloat64
	for _, cn := range c.cannons {
		if c.inFlight(SourcePlayer, cn.ID) > 0 {
			continue
		}
		d := math.Hypot(float64(cn.Pos.X-target.X), float64(cn.Pos.Y-target.Y))
		if d < bestDist {
			best = cn
			bestDist = d
		}
	}
	if best == nil {
		return FireCheck{Reason: "all_cannons_busy"}
	}
	return c.FireCannon(best, target)
}

// FireCannon fires a specific cannon at the target cell, enforcing the
// one-shot-in-flight rule per cannon.
func (c *CombatPhaseSystem) FireCannon(cn *Cannon, target Point) FireCheck {
	if !c.grid.InBounds(target.X, target.Y) {
		return FireCheck{Reason: "out_of_bounds"}
	}
	if c.inFlight(SourcePlayer, cn.ID) > 0 {
		return FireCheck{Reason: "all_cannons_busy"}
	}
	cx := float64(cn.Pos.X)
	cy := float64(cn.Pos.Y)
	cn.Angle = math.Atan2(float64(target.Y)-cy, float64(target.X)-cx)
	c.launch(SourcePlayer, cn.ID, cx, cy, float64(target.X), float64(target.Y), playerProjectileSpeed, playerCannonDamage)
	c.stats.ShotsFired++
	return FireCheck{OK: true, CannonID: cn.ID}
}

// resolveImpact lands an arrived shot at its aimed cell. Player and enemy
// shots resolve against different things; each outcome is exclusive and
// the shot is spent either way.
func (c *CombatPhaseSystem) resolveImpact(p *Projectile) {
	p.Active = false
	if p.Source == SourcePlayer {
		c.resolvePlayerImpact(p)
		return
	}
	c.resolveEnemyImpact(p)
}

// resolvePlayerImpact checks ships on the aimed cell. A hit inside the
// critical radius doubles the damage; a kill pays the class points plus
// the critical bonus. With no ship present a water cell still splashes.
func (c *CombatPhaseSystem) resolvePlayerImpact(p *Projectile) {
	cell := p.TargetCell()
	for _, s := range c.ships {
		if !s.Alive || s.Cell() != cell {
			continue
		}
		dist := math.Hypot(s.X-p.TargetX, s.Y-p.TargetY)
		critical := dist <= criticalHitRadius
		damage := p.Damage
		if critical {
			damage *= 2
		}
		s.Health -= damage
		c.stats.ShotsHit++
		if s.Health <= 0 {
			s.Health = 0
			s.Alive = false
			c.stats.Kills[s.Type]++
			points := s.Type.Profile().Points
			if critical {
				points += criticalBonusPoints
			}
			if c.OnShipDestroyed != nil {
				c.OnShipDestroyed(s, points, critical)
			}
		} else if c.OnShipHit != nil {
			c.OnShipHit(s, damage)
		}
		return
	}
	if c.grid.TypeAt(cell.X, cell.Y) == TileWater && c.OnWaterSplash != nil {
		c.OnWaterSplash(cell)
	}
}

// resolveEnemyImpact lands a ship's shot: cannons take damage first, then
// walls and land crater, water splashes, and a castle cell reports damage
// upward without any terrain change.
func (c *CombatPhaseSystem) resolveEnemyImpact(p *Projectile) {
	cell := p.TargetCell()
	for i, cn := range c.cannons {
		if cn.Pos != cell {
			continue
		}
		cn.Health -= p.Damage
		if cn.Health <= 0 {
			c.cannons = append(c.cannons[:i], c.cannons[i+1:]...)
			c.grid.SetType(cell.X, cell.Y, TileDebris)
			c.stats.CannonsLost++
			if c.OnCannonDestroyed != nil {
				c.OnCannonDestroyed(cn)
			}
		}
		return
	}
	switch c.grid.TypeAt(cell.X, cell.Y) {
	case TileWall:
		c.grid.SetType(cell.X, cell.Y, TileCrater)
		c.stats.WallsDestroyed++
		c.stats.CratersCreated++
		if c.OnWallDestroyed != nil {
			c.OnWallDestroyed(cell)
		}
	case TileLand:
		c.grid.SetType(cell.X, cell.Y, TileCrater)
		c.stats.CratersCreated++
		if c.OnTerrainImpact != nil {
			c.OnTerrainImpact(cell)
		}
	case TileWater:
		if c.OnWaterSplash != nil {
			c.OnWaterSplash(cell)
		}
	case TileCastle:
		c.stats.CastleHits++
		if c.OnCastleDamaged != nil {
			c.OnCastleDamaged(cell)
		}
	}
}
