package game

import "testing"

// --- Wave spawning ---

func TestCombat_WaveSizeFollowsLevelTier(t *testing.T) {
	cases := []struct {
		level int
		ships int
	}{
		{1, 2},
		{4, 4},
		{5, 7}, // six regulars plus the boss
	}
	for _, tc := range cases {
		c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(1), nil)
		c.StartCombat(tc.level, 1, nil)
		if got := len(c.Ships()); got != tc.ships {
			t.Fatalf("expected %d ships at level %d, got %d", tc.ships, tc.level, got)
		}
	}
}

func TestCombat_BossJoinsEveryFifthLevel(t *testing.T) {
	bosses := 0
	c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(2), nil)
	c.OnBossSpawned = func(s *Ship) { bosses++ }

	c.StartCombat(4, 1, nil)
	for _, s := range c.Ships() {
		if s.Type == ShipBoss {
			t.Fatalf("expected no boss at level 4")
		}
	}
	if bosses != 0 {
		t.Fatalf("expected no boss callback at level 4, got %d", bosses)
	}

	c.StartCombat(5, 1, nil)
	found := 0
	for _, s := range c.Ships() {
		if s.Type == ShipBoss {
			found++
		}
	}
	if found != 1 || bosses != 1 {
		t.Fatalf("expected exactly one boss at level 5, got %d in fleet and %d callbacks", found, bosses)
	}
}

func TestCombat_NoCoastlineSpawnsNothing(t *testing.T) {
	tm := NewTileMap(6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			tm.SetType(x, y, TileLand)
		}
	}
	c := NewCombatPhaseSystem(tm, NewRand(1), nil)
	c.StartCombat(3, 1, nil)

	if len(c.Ships()) != 0 {
		t.Fatalf("expected no ships without a coastline, got %d", len(c.Ships()))
	}
	if !c.Complete() {
		t.Fatalf("expected combat to be complete with nothing afloat")
	}
}

func TestCombat_StartResetsStatsAndFleet(t *testing.T) {
	c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(4), nil)
	c.StartCombat(1, 1, nil)
	c.Stats().ShotsFired = 5
	c.Stats().CratersCreated = 2

	c.StartCombat(1, 2, nil)
	if c.Stats().ShotsFired != 0 || c.Stats().CratersCreated != 0 {
		t.Fatalf("expected fresh stats on combat start, got %+v", *c.Stats())
	}
	if len(c.Ships()) != 2 {
		t.Fatalf("expected a fresh two-ship wave, got %d", len(c.Ships()))
	}
	if len(c.Projectiles()) != 0 {
		t.Fatalf("expected no shots in flight after restart")
	}
}

// --- Player fire ---

func TestCombat_FireAtPicksNearestIdleCannon(t *testing.T) {
	c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(3), nil)

	if chk := c.FireAt(Point{X: -1, Y: 5}); chk.OK || chk.Reason != "out_of_bounds" {
		t.Fatalf("expected out_of_bounds, got %+v", chk)
	}
	if chk := c.FireAt(Point{X: 5, Y: 5}); chk.OK || chk.Reason != "no_cannons" {
		t.Fatalf("expected no_cannons, got %+v", chk)
	}

	c.cannons = []*Cannon{
		{ID: 1, Pos: Point{X: 2, Y: 2}, Health: 100},
		{ID: 2, Pos: Point{X: 9, Y: 9}, Health: 100},
	}
	chk := c.FireAt(Point{X: 8, Y: 8})
	if !chk.OK || chk.CannonID != 2 {
		t.Fatalf("expected nearest cannon 2 to fire, got %+v", chk)
	}
	chk = c.FireAt(Point{X: 8, Y: 8})
	if !chk.OK || chk.CannonID != 1 {
		t.Fatalf("expected fallback to idle cannon 1, got %+v", chk)
	}
	if chk := c.FireAt(Point{X: 8, Y: 8}); chk.OK || chk.Reason != "all_cannons_busy" {
		t.Fatalf("expected all_cannons_busy, got %+v", chk)
	}
	if c.Stats().ShotsFired != 2 {
		t.Fatalf("expected 2 shots fired, got %d", c.Stats().ShotsFired)
	}
}

func TestCombat_FireCannonEnforcesOneInFlight(t *testing.T) {
	c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(3), nil)
	cn := &Cannon{ID: 4, Pos: Point{X: 3, Y: 3}, Health: 100}
	c.cannons = []*Cannon{cn}

	if chk := c.FireCannon(cn, Point{X: 7, Y: 6}); !chk.OK {
		t.Fatalf("expected first shot to launch, got %+v", chk)
	}
	aimed := cn.Angle
	if aimed == 0 {
		t.Fatalf("expected cannon angle to track the target")
	}
	if chk := c.FireCannon(cn, Point{X: 3, Y: 7}); chk.OK || chk.Reason != "all_cannons_busy" {
		t.Fatalf("expected busy cannon to refuse, got %+v", chk)
	}
	if cn.Angle != aimed {
		t.Fatalf("expected refused shot to leave the aim untouched")
	}
}

// --- Arc gate ---

func TestCombat_ArcGateHoldsShotUntilDescent(t *testing.T) {
	tm := NewTileMap(12, 12)
	tm.SetType(6, 3, TileWall)
	c := NewCombatPhaseSystem(tm, NewRand(1), nil)

	wallHits := 0
	c.OnWallDestroyed = func(cell Point) { wallHits++ }
	c.launch(SourceEnemy, 9, 2.0, 3.0, 6.0, 3.0, enemyProjectileSpeed, 35)

	// Four tiles at enemy speed: well short of the descent gate after 30 ticks.
	for i := 0; i < 30; i++ {
		c.Update(tickSeconds)
	}
	if tm.TypeAt(6, 3) != TileWall {
		t.Fatalf("expected wall intact while the shot is still arcing")
	}
	if len(c.Projectiles()) != 1 {
		t.Fatalf("expected shot still in flight, got %d", len(c.Projectiles()))
	}

	for i := 0; i < 20; i++ {
		c.Update(tickSeconds)
	}
	if tm.TypeAt(6, 3) != TileCrater {
		t.Fatalf("expected wall cratered after descent, got %v", tm.TypeAt(6, 3))
	}
	if wallHits != 1 || c.Stats().WallsDestroyed != 1 {
		t.Fatalf("expected one wall loss, got callback=%d stats=%d", wallHits, c.Stats().WallsDestroyed)
	}
	if len(c.Projectiles()) != 0 {
		t.Fatalf("expected spent shot swept, got %d in flight", len(c.Projectiles()))
	}
}

// --- Player impact resolution ---

func TestCombat_PlayerHitGrazesThenCriticalKills(t *testing.T) {
	c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(1), nil)
	s := newShip(1, ShipFrigate, 1, Point{X: 5, Y: 5}, nil)
	s.X, s.Y = 5.4, 5.4 // still cell (5,5), but outside the critical radius
	c.ships = append(c.ships, s)

	var hitDamage, gotPoints int
	var gotCritical bool
	c.OnShipHit = func(sh *Ship, damage int) { hitDamage = damage }
	c.OnShipDestroyed = func(sh *Ship, points int, critical bool) {
		gotPoints = points
		gotCritical = critical
	}

	p := c.launch(SourcePlayer, 1, 2, 2, 5, 5, playerProjectileSpeed, playerCannonDamage)
	c.resolveImpact(p)
	if s.Health != 50 || !s.Alive {
		t.Fatalf("expected grazed frigate at 50 health, got %d alive=%v", s.Health, s.Alive)
	}
	if hitDamage != 50 {
		t.Fatalf("expected 50 graze damage reported, got %d", hitDamage)
	}

	s.X, s.Y = 5, 5 // dead centre: critical, doubled damage
	p = c.launch(SourcePlayer, 1, 2, 2, 5, 5, playerProjectileSpeed, playerCannonDamage)
	c.resolveImpact(p)
	if s.Alive || s.Health != 0 {
		t.Fatalf("expected critical kill, got health %d alive=%v", s.Health, s.Alive)
	}
	if !gotCritical || gotPoints != 125 {
		t.Fatalf("expected 125 points with critical flag, got %d critical=%v", gotPoints, gotCritical)
	}
	if c.Stats().ShotsHit != 2 || c.Stats().Kills[ShipFrigate] != 1 {
		t.Fatalf("expected 2 hits and 1 frigate kill, got %+v", *c.Stats())
	}
	if !c.Complete() {
		t.Fatalf("expected combat complete once the fleet is sunk")
	}
}

func TestCombat_PlayerMissSplashesOnlyWater(t *testing.T) {
	tm := NewTileMap(12, 12)
	tm.SetType(6, 6, TileLand)
	c := NewCombatPhaseSystem(tm, NewRand(1), nil)

	splashes := 0
	c.OnWaterSplash = func(cell Point) { splashes++ }

	c.resolveImpact(c.launch(SourcePlayer, 1, 2, 2, 4, 4, playerProjectileSpeed, playerCannonDamage))
	if splashes != 1 {
		t.Fatalf("expected a splash on open water, got %d", splashes)
	}

	c.resolveImpact(c.launch(SourcePlayer, 1, 2, 2, 6, 6, playerProjectileSpeed, playerCannonDamage))
	if splashes != 1 {
		t.Fatalf("expected no splash on land, got %d", splashes)
	}
	if tm.TypeAt(6, 6) != TileLand || c.Stats().CratersCreated != 0 {
		t.Fatalf("expected player shots to leave terrain untouched")
	}
	if c.Stats().ShotsHit != 0 {
		t.Fatalf("expected no hits recorded for misses, got %d", c.Stats().ShotsHit)
	}
}

// --- Enemy impact resolution ---

func TestCombat_EnemyImpactMatrix(t *testing.T) {
	tm := NewTileMap(12, 12)
	tm.SetType(3, 3, TileLand)
	tm.SetType(4, 3, TileWall)
	tm.SetType(5, 3, TileCastle)
	tm.SetType(6, 3, TileCannon)
	c := NewCombatPhaseSystem(tm, NewRand(1), nil)
	c.cannons = []*Cannon{{ID: 7, Pos: Point{X: 6, Y: 3}, Health: 100}}

	var lostCannon, craters, splashes, castleHits int
	c.OnCannonDestroyed = func(cn *Cannon) { lostCannon = cn.ID }
	c.OnTerrainImpact = func(cell Point) { craters++ }
	c.OnWaterSplash = func(cell Point) { splashes++ }
	c.OnCastleDamaged = func(cell Point) { castleHits++ }

	shoot := func(x, y int) {
		c.resolveImpact(c.launch(SourceEnemy, 50, 0, 0, float64(x), float64(y), enemyProjectileSpeed, 60))
	}

	// Cannons soak hits first and only give way to debris once dead.
	shoot(6, 3)
	if len(c.cannons) != 1 || c.cannons[0].Health != 40 {
		t.Fatalf("expected damaged cannon to survive, got %+v", c.cannons)
	}
	if tm.TypeAt(6, 3) != TileCannon {
		t.Fatalf("expected cannon tile intact after a partial hit")
	}
	shoot(6, 3)
	if len(c.cannons) != 0 || lostCannon != 7 {
		t.Fatalf("expected cannon 7 destroyed, got %d cannons, callback id %d", len(c.cannons), lostCannon)
	}
	if tm.TypeAt(6, 3) != TileDebris || c.Stats().CannonsLost != 1 {
		t.Fatalf("expected debris and a recorded loss")
	}

	// Debris absorbs further fire without effect.
	shoot(6, 3)
	if tm.TypeAt(6, 3) != TileDebris || c.Stats().CratersCreated != 0 {
		t.Fatalf("expected debris to stay inert")
	}

	shoot(4, 3)
	if tm.TypeAt(4, 3) != TileCrater || c.Stats().WallsDestroyed != 1 {
		t.Fatalf("expected wall to crater")
	}
	shoot(3, 3)
	if tm.TypeAt(3, 3) != TileCrater || craters != 1 {
		t.Fatalf("expected land to crater, callbacks %d", craters)
	}
	if c.Stats().CratersCreated != 2 {
		t.Fatalf("expected 2 craters total, got %d", c.Stats().CratersCreated)
	}

	shoot(8, 8)
	if splashes != 1 || tm.TypeAt(8, 8) != TileWater {
		t.Fatalf("expected a harmless water splash")
	}

	shoot(5, 3)
	if castleHits != 1 || c.Stats().CastleHits != 1 {
		t.Fatalf("expected castle damage reported, got callback=%d stats=%d", castleHits, c.Stats().CastleHits)
	}
	if tm.TypeAt(5, 3) != TileCastle {
		t.Fatalf("expected castle tile to survive the hit")
	}
}

// --- Targeting ---

func TestCombat_BossFiresTripleSpread(t *testing.T) {
	c := NewCombatPhaseSystem(NewTileMap(12, 12), NewRand(1), nil)
	boss := newShip(3, ShipBoss, 5, Point{X: 5, Y: 5}, nil)

	c.fireBossSpread(boss, Point{X: 5, Y: 1})
	if len(c.Projectiles()) != 3 {
		t.Fatalf("expected 3 spread shots, got %d", len(c.Projectiles()))
	}
	cells := map[Point]bool{}
	for _, p := range c.Projectiles() {
		if p.Source != SourceEnemy || p.SourceID != 3 {
			t.Fatalf("expected enemy shots from the boss, got %+v", p)
		}
		cells[p.TargetCell()] = true
	}
	for _, want := range []Point{{X: 3, Y: 1}, {X: 5, Y: 1}, {X: 7, Y: 1}} {
		if !cells[want] {
			t.Fatalf("expected spread to cover %v, got %v", want, cells)
		}
	}

	// Point-blank target gives the spread no bearing; nothing launches.
	c.fireBossSpread(boss, Point{X: 5, Y: 5})
	if len(c.Projectiles()) != 3 {
		t.Fatalf("expected no extra shots at zero range, got %d", len(c.Projectiles()))
	}
}

func TestCombat_ShipHoldsFireWithShotInFlight(t *testing.T) {
	tm := NewTileMap(12, 12)
	tm.SetType(10, 10, TileLand)
	c := NewCombatPhaseSystem(tm, NewRand(7), nil)

	s := newShip(1, ShipScout, 1, Point{X: 1, Y: 1}, nil)
	s.FireRate = 1.0 // fire every tick the cap allows
	c.ships = append(c.ships, s)

	for i := 0; i < 3; i++ {
		c.Update(tickSeconds)
	}
	if got := len(c.Projectiles()); got != 1 {
		t.Fatalf("expected the in-flight cap to hold one shot, got %d", got)
	}
	if c.inFlight(SourceEnemy, s.ID) != 1 {
		t.Fatalf("expected one shot attributed to ship 1")
	}
}

func TestCombat_FallbackTargetAvoidsCrateredGround(t *testing.T) {
	tm := NewTileMap(12, 12)
	tm.SetType(2, 2, TileLand)
	tm.SetType(8, 8, TileLand)
	for _, p := range []Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 3}} {
		tm.SetType(p.X, p.Y, TileCrater)
	}
	c := NewCombatPhaseSystem(tm, NewRand(5), nil)

	for i := 0; i < 5; i++ {
		p, ok := c.fallbackLandTarget()
		if !ok || p != (Point{X: 8, Y: 8}) {
			t.Fatalf("expected shots steered to fresh ground (8,8), got %v ok=%v", p, ok)
		}
	}

	// Saturate the last fresh tile too; the first land tile then serves.
	for _, p := range []Point{{X: 7, Y: 7}, {X: 9, Y: 7}, {X: 7, Y: 9}} {
		tm.SetType(p.X, p.Y, TileCrater)
	}
	p, ok := c.fallbackLandTarget()
	if !ok || p != (Point{X: 2, Y: 2}) {
		t.Fatalf("expected saturated fallback to first land tile, got %v ok=%v", p, ok)
	}
}
