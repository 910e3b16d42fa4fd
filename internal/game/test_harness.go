package game

import (
	"fmt"
	"math"
	"time"
)

// TestGame is a headless harness around an Engine, used by tests and the
// report driver. It owns a synthetic clock that advances one fixed tick
// per step, so a seeded run replays identically, and it carries a simple
// autopilot that plays rounds through the same intent methods a human
// player would use.
type TestGame struct {
	Engine *Engine
	now    time.Time
}

// gameOptionKind controls the pass in which an option is applied.
type gameOptionKind int

const (
	gameOptConfig gameOptionKind = iota // mutate the config — applied before the engine exists
	gameOptPost                         // touch the built engine — applied after construction
)

// GameOption is a builder function applied to a TestGame during
// construction.
type GameOption struct {
	kind gameOptionKind
	fn   func(*TestGame, *Config)
}

// WithSeed fixes the RNG seed for deterministic runs.
func WithSeed(seed int64) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		cfg.Seed = seed
	}}
}

// WithMap replaces the whole map definition.
func WithMap(def MapDef) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		cfg.Map = def
	}}
}

// WithGeneratedMap swaps in a generated island of the given size.
func WithGeneratedMap(w, h int) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		cfg.Map = GenerateIslandMap(w, h)
	}}
}

// WithPhaseDuration overrides one phase's timer, keeping its skip rule.
func WithPhaseDuration(p GamePhase, d time.Duration) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		pc := cfg.Phases[p]
		pc.Duration = d
		cfg.Phases[p] = pc
	}}
}

// WithLives sets the starting lives.
func WithLives(n int) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		cfg.Lives = n
	}}
}

// WithFinalLevel sets the level whose completion wins the run.
func WithFinalLevel(n int) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		cfg.FinalLevel = n
	}}
}

// WithVerboseLog enables per-tick verbose sim log entries.
func WithVerboseLog(v bool) GameOption {
	return GameOption{gameOptConfig, func(_ *TestGame, cfg *Config) {
		cfg.VerboseLog = v
	}}
}

// WithListener subscribes a listener to every event before the run starts.
func WithListener(l Listener) GameOption {
	return GameOption{gameOptPost, func(tg *TestGame, _ *Config) {
		tg.Engine.Events().SubscribeAll(l)
	}}
}

// NewTestGame builds a started engine from the default config plus the
// given options, applied in two ordered passes: config first, then
// post-construction hooks. The harness defaults to seed 1 so unseeded
// tests are still reproducible. A config the engine rejects is a bug in
// the test, so the harness panics rather than returning an error.
func NewTestGame(opts ...GameOption) *TestGame {
	cfg := DefaultConfig()
	cfg.Seed = 1
	tg := &TestGame{now: time.Unix(0, 0).UTC()}
	for _, o := range opts {
		if o.kind == gameOptConfig {
			o.fn(tg, &cfg)
		}
	}
	e, err := NewEngine(cfg)
	if err != nil {
		panic(fmt.Sprintf("test harness: %v", err))
	}
	tg.Engine = e
	for _, o := range opts {
		if o.kind == gameOptPost {
			o.fn(tg, &cfg)
		}
	}
	e.Start(tg.now)
	return tg
}

// Now returns the harness clock.
func (tg *TestGame) Now() time.Time {
	return tg.now
}

// StepTicks advances the simulation n fixed ticks.
func (tg *TestGame) StepTicks(n int) {
	for i := 0; i < n; i++ {
		tg.now = tg.now.Add(tickDuration)
		tg.Engine.Update(tg.now)
	}
}

// StepUntil advances up to maxTicks, stopping early when the predicate
// holds. Returns the tick at which it was satisfied, or -1.
func (tg *TestGame) StepUntil(predicate func(*Engine) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tg.StepTicks(1)
		if predicate(tg.Engine) {
			return tg.Engine.Tick()
		}
	}
	return -1
}

// Advance jumps the clock forward in one update, expiring phase timers
// without simulating the intervening combat ticks.
func (tg *TestGame) Advance(d time.Duration) {
	tg.now = tg.now.Add(d)
	tg.Engine.Update(tg.now)
}

// --- Autopilot ---

// homeCastle finds the home castle, nil when the map has none.
func homeCastle(castles []*Castle) *Castle {
	for _, c := range castles {
		if c.Home {
			return c
		}
	}
	return nil
}

// coverCell tries to land one cell of the current piece on the target by
// walking every rotation and cell offset through the real move and place
// intents.
func (tg *TestGame) coverCell(target Point) bool {
	e := tg.Engine
	for rot := 0; rot < 4; rot++ {
		piece := e.Build().Current()
		if piece == nil {
			return false
		}
		base := piece.Pos
		for _, c := range piece.OccupiedCells() {
			want := Point{X: target.X - (c.X - base.X), Y: target.Y - (c.Y - base.Y)}
			if !e.SetPiecePosition(want) {
				continue
			}
			if e.PlacePiece().OK {
				return true
			}
		}
		e.RotatePiece(true)
	}
	return false
}

// ringCells returns the cells at exactly the given Chebyshev distance
// from the center, in scan order.
func ringCells(center Point, radius int) []Point {
	var out []Point
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			dx := absInt(x - center.X)
			dy := absInt(y - center.Y)
			if dx == radius || dy == radius {
				out = append(out, Point{X: x, Y: y})
			}
		}
	}
	return out
}

// buildRing walls every open cell of one ring around the center, then
// checks the enclosure actually closed. Ground that cannot take wall
// (water, craters, debris) fails the ring immediately.
func (tg *TestGame) buildRing(center Point, radius int) bool {
	e := tg.Engine
	for _, cell := range ringCells(center, radius) {
		t := e.Grid().TypeAt(cell.X, cell.Y)
		if t == TileWall {
			continue
		}
		if tileBlocksBuild(t) || !e.Grid().InBounds(cell.X, cell.Y) {
			return false
		}
		if !tg.coverCell(cell) {
			return false
		}
	}
	return SolveTerritory(e.Grid(), center).Enclosed
}

// AutoBuild encloses the home castle with the smallest ring the ground
// allows, widening when craters or water break the tight ones. Returns
// false when no ring within reach can close, which costs the round its
// territory.
func (tg *TestGame) AutoBuild() bool {
	home := homeCastle(tg.Engine.Castles())
	if home == nil {
		return false
	}
	for radius := 2; radius <= 4; radius++ {
		if tg.buildRing(home.Pos, radius) {
			return true
		}
	}
	return false
}

// AutoDeploy spends the whole cannon budget on territory cells in scan
// order. Returns how many guns went down.
func (tg *TestGame) AutoDeploy() int {
	e := tg.Engine
	placed := 0
	for y := 0; y < e.Grid().Height && e.Deploy().CannonsRemaining() > 0; y++ {
		for x := 0; x < e.Grid().Width && e.Deploy().CannonsRemaining() > 0; x++ {
			p := Point{X: x, Y: y}
			if !e.Deploy().InTerritory(p) {
				continue
			}
			if e.PlaceCannon(p).OK {
				placed++
			}
		}
	}
	return placed
}

// autoFire shoots at the nearest live ship, leading it by the estimated
// shell flight time so moving targets are not hopeless.
func (tg *TestGame) autoFire() {
	e := tg.Engine
	center := Point{X: e.Grid().Width / 2, Y: e.Grid().Height / 2}
	var best *Ship
	bestDist := math.MaxFloat64
	for _, s := range e.Combat().Ships() {
		if !s.Alive {
			continue
		}
		d := math.Hypot(s.X-float64(center.X), s.Y-float64(center.Y))
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	if best == nil {
		return
	}
	flight := bestDist / playerProjectileSpeed
	aim := Point{
		X: int(math.Round(best.X + best.VX*flight)),
		Y: int(math.Round(best.Y + best.VY*flight)),
	}
	if !e.Grid().InBounds(aim.X, aim.Y) {
		aim = best.Cell()
	}
	e.FireAt(aim)
}

// PlayRound drives one full cycle: build a ring, skip ahead, deploy the
// budget, skip ahead, fight up to maxCombatTicks, then let the combat
// timer and the scoring skip close the round out.
func (tg *TestGame) PlayRound(maxCombatTicks int) {
	e := tg.Engine
	if e.Phases().Current() == PhaseBuild && e.GameState().Playing() {
		tg.AutoBuild()
		e.SkipPhase()
	}
	if e.Phases().Current() == PhaseDeploy && e.GameState().Playing() {
		tg.AutoDeploy()
		e.SkipPhase()
	}
	for i := 0; i < maxCombatTicks; i++ {
		if e.Phases().Current() != PhaseCombat || e.GameState().Over() {
			break
		}
		tg.autoFire()
		tg.StepTicks(1)
	}
	if e.Phases().Current() == PhaseCombat && !e.GameState().Over() {
		tg.Advance(e.Phases().Remaining(tg.now) + time.Second)
	}
	if e.Phases().Current() == PhaseScoring && !e.GameState().Over() {
		e.SkipPhase()
	}
}

// PlayGame plays rounds until the run reaches a terminal state or the
// round budget runs out, and returns the final state.
func (tg *TestGame) PlayGame(maxRounds, maxCombatTicks int) GameState {
	for i := 0; i < maxRounds; i++ {
		if tg.Engine.GameState().Over() {
			break
		}
		tg.PlayRound(maxCombatTicks)
	}
	return tg.Engine.GameState().State()
}
