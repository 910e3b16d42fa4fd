package game

import (
	"fmt"
	"time"
)

// Engine owns the whole simulation: the grid, the phase cycle, the three
// phase systems and the run state. Callers drive it with Update plus the
// intent methods; everything that happens comes back out as events and
// sim log entries. The engine never blocks and never spawns goroutines,
// so a headless driver can step it as fast as it likes.
type Engine struct {
	cfg     Config
	grid    *TileMap
	castles []*Castle
	rng     *Rand

	events *Dispatcher
	log    *SimLog
	phases *PhaseManager

	build  *BuildPhaseSystem
	deploy *DeployPhaseSystem
	combat *CombatPhaseSystem
	state  *GameStateManager

	round   int
	tick    int
	lastNow time.Time

	roundStartScore int
	roundStartLives int
	enclosedCount   int
	cannonsPlaced   int
	summaries       []RoundSummary
}

// NewEngine builds an engine from the config. The map definition is
// validated up front; a bad map is the only construction error.
func NewEngine(cfg Config) (*Engine, error) {
	e := &Engine{cfg: cfg}
	if err := e.reset(NewRand(cfg.Seed)); err != nil {
		return nil, err
	}
	return e, nil
}

// reset rebuilds every mutable part of the engine for a fresh run. The
// dispatcher survives so shell subscriptions outlive a restart.
func (e *Engine) reset(rng *Rand) error {
	grid, castles, err := LoadMap(e.cfg.Map)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.grid = grid
	e.castles = castles
	e.rng = rng
	if e.events == nil {
		e.events = NewDispatcher()
	}
	e.log = NewSimLog(e.cfg.VerboseLog)
	e.phases = NewPhaseManager(e.cfg.Phases)
	e.phases.SetChangeCallback(e.onPhaseChange)
	e.build = NewBuildPhaseSystem(grid, rng)
	e.deploy = NewDeployPhaseSystem(grid)
	e.combat = NewCombatPhaseSystem(grid, rng, castles)
	e.state = NewGameStateManager(e.cfg.Lives, e.cfg.FinalLevel)
	e.round = 0
	e.tick = 0
	e.summaries = nil
	e.wireCombat()
	return nil
}

// wireCombat hooks the combat system's callbacks into scoring, events and
// the log. Resolution lives in combat; consequences live here.
func (e *Engine) wireCombat() {
	e.combat.OnShipHit = func(s *Ship, damage int) {
		e.emit(EventShipHit, ShipEvent{ShipID: s.ID, Type: s.Type, X: s.X, Y: s.Y, Damage: damage})
		e.log.AddVerbose(e.tick, e.round, e.phases.Current().String(), "combat", "ship_hit", fmt.Sprintf("%s #%d", s.Type, s.ID), float64(damage))
	}
	e.combat.OnShipDestroyed = func(s *Ship, points int, critical bool) {
		e.state.ShipDestroyed()
		e.state.AddShipPoints(points)
		e.emit(EventShipDestroyed, ShipEvent{ShipID: s.ID, Type: s.Type, X: s.X, Y: s.Y, Points: points, Critical: critical})
		e.logf("combat", "ship_destroyed", fmt.Sprintf("%s #%d", s.Type, s.ID), float64(points))
	}
	e.combat.OnWallDestroyed = func(cell Point) {
		e.emit(EventWallDestroyed, ImpactEvent{Cell: cell})
		e.logf("combat", "wall_destroyed", fmt.Sprintf("(%d,%d)", cell.X, cell.Y), 0)
	}
	e.combat.OnTerrainImpact = func(cell Point) {
		e.emit(EventTerrainImpact, ImpactEvent{Cell: cell})
		e.log.AddVerbose(e.tick, e.round, e.phases.Current().String(), "combat", "crater", fmt.Sprintf("(%d,%d)", cell.X, cell.Y), 0)
	}
	e.combat.OnWaterSplash = func(cell Point) {
		e.emit(EventWaterSplash, ImpactEvent{Cell: cell})
	}
	e.combat.OnCannonDestroyed = func(c *Cannon) {
		e.emit(EventCannonDestroyed, ImpactEvent{Cell: c.Pos, CannonID: c.ID})
		e.logf("combat", "cannon_destroyed", fmt.Sprintf("#%d (%d,%d)", c.ID, c.Pos.X, c.Pos.Y), float64(c.ID))
	}
	e.combat.OnCastleDamaged = func(cell Point) {
		id := -1
		for _, c := range e.castles {
			if c.Pos == cell {
				id = c.ID
				break
			}
		}
		e.state.CastleDamaged()
		e.emit(EventCastleDamaged, ImpactEvent{Cell: cell, CastleID: id})
		e.emit(EventLifeLost, e.state.Lives())
		e.logf("combat", "castle_damaged", fmt.Sprintf("castle %d lives %d", id, e.state.Lives()), float64(e.state.Lives()))
		if e.state.State() == StateGameOver {
			e.emit(EventGameOver, e.state.Score())
			e.logf("state", "game_over", "castle overrun", float64(e.state.Score()))
		}
	}
	e.combat.OnBossSpawned = func(s *Ship) {
		e.emit(EventBossSpawned, ShipEvent{ShipID: s.ID, Type: s.Type, X: s.X, Y: s.Y})
		e.logf("combat", "boss_spawned", fmt.Sprintf("#%d", s.ID), float64(s.ID))
	}
}

// --- Accessors ---

func (e *Engine) Grid() *TileMap               { return e.grid }
func (e *Engine) Castles() []*Castle           { return e.castles }
func (e *Engine) Rand() *Rand                  { return e.rng }
func (e *Engine) Events() *Dispatcher          { return e.events }
func (e *Engine) Log() *SimLog                 { return e.log }
func (e *Engine) Phases() *PhaseManager        { return e.phases }
func (e *Engine) Build() *BuildPhaseSystem     { return e.build }
func (e *Engine) Deploy() *DeployPhaseSystem   { return e.deploy }
func (e *Engine) Combat() *CombatPhaseSystem   { return e.combat }
func (e *Engine) GameState() *GameStateManager { return e.state }
func (e *Engine) Round() int                   { return e.round }
func (e *Engine) Tick() int                    { return e.tick }

// emit dispatches an event to whoever is listening.
func (e *Engine) emit(t EventType, data interface{}) {
	e.events.Dispatch(Event{Type: t, Data: data})
}

// logf appends a structured entry stamped with the current tick, round
// and phase.
func (e *Engine) logf(category, key, value string, num float64) {
	e.log.Add(e.tick, e.round, e.phases.Current().String(), category, key, value, num)
}

// pieceSpawn is where fresh wall pieces appear, mid-map so the player can
// drag in any direction.
func (e *Engine) pieceSpawn() Point {
	return Point{X: e.grid.Width / 2, Y: e.grid.Height / 2}
}

// Start begins round 1 at the build phase.
func (e *Engine) Start(now time.Time) {
	e.lastNow = now
	e.round = 1
	e.phases.Start(now)
	e.beginBuild()
	e.logf("engine", "start", fmt.Sprintf("seed %d", e.rng.Seed()), float64(e.rng.Seed()))
}

// Restart throws the run away and starts over with the same config and
// the same effective seed.
func (e *Engine) Restart() error {
	if err := e.reset(NewRand(e.rng.Seed())); err != nil {
		return err
	}
	e.Start(e.lastNow)
	return nil
}

// beginBuild opens a round: snapshot the score and lives for the round
// summary and deal the first piece.
func (e *Engine) beginBuild() {
	e.roundStartScore = e.state.Score()
	e.roundStartLives = e.state.Lives()
	e.enclosedCount = 0
	e.cannonsPlaced = 0
	e.build.StartRound(e.pieceSpawn())
	e.logf("round", "begin", fmt.Sprintf("level %d wave %d", e.state.Level(), e.state.Wave()), float64(e.round))
}

// Update advances the simulation by one step. The phase timer runs on the
// caller's clock; combat advances one fixed tick per call so a seeded run
// is reproducible regardless of wall time.
func (e *Engine) Update(now time.Time) {
	e.lastNow = now
	if !e.phases.Started() || e.state.Over() {
		return
	}
	e.tick++
	e.phases.Update(now)
	if e.phases.Current() == PhaseCombat && !e.phases.Paused() && e.state.Playing() {
		e.combat.Update(tickSeconds)
		if e.combat.Complete() {
			e.phases.ChangePhase(PhaseScoring, now)
		}
	}
}

// onPhaseChange runs the transition choreography. It fires for both timer
// expiry and explicit skips, so all the per-phase setup lives here.
func (e *Engine) onPhaseChange(pc PhaseChange) {
	e.emit(EventPhaseChanged, pc)
	e.logf("phase", "change", fmt.Sprintf("%s -> %s", pc.From, pc.To), 0)
	switch pc.To {
	case PhaseDeploy:
		e.enterDeploy()
	case PhaseCombat:
		e.enterCombat()
	case PhaseScoring:
		e.settleScoring()
	case PhaseBuild:
		e.nextRound()
	}
}

// enterDeploy freezes the walls, solves every castle's enclosure and
// opens the cannon budget.
func (e *Engine) enterDeploy() {
	territories := e.build.ValidateTerritories(e.castles)
	e.enclosedCount = EnclosedCount(e.castles)
	e.deploy.StartDeployPhase(e.castles, territories)
	e.emit(EventTerritoryUpdate, e.enclosedCount)
	e.logf("deploy", "territories", fmt.Sprintf("%d enclosed", e.enclosedCount), float64(e.enclosedCount))
	e.logf("deploy", "budget", fmt.Sprintf("%d cannons", e.deploy.CannonsRemaining()), float64(e.deploy.CannonsRemaining()))
}

// enterCombat hands the finalized guns to the combat system and spawns
// the wave.
func (e *Engine) enterCombat() {
	cannons := e.deploy.FinalizeDeployment()
	e.cannonsPlaced = len(cannons)
	e.combat.StartCombat(e.state.Level(), e.state.Wave(), cannons)
	ships := len(e.combat.Ships())
	e.emit(EventWaveSpawned, ships)
	e.logf("combat", "wave_spawned", fmt.Sprintf("%d ships level %d", ships, e.state.Level()), float64(ships))
}

// settleScoring closes the round's books: territory is re-solved against
// the shelled grid, held ground pays out, an empty board costs a life,
// and a wiped wave completes the level.
func (e *Engine) settleScoring() {
	ValidateCastles(e.grid, e.castles)
	e.enclosedCount = EnclosedCount(e.castles)
	if e.enclosedCount == 0 {
		e.state.NoValidTerritory()
		e.emit(EventLifeLost, e.state.Lives())
		e.logf("scoring", "no_territory", "life lost", float64(e.state.Lives()))
		if e.state.State() == StateGameOver {
			e.emit(EventGameOver, e.state.Score())
			e.logf("state", "game_over", "no territory left", float64(e.state.Score()))
		}
	}
	e.state.ScoreTerritories(e.enclosedCount)
	if e.combat.Complete() && e.state.Playing() {
		e.state.LevelCompleted()
		if e.state.State() == StateVictory {
			e.emit(EventVictory, e.state.Score())
			e.logf("state", "victory", fmt.Sprintf("level %d cleared", e.state.Level()), float64(e.state.Score()))
		} else {
			e.emit(EventLevelComplete, e.state.Level())
			e.logf("state", "level_complete", fmt.Sprintf("level %d", e.state.Level()), float64(e.state.Level()))
		}
	}
	stats := e.combat.Stats()
	e.summaries = append(e.summaries, RoundSummary{
		Round:          e.round,
		Level:          e.state.Level(),
		Wave:           e.state.Wave(),
		Enclosed:       e.enclosedCount,
		CannonsPlaced:  e.cannonsPlaced,
		Kills:          stats.Kills,
		ShotsFired:     stats.ShotsFired,
		ShotsHit:       stats.ShotsHit,
		WallsDestroyed: stats.WallsDestroyed,
		Craters:        stats.CratersCreated,
		LivesLost:      e.roundStartLives - e.state.Lives(),
		ScoreDelta:     e.state.Score() - e.roundStartScore,
	})
	e.logf("scoring", "settled", fmt.Sprintf("score %d lives %d", e.state.Score(), e.state.Lives()), float64(e.state.Score()))
}

// nextRound cleans the board between rounds: surviving guns lift off the
// grid and the run either advances a level or rolls the next wave.
func (e *Engine) nextRound() {
	e.deploy.ClearCannons()
	if e.state.State() == StateLevelComplete {
		e.state.NextLevel()
	} else {
		e.state.NextWave()
	}
	e.round++
	e.beginBuild()
}

// --- Build intents ---

func (e *Engine) inBuild() bool {
	return e.phases.Current() == PhaseBuild && e.state.Playing()
}

// MovePiece nudges the active piece by whole cells.
func (e *Engine) MovePiece(dx, dy int) bool {
	if !e.inBuild() {
		return false
	}
	return e.build.MovePiece(dx, dy)
}

// SetPiecePosition drops the active piece's origin on a cell, for mouse
// dragging.
func (e *Engine) SetPiecePosition(pos Point) bool {
	if !e.inBuild() {
		return false
	}
	return e.build.SetPiecePosition(pos)
}

// RotatePiece turns the active piece a quarter turn.
func (e *Engine) RotatePiece(clockwise bool) bool {
	if !e.inBuild() {
		return false
	}
	return e.build.RotatePiece(clockwise)
}

// PlacePiece commits the active piece as wall.
func (e *Engine) PlacePiece() PlacementCheck {
	if !e.inBuild() {
		return PlacementCheck{Reason: "wrong_phase"}
	}
	check := e.build.PlacePiece()
	if check.OK {
		e.emit(EventPiecePlaced, e.build.PiecesPlaced())
		e.logf("build", "piece_placed", fmt.Sprintf("total %d", e.build.PiecesPlaced()), float64(e.build.PiecesPlaced()))
	}
	return check
}

// --- Deploy intents ---

// PlaceCannon spends a budget point on a cell inside enclosed territory.
func (e *Engine) PlaceCannon(pos Point) DeployCheck {
	if e.phases.Current() != PhaseDeploy || !e.state.Playing() {
		return DeployCheck{Reason: "wrong_phase"}
	}
	check := e.deploy.PlaceCannon(pos)
	if check.OK {
		e.emit(EventCannonPlaced, ImpactEvent{Cell: pos, CannonID: check.CannonID})
		e.logf("deploy", "cannon_placed", fmt.Sprintf("(%d,%d)", pos.X, pos.Y), float64(e.deploy.CannonsRemaining()))
	}
	return check
}

// RemoveCannon picks a placed cannon back up for a refund.
func (e *Engine) RemoveCannon(pos Point) bool {
	if e.phases.Current() != PhaseDeploy || !e.state.Playing() {
		return false
	}
	ok := e.deploy.RemoveCannon(pos)
	if ok {
		e.emit(EventCannonRemoved, ImpactEvent{Cell: pos})
		e.logf("deploy", "cannon_removed", fmt.Sprintf("(%d,%d)", pos.X, pos.Y), float64(e.deploy.CannonsRemaining()))
	}
	return ok
}

// --- Combat intents ---

// FireAt fires the nearest idle cannon at a cell.
func (e *Engine) FireAt(target Point) FireCheck {
	if e.phases.Current() != PhaseCombat || !e.state.Playing() {
		return FireCheck{Reason: "wrong_phase"}
	}
	fc := e.combat.FireAt(target)
	if fc.OK {
		e.log.AddVerbose(e.tick, e.round, e.phases.Current().String(), "combat", "fire_at", fmt.Sprintf("(%d,%d)", target.X, target.Y), float64(fc.CannonID))
	}
	return fc
}

// --- Flow intents ---

// SkipPhase ends the current phase early when its config allows it.
func (e *Engine) SkipPhase() bool {
	if !e.phases.Started() || e.state.Over() {
		return false
	}
	return e.phases.Skip(e.lastNow)
}

// Pause freezes the phase timer and the combat clock.
func (e *Engine) Pause() {
	e.phases.Pause(e.lastNow)
	e.logf("engine", "pause", "", 0)
}

// Resume continues a paused run without losing phase time.
func (e *Engine) Resume() {
	e.phases.Resume(e.lastNow)
	e.logf("engine", "resume", "", 0)
}

// Paused reports whether the run is frozen.
func (e *Engine) Paused() bool {
	return e.phases.Paused()
}
