package game

import "time"

// Simulation tick rate. The combat systems advance on a fixed step so a run
// is reproducible from its seed regardless of wall-clock jitter.
const (
	ticksPerSecond = 60
	tickSeconds    = 1.0 / float64(ticksPerSecond)
	tickDuration   = time.Second / ticksPerSecond
)

// Combat tuning.
const (
	shipSpeedLevelBonus   = 0.05 // +5% ship speed per level above 1
	waypointSnapDistance  = 0.1  // tiles; within this of a waypoint snaps to it
	projectileArcGate     = 0.95 // progress before an arcing shot may land
	playerProjectileSpeed = 8.0  // tiles/sec
	enemyProjectileSpeed  = 6.0  // tiles/sec
	playerCannonDamage    = 50
	cannonHealth          = 100
	criticalHitRadius     = 0.5 // tiles from ship centre for a critical
	criticalBonusPoints   = 25
	pathFanSpread         = 8    // tiles; ± offset fanning ship approach paths
	bossSpreadDegrees     = 22.5 // boss triple-shot angular spread
	craterAvoidRadius     = 2    // tiles; crater-avoidance search box
	craterAvoidLimit      = 3    // craters nearby before a target is shunned
)

// Scoring.
const (
	pointsPerShip      = 100 // flat award per destroyed ship
	pointsPerTerritory = 50  // per held territory each scoring round
	levelBonusPoints   = 200 // multiplied by level on completion
)

// Deployment budget.
const (
	homeCastleCannons   = 2 // per enclosed home castle
	otherCastleCannons  = 1 // per other enclosed castle
	multiEnclosureBonus = 1 // flat bonus when more than one castle is enclosed
)

// Run defaults.
const (
	defaultLives      = 3
	defaultFinalLevel = 10
	defaultMapWidth   = 32
	defaultMapHeight  = 24
)

// Config bundles everything an engine needs to start a run.
type Config struct {
	Map        MapDef
	Seed       int64 // 0 = time-based
	Lives      int
	FinalLevel int // completing this level wins the game
	Phases     map[GamePhase]PhaseConfig
	VerboseLog bool
}

// DefaultConfig returns the standard arcade setup: generated island map,
// time-based seed, three lives, victory at level ten.
func DefaultConfig() Config {
	return Config{
		Map:        GenerateIslandMap(defaultMapWidth, defaultMapHeight),
		Lives:      defaultLives,
		FinalLevel: defaultFinalLevel,
		Phases: map[GamePhase]PhaseConfig{
			PhaseBuild:   {Duration: 30 * time.Second, CanSkip: true},
			PhaseDeploy:  {Duration: 15 * time.Second, CanSkip: true},
			PhaseCombat:  {Duration: 45 * time.Second, CanSkip: false},
			PhaseScoring: {Duration: 6 * time.Second, CanSkip: true},
		},
	}
}
