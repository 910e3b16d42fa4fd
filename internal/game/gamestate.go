package game

// GameState is the run-level outcome state, distinct from the phase cycle.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateGameOver
	StateLevelComplete
	StateVictory
	gameStateCount
)

// String returns a short name for logs and the HUD.
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateLevelComplete:
		return "level_complete"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// ScoreBreakdown splits the score by where it came from.
type ScoreBreakdown struct {
	ShipPoints      int
	TerritoryPoints int
	BonusPoints     int
	Total           int
	HighScore       int
}

// GameStateManager tracks score, lives, level progression and the terminal
// states. It is fed by engine callbacks and never reaches into the combat
// or grid state itself.
type GameStateManager struct {
	state      GameState
	level      int
	wave       int
	score      int
	highScore  int
	lives      int
	finalLevel int

	shipsDestroyed      int // this round
	totalShipsDestroyed int
	territoriesHeld     int

	shipPoints      int
	territoryPoints int
	bonusPoints     int
}

// NewGameStateManager starts a run at level 1 with the given lives.
// Reaching past finalLevel ends the run in victory.
func NewGameStateManager(lives, finalLevel int) *GameStateManager {
	return &GameStateManager{
		state:      StatePlaying,
		level:      1,
		wave:       1,
		lives:      lives,
		finalLevel: finalLevel,
	}
}

func (g *GameStateManager) State() GameState    { return g.state }
func (g *GameStateManager) Level() int          { return g.level }
func (g *GameStateManager) Wave() int           { return g.wave }
func (g *GameStateManager) Score() int          { return g.score }
func (g *GameStateManager) Lives() int          { return g.lives }
func (g *GameStateManager) FinalLevel() int     { return g.finalLevel }
func (g *GameStateManager) HighScore() int      { return g.highScore }
func (g *GameStateManager) Territories() int    { return g.territoriesHeld }
func (g *GameStateManager) ShipsThisRound() int { return g.shipsDestroyed }
func (g *GameStateManager) TotalShips() int     { return g.totalShipsDestroyed }

// Playing reports whether the run is still interactive.
func (g *GameStateManager) Playing() bool {
	return g.state == StatePlaying
}

// Over reports whether the run has reached a terminal state.
func (g *GameStateManager) Over() bool {
	return g.state == StateGameOver || g.state == StateVictory
}

func (g *GameStateManager) addScore(points int) {
	g.score += points
	if g.score > g.highScore {
		g.highScore = g.score
	}
}

// ShipDestroyed awards the flat per-ship score and bumps the kill counts.
func (g *GameStateManager) ShipDestroyed() {
	g.shipsDestroyed++
	g.totalShipsDestroyed++
	g.shipPoints += pointsPerShip
	g.addScore(pointsPerShip)
}

// AddShipPoints awards class-specific kill points on top of the flat
// per-ship score.
func (g *GameStateManager) AddShipPoints(points int) {
	g.shipPoints += points
	g.addScore(points)
}

// ScoreTerritories pays the held-territory dividend at scoring time.
func (g *GameStateManager) ScoreTerritories(count int) {
	g.territoriesHeld = count
	points := count * pointsPerTerritory
	g.territoryPoints += points
	g.addScore(points)
}

// LevelCompleted pays the level bonus and either finishes the run in
// victory or parks it in the level-complete state until NextLevel.
func (g *GameStateManager) LevelCompleted() {
	bonus := g.level * levelBonusPoints
	g.bonusPoints += bonus
	g.addScore(bonus)
	if g.level >= g.finalLevel {
		g.state = StateVictory
		return
	}
	g.state = StateLevelComplete
}

// NextLevel advances the run out of level-complete back into play.
func (g *GameStateManager) NextLevel() {
	if g.state != StateLevelComplete {
		return
	}
	g.level++
	g.wave = 1
	g.shipsDestroyed = 0
	g.state = StatePlaying
}

// NextWave starts another round on the same level.
func (g *GameStateManager) NextWave() {
	g.wave++
	g.shipsDestroyed = 0
}

// loseLife drains one life and checks for game over.
func (g *GameStateManager) loseLife() {
	if g.Over() {
		return
	}
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.state = StateGameOver
	}
}

// CastleDamaged costs a life: enemy fire got through to a castle.
func (g *GameStateManager) CastleDamaged() {
	g.loseLife()
}

// NoValidTerritory costs a life: the round ended with no castle enclosed.
func (g *GameStateManager) NoValidTerritory() {
	g.loseLife()
}

// Breakdown returns the score split for reports and the end-of-round HUD.
func (g *GameStateManager) Breakdown() ScoreBreakdown {
	return ScoreBreakdown{
		ShipPoints:      g.shipPoints,
		TerritoryPoints: g.territoryPoints,
		BonusPoints:     g.bonusPoints,
		Total:           g.score,
		HighScore:       g.highScore,
	}
}
