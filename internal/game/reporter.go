package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// --- Snapshot types ---

// RoundSummary captures one build/deploy/combat/scoring cycle after it
// settles.
type RoundSummary struct {
	Round          int
	Level          int
	Wave           int
	Enclosed       int
	CannonsPlaced  int
	Kills          [shipTypeCount]int
	ShotsFired     int
	ShotsHit       int
	WallsDestroyed int
	Craters        int
	LivesLost      int
	ScoreDelta     int
}

// TotalKills sums the round's kills across ship classes.
func (r RoundSummary) TotalKills() int {
	n := 0
	for _, k := range r.Kills {
		n += k
	}
	return n
}

// Accuracy is the round's hit fraction, 0 when nothing was fired.
func (r RoundSummary) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.ShotsHit) / float64(r.ShotsFired)
}

// GameReport is a full account of one run, suitable for printing or for
// dropping onto the clipboard from the shell.
type GameReport struct {
	SessionID string
	Seed      int64
	State     GameState
	Level     int
	Lives     int
	Ticks     int
	Breakdown ScoreBreakdown
	Rounds    []RoundSummary
}

// Report snapshots the run so far. Each call mints a fresh session ID;
// the rest of the report is a copy and stays stable if the run continues.
func (e *Engine) Report() *GameReport {
	rounds := make([]RoundSummary, len(e.summaries))
	copy(rounds, e.summaries)
	return &GameReport{
		SessionID: uuid.New().String(),
		Seed:      e.rng.Seed(),
		State:     e.state.State(),
		Level:     e.state.Level(),
		Lives:     e.state.Lives(),
		Ticks:     e.tick,
		Breakdown: e.state.Breakdown(),
		Rounds:    rounds,
	}
}

// KillsByClass sums kills per ship class across all rounds.
func (r *GameReport) KillsByClass() [shipTypeCount]int {
	var out [shipTypeCount]int
	for _, s := range r.Rounds {
		for t, k := range s.Kills {
			out[t] += k
		}
	}
	return out
}

// OverallAccuracy is the hit fraction across all rounds.
func (r *GameReport) OverallAccuracy() float64 {
	fired, hit := 0, 0
	for _, s := range r.Rounds {
		fired += s.ShotsFired
		hit += s.ShotsHit
	}
	if fired == 0 {
		return 0
	}
	return float64(hit) / float64(fired)
}

// Format returns a human-readable multi-line account of the run.
func (r *GameReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Defense Report (session %s) ===\n", r.SessionID)
	fmt.Fprintf(&sb, "  %-18s %d\n", "seed", r.Seed)
	fmt.Fprintf(&sb, "  %-18s %s\n", "outcome", r.State)
	fmt.Fprintf(&sb, "  %-18s %d\n", "level reached", r.Level)
	fmt.Fprintf(&sb, "  %-18s %d\n", "lives left", r.Lives)
	fmt.Fprintf(&sb, "  %-18s %d\n", "rounds played", len(r.Rounds))
	fmt.Fprintf(&sb, "  %-18s %d\n", "ticks", r.Ticks)

	sb.WriteString("\n--- Score ---\n")
	fmt.Fprintf(&sb, "  %-18s %d\n", "ships", r.Breakdown.ShipPoints)
	fmt.Fprintf(&sb, "  %-18s %d\n", "territory", r.Breakdown.TerritoryPoints)
	fmt.Fprintf(&sb, "  %-18s %d\n", "level bonuses", r.Breakdown.BonusPoints)
	fmt.Fprintf(&sb, "  %-18s %d\n", "total", r.Breakdown.Total)
	fmt.Fprintf(&sb, "  %-18s %d\n", "high score", r.Breakdown.HighScore)

	sb.WriteString("\n--- Gunnery ---\n")
	kills := r.KillsByClass()
	for t := ShipScout; t < shipTypeCount; t++ {
		fmt.Fprintf(&sb, "  %-18s %d\n", t.String(), kills[t])
	}
	fmt.Fprintf(&sb, "  %-18s %5.1f%%\n", "accuracy", r.OverallAccuracy()*100)

	sb.WriteString("\n--- Rounds ---\n")
	for _, s := range r.Rounds {
		fmt.Fprintf(&sb, "  r%-2d L%-2d w%-2d  enclosed=%d cannons=%d kills=%d shots=%d/%d walls_lost=%d craters=%d lives_lost=%d score=%+d\n",
			s.Round, s.Level, s.Wave, s.Enclosed, s.CannonsPlaced, s.TotalKills(),
			s.ShotsHit, s.ShotsFired, s.WallsDestroyed, s.Craters, s.LivesLost, s.ScoreDelta)
	}
	return sb.String()
}
