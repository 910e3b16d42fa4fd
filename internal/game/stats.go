package game

// --- Ship types ---

// ShipType identifies an attacking ship class.
type ShipType uint8

const (
	ShipScout     ShipType = iota // Fast, fragile probe
	ShipFrigate                   // Workhorse raider
	ShipDestroyer                 // Slow, castle-hunting gun platform
	ShipBoss                      // Every-5th-level flagship
	shipTypeCount                 // sentinel
)

// String returns the lowercase class name used in logs and reports.
func (s ShipType) String() string {
	switch s {
	case ShipScout:
		return "scout"
	case ShipFrigate:
		return "frigate"
	case ShipDestroyer:
		return "destroyer"
	case ShipBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// ShipProfile holds the per-class combat numbers.
type ShipProfile struct {
	Health      int
	Speed       float64 // tiles per second at level 1
	FireRate    float64 // fire probability per simulation tick
	Damage      int     // projectile damage on impact
	Points      int     // base kill award
	MaxInFlight int     // in-flight projectile cap
}

var shipProfiles = map[ShipType]ShipProfile{
	ShipScout:     {Health: 50, Speed: 2.0, FireRate: 0.008, Damage: 25, Points: 75, MaxInFlight: 1},
	ShipFrigate:   {Health: 100, Speed: 1.5, FireRate: 0.012, Damage: 35, Points: 100, MaxInFlight: 1},
	ShipDestroyer: {Health: 150, Speed: 1.0, FireRate: 0.015, Damage: 50, Points: 150, MaxInFlight: 1},
	ShipBoss:      {Health: 500, Speed: 0.75, FireRate: 0.020, Damage: 75, Points: 500, MaxInFlight: 3},
}

// Profile returns the combat numbers for this ship class.
func (s ShipType) Profile() ShipProfile {
	return shipProfiles[s]
}

// --- Wave tiers ---

// waveTier buckets levels into early/mid/late difficulty bands. Weights are
// the draw odds for scout/frigate/destroyer in tier order.
type waveTier struct {
	Name     string
	MaxLevel int // inclusive upper bound; 0 = open-ended
	MinShips int
	MaxShips int
	Weights  [3]int // scout, frigate, destroyer
}

var waveTiers = []waveTier{
	{Name: "early", MaxLevel: 2, MinShips: 2, MaxShips: 4, Weights: [3]int{70, 25, 5}},
	{Name: "mid", MaxLevel: 4, MinShips: 3, MaxShips: 6, Weights: [3]int{45, 35, 20}},
	{Name: "late", MaxLevel: 0, MinShips: 4, MaxShips: 8, Weights: [3]int{25, 40, 35}},
}

// tierForLevel returns the difficulty band for a level.
func tierForLevel(level int) waveTier {
	for _, t := range waveTiers {
		if t.MaxLevel > 0 && level <= t.MaxLevel {
			return t
		}
	}
	return waveTiers[len(waveTiers)-1]
}

// waveShipCount computes the regular ship count for a level:
// min(tierMax, tierMin + (level-1)/2).
func waveShipCount(level int) int {
	t := tierForLevel(level)
	n := t.MinShips + (level-1)/2
	if n > t.MaxShips {
		n = t.MaxShips
	}
	return n
}

// isBossLevel reports whether the level spawns a boss alongside the wave.
func isBossLevel(level int) bool {
	return level > 0 && level%5 == 0
}

// shipSpeedForLevel scales a class's base speed by +5% per level above 1.
func shipSpeedForLevel(t ShipType, level int) float64 {
	mul := 1.0 + shipSpeedLevelBonus*float64(level-1)
	return t.Profile().Speed * mul
}

// --- Combat stats ---

// CombatStats is the per-round combat tally, reset at every combat start.
type CombatStats struct {
	Kills          [shipTypeCount]int
	ShotsFired     int // player shots
	ShotsHit       int // player shots that struck a ship
	WallsDestroyed int
	CratersCreated int
	CannonsLost    int
	CastleHits     int
}

// TotalKills sums kills across all ship classes.
func (cs *CombatStats) TotalKills() int {
	n := 0
	for _, k := range cs.Kills {
		n += k
	}
	return n
}

// Accuracy returns hits/fired, or 0 when nothing was fired.
func (cs *CombatStats) Accuracy() float64 {
	if cs.ShotsFired == 0 {
		return 0
	}
	return float64(cs.ShotsHit) / float64(cs.ShotsFired)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
