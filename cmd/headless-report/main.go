package main

import (
	"flag"
	"fmt"

	"github.com/bmccall17/rampart-remake-sub000/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillTick     int
	firstWallLossTick int
	firstCraterTick   int
	firstLifeLostTick int
	firstBossTick     int

	piecesPlaced   int
	cannonsPlaced  int
	shipsDestroyed int
	castleHits     int

	outcome string
	report  *game.GameReport
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var levels int
	var maxRounds int
	var maxCombatTicks int

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&levels, "levels", 10, "final level that wins a run")
	flag.IntVar(&maxRounds, "max-rounds", 40, "round cap per run")
	flag.IntVar(&maxCombatTicks, "max-combat-ticks", 2700, "combat tick cap per round")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if levels <= 0 {
		fmt.Println("error: -levels must be > 0")
		return
	}
	if maxRounds <= 0 || maxCombatTicks <= 0 {
		fmt.Println("error: -max-rounds and -max-combat-ticks must be > 0")
		return
	}

	fmt.Printf("=== Headless Defense Report ===\n")
	fmt.Printf("runs=%d levels=%d seed_base=%d seed_step=%d max_rounds=%d max_combat_ticks=%d\n\n",
		runs, levels, seedBase, seedStep, maxRounds, maxCombatTicks)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(i+1, seed, levels, maxRounds, maxCombatTicks)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, levels, maxRounds, maxCombatTicks int) runStats {
	tg := game.NewTestGame(
		game.WithSeed(seed),
		game.WithFinalLevel(levels),
	)
	final := tg.PlayGame(maxRounds, maxCombatTicks)

	e := tg.Engine
	log := e.Log()
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstKillTick:     log.FirstTick("combat", "ship_destroyed", ""),
		firstWallLossTick: log.FirstTick("combat", "wall_destroyed", ""),
		firstCraterTick:   log.FirstTick("combat", "crater", ""),
		firstLifeLostTick: firstLifeLost(log),
		firstBossTick:     log.FirstTick("combat", "boss_spawned", ""),
		piecesPlaced:      log.CountCategory("build", "piece_placed"),
		cannonsPlaced:     log.CountCategory("deploy", "cannon_placed"),
		shipsDestroyed:    log.CountCategory("combat", "ship_destroyed"),
		castleHits:        log.CountCategory("combat", "castle_damaged"),
		outcome:           outcomeLabel(final),
		report:            e.Report(),
	}
}

// firstLifeLost finds the earlier of the two ways a life goes: a castle
// taking a hit or a scoring phase with no enclosed territory.
func firstLifeLost(log *game.SimLog) int {
	castle := log.FirstTick("combat", "castle_damaged", "")
	territory := log.FirstTick("scoring", "no_territory", "")
	switch {
	case castle < 0:
		return territory
	case territory < 0:
		return castle
	case castle < territory:
		return castle
	default:
		return territory
	}
}

// outcomeLabel names how a run ended. A run that is still playing when the
// driver gives up counts as a timeout.
func outcomeLabel(final game.GameState) string {
	switch final {
	case game.StateVictory:
		return "victory"
	case game.StateGameOver:
		return "defeat"
	default:
		return "timeout"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s level=%d lives=%d score=%d\n",
		rs.outcome, rs.report.Level, rs.report.Lives, rs.report.Breakdown.Total)
	fmt.Printf("phase_markers: first_kill=%d first_wall_loss=%d first_crater=%d first_life_lost=%d first_boss=%d\n",
		rs.firstKillTick, rs.firstWallLossTick, rs.firstCraterTick, rs.firstLifeLostTick, rs.firstBossTick)
	fmt.Printf("event_totals: pieces_placed=%d cannons_placed=%d ships_destroyed=%d castle_hits=%d\n",
		rs.piecesPlaced, rs.cannonsPlaced, rs.shipsDestroyed, rs.castleHits)
	fmt.Print(rs.report.Format())
	fmt.Println()
}

func printAggregate(all []runStats) {
	victories := 0
	defeats := 0
	timeouts := 0
	totalScore := 0
	totalLevel := 0
	totalRounds := 0
	totalShips := 0
	totalShots := 0
	totalHits := 0

	killTicks := make([]int, 0, len(all))
	lifeLostTicks := make([]int, 0, len(all))
	bossTicks := make([]int, 0, len(all))

	for _, rs := range all {
		switch rs.outcome {
		case "victory":
			victories++
		case "defeat":
			defeats++
		default:
			timeouts++
		}
		totalScore += rs.report.Breakdown.Total
		totalLevel += rs.report.Level
		totalRounds += len(rs.report.Rounds)
		totalShips += rs.shipsDestroyed
		for _, r := range rs.report.Rounds {
			totalShots += r.ShotsFired
			totalHits += r.ShotsHit
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstLifeLostTick >= 0 {
			lifeLostTicks = append(lifeLostTicks, rs.firstLifeLostTick)
		}
		if rs.firstBossTick >= 0 {
			bossTicks = append(bossTicks, rs.firstBossTick)
		}
	}

	fmt.Println("=== Aggregate Defense Inputs ===")
	fmt.Printf("runs=%d victories=%d defeats=%d timeouts=%d\n", len(all), victories, defeats, timeouts)
	fmt.Printf("avg_per_run: score=%.1f level=%.1f rounds=%.1f ships_destroyed=%.1f\n",
		avg(totalScore, len(all)), avg(totalLevel, len(all)), avg(totalRounds, len(all)), avg(totalShips, len(all)))
	fmt.Printf("gunnery: shots=%d hits=%d accuracy=%.1f%%\n", totalShots, totalHits, hitRate(totalHits, totalShots)*100)
	fmt.Printf("phase_marker_avg_ticks: first_kill=%s first_life_lost=%s first_boss=%s\n",
		avgTickString(killTicks), avgTickString(lifeLostTicks), avgTickString(bossTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// hitRate is hits over shots, zero when nothing was fired.
func hitRate(hits, shots int) float64 {
	if shots <= 0 {
		return 0
	}
	return float64(hits) / float64(shots)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
