package game

import (
	"testing"
	"time"
)

// dumpLog prints the full SimLog so the run's story shows under `go test -v`.
func dumpLog(t *testing.T, tg *TestGame) {
	t.Helper()
	entries := tg.Engine.Log().Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpReport prints the end-of-run defense report.
func dumpReport(t *testing.T, tg *TestGame) {
	t.Helper()
	t.Log(tg.Engine.Report().Format())
}

// --- Scenario: First Defense ---

func TestScenario_FirstDefense(t *testing.T) {
	t.Log("=== TestScenario_FirstDefense ===")
	t.Log("--- Setup: default island, seed 42, one autopilot round ---")

	tg := NewTestGame(WithSeed(42))
	tg.PlayRound(2700)
	dumpLog(t, tg)
	dumpReport(t, tg)

	sl := tg.Engine.Log()
	toDeploy := sl.FirstTick("phase", "change", "build -> deploy")
	toCombat := sl.FirstTick("phase", "change", "deploy -> combat")
	toScoring := sl.FirstTick("phase", "change", "combat -> scoring")
	if toDeploy < 0 || toCombat < 0 || toScoring < 0 {
		t.Fatalf("expected a full phase cycle, got build->deploy=%d deploy->combat=%d combat->scoring=%d",
			toDeploy, toCombat, toScoring)
	}
	if toDeploy > toCombat || toCombat > toScoring {
		t.Fatalf("expected phases in order, got ticks %d, %d, %d", toDeploy, toCombat, toScoring)
	}
	if !sl.HasEntry("combat", "wave_spawned", "") {
		t.Error("expected a wave on the water")
	}

	// The autopilot usually closes a ring on the open island; when the piece
	// draw fights it, the round is still legal, just undefended.
	if sl.HasEntry("deploy", "territories", "0 enclosed") {
		t.Log("NOTE: autopilot failed to close a ring this round")
	} else {
		t.Logf("PASS: ring closed, %d cannon(s) deployed", sl.CountCategory("deploy", "cannon_placed"))
	}
}

// --- Scenario: Open Garrison ---

func TestScenario_OpenGarrisonBleedsOut(t *testing.T) {
	t.Log("=== TestScenario_OpenGarrisonBleedsOut ===")
	t.Log("--- Setup: nobody builds walls; every scoring costs a life ---")

	tg := NewTestGame(WithSeed(42), WithLives(2))
	e := tg.Engine
	for round := 0; round < 2 && !e.GameState().Over(); round++ {
		e.SkipPhase() // build nothing
		e.SkipPhase() // deploy nothing
		tg.Advance(46 * time.Second)
		if e.GameState().Over() {
			break
		}
		e.SkipPhase() // scoring -> next round
	}
	dumpLog(t, tg)
	dumpReport(t, tg)

	if e.GameState().State() != StateGameOver {
		t.Fatalf("expected the garrison to bleed out, got %v", e.GameState().State())
	}
	if got := e.Log().CountCategory("scoring", "no_territory"); got != 2 {
		t.Fatalf("expected 2 open-board penalties, got %d", got)
	}
	if !e.Log().HasEntry("state", "game_over", "") {
		t.Fatalf("expected the collapse in the log")
	}
	if e.Report().Lives != 0 {
		t.Fatalf("expected no lives left, got %d", e.Report().Lives)
	}
}

// --- Scenario: Standing Ring ---

func TestScenario_StandingRingMarchesToVictory(t *testing.T) {
	t.Log("=== TestScenario_StandingRingMarchesToVictory ===")
	t.Log("--- Setup: landlocked drill yard, ring prebuilt, three levels to win ---")

	tg := NewTestGame(WithMap(prewalledDef()), WithFinalLevel(3))
	state := tg.PlayGame(6, 10)
	dumpLog(t, tg)
	dumpReport(t, tg)

	if state != StateVictory {
		t.Fatalf("expected victory, got %v", state)
	}
	if got := tg.Engine.GameState().Score(); got != 1350 {
		t.Fatalf("expected 1350 points over three clean levels, got %d", got)
	}
	if got := tg.Engine.Log().CountCategory("state", "level_complete"); got != 2 {
		t.Fatalf("expected 2 level-complete entries before the win, got %d", got)
	}
	if !tg.Engine.Log().HasEntry("state", "victory", "") {
		t.Fatalf("expected the win in the log")
	}
}

// --- Scenario: Full Campaign ---

func TestScenario_SeededCampaignKeepsBooks(t *testing.T) {
	t.Log("=== TestScenario_SeededCampaignKeepsBooks ===")
	t.Log("--- Setup: full autopilot campaign, seed 99, default island ---")

	tg := NewTestGame(WithSeed(99))
	state := tg.PlayGame(12, 2700)
	dumpReport(t, tg)

	e := tg.Engine
	r := e.Report()
	if r.Ticks != e.Tick() {
		t.Fatalf("expected report ticks %d to match the engine's %d", r.Ticks, e.Tick())
	}
	if len(r.Rounds) == 0 {
		t.Fatalf("expected at least one settled round")
	}
	if r.Breakdown.Total != e.GameState().Score() {
		t.Fatalf("expected report total %d to match the score %d", r.Breakdown.Total, e.GameState().Score())
	}
	if e.GameState().Lives() < 0 || e.GameState().Lives() > 3 {
		t.Fatalf("lives out of range: %d", e.GameState().Lives())
	}

	total := e.GameState().TotalShips()
	if got := e.Log().CountCategory("combat", "ship_destroyed"); got != total {
		t.Fatalf("expected %d kill entries in the log, got %d", total, got)
	}
	kills := 0
	for _, k := range r.KillsByClass() {
		kills += k
	}
	// A run cut down mid-combat leaves its last round unsettled, so the
	// report may trail the live counter but never lead it.
	if kills > total {
		t.Fatalf("settled-round kills %d exceed the run total %d", kills, total)
	}

	switch state {
	case StateVictory:
		t.Logf("PASS: campaign won with %d points", r.Breakdown.Total)
	case StateGameOver:
		t.Logf("NOTE: garrison fell on level %d with %d points", r.Level, r.Breakdown.Total)
	default:
		t.Logf("NOTE: campaign still in progress after the round budget (level %d)", r.Level)
	}
}
