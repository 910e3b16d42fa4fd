package game

import (
	"fmt"
	"time"
)

// GamePhase is one state of the round cycle.
type GamePhase uint8

const (
	PhaseBuild GamePhase = iota
	PhaseDeploy
	PhaseCombat
	PhaseScoring
	phaseCount // sentinel
)

// String returns the lowercase phase name used in logs and the HUD.
func (p GamePhase) String() string {
	switch p {
	case PhaseBuild:
		return "build"
	case PhaseDeploy:
		return "deploy"
	case PhaseCombat:
		return "combat"
	case PhaseScoring:
		return "scoring"
	default:
		return "unknown"
	}
}

// Next returns the successor in the fixed cycle build → deploy → combat →
// scoring → build.
func (p GamePhase) Next() GamePhase {
	return (p + 1) % phaseCount
}

// PhaseConfig is the per-phase timing policy. Duration 0 means the phase
// never auto-advances.
type PhaseConfig struct {
	Duration time.Duration
	CanSkip  bool
}

// PhaseChange describes one transition, delivered to the registered callback.
type PhaseChange struct {
	From GamePhase
	To   GamePhase
	At   time.Time
}

// PhaseManager is the timed state machine driving the round cycle. All time
// is injected: callers pass the current time into Start/Update/Resume/Skip,
// which keeps the manager fully deterministic under a synthetic clock.
type PhaseManager struct {
	configs   [phaseCount]PhaseConfig
	current   GamePhase
	startedAt time.Time
	started   bool
	paused    bool
	pausedAt  time.Time
	onChange  func(PhaseChange)
}

// NewPhaseManager creates a manager with the given per-phase configs.
// Phases missing from the map get a zero config (unbounded, not skippable).
func NewPhaseManager(configs map[GamePhase]PhaseConfig) *PhaseManager {
	pm := &PhaseManager{current: PhaseBuild}
	for p, c := range configs {
		if p < phaseCount {
			pm.configs[p] = c
		}
	}
	return pm
}

// SetChangeCallback registers the single transition observer. Registering
// again replaces the previous callback.
func (pm *PhaseManager) SetChangeCallback(fn func(PhaseChange)) {
	pm.onChange = fn
}

// Current returns the active phase.
func (pm *PhaseManager) Current() GamePhase {
	return pm.current
}

// Config returns the timing policy for a phase.
func (pm *PhaseManager) Config(p GamePhase) PhaseConfig {
	if p >= phaseCount {
		return PhaseConfig{}
	}
	return pm.configs[p]
}

// Start enters the build phase and records its start time.
func (pm *PhaseManager) Start(now time.Time) {
	pm.current = PhaseBuild
	pm.startedAt = now
	pm.started = true
	pm.paused = false
}

// Started reports whether Start has been called.
func (pm *PhaseManager) Started() bool {
	return pm.started
}

// Update auto-advances to the next phase when the current phase has a finite
// duration and it has elapsed. Paused or unstarted managers never advance.
func (pm *PhaseManager) Update(now time.Time) {
	if !pm.started || pm.paused {
		return
	}
	d := pm.configs[pm.current].Duration
	if d > 0 && now.Sub(pm.startedAt) >= d {
		pm.ChangePhase(pm.current.Next(), now)
	}
}

// ChangePhase moves to the given phase and fires the change callback.
// A same-phase request is a no-op and returns false; callers log it.
func (pm *PhaseManager) ChangePhase(to GamePhase, now time.Time) bool {
	if to == pm.current || to >= phaseCount {
		return false
	}
	change := PhaseChange{From: pm.current, To: to, At: now}
	pm.current = to
	pm.startedAt = now
	if pm.onChange != nil {
		pm.onChange(change)
	}
	return true
}

// Skip advances to the next phase if the current phase allows skipping.
func (pm *PhaseManager) Skip(now time.Time) bool {
	if !pm.started || pm.paused {
		return false
	}
	if !pm.configs[pm.current].CanSkip {
		return false
	}
	return pm.ChangePhase(pm.current.Next(), now)
}

// Pause freezes the phase timer. Pausing twice is a no-op.
func (pm *PhaseManager) Pause(now time.Time) {
	if !pm.started || pm.paused {
		return
	}
	pm.paused = true
	pm.pausedAt = now
}

// Resume unfreezes the timer, shifting the phase start so the elapsed time
// observed before the pause is preserved.
func (pm *PhaseManager) Resume(now time.Time) {
	if !pm.started || !pm.paused {
		return
	}
	pm.startedAt = pm.startedAt.Add(now.Sub(pm.pausedAt))
	pm.paused = false
}

// Paused reports whether the timer is frozen.
func (pm *PhaseManager) Paused() bool {
	return pm.paused
}

// Elapsed returns time spent in the current phase. While paused it keeps
// returning the value observed at pause time.
func (pm *PhaseManager) Elapsed(now time.Time) time.Duration {
	if !pm.started {
		return 0
	}
	if pm.paused {
		return pm.pausedAt.Sub(pm.startedAt)
	}
	return now.Sub(pm.startedAt)
}

// Remaining returns max(0, duration - elapsed). Unbounded phases return 0;
// use FormatRemaining for display.
func (pm *PhaseManager) Remaining(now time.Time) time.Duration {
	d := pm.configs[pm.current].Duration
	if d <= 0 {
		return 0
	}
	r := d - pm.Elapsed(now)
	if r < 0 {
		return 0
	}
	return r
}

// Progress returns elapsed/duration clamped to [0,1]. Unbounded phases are
// always at 0.
func (pm *PhaseManager) Progress(now time.Time) float64 {
	d := pm.configs[pm.current].Duration
	if d <= 0 {
		return 0
	}
	p := float64(pm.Elapsed(now)) / float64(d)
	return clamp01(p)
}

// FormatRemaining renders the countdown as "M:SS", or "∞" for an unbounded
// phase. The clock truncates, reaching "0:00" exactly at expiry.
func (pm *PhaseManager) FormatRemaining(now time.Time) string {
	if pm.configs[pm.current].Duration <= 0 {
		return "∞"
	}
	secs := int(pm.Remaining(now).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
