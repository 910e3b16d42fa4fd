package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a simulation run.
type SimLogEntry struct {
	Tick     int
	Round    int
	Phase    string  // build, deploy, combat, scoring
	Category string  // phase, build, territory, deploy, combat, state
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042 r1 combat ] combat    ship_destroyed     frigate #3 (+100)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d r%d %-7s] %-9s %-18s %s",
		e.Tick, e.Round, e.Phase, e.Category, e.Key, e.Value)
}

// SimLog collects structured events across a whole game run. It is unbounded
// and machine-readable: scenario tests and the headless report driver query
// it instead of scraping stdout.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick movement and
// projectile entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick, round int, phase, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Round:    round,
		Phase:    phase,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick, round int, phase, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, round, phase, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterRound returns entries recorded during the given round.
func (sl *SimLog) FilterRound(round int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Round == round {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick returns the tick of the earliest entry matching category, key and
// value substring, or -1 if none matches.
func (sl *SimLog) FirstTick(category, key, valueSubstr string) int {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return e.Tick
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	return sl.FirstTick(category, key, valueSubstr) >= 0
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
