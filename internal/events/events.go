// Package events injects random happenings into an investigation and describes their effects.
package events

import (
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/prose"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
)

// State is the slice of the investigation an effect reads.
type State struct {
	Turn               int
	InterrogationsLeft int
	Clues              []string
}

// Updates are the deltas an effect asks the turn engine to apply. Nil fields mean no change.
type Updates struct {
	Turn               *int
	InterrogationsLeft *int
	Clues              []string
	BlockInterrogation bool
}

// Outcome is the described result of an event. Applying it is the caller's job.
type Outcome struct {
	Logs    []string
	Clue    string
	Updates Updates
}

// Manager decides which event, if any, fires on a turn.
type Manager struct {
	cfg      *config.GameConfig
	src      random.Source
	maxTurns int
}

// NewManager creates a manager for a game of maxTurns turns. The turn counter counts down.
func NewManager(cfg *config.GameConfig, src random.Source, maxTurns int) *Manager {
	return &Manager{cfg: cfg, src: src, maxTurns: maxTurns}
}

// CheckForEvent returns at most one event not yet triggered. Nothing fires on the opening or closing turns.
func (m *Manager) CheckForEvent(turn int, triggered []string) (Event, bool) {
	if turn <= 1 || turn >= m.maxTurns-1 {
		return Event{}, false
	}

	done := make(map[string]struct{}, len(triggered))
	for _, id := range triggered {
		done[id] = struct{}{}
	}
	var candidates []Event
	for _, ev := range Catalog {
		if _, ok := done[ev.ID]; !ok {
			candidates = append(candidates, ev)
		}
	}

	for _, ev := range random.Shuffle(m.src, candidates) {
		if random.Chance(m.src, ev.Probability) {
			return ev, true
		}
	}
	return Event{}, false
}

// ApplyEffect describes what ev does to state. It never modifies state.
func (m *Manager) ApplyEffect(ev Event, state State, sol solution.Solution) Outcome {
	out := Outcome{Logs: []string{"EVENT: " + ev.Title}}

	switch ev.Effect {
	case BonusClue, Confusion:
		if clue := m.RenderClue(ev, sol); clue != "" {
			out.Clue = clue
			out.Updates.Clues = append(append([]string(nil), state.Clues...), clue)
		}
	case LoseTurn:
		turn := state.Turn - 1
		if turn < 1 {
			turn = 1
		}
		out.Updates.Turn = &turn
		out.Logs = append(out.Logs, "You lost a turn!")
	case ExtraInterrogation:
		left := state.InterrogationsLeft + 1
		out.Updates.InterrogationsLeft = &left
		out.Logs = append(out.Logs, "You gained an extra interrogation!")
	case BlockInterrogation:
		out.Updates.BlockInterrogation = true
		out.Logs = append(out.Logs, "Some suspects may be less cooperative this turn.")
	case Atmosphere:
		out.Logs = append(out.Logs, ev.Description)
	}
	return out
}

// RenderClue fills an event's clue template. A {suspect} names a killer 60% of the time and a
// {room} names the crime scene half the time. Events without a template render as "".
func (m *Manager) RenderClue(ev Event, sol solution.Solution) string {
	if ev.ClueTemplate == "" {
		return ""
	}

	suspect := random.Pick(m.src, m.cfg.Innocents(sol.Killers))
	if random.Chance(m.src, 0.6) {
		suspect = random.Pick(m.src, sol.Killers)
	}
	pair := random.Shuffle(m.src, m.cfg.SuspectNames())
	room := sol.Room
	if !random.Chance(m.src, 0.5) {
		var others []string
		for _, r := range m.cfg.Rooms {
			if r != sol.Room {
				others = append(others, r)
			}
		}
		room = random.Pick(m.src, others)
	}

	vars := map[string]string{
		"suspect": suspect,
		"room":    room,
		"amount":  prose.Pounds(random.Pick(m.src, hiddenSums)),
		"reason":  random.Pick(m.src, conflictReasons),
	}
	if len(pair) >= 2 {
		vars["suspect1"], vars["suspect2"] = pair[0], pair[1]
	}
	return prose.Fill(ev.ClueTemplate, vars)
}

// Stats counts triggered events by type.
type Stats struct {
	Total, Bonus, Obstacle, Neutral, Dramatic int
}

func StatsFor(triggered []string) Stats {
	var s Stats
	for _, ev := range Catalog {
		fired := false
		for _, id := range triggered {
			if id == ev.ID {
				fired = true
				break
			}
		}
		if !fired {
			continue
		}
		s.Total++
		switch ev.Type {
		case Bonus:
			s.Bonus++
		case Obstacle:
			s.Obstacle++
		case Neutral:
			s.Neutral++
		case Dramatic:
			s.Dramatic++
		}
	}
	return s
}
