// Package timeline builds each suspect's account of the evening, slot by slot.
package timeline

import (
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
)

// MurderTime is the fixed time of death.
const MurderTime = "9:15pm"

// AlibiStrength grades how well an alibi holds up.
type AlibiStrength string

const (
	Confirmed AlibiStrength = "CONFIRMED"
	Partial   AlibiStrength = "PARTIAL"
	Weak      AlibiStrength = "WEAK"
	None      AlibiStrength = "NONE"
)

// Label is the display name of a strength.
func (s AlibiStrength) Label() string {
	switch s {
	case Confirmed:
		return "Confirmed"
	case Partial:
		return "Partial"
	case Weak:
		return "Weak"
	default:
		return "No Alibi"
	}
}

// IsGap reports whether the strength fails to account for the suspect.
func (s AlibiStrength) IsGap() bool {
	return s == Weak || s == None
}

// Slot is one fixed window of the evening.
type Slot struct {
	ID         string
	Label      string
	IsCritical bool
	activities []string
}

// Slots are the five windows of the evening. The murder window is the critical one.
var Slots = []Slot{
	{ID: "early", Label: "7:00pm - 8:00pm", activities: []string{"socializing", "hobby"}},
	{ID: "dinner", Label: "8:00pm - 9:00pm", activities: []string{"dining"}},
	{ID: "murder", Label: "9:00pm - 9:30pm", IsCritical: true, activities: []string{"private", "working", "hobby"}},
	{ID: "late", Label: "9:30pm - 10:30pm", activities: []string{"socializing", "private", "hobby"}},
	{ID: "night", Label: "10:30pm - 11:30pm", activities: []string{"private", "working"}},
}

var activityTemplates = map[string][]string{
	"dining": {
		"Was at dinner in the Dining Room",
		"Seated at the main table for dinner",
		"Attended the dinner service",
	},
	"socializing": {
		"Conversing in the Grand Hall",
		"Engaged in conversation with guests",
		"Mingling at the social gathering",
	},
	"private": {
		"Retired to private quarters",
		"Resting in the bedroom",
		"Taking a personal break",
	},
	"working": {
		"Reviewing documents in the Study",
		"Attending to business matters",
		"Working on correspondence",
	},
	"hobby": {
		"Playing billiards in the Billiard Room",
		"Reading in the Library",
		"Tending plants in the Conservatory",
	},
}

var tells = []string{
	"Seemed nervous when discussing this time.",
	"Provided vague details.",
	"Story changed slightly on repetition.",
	"Could not name specific witnesses.",
}

const (
	witnessStaff    = "household staff"
	witnessGuest    = "another guest"
	witnessMultiple = "multiple witnesses"
	witnessNone     = "no one"
)

// Entry is a suspect's account of one slot. Tell is empty except for a killer's critical slot.
type Entry struct {
	SlotID     string
	TimeLabel  string
	Activity   string
	Strength   AlibiStrength
	Witness    string
	IsCritical bool
	Tell       string
}

// Timeline is one suspect's evening, in slot order.
type Timeline struct {
	Suspect  string
	Location string
	Entries  []Entry
}

// Critical returns the entry for the murder window.
func (t Timeline) Critical() (Entry, bool) {
	for _, e := range t.Entries {
		if e.IsCritical {
			return e, true
		}
	}
	return Entry{}, false
}

type strengthOdds struct {
	strength AlibiStrength
	weight   float64
}

var (
	killerCriticalOdds = []strengthOdds{{None, 0.6}, {Weak, 0.4}}
	killerOdds         = []strengthOdds{{Confirmed, 0.2}, {Partial, 0.3}, {Weak, 0.3}, {None, 0.2}}
	innocentOdds       = []strengthOdds{{Confirmed, 0.4}, {Partial, 0.3}, {Weak, 0.2}, {None, 0.1}}
)

type Generator struct {
	cfg *config.GameConfig
	src random.Source
}

func NewGenerator(cfg *config.GameConfig, src random.Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

// Generate builds a timeline for every suspect in the cast.
func (g *Generator) Generate(sol solution.Solution) map[string]Timeline {
	out := make(map[string]Timeline, len(g.cfg.Suspects))
	for _, s := range g.cfg.Suspects {
		killer := sol.IsKiller(s.Name)
		tl := Timeline{Suspect: s.Name, Location: s.Location}
		for _, slot := range Slots {
			tl.Entries = append(tl.Entries, g.entry(slot, killer))
		}
		out[s.Name] = tl
	}
	return out
}

func (g *Generator) entry(slot Slot, killer bool) Entry {
	strength := g.strength(killer, slot.IsCritical)
	kind := random.Pick(g.src, slot.activities)
	e := Entry{
		SlotID:     slot.ID,
		TimeLabel:  slot.Label,
		Activity:   random.Pick(g.src, activityTemplates[kind]),
		Strength:   strength,
		Witness:    g.witness(strength),
		IsCritical: slot.IsCritical,
	}
	if killer && slot.IsCritical {
		e.Tell = random.Pick(g.src, tells)
	}
	return e
}

func (g *Generator) strength(killer, critical bool) AlibiStrength {
	odds := innocentOdds
	switch {
	case killer && critical:
		odds = killerCriticalOdds
	case killer:
		odds = killerOdds
	}
	roll := g.src.Float64()
	for _, o := range odds {
		if roll < o.weight {
			return o.strength
		}
		roll -= o.weight
	}
	return odds[len(odds)-1].strength
}

func (g *Generator) witness(s AlibiStrength) string {
	switch s {
	case Confirmed:
		return random.Pick(g.src, []string{witnessMultiple, witnessGuest})
	case Partial:
		return witnessStaff
	default:
		return witnessNone
	}
}

// HasAlibiGap reports whether the suspect is unaccounted for during the murder window.
func HasAlibiGap(t Timeline) bool {
	e, ok := t.Critical()
	return ok && e.Strength.IsGap()
}

// Summary counts a timeline's entries by strength.
type Summary struct {
	Confirmed, Partial, Weak, None int
	HasCriticalGap                 bool
}

func Summarize(t Timeline) Summary {
	var s Summary
	for _, e := range t.Entries {
		switch e.Strength {
		case Confirmed:
			s.Confirmed++
		case Partial:
			s.Partial++
		case Weak:
			s.Weak++
		case None:
			s.None++
		}
		if e.IsCritical && e.Strength.IsGap() {
			s.HasCriticalGap = true
		}
	}
	return s
}
