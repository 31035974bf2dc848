// Package witness produces what the household and guests say about each suspect.
package witness

import (
	"strings"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/prose"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
	"example.com/whodunit/internal/timeline"
)

type Category string

const (
	Staff  Category = "STAFF"
	Guest  Category = "GUEST"
	Family Category = "FAMILY"
)

type Reliability string

const (
	High   Reliability = "HIGH"
	Medium Reliability = "MEDIUM"
	Low    Reliability = "LOW"
)

// Label is the display name of a reliability tier.
func (r Reliability) Label() string {
	switch r {
	case High:
		return "Reliable"
	case Medium:
		return "Uncertain"
	default:
		return "Questionable"
	}
}

type Kind string

const (
	Corroborating Kind = "corroborating"
	Contradicting Kind = "contradicting"
	Neutral       Kind = "neutral"
)

// Statement is one witness account about a suspect.
type Statement struct {
	Witness     string
	Category    Category
	Reliability Reliability
	Kind        Kind
	Suspect     string
	Text        string
}

var titles = map[Category][]string{
	Staff:  {"Butler", "Maid", "Cook", "Footman", "Housekeeper"},
	Guest:  {"Guest", "Visitor", "Acquaintance"},
	Family: {"Relative", "Spouse", "Sibling"},
}

var surnames = []string{"Thompson", "Williams", "Davies", "Evans", "Roberts", "Hughes", "Morgan"}

var corroborating = map[string][]string{
	"location": {
		"I saw {suspect} in the {location} around {time}.",
		"{suspect} was definitely in the {location} at {time}. I served them refreshments.",
		"I can confirm {suspect} was present in the {location}. We spoke briefly around {time}.",
		"{suspect} was in the {location} when I passed through at {time}.",
	},
	"activity": {
		"{suspect} was engaged in conversation with other guests.",
		"I noticed {suspect} reading quietly.",
		"{suspect} appeared occupied with correspondence.",
		"{suspect} was examining the artwork on the walls.",
	},
	"demeanor": {
		"{suspect} seemed calm and composed.",
		"{suspect} appeared to be in good spirits.",
		"Nothing unusual about {suspect}'s behavior.",
		"{suspect} was acting perfectly normal.",
	},
}

var contradicting = map[string][]string{
	"location": {
		"I did NOT see {suspect} in the {location} at {time}, though they claim otherwise.",
		"Strange... I was in the {location} around {time} and {suspect} was not there.",
		"{suspect} says they were in the {location}? I checked there at {time} and it was empty.",
		"The {location} was locked from {time} onwards. {suspect} could not have been there.",
	},
	"behaviour": {
		"{suspect} seemed agitated and distracted.",
		"I saw {suspect} pacing nervously.",
		"{suspect} was behaving rather strangely.",
		"{suspect} appeared to be hiding something.",
		"{suspect} seemed unusually tense.",
		"There was something off about {suspect}'s manner.",
		"{suspect} avoided eye contact when we spoke.",
		"{suspect} was sweating despite the cool evening.",
	},
	"sighting": {
		"I saw {suspect} heading toward {location} around the time of the murder.",
		"{suspect} was lurking near {location} that evening.",
		"I noticed {suspect} leaving {location} in a hurry.",
		"{suspect} was spotted near the scene shortly before the incident.",
	},
}

var neutral = []string{
	"I didn't pay much attention to {suspect} that evening.",
	"I may have seen {suspect}, but I can't be certain of the time.",
	"{suspect}? Yes, they were around, but I didn't note where specifically.",
	"I was too busy with my duties to notice {suspect}'s movements.",
}

var (
	corroboratingKinds = []string{"location", "activity", "demeanor"}
	contradictingKinds = []string{"location", "sighting", "behaviour"}
)

type Generator struct {
	cfg *config.GameConfig
	src random.Source
}

func NewGenerator(cfg *config.GameConfig, src random.Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

// Generate returns the statements about every suspect, each list shuffled so position says nothing
// about guilt. Killers mostly draw contradictions, innocents mostly corroboration.
func (g *Generator) Generate(sol solution.Solution) map[string][]Statement {
	out := make(map[string][]Statement, len(g.cfg.Suspects))
	for _, s := range g.cfg.Suspects {
		var stmts []Statement
		if sol.IsKiller(s.Name) {
			for i, n := 0, random.Between(g.src, 1, 2); i < n; i++ {
				stmts = append(stmts, g.contradicting(s, sol.Room))
			}
			if random.Chance(g.src, 0.5) {
				stmts = append(stmts, g.neutral(s.Name))
			}
			if random.Chance(g.src, 0.3) {
				// a relative covering for them
				misleading := g.corroborating(s)
				misleading.Category = Family
				misleading.Reliability = Low
				misleading.Witness = g.name(Family)
				stmts = append(stmts, misleading)
			}
		} else {
			for i, n := 0, random.Between(g.src, 1, 2); i < n; i++ {
				stmts = append(stmts, g.corroborating(s))
			}
			if random.Chance(g.src, 0.4) {
				stmts = append(stmts, g.neutral(s.Name))
			}
			if random.Chance(g.src, 0.2) {
				herring := g.contradicting(s, g.unrelatedRoom(sol.Room))
				herring.Reliability = Low
				stmts = append(stmts, herring)
			}
		}
		out[s.Name] = random.Shuffle(g.src, stmts)
	}
	return out
}

func (g *Generator) corroborating(s config.Suspect) Statement {
	category := Guest
	if random.Chance(g.src, 0.6) {
		category = Staff
	}
	kind := random.Pick(g.src, corroboratingKinds)
	tmpl := random.Pick(g.src, corroborating[kind])

	var calm []timeline.Slot
	for _, slot := range timeline.Slots {
		if !slot.IsCritical {
			calm = append(calm, slot)
		}
	}
	slot := random.Pick(g.src, calm)

	return Statement{
		Witness:     g.name(category),
		Category:    category,
		Reliability: reliability(category),
		Kind:        Corroborating,
		Suspect:     s.Name,
		Text:        fill(tmpl, s.Name, s.Location, startTime(slot)),
	}
}

func (g *Generator) contradicting(s config.Suspect, crimeRoom string) Statement {
	category := Guest
	if random.Chance(g.src, 0.7) {
		category = Staff
	}
	kind := random.Pick(g.src, contradictingKinds)
	tmpl := random.Pick(g.src, contradicting[kind])

	location := s.Location
	if kind == "sighting" {
		location = crimeRoom
	}
	var murder timeline.Slot
	for _, slot := range timeline.Slots {
		if slot.IsCritical {
			murder = slot
		}
	}

	return Statement{
		Witness:     g.name(category),
		Category:    category,
		Reliability: reliability(category),
		Kind:        Contradicting,
		Suspect:     s.Name,
		Text:        fill(tmpl, s.Name, location, startTime(murder)),
	}
}

func (g *Generator) neutral(suspect string) Statement {
	category := random.Pick(g.src, []Category{Staff, Guest, Family})
	return Statement{
		Witness:     g.name(category),
		Category:    category,
		Reliability: Low,
		Kind:        Neutral,
		Suspect:     suspect,
		Text:        fill(random.Pick(g.src, neutral), suspect, "", ""),
	}
}

func (g *Generator) name(c Category) string {
	return random.Pick(g.src, titles[c]) + " " + random.Pick(g.src, surnames)
}

// unrelatedRoom picks any room other than the crime scene.
func (g *Generator) unrelatedRoom(crimeRoom string) string {
	var rooms []string
	for _, r := range g.cfg.Rooms {
		if r != crimeRoom {
			rooms = append(rooms, r)
		}
	}
	return random.Pick(g.src, rooms)
}

func reliability(c Category) Reliability {
	switch c {
	case Staff:
		return High
	case Guest:
		return Medium
	default:
		return Low
	}
}

func startTime(slot timeline.Slot) string {
	start, _, _ := strings.Cut(slot.Label, " - ")
	return start
}

func fill(tmpl, suspect, location, time string) string {
	return prose.Fill(tmpl, map[string]string{"suspect": suspect, "location": location, "time": time})
}

// Summary counts statements by kind.
type Summary struct {
	Corroborating, Contradicting, Neutral int
	HighReliability                       int
	Total                                 int
}

func Summarize(stmts []Statement) Summary {
	s := Summary{Total: len(stmts)}
	for _, st := range stmts {
		switch st.Kind {
		case Corroborating:
			s.Corroborating++
		case Contradicting:
			s.Contradicting++
		case Neutral:
			s.Neutral++
		}
		if st.Reliability == High {
			s.HighReliability++
		}
	}
	return s
}
