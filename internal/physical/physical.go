// Package physical derives trait-based clues (height, build, hair, shoe size, handedness) from the killers.
package physical

import (
	"strings"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
)

// Clue is one piece of trait evidence. Category and Value let a deduction board match it against suspects.
type Clue struct {
	Category config.TraitCategory
	Value    string
	Text     string
}

var templates = map[config.TraitCategory][]string{
	config.TraitHeight: {
		"The killer must be {value} based on the blood spatter pattern.",
		"Witness glimpsed a {value} figure fleeing the scene.",
		"The angle of the wound suggests a {value} attacker.",
	},
	config.TraitBuild: {
		"Heavy footprints in the carpet suggest a {value} build.",
		"The strength required indicates a {value} person.",
		"A button torn from clothing suggests {value} build.",
	},
	config.TraitHairColor: {
		"A {value} hair strand found on the victim's clothing.",
		"Witness saw someone with {value} hair near the scene.",
		"A {value} hair caught on the window latch.",
	},
	config.TraitShoeSize: {
		"A muddy footprint outside the window - size {value}.",
		"Distinct shoe impression in the carpet - size {value} boot.",
		"Partial print near the body - approximately size {value}.",
	},
	config.TraitHandedness: {
		"The wound angle suggests a {value}-handed attacker.",
		"Grip marks indicate the killer is {value}-handed.",
		"The weapon was wielded by someone {value}-handed.",
	},
}

type Generator struct {
	cfg *config.GameConfig
	src random.Source
}

func NewGenerator(cfg *config.GameConfig, src random.Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

// Generate returns two or three trait clues that fit the killers. In a conspiracy, clues are drawn
// only from traits both killers share when at least two are shared, so they implicate either one.
func (g *Generator) Generate(sol solution.Solution) []Clue {
	first, ok := g.cfg.Suspect(sol.Primary())
	if !ok {
		return nil
	}

	eligible := config.TraitCategories
	if partner, ok := sol.Accomplice(); ok {
		second, _ := g.cfg.Suspect(partner)
		if shared := SharedTraits(first.Traits, second.Traits); len(shared) >= 2 {
			eligible = shared
		}
	}

	n := random.Between(g.src, 2, 3)
	if n > len(eligible) {
		n = len(eligible)
	}
	chosen := random.Shuffle(g.src, eligible)[:n]

	clues := make([]Clue, 0, n)
	for _, cat := range chosen {
		value := first.Traits.Value(cat)
		tmpl := random.Pick(g.src, templates[cat])
		clues = append(clues, Clue{
			Category: cat,
			Value:    value,
			Text:     strings.ReplaceAll(tmpl, "{value}", value),
		})
	}
	return clues
}

// SharedTraits lists the categories where a and b have the same value.
func SharedTraits(a, b config.PhysicalTraits) []config.TraitCategory {
	var out []config.TraitCategory
	for _, cat := range config.TraitCategories {
		if a.Value(cat) == b.Value(cat) {
			out = append(out, cat)
		}
	}
	return out
}

// Matches reports whether the suspect's traits agree with every clue.
func Matches(traits config.PhysicalTraits, clues []Clue) bool {
	for _, c := range clues {
		if traits.Value(c.Category) != c.Value {
			return false
		}
	}
	return true
}
