// Package solution picks the hidden answer to a case: who did it, with what, and where.
package solution

import (
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/relationships"

	"github.com/sirupsen/logrus"
)

// Solution is the hidden answer. It never changes once a case is built.
type Solution struct {
	Killers      []string
	Weapon       string
	Room         string
	IsConspiracy bool
}

// IsKiller reports whether suspect is one of the killers.
func (s Solution) IsKiller(suspect string) bool {
	for _, k := range s.Killers {
		if k == suspect {
			return true
		}
	}
	return false
}

// Primary returns the first killer.
func (s Solution) Primary() string {
	if len(s.Killers) == 0 {
		return ""
	}
	return s.Killers[0]
}

// Accomplice returns the second killer of a conspiracy.
func (s Solution) Accomplice() (string, bool) {
	if !s.IsConspiracy || len(s.Killers) < 2 {
		return "", false
	}
	return s.Killers[1], true
}

// Matches reports whether an accusation names exactly the killers, the weapon and the room.
func (s Solution) Matches(killers []string, weapon, room string) bool {
	return weapon == s.Weapon && room == s.Room && random.SameElements(killers, s.Killers)
}

type Generator struct {
	cfg *config.GameConfig
	log logrus.FieldLogger
	src random.Source
}

func NewGenerator(cfg *config.GameConfig, log logrus.FieldLogger, src random.Source) *Generator {
	return &Generator{cfg: cfg, log: log, src: src}
}

// Generate draws, in order: the conspiracy coin, the first killer, the partner if the coin
// succeeded, the weapon and the room. A successful coin with no eligible partner degrades to a
// solo case.
func (g *Generator) Generate(network *relationships.Network, conspiracyChance float64) Solution {
	twoKillers := random.Chance(g.src, conspiracyChance)

	var eligible []string
	for _, s := range g.cfg.Suspects {
		if s.HasAdequateMotive() {
			eligible = append(eligible, s.Name)
		}
	}
	first := random.Pick(g.src, eligible)
	sol := Solution{Killers: []string{first}}

	if twoKillers {
		if partner, ok := g.findPartner(first, network); ok {
			sol.Killers = append(sol.Killers, partner)
			sol.IsConspiracy = true
		} else {
			g.log.WithField("killer", first).Debug("No conspiracy partner available, case is solo")
		}
	}

	sol.Weapon = random.Pick(g.src, g.cfg.WeaponNames())
	sol.Room = random.Pick(g.src, g.cfg.Rooms)
	return sol
}

// findPartner prefers a STRONG compatible relationship over any compatible one.
func (g *Generator) findPartner(killer string, network *relationships.Network) (string, bool) {
	var compatible, strong []string
	for _, other := range g.cfg.SuspectNames() {
		if other == killer {
			continue
		}
		profile, _ := g.cfg.Suspect(other)
		if !profile.HasAdequateMotive() {
			continue
		}
		rt, ok := network.Relationship(killer, other)
		if !ok || !rt.ConspiracyCompatible {
			continue
		}
		compatible = append(compatible, other)
		if rt.Strength == config.StrengthStrong {
			strong = append(strong, other)
		}
	}
	switch {
	case len(strong) > 0:
		return random.Pick(g.src, strong), true
	case len(compatible) > 0:
		return random.Pick(g.src, compatible), true
	default:
		return "", false
	}
}
