// Package chains tracks multi-stage evidence chains that unlock a revelation once every stage is matched.
package chains

import (
	"strings"

	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
)

type Kind string

const (
	ConspiracyLink Kind = "conspiracy_link"
	FinancialTrail Kind = "financial_trail"
	WeaponMatch    Kind = "weapon_match"
	AlibiBreakdown Kind = "alibi_breakdown"
	MotiveReveal   Kind = "motive_reveal"
)

type Stage struct {
	ID          string
	Trigger     Trigger
	Description string
}

// Definition is the template a chain is seeded from.
type Definition struct {
	Name        string
	Description string
	Stages      []Stage
	Revelation  string
}

var Definitions = map[Kind]Definition{
	ConspiracyLink: {
		Name:        "Conspiracy Uncovered",
		Description: "Connect evidence linking multiple suspects",
		Stages: []Stage{
			{"witness_sighting", Witness, "A witness saw two suspects together"},
			{"letter_found", Document, "Correspondence between suspects"},
			{"shared_motive", Motive, "Both suspects benefit from the crime"},
		},
		Revelation: "CONSPIRACY CONFIRMED: These suspects worked together!",
	},
	FinancialTrail: {
		Name:        "Follow the Money",
		Description: "Trace financial connections to the crime",
		Stages: []Stage{
			{"debt_notice", Financial, "Evidence of significant debt"},
			{"payment_record", Document, "Suspicious payment records"},
			{"beneficiary", Motive, "Clear financial benefit from the crime"},
		},
		Revelation: "FINANCIAL MOTIVE CONFIRMED: Follow the money!",
	},
	WeaponMatch: {
		Name:        "Weapon Analysis",
		Description: "Match physical evidence to the murder weapon",
		Stages: []Stage{
			{"wound_analysis", CrimeScene, "Crime scene wound analysis"},
			{"forensic_match", Forensic, "Forensic evidence matches a weapon"},
			{"ownership", Testimony, "Suspect had access to the weapon"},
		},
		Revelation: "WEAPON CONFIRMED: The murder weapon has been identified!",
	},
	AlibiBreakdown: {
		Name:        "Alibi Under Scrutiny",
		Description: "Expose holes in a suspect's alibi",
		Stages: []Stage{
			{"initial_alibi", Testimony, "Suspect provides alibi"},
			{"contradiction", Witness, "Witness contradicts the alibi"},
			{"timeline_gap", Timeline, "Gap in timeline during murder"},
		},
		Revelation: "ALIBI BROKEN: The suspect cannot account for their whereabouts!",
	},
	MotiveReveal: {
		Name:        "Hidden Motive",
		Description: "Uncover the true reason behind the murder",
		Stages: []Stage{
			{"surface_motive", Interrogation, "Known disagreement with victim"},
			{"deeper_secret", Document, "Hidden documents reveal more"},
			{"desperation", Financial, "Desperate circumstances confirmed"},
		},
		Revelation: "MOTIVE REVEALED: The true reason for the murder is clear!",
	},
}

// Chain is one seeded chain and its progress. Progress only ever moves forward.
type Chain struct {
	ID                 string
	Kind               Kind
	Name               string
	Description        string
	Stages             []Stage
	Revelation         string
	Suspects           []string
	Weapon             string
	Progress           int
	Completed          bool
	UnlockedRevelation string
}

// CurrentStage is the next stage to satisfy. Completed or malformed chains have none.
func (c Chain) CurrentStage() (Stage, bool) {
	if c.Completed || c.Progress < 0 || c.Progress >= len(c.Stages) {
		return Stage{}, false
	}
	return c.Stages[c.Progress], true
}

// Revelation is emitted once, when a chain completes.
type Revelation struct {
	ChainName string
	Text      string
	Suspects  []string
}

// Implicated joins the suspects the way the clue log shows them.
func (r Revelation) Implicated() string {
	return strings.Join(r.Suspects, " & ")
}

// Manager seeds chains for a case and advances them as clues turn up.
type Manager struct {
	src        random.Source
	classifier *Classifier
}

func NewManager(src random.Source) *Manager {
	return &Manager{src: src, classifier: NewClassifier(DefaultRules)}
}

// WithClassifier replaces the keyword table.
func (m *Manager) WithClassifier(c *Classifier) *Manager {
	m.classifier = c
	return m
}

// Seed creates the chains for a case: weapon match, an alibi breakdown per killer, a conspiracy link
// for conspiracies, motive reveal, and a financial trail half the time.
func (m *Manager) Seed(sol solution.Solution) []Chain {
	var out []Chain
	out = append(out, m.newChain(WeaponMatch, []string{sol.Primary()}, sol.Weapon))
	for _, k := range sol.Killers {
		out = append(out, m.newChain(AlibiBreakdown, []string{k}, ""))
	}
	if sol.IsConspiracy {
		out = append(out, m.newChain(ConspiracyLink, sol.Killers, ""))
	}
	out = append(out, m.newChain(MotiveReveal, []string{sol.Primary()}, ""))
	if random.Chance(m.src, 0.5) {
		out = append(out, m.newChain(FinancialTrail, []string{sol.Primary()}, ""))
	}
	return out
}

func (m *Manager) newChain(kind Kind, suspects []string, weapon string) Chain {
	def := Definitions[kind]
	return Chain{
		ID:          random.NewID(m.src),
		Kind:        kind,
		Name:        def.Name,
		Description: def.Description,
		Stages:      def.Stages,
		Revelation:  def.Revelation,
		Suspects:    append([]string(nil), suspects...),
		Weapon:      weapon,
	}
}

// CheckProgress classifies clue and advances by one stage every open chain whose current stage it
// matches. The input slice is never modified; the returned slice is a fresh copy.
func (m *Manager) CheckProgress(clue string, chains []Chain) ([]Chain, []Revelation) {
	triggers := m.classifier.Classify(clue)
	updated := make([]Chain, len(chains))
	var revelations []Revelation

	for i, c := range chains {
		c.Suspects = append([]string(nil), c.Suspects...)
		updated[i] = c

		stage, ok := c.CurrentStage()
		if !ok || !matches(triggers, stage.Trigger) {
			continue
		}
		c.Progress++
		if c.Progress >= len(c.Stages) {
			c.Completed = true
			c.UnlockedRevelation = c.Revelation
			revelations = append(revelations, Revelation{
				ChainName: c.Name,
				Text:      c.Revelation,
				Suspects:  append([]string(nil), c.Suspects...),
			})
		}
		updated[i] = c
	}
	return updated, revelations
}

// Classify exposes the manager's classifier.
func (m *Manager) Classify(clue string) []Trigger {
	return m.classifier.Classify(clue)
}

func matches(triggers []Trigger, want Trigger) bool {
	for _, t := range triggers {
		if t == want {
			return true
		}
	}
	return false
}

// Summary counts chains by progress.
type Summary struct {
	Total, Completed, InProgress, NotStarted int
}

func Summarize(chains []Chain) Summary {
	s := Summary{Total: len(chains)}
	for _, c := range chains {
		switch {
		case c.Completed:
			s.Completed++
		case c.Progress > 0:
			s.InProgress++
		default:
			s.NotStarted++
		}
	}
	return s
}
