package chains

import (
	"math/rand"
	"testing"

	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	solo       = solution.Solution{Killers: []string{"Dr. Sterling"}, Weapon: "Syringe", Room: "Library"}
	conspiracy = solution.Solution{
		Killers:      []string{"Lady Blackwood", "Lord Ravencrest"},
		Weapon:       "Revolver",
		Room:         "Study",
		IsConspiracy: true,
	}
)

func kinds(chains []Chain) []Kind {
	var out []Kind
	for _, c := range chains {
		out = append(out, c.Kind)
	}
	return out
}

func find(t *testing.T, chains []Chain, kind Kind) Chain {
	t.Helper()
	for _, c := range chains {
		if c.Kind == kind {
			return c
		}
	}
	t.Fatalf("no %s chain", kind)
	return Chain{}
}

func TestSeed(t *testing.T) {
	t.Run("a solo case gets weapon, alibi, motive and financial chains", func(t *testing.T) {
		m := NewManager(random.NewScripted())
		got := m.Seed(solo)
		assert.Equal(t, []Kind{WeaponMatch, AlibiBreakdown, MotiveReveal, FinancialTrail}, kinds(got))
		assert.Equal(t, "Syringe", got[0].Weapon)
		for _, c := range got {
			assert.Equal(t, []string{"Dr. Sterling"}, c.Suspects)
			assert.Zero(t, c.Progress)
			assert.False(t, c.Completed)
		}
	})

	t.Run("a conspiracy gets an alibi chain per killer and a conspiracy link", func(t *testing.T) {
		src := random.NewScripted()
		src.Fallback = 0.9
		m := NewManager(src)
		got := m.Seed(conspiracy)
		assert.Equal(t, []Kind{WeaponMatch, AlibiBreakdown, AlibiBreakdown, ConspiracyLink, MotiveReveal}, kinds(got))
		assert.Equal(t, conspiracy.Killers, find(t, got, ConspiracyLink).Suspects)
	})

	t.Run("chain ids are unique", func(t *testing.T) {
		m := NewManager(rand.New(rand.NewSource(4)))
		seen := map[string]bool{}
		for _, c := range m.Seed(conspiracy) {
			assert.False(t, seen[c.ID])
			seen[c.ID] = true
		}
	})
}

func TestConspiracyChainCompletes(t *testing.T) {
	// GIVEN the chains of a conspiracy
	m := NewManager(random.NewScripted())
	chains := m.Seed(conspiracy)

	// WHEN a sighting, a letter and a motive turn up in order
	var all []Revelation
	for _, clue := range []string{
		"I saw them near the door",
		"a letter was found",
		"Lord Ravencrest stands to inherit a fortune",
	} {
		var revs []Revelation
		chains, revs = m.CheckProgress(clue, chains)
		all = append(all, revs...)
	}

	// THEN the conspiracy link is complete and revealed exactly once
	link := find(t, chains, ConspiracyLink)
	assert.True(t, link.Completed)
	assert.Equal(t, 3, link.Progress)
	assert.Equal(t, Definitions[ConspiracyLink].Revelation, link.UnlockedRevelation)
	require.Len(t, all, 1)
	assert.Equal(t, "Conspiracy Uncovered", all[0].ChainName)
	assert.Equal(t, "Lady Blackwood & Lord Ravencrest", all[0].Implicated())

	// AND a further motive clue changes nothing
	again, revs := m.CheckProgress("another motive", chains)
	assert.Empty(t, revs)
	assert.Equal(t, 3, find(t, again, ConspiracyLink).Progress)
}

func TestCheckProgress(t *testing.T) {
	t.Run("a clue advances each chain at most one stage", func(t *testing.T) {
		// the text matches every stage of the weapon chain at once
		m := NewManager(random.NewScripted())
		chains := m.Seed(solo)
		updated, _ := m.CheckProgress("The body was examined; the alibi claims are consistent.", chains)
		assert.Equal(t, 1, find(t, updated, WeaponMatch).Progress)
	})

	t.Run("the input chains are never modified", func(t *testing.T) {
		m := NewManager(random.NewScripted())
		chains := m.Seed(solo)
		before := make([]Chain, len(chains))
		copy(before, chains)

		updated, _ := m.CheckProgress("The wound on the body", chains)
		assert.Equal(t, before, chains)
		assert.Equal(t, 1, find(t, updated, WeaponMatch).Progress)
	})

	t.Run("an unrelated clue moves nothing", func(t *testing.T) {
		m := NewManager(random.NewScripted())
		chains := m.Seed(solo)
		updated, revs := m.CheckProgress("A cold draught from the window", chains)
		assert.Equal(t, chains, updated)
		assert.Empty(t, revs)
	})
}

func TestProgressIsMonotonic(t *testing.T) {
	clues := []string{
		"I saw them near the door",
		"a letter was found",
		"stands to inherit a fortune",
		"The body bore a single wound",
		"Forensic evidence is CONSISTENT with this weapon.",
		"Interrogated Dr. Sterling",
		"He claims he was reading",
		"Nobody can vouch for the time",
		"Debts of £40,000",
		"A vase of lilies",
	}
	params := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(params)

	properties.Property("progress never decreases and never exceeds the stage count", prop.ForAll(
		func(picks []int) bool {
			m := NewManager(random.NewScripted())
			chains := m.Seed(conspiracy)
			revealed := 0
			for _, p := range picks {
				next, revs := m.CheckProgress(clues[p], chains)
				revealed += len(revs)
				for i := range next {
					if next[i].Progress < chains[i].Progress || next[i].Progress-chains[i].Progress > 1 {
						return false
					}
					if next[i].Progress > len(next[i].Stages) {
						return false
					}
					if next[i].Completed != (next[i].Progress == len(next[i].Stages)) {
						return false
					}
				}
				chains = next
			}
			return revealed == Summarize(chains).Completed
		},
		gen.SliceOf(gen.IntRange(0, len(clues)-1)),
	))

	properties.TestingRun(t)
}

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultRules)
	tests := []struct {
		name string
		text string
		want []Trigger
	}{
		{"sighting", "The maid saw someone", []Trigger{Witness}},
		{"diary", "A torn diary page", []Trigger{Document}},
		{"money", "owed £5,000", []Trigger{Financial}},
		{"inheritance", "She would INHERIT the estate", []Trigger{Motive}},
		{"interrogation", "Interrogated Colonel Mustard", []Trigger{Interrogation}},
		{"crime scene", "blood near the body", []Trigger{CrimeScene}},
		{"timeline", "seen at 9:10pm", []Trigger{Timeline}},
		{"several", "Witness statement about the letter", []Trigger{Witness, Document}},
		{"nothing", "a vase of lilies", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestSummarize(t *testing.T) {
	chains := []Chain{
		{Progress: 0},
		{Progress: 2},
		{Progress: 3, Completed: true},
	}
	assert.Equal(t, Summary{Total: 3, Completed: 1, InProgress: 1, NotStarted: 1}, Summarize(chains))
}
