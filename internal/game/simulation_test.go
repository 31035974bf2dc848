package game

import (
	"math/rand"
	"testing"

	"example.com/whodunit/internal/bus"
	"example.com/whodunit/internal/chains"
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/documents"
	"example.com/whodunit/internal/evidence"
	"example.com/whodunit/internal/events"
	"example.com/whodunit/internal/notebook"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
	"example.com/whodunit/internal/timeline"
	"example.com/whodunit/internal/witness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietSource never wins a coin flip, so no random event, gossip or attack interferes.
func quietSource() *random.Scripted {
	src := random.NewScripted()
	src.Fallback = 0.99
	return src
}

// setupDeterministicCase hand-builds a case around Dr. Sterling with the Candlestick in the Library.
// The forensics kit waits in the Ballroom and the Billiard Room shows a left-handed killer, the one
// trait only Dr. Sterling has.
func setupDeterministicCase(t *testing.T, cfg *config.GameConfig) *Case {
	t.Helper()

	diff, err := cfg.Difficulty("NORMAL")
	require.NoError(t, err)
	sol := solution.Solution{Killers: []string{"Dr. Sterling"}, Weapon: "Candlestick", Room: "Library"}

	return &Case{
		ID:         "golden",
		Difficulty: diff,
		Solution:   sol,
		Evidence: evidence.Map{
			"Library": {Kind: evidence.KindPhysical, Category: evidence.CrimeScene, Real: true,
				Text: "The victim was found here. Head trauma consistent with a heavy blow."},
			"Ballroom": {Kind: evidence.KindItem, Category: evidence.ItemFound, Item: evidence.ForensicsKit,
				Text: "Found a Forensics Kit!"},
			"Billiard Room": {Kind: evidence.KindPhysical, Category: evidence.Trait, Real: true,
				Trait: config.TraitHandedness, TraitValue: "left", Text: "The killer was left-handed."},
		},
		Timelines: map[string]timeline.Timeline{},
		Witnesses: map[string][]witness.Statement{},
		Documents: map[string]documents.Document{},
		Chains:    chains.NewManager(quietSource()).Seed(sol),
	}
}

func TestFullInvestigation_GoldenRun(t *testing.T) {
	// GIVEN a hand-built case, a quiet source and the predictable chooser
	cfg := mustConfig(t)
	c := setupDeterministicCase(t, cfg)
	b := bus.NewManager()
	var over []bus.InvestigationOver
	b.Subscribe(bus.ListenerFunc(func(n bus.Notice) {
		if o, ok := n.(bus.InvestigationOver); ok {
			over = append(over, o)
		}
	}))
	notes := notebook.New(cfg, newTestLogger())
	b.Subscribe(notes)
	inv := NewInvestigation(c, cfg, b, newTestLogger(), quietSource())

	// WHEN the investigation runs to its conclusion
	verdict := inv.Run(&random.DeterministicChooser{})

	// THEN the outcome matches the known run exactly
	t.Run("the accusation is correct", func(t *testing.T) {
		assert.True(t, verdict.Accused)
		assert.True(t, verdict.Correct)
		assert.Equal(t, "CORRECT! Dr. Sterling with Candlestick in the Library!", verdict.Text)
	})

	t.Run("it stops as soon as the crime room is found", func(t *testing.T) {
		// eight searches, one examination and three interrogations
		assert.Equal(t, 3, inv.TurnsLeft())
		assert.Equal(t, 0, inv.InterrogationsLeft())
		assert.Equal(t, 4, inv.ForensicsLeft())
		assert.Len(t, inv.Clues(), 7)
	})

	t.Run("the deduction is certain", func(t *testing.T) {
		d := inv.Deduce()
		assert.True(t, d.Certain())
		assert.Equal(t, []string{"Dr. Sterling"}, d.Suspects)
		assert.Equal(t, []string{"Candlestick"}, d.Weapons)
		assert.Equal(t, []string{"Library"}, d.Rooms)
	})

	t.Run("the notebook reaches the same answer", func(t *testing.T) {
		assert.Equal(t, []string{"Dr. Sterling"}, notes.Solved(notebook.Suspects))
		assert.Equal(t, []string{"Candlestick"}, notes.Solved(notebook.Weapons))
		assert.Equal(t, []string{"Library"}, notes.Solved(notebook.Rooms))
	})

	t.Run("the end is published once", func(t *testing.T) {
		require.Len(t, over, 1)
		assert.Equal(t, 12, over[0].TurnsUsed)
		assert.True(t, over[0].Correct)
	})
}

func TestInvestigationActions(t *testing.T) {
	cfg := mustConfig(t)

	t.Run("weapons cannot be examined without the kit", func(t *testing.T) {
		inv := NewInvestigation(setupDeterministicCase(t, cfg), cfg, bus.NewManager(), newTestLogger(), quietSource())
		assert.ErrorIs(t, inv.Examine("Rope"), ErrNoForensicsKit)

		require.NoError(t, inv.Search("Ballroom"))
		require.NoError(t, inv.Examine("Rope"))
		assert.ErrorIs(t, inv.Examine("Rope"), ErrAlreadyExamined)
		assert.Contains(t, inv.Clues()[1], "RULES OUT")
	})

	t.Run("a suspect is only interrogated once and reveals a timeline", func(t *testing.T) {
		c := setupDeterministicCase(t, cfg)
		c.Timelines["Miss Hartley"] = timeline.Timeline{Suspect: "Miss Hartley"}
		inv := NewInvestigation(c, cfg, bus.NewManager(), newTestLogger(), quietSource())

		_, ok := inv.Timeline("Miss Hartley")
		assert.False(t, ok)
		require.NoError(t, inv.Interrogate("Miss Hartley"))
		_, ok = inv.Timeline("Miss Hartley")
		assert.True(t, ok)
		assert.ErrorIs(t, inv.Interrogate("Miss Hartley"), ErrAlreadyInterrogated)
		assert.Equal(t, 2, inv.InterrogationsLeft())
		assert.Equal(t, 14, inv.TurnsLeft())
	})

	t.Run("interrogations run out", func(t *testing.T) {
		inv := NewInvestigation(setupDeterministicCase(t, cfg), cfg, bus.NewManager(), newTestLogger(), quietSource())
		for _, s := range []string{"Miss Hartley", "Lady Blackwood", "Colonel Ashford"} {
			require.NoError(t, inv.Interrogate(s))
		}
		assert.ErrorIs(t, inv.Interrogate("Dr. Sterling"), ErrNoInterrogations)
	})

	t.Run("an uncooperative suspect blocks one interrogation", func(t *testing.T) {
		inv := NewInvestigation(setupDeterministicCase(t, cfg), cfg, bus.NewManager(), newTestLogger(), quietSource())
		for _, ev := range events.Catalog {
			if ev.Effect == events.BlockInterrogation {
				inv.applyEvent(ev)
			}
		}
		assert.ErrorIs(t, inv.Interrogate("Miss Hartley"), ErrUncooperative)
		assert.NoError(t, inv.Interrogate("Miss Hartley"))
	})

	t.Run("the master key grants a search without spending a turn", func(t *testing.T) {
		c := setupDeterministicCase(t, cfg)
		c.Evidence["Gallery"] = evidence.Payload{Kind: evidence.KindItem, Category: evidence.ItemFound, Item: evidence.MasterKey}
		inv := NewInvestigation(c, cfg, bus.NewManager(), newTestLogger(), quietSource())

		require.NoError(t, inv.Search("Gallery"))
		assert.Equal(t, 14, inv.TurnsLeft())
		require.NoError(t, inv.Search("Kitchen"))
		assert.Equal(t, 14, inv.TurnsLeft())
		require.NoError(t, inv.Search("Study"))
		assert.Equal(t, 13, inv.TurnsLeft())
	})

	t.Run("unknown rooms are rejected", func(t *testing.T) {
		inv := NewInvestigation(setupDeterministicCase(t, cfg), cfg, bus.NewManager(), newTestLogger(), quietSource())
		assert.Error(t, inv.Search("Attic"))
		assert.Equal(t, 15, inv.TurnsLeft())
	})

	t.Run("running out of turns ends the investigation", func(t *testing.T) {
		c := setupDeterministicCase(t, cfg)
		c.Difficulty.Turns = 3
		inv := NewInvestigation(c, cfg, bus.NewManager(), newTestLogger(), quietSource())
		for _, r := range []string{"Gallery", "Kitchen", "Study"} {
			require.NoError(t, inv.Search(r))
		}

		assert.True(t, inv.Over())
		v, ok := inv.Verdict()
		require.True(t, ok)
		assert.False(t, v.Accused)
		assert.Equal(t, "Out of time! The real answer was Dr. Sterling with Candlestick in the Library", v.Text)
		assert.ErrorIs(t, inv.Search("Library"), ErrOver)
		_, err := inv.Accuse([]string{"Dr. Sterling"}, "Candlestick", "Library")
		assert.ErrorIs(t, err, ErrOver)
	})

	t.Run("a wrong accusation reveals the answer", func(t *testing.T) {
		inv := NewInvestigation(setupDeterministicCase(t, cfg), cfg, bus.NewManager(), newTestLogger(), quietSource())
		v, err := inv.Accuse([]string{"Miss Hartley"}, "Rope", "Kitchen")
		require.NoError(t, err)
		assert.False(t, v.Correct)
		assert.Equal(t, "WRONG! The real answer was Dr. Sterling with Candlestick in the Library", v.Text)
	})
}

func TestInvestigationFeedsChains(t *testing.T) {
	// GIVEN a conspiracy case
	cfg := mustConfig(t)
	c := setupDeterministicCase(t, cfg)
	c.Solution = solution.Solution{Killers: []string{"Lady Blackwood", "Lord Ravencrest"}, Weapon: "Poison", Room: "Library", IsConspiracy: true}
	c.Chains = chains.NewManager(quietSource()).Seed(c.Solution)
	c.Evidence["Gallery"] = evidence.Payload{Text: "A maid saw Lady Blackwood and Lord Ravencrest whispering."}
	c.Documents["Kitchen"] = documents.Document{Kind: documents.Letter, Title: "Sealed Letter", From: "Lady Blackwood", To: "Lord Ravencrest"}
	c.Evidence["Study"] = evidence.Payload{Text: "Lord Ravencrest stands to inherit a fortune."}

	var revealed []chains.Revelation
	b := bus.NewManager()
	b.Subscribe(bus.ListenerFunc(func(n bus.Notice) {
		if r, ok := n.(bus.Revelation); ok {
			revealed = append(revealed, r.Revelation)
		}
	}))
	inv := NewInvestigation(c, cfg, b, newTestLogger(), quietSource())

	// WHEN the three links are found in order
	for _, r := range []string{"Gallery", "Kitchen", "Study"} {
		require.NoError(t, inv.Search(r))
	}

	// THEN the conspiracy is revealed and the deduction names both killers
	require.Len(t, revealed, 1)
	assert.Equal(t, "Conspiracy Uncovered", revealed[0].ChainName)
	assert.Equal(t, []string{"Lady Blackwood", "Lord Ravencrest"}, inv.Deduce().Conspirators)
	assert.Equal(t, 1, chains.Summarize(inv.Chains()).Completed)
}

func TestSeededInvestigationsAlwaysEnd(t *testing.T) {
	cfg := mustConfig(t)
	for seed := int64(1); seed <= 25; seed++ {
		src := rand.New(rand.NewSource(seed))
		c, err := NewBuilder(cfg, newTestLogger(), src).Build()
		require.NoError(t, err)

		inv := NewInvestigation(c, cfg, bus.NewManager(), newTestLogger(), src)
		v := inv.Run(random.NewRandomChooser(src))

		assert.True(t, inv.Over(), "seed %d", seed)
		assert.NotEmpty(t, v.Text, "seed %d", seed)
		assert.GreaterOrEqual(t, inv.TurnsLeft(), 0, "seed %d", seed)
		assert.NotEmpty(t, inv.Clues(), "seed %d", seed)
	}
}
