package witness

import (
	"math/rand"
	"strings"
	"testing"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

var conspiracy = solution.Solution{
	Killers:      []string{"Lady Blackwood", "Lord Ravencrest"},
	Weapon:       "Poison",
	Room:         "Gallery",
	IsConspiracy: true,
}

func TestStatementMix(t *testing.T) {
	cfg := mustConfig(t)
	g := NewGenerator(cfg, rand.New(rand.NewSource(5)))

	for i := 0; i < 200; i++ {
		all := g.Generate(conspiracy)
		require.Len(t, all, len(cfg.Suspects))

		for suspect, stmts := range all {
			sum := Summarize(stmts)
			for _, st := range stmts {
				assert.Equal(t, suspect, st.Suspect)
				assert.NotContains(t, st.Text, "{")
				assert.True(t, strings.Contains(st.Text, suspect), "statement names its suspect: %q", st.Text)
			}

			if conspiracy.IsKiller(suspect) {
				// killers: 1-2 contradictions, the only corroboration comes from a low-reliability relative
				assert.GreaterOrEqual(t, sum.Contradicting, 1)
				assert.LessOrEqual(t, sum.Contradicting, 2)
				assert.LessOrEqual(t, sum.Corroborating, 1)
				for _, st := range stmts {
					if st.Kind == Corroborating {
						assert.Equal(t, Family, st.Category)
						assert.Equal(t, Low, st.Reliability)
					}
				}
				continue
			}

			// innocents: 1-2 corroborations, any contradiction is a low-reliability red herring
			assert.GreaterOrEqual(t, sum.Corroborating, 1)
			assert.LessOrEqual(t, sum.Corroborating, 2)
			assert.LessOrEqual(t, sum.Contradicting, 1)
			for _, st := range stmts {
				switch st.Kind {
				case Contradicting:
					assert.Equal(t, Low, st.Reliability)
					assert.NotContains(t, st.Text, conspiracy.Room)
				case Corroborating:
					assert.NotEqual(t, Low, st.Reliability)
				}
			}
		}
	}
}

func TestKillerSightingPointsAtTheCrimeScene(t *testing.T) {
	// GIVEN a script that picks a staff witness and the first sighting template
	cfg := mustConfig(t)
	g := NewGenerator(cfg, random.NewScripted(0.0, 0.5, 0.0))
	blackwood, _ := cfg.Suspect("Lady Blackwood")

	// WHEN a contradiction is built
	st := g.contradicting(blackwood, "Gallery")

	// THEN it places her near the crime scene
	assert.Equal(t, "I saw Lady Blackwood heading toward Gallery around the time of the murder.", st.Text)
	assert.Equal(t, Staff, st.Category)
	assert.Equal(t, High, st.Reliability)
	assert.Equal(t, "Butler Thompson", st.Witness)
}

func TestSummarize(t *testing.T) {
	stmts := []Statement{
		{Kind: Corroborating, Reliability: High},
		{Kind: Contradicting, Reliability: Medium},
		{Kind: Neutral, Reliability: Low},
		{Kind: Corroborating, Reliability: High},
	}

	assert.Equal(t, Summary{Corroborating: 2, Contradicting: 1, Neutral: 1, HighReliability: 2, Total: 4}, Summarize(stmts))
	assert.Equal(t, "Questionable", Low.Label())
}
