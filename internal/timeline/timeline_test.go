package timeline

import (
	"math/rand"
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

var soloSterling = solution.Solution{Killers: []string{"Dr. Sterling"}, Weapon: "Syringe", Room: "Study"}

func TestTimelineShape(t *testing.T) {
	// GIVEN a solo case
	cfg := mustConfig(t)
	g := NewGenerator(cfg, rand.New(rand.NewSource(11)))

	// WHEN the timelines are generated
	timelines := g.Generate(soloSterling)

	// THEN every suspect has five slots with exactly one critical slot
	require.Len(t, timelines, len(cfg.Suspects))
	for name, tl := range timelines {
		t.Run(name, func(t *testing.T) {
			require.Len(t, tl.Entries, 5)
			critical := 0
			for i, e := range tl.Entries {
				assert.Equal(t, Slots[i].ID, e.SlotID)
				assert.NotEmpty(t, e.Activity)
				if e.IsCritical {
					critical++
				}
				if e.Tell != "" {
					assert.True(t, e.IsCritical && name == "Dr. Sterling", "tells only appear for the killer's critical slot")
				}
				switch e.Strength {
				case Partial:
					assert.Equal(t, witnessStaff, e.Witness)
				case Weak, None:
					assert.Equal(t, witnessNone, e.Witness)
				}
			}
			assert.Equal(t, 1, critical)
		})
	}

	t.Run("the killer always has a gap and a tell in the murder window", func(t *testing.T) {
		tl := timelines["Dr. Sterling"]
		assert.True(t, HasAlibiGap(tl))
		e, _ := tl.Critical()
		assert.Contains(t, tells, e.Tell)
		assert.True(t, Summarize(tl).HasCriticalGap)
	})
}

func TestKillersHaveWeakerCriticalAlibis(t *testing.T) {
	// GIVEN many seeded trials
	cfg := mustConfig(t)
	g := NewGenerator(cfg, rand.New(rand.NewSource(2024)))

	killerGaps, killerTotal := 0, 0
	innocentGaps, innocentTotal := 0, 0
	for i := 0; i < 500; i++ {
		// WHEN timelines are generated
		for name, tl := range g.Generate(soloSterling) {
			if soloSterling.IsKiller(name) {
				killerTotal++
				if HasAlibiGap(tl) {
					killerGaps++
				}
				continue
			}
			innocentTotal++
			if HasAlibiGap(tl) {
				innocentGaps++
			}
		}
	}

	// THEN killers are unaccounted for far more often
	killerRate := float64(killerGaps) / float64(killerTotal)
	innocentRate := float64(innocentGaps) / float64(innocentTotal)
	assert.Equal(t, 1.0, killerRate)
	assert.Greater(t, killerRate, innocentRate)
	assert.InDelta(t, 0.3, innocentRate, 0.05)
}

func TestStrengthBranches(t *testing.T) {
	cases := []struct {
		name     string
		roll     float64
		killer   bool
		critical bool
		want     AlibiStrength
	}{
		{"killer in the murder window below 0.6 has no alibi", 0.59, true, true, None},
		{"killer in the murder window above 0.6 is weak", 0.6, true, true, Weak},
		{"killer elsewhere can be confirmed", 0.1, true, false, Confirmed},
		{"killer elsewhere in the upper band has none", 0.85, true, false, None},
		{"innocent low roll is confirmed", 0.39, false, true, Confirmed},
		{"innocent mid roll is partial", 0.5, false, false, Partial},
		{"innocent high roll is weak", 0.75, false, false, Weak},
		{"innocent top roll has none", 0.95, false, false, None},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGenerator(nil, random.NewScripted(tc.roll))
			assert.Equal(t, tc.want, g.strength(tc.killer, tc.critical))
		})
	}
}

func TestSummarize(t *testing.T) {
	tl := Timeline{Entries: []Entry{
		{Strength: Confirmed}, {Strength: Confirmed}, {Strength: Partial, IsCritical: true}, {Strength: Weak}, {Strength: None},
	}}

	s := Summarize(tl)

	assert.Equal(t, Summary{Confirmed: 2, Partial: 1, Weak: 1, None: 1}, s)
	assert.False(t, HasAlibiGap(tl))
	assert.Equal(t, "No Alibi", None.Label())
}
