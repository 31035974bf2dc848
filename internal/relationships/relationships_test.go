package relationships

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func mustConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

// uniform builds a complete network where every pair has typeID, except the overrides.
func uniform(cfg *config.GameConfig, typeID string, overrides map[string]string) *Network {
	names := cfg.SuspectNames()
	var edges []Edge
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			id := typeID
			if o, ok := overrides[config.PairKey(names[i], names[j])]; ok {
				id = o
			}
			rt, _ := cfg.RelationshipType(id)
			edges = append(edges, Edge{A: names[i], B: names[j], Type: rt})
		}
	}
	return FromEdges(names, edges)
}

func TestGeneratedNetworksAreValid(t *testing.T) {
	cfg := mustConfig(t)
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("every generated network satisfies all rules", prop.ForAll(
		func(seed int64) bool {
			g, err := NewGenerator(cfg, newTestLogger(), rand.New(rand.NewSource(seed)))
			if err != nil {
				return false
			}
			n := g.Generate()
			if Validate(n) != nil {
				return false
			}
			for _, s := range cfg.SuspectNames() {
				if n.Degree(s) != len(cfg.Suspects)-1 {
					return false
				}
			}
			return len(n.Edges()) == 10
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestGeneratorFallsBackAfterExhaustingAttempts(t *testing.T) {
	// GIVEN a source that deals the same type to every pair
	cfg := mustConfig(t)
	src := random.NewScripted()
	g, err := NewGenerator(cfg, newTestLogger(), src)
	require.NoError(t, err)

	// WHEN a network is generated
	n := g.Generate()

	// THEN every attempt was rejected and the fallback came back
	assert.Same(t, g.Fallback(), n)
	assert.NoError(t, Validate(n))
	rt, ok := n.Relationship("Dr. Sterling", "Lady Blackwood")
	require.True(t, ok)
	assert.Equal(t, "secret_lovers", rt.ID)
}

func TestNewGeneratorRejectsAnInvalidFallback(t *testing.T) {
	cfg := mustConfig(t)
	for i := range cfg.FallbackNetwork {
		cfg.FallbackNetwork[i].Type = "acquaintances"
	}

	_, err := NewGenerator(cfg, newTestLogger(), rand.New(rand.NewSource(1)))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeDominates))
	assert.True(t, errors.Is(err, ErrNoConspiracyPair))
}

func TestValidate(t *testing.T) {
	cfg := mustConfig(t)
	lovers := config.PairKey("Lady Blackwood", "Lord Ravencrest")
	partners := config.PairKey("Colonel Ashford", "Dr. Sterling")
	family := config.PairKey("Miss Hartley", "Dr. Sterling")
	rivals := config.PairKey("Miss Hartley", "Lord Ravencrest")

	tests := []struct {
		name    string
		network *Network
		wantErr []error
	}{
		{
			name: "a balanced network passes",
			network: mixed(cfg, map[string]string{
				lovers: "secret_lovers", partners: "business_partners", family: "family", rivals: "rivals",
			}),
		},
		{
			name:    "a single type everywhere breaks four rules",
			network: uniform(cfg, "acquaintances", nil),
			wantErr: []error{ErrTooFewStrong, ErrNoConspiracyPair, ErrTypeDominates, ErrTooFewTypes},
		},
		{
			name: "moderate and weak edges only",
			network: mixed(cfg, map[string]string{
				lovers: "family", partners: "family", family: "rivals", rivals: "blackmail",
			}),
			wantErr: []error{ErrTooFewStrong, ErrNoConspiracyPair},
		},
		{
			name:    "a missing pair breaks the degree rule",
			network: FromEdges(cfg.SuspectNames(), mixed(cfg, map[string]string{lovers: "secret_lovers", partners: "married"}).Edges()[1:]),
			wantErr: []error{ErrDegree},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.network)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

// mixed spreads the WEAK types across the pairs so no type dominates, then applies overrides.
func mixed(cfg *config.GameConfig, overrides map[string]string) *Network {
	weak := []string{"acquaintances", "employer_employee", "rivals"}
	names := cfg.SuspectNames()
	var edges []Edge
	k := 0
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			id := weak[k%len(weak)]
			k++
			if o, ok := overrides[config.PairKey(names[i], names[j])]; ok {
				id = o
			}
			rt, _ := cfg.RelationshipType(id)
			edges = append(edges, Edge{A: names[i], B: names[j], Type: rt})
		}
	}
	return FromEdges(names, edges)
}

func TestNetworkLookups(t *testing.T) {
	cfg := mustConfig(t)
	n := uniform(cfg, "acquaintances", map[string]string{
		config.PairKey("Lady Blackwood", "Lord Ravencrest"): "secret_lovers",
	})

	t.Run("relationships are symmetric", func(t *testing.T) {
		a, _ := n.Relationship("Lady Blackwood", "Lord Ravencrest")
		b, _ := n.Relationship("Lord Ravencrest", "Lady Blackwood")
		assert.Equal(t, a, b)
		assert.Equal(t, "secret_lovers", a.ID)

		_, ok := n.Relationship("Lady Blackwood", "Nobody")
		assert.False(t, ok)
	})

	t.Run("conspiracy pairs are the strong compatible edges", func(t *testing.T) {
		pairs := n.ConspiracyCompatiblePairs()
		require.Len(t, pairs, 1)
		assert.Equal(t, "Lord Ravencrest", pairs[0].Other("Lady Blackwood"))
	})

	t.Run("edges and suspects are copies", func(t *testing.T) {
		edges := n.Edges()
		edges[0].A = "Mutated"
		assert.NotEqual(t, "Mutated", n.Edges()[0].A)
		assert.Len(t, n.EdgesOf("Miss Hartley"), 4)
	})
}
