package relationships

import (
	"fmt"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"

	"github.com/sirupsen/logrus"
)

// Generator deals relationship types to every suspect pair by rejection sampling.
type Generator struct {
	cfg      *config.GameConfig
	log      logrus.FieldLogger
	src      random.Source
	rules    Rules
	pool     []config.RelationshipType
	fallback *Network
}

// NewGenerator prepares the weighted type pool and checks the hand-authored fallback network.
// A fallback that breaks the rules is a configuration error.
func NewGenerator(cfg *config.GameConfig, log logrus.FieldLogger, src random.Source) (*Generator, error) {
	g := &Generator{cfg: cfg, log: log, src: src, rules: DefaultRules()}

	for _, rt := range cfg.RelationshipTypes {
		for i := 0; i < rt.Weight; i++ {
			g.pool = append(g.pool, rt)
		}
	}

	edges := make([]Edge, 0, len(cfg.FallbackNetwork))
	for _, fe := range cfg.FallbackNetwork {
		rt, ok := cfg.RelationshipType(fe.Type)
		if !ok {
			return nil, fmt.Errorf("fallback network: unknown relationship type %q", fe.Type)
		}
		edges = append(edges, Edge{A: fe.A, B: fe.B, Type: rt})
	}
	g.fallback = FromEdges(cfg.SuspectNames(), edges)
	if err := g.rules.Validate(g.fallback); err != nil {
		return nil, fmt.Errorf("fallback network: %w", err)
	}

	return g, nil
}

// Generate always returns a valid network. After MaxAttempts rejected attempts it returns the fallback.
func (g *Generator) Generate() *Network {
	for i := 1; i <= g.rules.MaxAttempts; i++ {
		if n := g.attempt(); n != nil {
			g.log.WithField("attempts", i).Debug("Relationship network generated")
			return n
		}
	}
	g.log.WithField("attempts", g.rules.MaxAttempts).Warn("No valid relationship network found, using fallback")
	return g.fallback
}

// Fallback returns the hand-authored network.
func (g *Generator) Fallback() *Network {
	return g.fallback
}

// attempt builds one random network, returning nil if it breaks any rule.
func (g *Generator) attempt() *Network {
	suspects := g.cfg.SuspectNames()
	var edges []Edge
	for i := 0; i < len(suspects); i++ {
		for j := i + 1; j < len(suspects); j++ {
			rt := random.Shuffle(g.src, g.pool)[0]
			edges = append(edges, Edge{A: suspects[i], B: suspects[j], Type: rt})
		}
	}
	n := FromEdges(suspects, edges)
	if err := g.rules.Validate(n); err != nil {
		g.log.WithError(err).Trace("Rejected relationship network")
		return nil
	}
	return n
}
