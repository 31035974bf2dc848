package game

import (
	"fmt"

	"example.com/whodunit/internal/bus"
	"example.com/whodunit/internal/chains"
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/documents"
	"example.com/whodunit/internal/evidence"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/relationships"
	"example.com/whodunit/internal/solution"
	"example.com/whodunit/internal/timeline"
	"example.com/whodunit/internal/witness"

	"github.com/sirupsen/logrus"
)

// Case is one fully generated mystery.
type Case struct {
	ID         string
	Difficulty config.Difficulty
	Network    *relationships.Network
	Solution   solution.Solution
	Evidence   evidence.Map
	Timelines  map[string]timeline.Timeline
	Witnesses  map[string][]witness.Statement
	Documents  map[string]documents.Document
	Chains     []chains.Chain
}

// Builder provides a step-by-step API for constructing a Case.
type Builder struct {
	cfg        *config.GameConfig
	bus        *bus.Manager
	log        logrus.FieldLogger
	src        random.Source
	difficulty string
	network    *relationships.Network
}

// NewBuilder creates a new Builder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, log logrus.FieldLogger, src random.Source) *Builder {
	return &Builder{
		cfg: cfg,
		log: log,
		src: src,
		bus: bus.NewManager(),
	}
}

// Bus is a public getter for the unexported field.
func (b *Builder) Bus() *bus.Manager {
	return b.bus
}

// WithDifficulty selects a difficulty by name. An empty name keeps the configured default.
func (b *Builder) WithDifficulty(name string) *Builder {
	b.difficulty = name
	return b
}

// WithNetwork skips relationship generation and uses n instead.
func (b *Builder) WithNetwork(n *relationships.Network) *Builder {
	b.network = n
	return b
}

// Build generates every part of the case in dependency order: network, solution, then the
// evidence that points at the solution.
func (b *Builder) Build() (*Case, error) {
	diff, err := b.cfg.Difficulty(b.difficulty)
	if err != nil {
		return nil, err
	}

	network := b.network
	if network == nil {
		relGen, err := relationships.NewGenerator(b.cfg, b.log, b.src)
		if err != nil {
			return nil, fmt.Errorf("relationship generator: %w", err)
		}
		network = relGen.Generate()
	}

	sol := solution.NewGenerator(b.cfg, b.log, b.src).Generate(network, diff.ConspiracyChance)

	c := &Case{
		ID:         random.NewID(b.src),
		Difficulty: diff,
		Network:    network,
		Solution:   sol,
		Evidence:   evidence.NewGenerator(b.cfg, b.log, b.src).WithForensicsUses(diff.ForensicsUses).Generate(sol),
		Timelines:  timeline.NewGenerator(b.cfg, b.src).Generate(sol),
		Witnesses:  witness.NewGenerator(b.cfg, b.src).Generate(sol),
		Documents:  documents.NewGenerator(b.cfg, b.log, b.src).Generate(sol),
		Chains:     chains.NewManager(b.src).Seed(sol),
	}

	b.log.WithFields(logrus.Fields{
		"case":       c.ID,
		"difficulty": diff.Name,
		"conspiracy": sol.IsConspiracy,
	}).Debug("case generated")
	b.log.Debugf("Ground truth: %v with %s in the %s", sol.Killers, sol.Weapon, sol.Room)

	b.bus.Publish(bus.CaseReady{CaseID: c.ID, Difficulty: diff.Name, Chains: len(c.Chains)})

	return c, nil
}
