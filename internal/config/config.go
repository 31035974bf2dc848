package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfig []byte

// Strength grades both a suspect's motive and a relationship between two suspects.
type Strength string

const (
	StrengthStrong   Strength = "STRONG"
	StrengthModerate Strength = "MODERATE"
	StrengthWeak     Strength = "WEAK"
)

// TraitCategory names one of the physical traits recorded for every suspect.
type TraitCategory string

const (
	TraitHeight     TraitCategory = "height"
	TraitBuild      TraitCategory = "build"
	TraitHairColor  TraitCategory = "hairColor"
	TraitShoeSize   TraitCategory = "shoeSize"
	TraitHandedness TraitCategory = "handedness"
)

// TraitCategories lists every trait category in a stable order.
var TraitCategories = []TraitCategory{TraitHeight, TraitBuild, TraitHairColor, TraitShoeSize, TraitHandedness}

// Label returns the human readable name of a trait category.
func (tc TraitCategory) Label() string {
	switch tc {
	case TraitHeight:
		return "Height"
	case TraitBuild:
		return "Build"
	case TraitHairColor:
		return "Hair"
	case TraitShoeSize:
		return "Shoe Size"
	case TraitHandedness:
		return "Handedness"
	default:
		return string(tc)
	}
}

type PhysicalTraits struct {
	Height     string `yaml:"height" validate:"required,oneof=short average tall"`
	Build      string `yaml:"build" validate:"required,oneof=slender average heavy"`
	HairColor  string `yaml:"hairColor" validate:"required,oneof=dark light gray bald"`
	ShoeSize   int    `yaml:"shoeSize" validate:"min=4,max=14"`
	Handedness string `yaml:"handedness" validate:"required,oneof=left right"`
}

// Value returns the trait for the given category formatted as evidence text would quote it.
func (t PhysicalTraits) Value(cat TraitCategory) string {
	switch cat {
	case TraitHeight:
		return t.Height
	case TraitBuild:
		return t.Build
	case TraitHairColor:
		return t.HairColor
	case TraitShoeSize:
		return fmt.Sprintf("%d", t.ShoeSize)
	case TraitHandedness:
		return t.Handedness
	default:
		return ""
	}
}

// Suspect is the static profile of one member of the cast. Profiles are reference data and never change
// during a game.
type Suspect struct {
	Name           string         `yaml:"name" validate:"required"`
	Age            int            `yaml:"age" validate:"gt=0"`
	Occupation     string         `yaml:"occupation" validate:"required"`
	Background     string         `yaml:"background"`
	Motive         string         `yaml:"motive" validate:"required"`
	Alibi          string         `yaml:"alibi" validate:"required"`
	Personality    string         `yaml:"personality"`
	Location       string         `yaml:"location" validate:"required"`
	MotiveStrength Strength       `yaml:"motiveStrength" validate:"required,oneof=STRONG MODERATE WEAK"`
	MotiveDetails  string         `yaml:"motiveDetails" validate:"required"`
	FinancialStake int            `yaml:"financialStake" validate:"gte=0"`
	Traits         PhysicalTraits `yaml:"physicalTraits"`
}

// HasAdequateMotive reports whether the suspect could plausibly be guilty. WEAK motives never are.
func (s Suspect) HasAdequateMotive() bool {
	return s.MotiveStrength == StrengthStrong || s.MotiveStrength == StrengthModerate
}

type Weapon struct {
	Name          string `yaml:"name" validate:"required"`
	Description   string `yaml:"description"`
	Availability  string `yaml:"availability"`
	Forensics     string `yaml:"forensics" validate:"required"`
	BodyCondition string `yaml:"bodyCondition" validate:"required"`
}

// RelationshipType is one label an edge of the relationship network can carry.
type RelationshipType struct {
	ID                   string   `yaml:"id" validate:"required"`
	Strength             Strength `yaml:"strength" validate:"required,oneof=STRONG MODERATE WEAK"`
	ConspiracyCompatible bool     `yaml:"conspiracyCompatible"`
	Weight               int      `yaml:"weight" validate:"min=1"`
	Description          string   `yaml:"description"`
}

// Difficulty resolves to the resource budget of a game and the chance of a two-killer case.
type Difficulty struct {
	Name             string  `yaml:"name" validate:"required"`
	Label            string  `yaml:"label"`
	Description      string  `yaml:"description"`
	Turns            int     `yaml:"turns" validate:"min=3"`
	Interrogations   int     `yaml:"interrogations" validate:"gte=0"`
	ForensicsUses    int     `yaml:"forensicsUses" validate:"gte=0"`
	ConspiracyChance float64 `yaml:"conspiracyChance" validate:"gte=0,lte=1"`
}

// FallbackEdge is one hand-authored edge of the network used when random generation gives up.
type FallbackEdge struct {
	A    string `yaml:"a" validate:"required"`
	B    string `yaml:"b" validate:"required,nefield=A"`
	Type string `yaml:"type" validate:"required"`
}

// GameConfig holds the static reference tables of a game.
type GameConfig struct {
	DefaultDifficulty string             `yaml:"defaultDifficulty" validate:"required"`
	Suspects          []Suspect          `yaml:"suspects" validate:"required,min=2,dive"`
	Weapons           []Weapon           `yaml:"weapons" validate:"required,min=1,dive"`
	Rooms             []string           `yaml:"rooms" validate:"required,min=2,dive,required"`
	RelationshipTypes []RelationshipType `yaml:"relationshipTypes" validate:"required,min=1,dive"`
	Difficulties      []Difficulty       `yaml:"difficulties" validate:"required,min=1,dive"`
	FallbackNetwork   []FallbackEdge     `yaml:"fallbackNetwork" validate:"required,dive"`

	// Populated at load time.
	suspects map[string]Suspect
	weapons  map[string]Weapon
	relTypes map[string]RelationshipType
	rooms    map[string]struct{}
}

// Default returns the embedded Ravencrest Manor reference data.
func Default() (*GameConfig, error) {
	return Parse(defaultConfig)
}

// Load reads, parses, and validates the game configuration from a YAML or JSON file.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes reference data, builds the lookup indexes and runs startup validation.
func Parse(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.suspects = make(map[string]Suspect, len(cfg.Suspects))
	for _, s := range cfg.Suspects {
		cfg.suspects[s.Name] = s
	}
	cfg.weapons = make(map[string]Weapon, len(cfg.Weapons))
	for _, w := range cfg.Weapons {
		cfg.weapons[w.Name] = w
	}
	cfg.relTypes = make(map[string]RelationshipType, len(cfg.RelationshipTypes))
	for _, rt := range cfg.RelationshipTypes {
		cfg.relTypes[rt.ID] = rt
	}
	cfg.rooms = make(map[string]struct{}, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		cfg.rooms[r] = struct{}{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SuspectNames returns the cast in configuration order.
func (c *GameConfig) SuspectNames() []string {
	names := make([]string, len(c.Suspects))
	for i, s := range c.Suspects {
		names[i] = s.Name
	}
	return names
}

func (c *GameConfig) WeaponNames() []string {
	names := make([]string, len(c.Weapons))
	for i, w := range c.Weapons {
		names[i] = w.Name
	}
	return names
}

func (c *GameConfig) Suspect(name string) (Suspect, bool) {
	s, ok := c.suspects[name]
	return s, ok
}

func (c *GameConfig) Weapon(name string) (Weapon, bool) {
	w, ok := c.weapons[name]
	return w, ok
}

func (c *GameConfig) RelationshipType(id string) (RelationshipType, bool) {
	rt, ok := c.relTypes[id]
	return rt, ok
}

func (c *GameConfig) IsRoom(name string) bool {
	_, ok := c.rooms[name]
	return ok
}

// Difficulty looks up a difficulty by name, case-insensitively. An empty name selects the default.
func (c *GameConfig) Difficulty(name string) (Difficulty, error) {
	if name == "" {
		name = c.DefaultDifficulty
	}
	for _, d := range c.Difficulties {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("unknown difficulty %q", name)
}

// Innocents returns every suspect not named in killers, in configuration order.
func (c *GameConfig) Innocents(killers []string) []string {
	var out []string
	for _, s := range c.Suspects {
		guilty := false
		for _, k := range killers {
			if k == s.Name {
				guilty = true
				break
			}
		}
		if !guilty {
			out = append(out, s.Name)
		}
	}
	return out
}
