// Package evidence lays one piece of evidence in every room of the manor.
package evidence

import (
	"fmt"
	"strings"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/physical"
	"example.com/whodunit/internal/prose"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/rooms"
	"example.com/whodunit/internal/solution"
	"example.com/whodunit/internal/timeline"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindPhysical Kind = "physical"
	KindDocument Kind = "document"
	KindWitness  Kind = "witness"
	KindItem     Kind = "item"
)

type Category string

const (
	CrimeScene  Category = "crime_scene"
	Trait       Category = "physical"
	Motive      Category = "motive"
	Weapon      Category = "weapon"
	Testimony   Category = "testimony"
	Conspiracy  Category = "conspiracy"
	Opportunity Category = "opportunity"
	RedHerring  Category = "red_herring"
	ItemFound   Category = "item"
	Neutral     Category = "neutral"
)

// Item marks a payload that grants the finder a tool.
type Item string

const (
	NoItem       Item = ""
	ForensicsKit Item = "forensics_kit"
	MasterKey    Item = "master_key"
)

// Payload is what a search of a room turns up. Real is bookkeeping only and is never shown to the player.
type Payload struct {
	Kind       Kind
	Category   Category
	Text       string
	Real       bool
	Item       Item
	Trait      config.TraitCategory
	TraitValue string
}

// Map holds exactly one payload per room.
type Map map[string]Payload

// CrimeScene returns the room holding the body.
func (m Map) CrimeScene() (string, bool) {
	for room, p := range m {
		if p.Category == CrimeScene {
			return room, true
		}
	}
	return "", false
}

// Count returns how many rooms hold a payload of the category.
func (m Map) Count(c Category) int {
	n := 0
	for _, p := range m {
		if p.Category == c {
			n++
		}
	}
	return n
}

// ItemRoom returns the room where the item is hidden.
func (m Map) ItemRoom(item Item) (string, bool) {
	for room, p := range m {
		if item != NoItem && p.Item == item {
			return room, true
		}
	}
	return "", false
}

const (
	specialItems   = 2
	maxRedHerrings = 4
	fillerText     = "General investigation notes. Nothing conclusive found here."
)

var motiveTemplates = []string{
	"Financial records reveal {suspect} stood to lose {stake} if the victim's plans succeeded.",
	"A letter found indicates the victim was threatening {suspect}'s interests worth over {stake}.",
	"{suspect}'s motive is clear: {details}.",
	"Documents show {suspect} had compelling reason to silence the victim. Stakes: {stake}.",
}

var redHerringTemplates = []string{
	"{suspect} was seen acting suspiciously in this area earlier.",
	"Witness reports {suspect} was nearby around the time of the murder.",
	"Staff member noticed {suspect} behaving oddly this evening.",
	"{suspect} was observed leaving this room in a hurry.",
}

type Generator struct {
	cfg           *config.GameConfig
	log           logrus.FieldLogger
	src           random.Source
	physical      *physical.Generator
	forensicsUses int
}

func NewGenerator(cfg *config.GameConfig, log logrus.FieldLogger, src random.Source) *Generator {
	return &Generator{
		cfg:           cfg,
		log:           log,
		src:           src,
		physical:      physical.NewGenerator(cfg, src),
		forensicsUses: 5,
	}
}

// WithForensicsUses sets the number of examinations the Forensics Kit text promises.
func (g *Generator) WithForensicsUses(n int) *Generator {
	g.forensicsUses = n
	return g
}

// Generate fills every room. Placement order is crime scene, trait evidence, real clues, special
// items, red herrings, then filler; each step claims rooms from one shared allocator. The two
// item rooms are reserved before red herrings so the items are never crowded out.
func (g *Generator) Generate(sol solution.Solution) Map {
	m := make(Map, len(g.cfg.Rooms))
	alloc := rooms.NewAllocator(g.cfg.Rooms, g.src)

	place := func(step string, p Payload) bool {
		room, ok := alloc.Next()
		if !ok {
			g.log.WithField("step", step).Warn("No room left for evidence, dropping it")
			return false
		}
		m[room] = p
		return true
	}

	if alloc.Claim(sol.Room) {
		m[sol.Room] = g.crimeScene(sol)
	}

	for _, c := range g.physical.Generate(sol) {
		place("physical", Payload{
			Kind: KindPhysical, Category: Trait, Text: c.Text, Real: true,
			Trait: c.Category, TraitValue: c.Value,
		})
	}

	for _, p := range g.realClues(sol) {
		place("real", p)
	}

	reserved := alloc.Take(specialItems)

	herrings := alloc.Remaining()
	if herrings > maxRedHerrings {
		herrings = maxRedHerrings
	}
	innocents := g.cfg.Innocents(sol.Killers)
	for i := 0; i < herrings && len(innocents) > 0; i++ {
		place("red herring", Payload{
			Kind:     KindWitness,
			Category: RedHerring,
			Text:     prose.Fill(random.Pick(g.src, redHerringTemplates), map[string]string{"suspect": random.Pick(g.src, innocents)}),
		})
	}

	items := []Payload{
		{
			Kind: KindItem, Category: ItemFound, Item: ForensicsKit,
			Text: fmt.Sprintf("Found a Forensics Kit! You can now examine up to %d weapons to match them against the crime scene.", g.forensicsUses),
		},
		{
			Kind: KindItem, Category: ItemFound, Item: MasterKey,
			Text: "Found the Master Key! You may search one more room without spending a turn.",
		},
	}
	for i, room := range reserved {
		m[room] = items[i]
	}
	if len(reserved) < len(items) {
		g.log.WithField("placed", len(reserved)).Warn("Not enough rooms for every special item")
	}

	for _, room := range alloc.Take(alloc.Remaining()) {
		m[room] = Payload{Kind: KindPhysical, Category: Neutral, Text: fillerText}
	}
	return m
}

func (g *Generator) crimeScene(sol solution.Solution) Payload {
	w, _ := g.cfg.Weapon(sol.Weapon)
	text := fmt.Sprintf("Victim's body found here. Time of death: %s. Condition: %s", timeline.MurderTime, w.BodyCondition)
	if sol.IsConspiracy {
		text += " Signs of multiple perpetrators present."
	}
	return Payload{Kind: KindPhysical, Category: CrimeScene, Text: text, Real: true}
}

// realClues points at the killers: four clues for a solo killer, six for a conspiracy.
func (g *Generator) realClues(sol solution.Solution) []Payload {
	first := sol.Primary()
	if second, ok := sol.Accomplice(); ok {
		return []Payload{
			{Kind: KindDocument, Category: Conspiracy, Real: true, Text: fmt.Sprintf(
				`Secret correspondence between %s and %s discussing "the plan." Their close relationship evident in the intimate tone.`, first, second)},
			{Kind: KindWitness, Category: Conspiracy, Real: true, Text: fmt.Sprintf(
				"Witness saw %s and %s meeting secretly earlier that evening. They appeared very familiar with each other.", first, second)},
			{Kind: KindDocument, Category: Motive, Real: true, Text: g.motiveClue(first)},
			{Kind: KindDocument, Category: Motive, Real: true, Text: g.motiveClue(second)},
			{Kind: KindPhysical, Category: Weapon, Real: true, Text: fmt.Sprintf(
				"%s found with fingerprints from multiple people.", sol.Weapon)},
			{Kind: KindWitness, Category: Testimony, Real: true, Text: fmt.Sprintf(
				"Both %s and %s were seen near %s around the time of death.", first, second, sol.Room)},
		}
	}
	return []Payload{
		{Kind: KindDocument, Category: Motive, Real: true, Text: g.motiveClue(first)},
		{Kind: KindPhysical, Category: Weapon, Real: true, Text: fmt.Sprintf(
			"%s found here with %s's fingerprints.", sol.Weapon, first)},
		{Kind: KindWitness, Category: Testimony, Real: true, Text: fmt.Sprintf(
			"Witness saw %s near %s around the time of death.", first, sol.Room)},
		{Kind: KindDocument, Category: Opportunity, Real: true, Text: fmt.Sprintf(
			"Records show %s had access to %s that evening.", first, sol.Room)},
	}
}

func (g *Generator) motiveClue(suspect string) string {
	profile, _ := g.cfg.Suspect(suspect)
	details, _, _ := strings.Cut(profile.MotiveDetails, ".")
	return prose.Fill(random.Pick(g.src, motiveTemplates), map[string]string{
		"suspect": suspect,
		"stake":   prose.Pounds(profile.FinancialStake),
		"details": details,
	})
}
