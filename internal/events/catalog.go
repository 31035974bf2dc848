package events

// Type groups events by how they affect the investigation.
type Type string

const (
	Bonus    Type = "bonus"
	Obstacle Type = "obstacle"
	Neutral  Type = "neutral"
	Dramatic Type = "dramatic"
)

type Effect string

const (
	BonusClue          Effect = "bonus_clue"
	LoseTurn           Effect = "lose_turn"
	ExtraInterrogation Effect = "extra_interrogation"
	Confusion          Effect = "confusion"
	BlockInterrogation Effect = "block_interrogation"
	Atmosphere         Effect = "atmosphere"
)

// Event is one random happening. Each fires at most once per game.
type Event struct {
	ID           string
	Type         Type
	Title        string
	Description  string
	Effect       Effect
	Probability  float64
	ClueTemplate string
}

// Catalog lists every event that can fire.
var Catalog = []Event{
	{
		ID:           "witness_comes_forward",
		Type:         Bonus,
		Title:        "A Witness Comes Forward",
		Description:  "A nervous servant approaches you with information they were too scared to share before.",
		Effect:       BonusClue,
		Probability:  0.08,
		ClueTemplate: `Servant whispers: "I saw {suspect} leaving {room} looking agitated around the time of the murder."`,
	},
	{
		ID:           "hidden_compartment",
		Type:         Bonus,
		Title:        "Hidden Compartment Discovered",
		Description:  "You accidentally trigger a hidden compartment in the furniture.",
		Effect:       BonusClue,
		Probability:  0.06,
		ClueTemplate: "Hidden in a secret drawer: A note mentioning {suspect} and a sum of {amount}.",
	},
	{
		ID:          "extra_interrogation",
		Type:        Bonus,
		Title:       "Suspect Feels Talkative",
		Description: "One of the suspects seems eager to talk - perhaps they want to clear their name.",
		Effect:      ExtraInterrogation,
		Probability: 0.05,
	},
	{
		ID:          "power_outage",
		Type:        Obstacle,
		Title:       "Power Outage!",
		Description: "The lights flicker and go out. By the time they return, you've lost precious time.",
		Effect:      LoseTurn,
		Probability: 0.05,
	},
	{
		ID:           "evidence_tampered",
		Type:         Obstacle,
		Title:        "Evidence Tampered",
		Description:  "Someone has been in the room before you. Some evidence may have been disturbed.",
		Effect:       Confusion,
		Probability:  0.04,
		ClueTemplate: "WARNING: This room shows signs of tampering. Evidence reliability uncertain.",
	},
	{
		ID:          "suspect_uncooperative",
		Type:        Obstacle,
		Title:       "Suspect Clams Up",
		Description: "The suspect you were about to question has suddenly become uncooperative.",
		Effect:      BlockInterrogation,
		Probability: 0.04,
	},
	{
		ID:           "gossip_overheard",
		Type:         Neutral,
		Title:        "Gossip Overheard",
		Description:  "You overhear servants gossiping in the hallway.",
		Effect:       BonusClue,
		Probability:  0.08,
		ClueTemplate: `Overheard gossip: "Everyone knows {suspect1} and {suspect2} have been at odds over {reason}."`,
	},
	{
		ID:           "newspaper_clipping",
		Type:         Neutral,
		Title:        "Old Newspaper Found",
		Description:  "An old newspaper clipping falls from behind a painting.",
		Effect:       BonusClue,
		Probability:  0.06,
		ClueTemplate: "Newspaper clipping from 6 months ago mentions {suspect} in connection with a financial scandal.",
	},
	{
		ID:          "storm_intensifies",
		Type:        Dramatic,
		Title:       "Storm Intensifies",
		Description: "Thunder crashes outside as the storm grows more violent. No one is leaving tonight.",
		Effect:      Atmosphere,
		Probability: 0.06,
	},
	{
		ID:          "clock_chimes",
		Type:        Dramatic,
		Title:       "The Clock Strikes",
		Description: "The grandfather clock strikes the hour, reminding everyone that time is running out.",
		Effect:      Atmosphere,
		Probability: 0.05,
	},
	{
		ID:          "suspicious_sound",
		Type:        Dramatic,
		Title:       "Suspicious Sound",
		Description: "A crash echoes from somewhere in the manor. When you investigate, nothing seems amiss.",
		Effect:      Atmosphere,
		Probability: 0.05,
	},
}

var conflictReasons = []string{
	"money matters",
	"a romantic entanglement",
	"a business deal gone wrong",
	"family inheritance",
	"professional rivalry",
	"a past betrayal",
}

var hiddenSums = []int{5000, 10000, 25000, 50000}
