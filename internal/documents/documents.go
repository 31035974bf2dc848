// Package documents writes the letters, ledgers, diaries, notes and telegrams hidden around the manor.
package documents

import (
	"fmt"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/prose"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/rooms"
	"example.com/whodunit/internal/solution"

	"github.com/sirupsen/logrus"
)

type Kind string

const (
	Letter    Kind = "letter"
	Financial Kind = "financial"
	Diary     Kind = "diary"
	Note      Kind = "note"
	Telegram  Kind = "telegram"
)

// Document is one discoverable paper. From/To are set for letters and telegrams, Subject for
// financial papers and diaries.
type Document struct {
	Kind          Kind
	Title         string
	Body          string
	From, To      string
	Subject       string
	Amount        int
	Incriminating bool
	Room          string
}

type template struct {
	title    string
	body     string
	contents []string
	amounts  []int
}

var letters = []template{
	{
		title: "Sealed Letter",
		body: `My Dearest {to},

I write this in utmost secrecy. {content}

We must act before it is too late. Meet me at the usual place.

Forever yours,
{from}`,
		contents: []string{
			"The situation has become untenable. Our arrangement cannot continue under these circumstances.",
			"I have discovered what you truly intended. Do not think I will remain silent about this.",
			"The plan must proceed as discussed. There is no turning back now.",
			"I know what you did last summer. The evidence is in my possession.",
		},
	},
	{
		title: "Threatening Correspondence",
		body: `{to},

Consider this your final warning. {content}

You know what happens if you refuse.

- {from}`,
		contents: []string{
			"Pay what you owe or face the consequences.",
			"Your secrets are not as safe as you believe.",
			"I have contacts in the press who would find your story most interesting.",
			"The authorities would be very interested in certain documents I possess.",
		},
	},
}

var ledgers = []template{
	{
		title: "Bank Statement",
		body: `BARCLAYS BANK - CONFIDENTIAL

Account Holder: {suspect}
Date: November 1887

Recent Transactions:
- Withdrawal: {amount} (marked URGENT)
- Transfer to: {recipient}
- Balance: OVERDRAWN

Note: Account flagged for suspicious activity.`,
		amounts: []int{5000, 10000, 25000, 50000},
	},
	{
		title: "Debt Notice",
		body: `NOTICE OF DEBT COLLECTION

To: {suspect}

This serves as formal notice that your outstanding debt of {amount} to {creditor} is now due in full.

Failure to pay will result in legal action and seizure of assets.

FINAL WARNING`,
		amounts: []int{15000, 30000, 75000},
	},
}

var diary = template{
	title: "Personal Diary Entry",
	body: `November 12th, 1887

{content}

I fear what tomorrow may bring. The victim suspects nothing, but for how long?

Must destroy this entry after reading.`,
	contents: []string{
		"The arrangement is in place. By this time tomorrow, my problems will be solved permanently.",
		"Overheard a conversation today that changes everything. I now know the truth about the victim.",
		"The guilt weighs heavily, but what choice do I have? It is them or me.",
		"Met with my partner in this affair. We have agreed upon the method and the time.",
	},
}

var note = template{
	title: "Hastily Scribbled Note",
	body: `{content}

9:15 - {location}

DESTROY AFTER READING`,
	contents: []string{
		"It must be tonight. No more delays.",
		"The key is under the mat. You know what to do.",
		"Payment will be delivered after the deed is done.",
		"If you are reading this, it means I have succeeded.",
	},
}

var telegram = template{
	title: "Urgent Telegram",
	body: `TELEGRAM - PRIORITY DELIVERY

TO: {to}
FROM: {from}

{content} STOP

DESTROY UPON RECEIPT STOP`,
	contents: []string{
		"PLANS DISCOVERED STOP PROCEED IMMEDIATELY STOP",
		"PAYMENT RECEIVED STOP OBLIGATION FULFILLED STOP",
		"WITNESS ELIMINATED STOP PROCEED AS PLANNED STOP",
		"EVIDENCE SECURED STOP AWAIT FURTHER INSTRUCTIONS STOP",
	},
}

type Generator struct {
	cfg *config.GameConfig
	log logrus.FieldLogger
	src random.Source
}

func NewGenerator(cfg *config.GameConfig, log logrus.FieldLogger, src random.Source) *Generator {
	return &Generator{cfg: cfg, log: log, src: src}
}

// Generate places each document in its own room, never the murder room. Documents left over when
// the rooms run out are dropped.
func (g *Generator) Generate(sol solution.Solution) map[string]Document {
	var pool []Document
	if sol.IsConspiracy {
		pool = append(pool, g.letter(sol, true), g.telegram(sol, true))
	}
	pool = append(pool, g.diary(sol), g.note(sol), g.financial(sol, true))
	pool = append(pool, g.letter(sol, false), g.financial(sol, false))

	alloc := rooms.NewAllocator(g.cfg.Rooms, g.src)
	alloc.Claim(sol.Room)

	out := make(map[string]Document, len(pool))
	for i, doc := range random.Shuffle(g.src, pool) {
		room, ok := alloc.Next()
		if !ok {
			g.log.WithField("dropped", len(pool)-i).Warn("Ran out of rooms for documents")
			break
		}
		doc.Room = room
		out[room] = doc
	}
	return out
}

func (g *Generator) letter(sol solution.Solution, incriminating bool) Document {
	t := random.Pick(g.src, letters)
	innocents := g.cfg.Innocents(sol.Killers)

	var from, to string
	switch {
	case incriminating && sol.IsConspiracy:
		from, to = sol.Killers[0], sol.Killers[1]
	case incriminating:
		from, to = sol.Primary(), random.Pick(g.src, innocents)
	default:
		from = random.Pick(g.src, innocents)
		to = random.Pick(g.src, without(innocents, from))
	}

	return Document{
		Kind:          Letter,
		Title:         t.title,
		Body:          prose.Fill(t.body, map[string]string{"from": from, "to": to, "content": random.Pick(g.src, t.contents)}),
		From:          from,
		To:            to,
		Incriminating: incriminating,
	}
}

func (g *Generator) financial(sol solution.Solution, incriminating bool) Document {
	t := random.Pick(g.src, ledgers)
	subject := random.Pick(g.src, g.cfg.Innocents(sol.Killers))
	if incriminating {
		subject = random.Pick(g.src, sol.Killers)
	}
	amount := random.Pick(g.src, t.amounts)
	others := without(g.cfg.SuspectNames(), subject)

	return Document{
		Kind:  Financial,
		Title: t.title,
		Body: prose.Fill(t.body, map[string]string{
			"suspect":   subject,
			"amount":    prose.Pounds(amount),
			"creditor":  others[0],
			"recipient": random.Pick(g.src, others),
		}),
		Subject:       subject,
		Amount:        amount,
		Incriminating: incriminating,
	}
}

func (g *Generator) diary(sol solution.Solution) Document {
	owner := random.Pick(g.src, sol.Killers)
	return Document{
		Kind:          Diary,
		Title:         fmt.Sprintf("%s's %s", owner, diary.title),
		Body:          prose.Fill(diary.body, map[string]string{"content": random.Pick(g.src, diary.contents)}),
		Subject:       owner,
		Incriminating: true,
	}
}

func (g *Generator) note(sol solution.Solution) Document {
	return Document{
		Kind:          Note,
		Title:         note.title,
		Body:          prose.Fill(note.body, map[string]string{"content": random.Pick(g.src, note.contents), "location": sol.Room}),
		Incriminating: true,
	}
}

func (g *Generator) telegram(sol solution.Solution, incriminating bool) Document {
	innocents := g.cfg.Innocents(sol.Killers)

	var from, to string
	if incriminating {
		from = random.Pick(g.src, sol.Killers)
		if sol.IsConspiracy {
			to = without(sol.Killers, from)[0]
		} else {
			to = random.Pick(g.src, innocents)
		}
	} else {
		from = random.Pick(g.src, innocents)
		to = random.Pick(g.src, without(innocents, from))
	}

	return Document{
		Kind:          Telegram,
		Title:         telegram.title,
		Body:          prose.Fill(telegram.body, map[string]string{"from": from, "to": to, "content": random.Pick(g.src, telegram.contents)}),
		From:          from,
		To:            to,
		Incriminating: incriminating,
	}
}

// Summary is the one-line clue-log entry for a found document.
func Summary(d Document) string {
	switch d.Kind {
	case Letter, Telegram:
		return fmt.Sprintf("Found %s from %s to %s", d.Title, d.From, d.To)
	case Financial:
		return fmt.Sprintf("Found %s involving %s (%s)", d.Title, d.Subject, prose.Pounds(d.Amount))
	default:
		return "Found " + d.Title
	}
}

func without(names []string, name string) []string {
	var out []string
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
