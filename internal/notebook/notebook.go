package notebook

import (
	"strings"

	"example.com/whodunit/internal/bus"
	"example.com/whodunit/internal/config"

	"github.com/sirupsen/logrus"
)

// Status defines the knowledge state of a single entry.
type Status int

const (
	StatusMaybe Status = iota
	StatusYes
	StatusNo
)

// Category groups the entries of the notebook.
type Category string

const (
	Suspects Category = "Suspect"
	Weapons  Category = "Weapon"
	Rooms    Category = "Room"
)

// Categories lists the notebook sections in display order.
var Categories = []Category{Suspects, Weapons, Rooms}

// Notebook keeps the investigator's notes: for every suspect, weapon and room, whether it is
// part of the solution. It listens on the bus and deduces by elimination.
type Notebook struct {
	cfg       *config.GameConfig
	log       logrus.FieldLogger
	entries   map[Category][]string
	knowledge map[string]Status
	// conspiracy is set once a conspiracy revelation lands, after which several suspects may be Yes.
	conspiracy bool
}

func New(cfg *config.GameConfig, log logrus.FieldLogger) *Notebook {
	n := &Notebook{
		cfg: cfg,
		log: log,
		entries: map[Category][]string{
			Suspects: cfg.SuspectNames(),
			Weapons:  cfg.WeaponNames(),
			Rooms:    append([]string(nil), cfg.Rooms...),
		},
		knowledge: make(map[string]Status),
	}
	for _, cat := range Categories {
		for _, name := range n.entries[cat] {
			n.knowledge[name] = StatusMaybe
		}
	}
	return n
}

func (n *Notebook) Entries(cat Category) []string { return n.entries[cat] }

func (n *Notebook) Status(name string) Status { return n.knowledge[name] }

// Solved returns the entries marked Yes in cat.
func (n *Notebook) Solved(cat Category) []string {
	var out []string
	for _, name := range n.entries[cat] {
		if n.knowledge[name] == StatusYes {
			out = append(out, name)
		}
	}
	return out
}

// HandleNotice updates the notes from investigation notices.
func (n *Notebook) HandleNotice(notice bus.Notice) {
	switch e := notice.(type) {
	case bus.RoomSearched:
		if e.CrimeScene {
			n.mark(Rooms, e.Room)
		} else {
			n.rule(e.Room)
		}
	case bus.WeaponExamined:
		if e.Consistent {
			n.mark(Weapons, e.Weapon)
		} else {
			n.rule(e.Weapon)
		}
	case bus.TraitFound:
		for _, s := range n.cfg.Suspects {
			if s.Traits.Value(e.Trait) != e.Value {
				n.rule(s.Name)
			}
		}
	case bus.Revelation:
		if strings.HasPrefix(e.Revelation.Text, "CONSPIRACY") {
			n.conspiracy = true
			for _, s := range e.Revelation.Suspects {
				n.mark(Suspects, s)
			}
		}
	default:
		return
	}
	n.runDeductionLoop()
}

func (n *Notebook) runDeductionLoop() {
	for i := 0; i < len(Categories)+1; i++ {
		if !n.deduceByElimination() {
			return
		}
	}
}

// mark records name as part of the solution. Outside a conspiracy only one entry per category
// can be, so the rest are ruled out.
func (n *Notebook) mark(cat Category, name string) bool {
	if _, ok := n.knowledge[name]; !ok {
		n.log.Errorf("notebook asked to mark unknown entry '%s'", name)
		return false
	}
	if n.knowledge[name] == StatusYes {
		return false
	}
	n.log.Debugf("Noted that %s is part of the solution.", name)
	if cat != Suspects || !n.conspiracy {
		for _, other := range n.entries[cat] {
			if n.knowledge[other] != StatusYes {
				n.knowledge[other] = StatusNo
			}
		}
	}
	n.knowledge[name] = StatusYes
	return true
}

func (n *Notebook) rule(name string) {
	if n.knowledge[name] == StatusMaybe {
		n.knowledge[name] = StatusNo
	}
}

func (n *Notebook) deduceByElimination() bool {
	var changed bool
	for _, cat := range Categories {
		if len(n.Solved(cat)) > 0 {
			continue
		}
		var maybes []string
		for _, name := range n.entries[cat] {
			if n.knowledge[name] == StatusMaybe {
				maybes = append(maybes, name)
			}
		}
		if len(maybes) == 1 && n.mark(cat, maybes[0]) {
			changed = true
		}
	}
	return changed
}
