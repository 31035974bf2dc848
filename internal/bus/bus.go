package bus

import (
	"example.com/whodunit/internal/chains"
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/events"
	"example.com/whodunit/internal/solution"
)

// Notice is a marker interface for everything published on the bus.
type Notice interface{}

// Listener is any component that wants to react to notices.
type Listener interface {
	HandleNotice(n Notice)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(n Notice)

func (f ListenerFunc) HandleNotice(n Notice) { f(n) }

// Manager dispatches notices to listeners synchronously, in subscription order.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Subscribe(l Listener) {
	m.listeners = append(m.listeners, l)
}

func (m *Manager) Publish(n Notice) {
	for _, l := range m.listeners {
		l.HandleNotice(n)
	}
}

// --- Notices ---

// CaseReady is published once a case is fully generated.
type CaseReady struct {
	CaseID     string
	Difficulty string
	Chains     int
}

type TurnStart struct {
	TurnsLeft int
	Room      string
}

// ClueFound carries every clue added to the investigator's log.
type ClueFound struct {
	Source string
	Room   string
	Text   string
}

// RoomSearched is published the first time a room is searched.
type RoomSearched struct {
	Room       string
	CrimeScene bool
}

// TraitFound carries a physical trait of the killer read off the evidence.
type TraitFound struct {
	Trait config.TraitCategory
	Value string
}

type WeaponExamined struct {
	Weapon     string
	Consistent bool
}

type Revelation struct {
	Revelation chains.Revelation
}

type EventFired struct {
	Event events.Event
	Logs  []string
}

// InvestigationOver is published when the investigator accuses or runs out of turns.
type InvestigationOver struct {
	Solution  solution.Solution
	Accused   bool
	Correct   bool
	TurnsUsed int
	Verdict   string
}
