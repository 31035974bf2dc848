package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"example.com/whodunit/internal/bus"
	"example.com/whodunit/internal/chains"
	"example.com/whodunit/internal/clues"
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/documents"
	"example.com/whodunit/internal/evidence"
	"example.com/whodunit/internal/events"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/timeline"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var (
	ErrOver                = errors.New("the investigation is over")
	ErrAlreadyInterrogated = errors.New("suspect already interrogated")
	ErrNoInterrogations    = errors.New("no interrogations remaining")
	ErrUncooperative       = errors.New("suspect refuses to talk this turn")
	ErrNoForensicsKit      = errors.New("a forensics kit is needed to examine weapons")
	ErrForensicsExhausted  = errors.New("forensics kit exhausted")
	ErrAlreadyExamined     = errors.New("weapon already examined")
)

var (
	gossipRooms      = []string{"Servant Quarters", "Kitchen"}
	appointmentRooms = []string{"Study", "Master Bedroom", "Library"}
)

const (
	gossipChance      = 0.7
	appointmentChance = 0.6
	attackChance      = 0.3
)

// Verdict is the outcome of an investigation.
type Verdict struct {
	Accused bool
	Correct bool
	Text    string
}

// Investigation is the state of one detective working a case. The turn counter counts down from
// the difficulty's budget; every action except accusing spends a turn.
type Investigation struct {
	Case   *Case
	cfg    *config.GameConfig
	bus    *bus.Manager
	log    logrus.FieldLogger
	src    random.Source
	events *events.Manager
	chains *chains.Manager
	clues  *clues.Producer

	turn               int
	interrogationsLeft int
	forensicsLeft      int
	hasKit             bool
	freeSearches       int
	blocked            bool
	verdict            *Verdict

	searched     mapset.Set[string]
	interrogated mapset.Set[string]
	examined     mapset.Set[string]
	heard        mapset.Set[string]
	timelines    mapset.Set[string]

	clueLog     []string
	found       []documents.Document
	progress    []chains.Chain
	revelations []chains.Revelation
	triggered   []string
	traits      map[config.TraitCategory]string
}

// NewInvestigation starts an investigation of c. Notices go to b.
func NewInvestigation(c *Case, cfg *config.GameConfig, b *bus.Manager, log logrus.FieldLogger, src random.Source) *Investigation {
	return &Investigation{
		Case:               c,
		cfg:                cfg,
		bus:                b,
		log:                log,
		src:                src,
		events:             events.NewManager(cfg, src, c.Difficulty.Turns),
		chains:             chains.NewManager(src),
		clues:              clues.NewProducer(cfg, src),
		turn:               c.Difficulty.Turns,
		interrogationsLeft: c.Difficulty.Interrogations,
		searched:           mapset.New[string](),
		interrogated:       mapset.New[string](),
		examined:           mapset.New[string](),
		heard:              mapset.New[string](),
		timelines:          mapset.New[string](),
		progress:           append([]chains.Chain(nil), c.Chains...),
		traits:             make(map[config.TraitCategory]string),
	}
}

func (i *Investigation) TurnsLeft() int          { return i.turn }
func (i *Investigation) InterrogationsLeft() int { return i.interrogationsLeft }
func (i *Investigation) ForensicsLeft() int      { return i.forensicsLeft }
func (i *Investigation) HasForensicsKit() bool   { return i.hasKit }
func (i *Investigation) FreeSearches() int       { return i.freeSearches }
func (i *Investigation) Over() bool              { return i.verdict != nil }

// Verdict returns the outcome once the investigation is over.
func (i *Investigation) Verdict() (Verdict, bool) {
	if i.verdict == nil {
		return Verdict{}, false
	}
	return *i.verdict, true
}

// Clues returns the clue log in discovery order.
func (i *Investigation) Clues() []string {
	return append([]string(nil), i.clueLog...)
}

// Documents returns the documents found so far.
func (i *Investigation) Documents() []documents.Document {
	return append([]documents.Document(nil), i.found...)
}

func (i *Investigation) Chains() []chains.Chain {
	return append([]chains.Chain(nil), i.progress...)
}

func (i *Investigation) Revelations() []chains.Revelation {
	return append([]chains.Revelation(nil), i.revelations...)
}

func (i *Investigation) TriggeredEvents() []string {
	return append([]string(nil), i.triggered...)
}

// Traits returns the killer's physical traits discovered so far.
func (i *Investigation) Traits() map[config.TraitCategory]string {
	out := make(map[config.TraitCategory]string, len(i.traits))
	for k, v := range i.traits {
		out[k] = v
	}
	return out
}

// Timeline returns a suspect's timeline once an interrogation has revealed it.
func (i *Investigation) Timeline(suspect string) (timeline.Timeline, bool) {
	if !i.timelines.Has(suspect) {
		return timeline.Timeline{}, false
	}
	t, ok := i.Case.Timelines[suspect]
	return t, ok
}

func (i *Investigation) Unsearched() []string {
	return remaining(i.cfg.Rooms, i.searched)
}

func (i *Investigation) Uninterrogated() []string {
	return remaining(i.cfg.SuspectNames(), i.interrogated)
}

func (i *Investigation) Unexamined() []string {
	return remaining(i.cfg.WeaponNames(), i.examined)
}

func remaining(all []string, done mapset.Set[string]) []string {
	var out []string
	for _, s := range all {
		if !done.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

// Search examines a room: its evidence, any hidden document, and whatever the household lets slip.
// A random event may fire afterwards.
func (i *Investigation) Search(room string) error {
	if i.Over() {
		return ErrOver
	}
	if !i.cfg.IsRoom(room) {
		return fmt.Errorf("unknown room %q", room)
	}
	i.bus.Publish(bus.TurnStart{TurnsLeft: i.turn, Room: room})

	free := i.freeSearches > 0
	if free {
		i.freeSearches--
	}
	cost := 1

	if i.searched.Has(room) {
		i.log.Debugf("%s already searched", room)
	} else {
		i.searched.Put(room)
		p, ok := i.Case.Evidence[room]
		i.bus.Publish(bus.RoomSearched{Room: room, CrimeScene: ok && p.Category == evidence.CrimeScene})
		if ok {
			cost += i.collect(room, p)
		}
		if d, ok := i.Case.Documents[room]; ok {
			i.found = append(i.found, d)
			i.addClue("document", room, documents.Summary(d))
		}
		i.overhear(room)
	}

	if !free {
		i.spend(cost)
	} else if cost > 1 {
		i.spend(cost - 1)
	}
	if i.Over() {
		return nil
	}

	if ev, ok := i.events.CheckForEvent(i.turn, i.triggered); ok {
		i.applyEvent(ev)
	}
	i.checkTime()
	return nil
}

// collect records a room's evidence and returns any extra turns it costs.
func (i *Investigation) collect(room string, p evidence.Payload) int {
	switch p.Item {
	case evidence.ForensicsKit:
		i.hasKit = true
		i.forensicsLeft = i.Case.Difficulty.ForensicsUses
	case evidence.MasterKey:
		i.freeSearches++
	}
	if p.Category == evidence.Trait && p.TraitValue != "" {
		i.traits[p.Trait] = p.TraitValue
		i.bus.Publish(bus.TraitFound{Trait: p.Trait, Value: p.TraitValue})
	}
	i.addClue("evidence", room, p.Text)

	if p.Category == evidence.CrimeScene && random.Chance(i.src, attackChance) {
		i.log.Info("The killer attacks! You barely escape and lose a turn.")
		return 1
	}
	return 0
}

func (i *Investigation) overhear(room string) {
	names := i.cfg.SuspectNames()
	if contains(gossipRooms, room) && random.Chance(i.src, gossipChance) {
		suspect := random.Pick(i.src, names)
		var fresh []string
		for _, s := range i.Case.Witnesses[suspect] {
			if line := clues.Gossip(suspect, s); !i.heard.Has(line) {
				fresh = append(fresh, line)
			}
		}
		if line := random.Pick(i.src, fresh); line != "" {
			i.heard.Put(line)
			i.addClue("gossip", room, line)
		}
	}
	if contains(appointmentRooms, room) && random.Chance(i.src, appointmentChance) {
		suspect := random.Pick(i.src, names)
		var fresh []string
		for _, e := range i.Case.Timelines[suspect].Entries {
			if line := clues.AppointmentBook(suspect, e); !i.heard.Has(line) {
				fresh = append(fresh, line)
			}
		}
		if line := random.Pick(i.src, fresh); line != "" {
			i.heard.Put(line)
			i.addClue("appointment", room, line)
		}
	}
}

// Interrogate questions a suspect and reveals their full timeline.
func (i *Investigation) Interrogate(suspect string) error {
	if i.Over() {
		return ErrOver
	}
	if i.blocked {
		i.blocked = false
		return ErrUncooperative
	}
	if i.interrogated.Has(suspect) {
		return ErrAlreadyInterrogated
	}
	if i.interrogationsLeft <= 0 {
		return ErrNoInterrogations
	}
	testimony, err := i.clues.Testimony(suspect, i.Case.Solution)
	if err != nil {
		return err
	}

	i.interrogated.Put(suspect)
	i.timelines.Put(suspect)
	i.interrogationsLeft--
	i.log.Debugf("Interrogated %s (%d left)", suspect, i.interrogationsLeft)
	i.addClue("interrogation", "", testimony)
	i.spend(1)
	i.checkTime()
	return nil
}

// Examine runs a forensic analysis of a weapon. It needs the forensics kit.
func (i *Investigation) Examine(weapon string) error {
	if i.Over() {
		return ErrOver
	}
	if !i.hasKit {
		return ErrNoForensicsKit
	}
	if i.forensicsLeft <= 0 {
		return ErrForensicsExhausted
	}
	if i.examined.Has(weapon) {
		return ErrAlreadyExamined
	}
	analysis, err := i.clues.WeaponAnalysis(weapon, i.Case.Solution)
	if err != nil {
		return err
	}

	i.examined.Put(weapon)
	i.forensicsLeft--
	i.log.Debugf("Examined %s (%d uses left)", weapon, i.forensicsLeft)
	i.bus.Publish(bus.WeaponExamined{Weapon: weapon, Consistent: weapon == i.Case.Solution.Weapon})
	i.addClue("forensics", "", analysis)
	i.spend(1)
	i.checkTime()
	return nil
}

// Accuse ends the investigation. Accusing costs no turn.
func (i *Investigation) Accuse(killers []string, weapon, room string) (Verdict, error) {
	if i.Over() {
		return Verdict{}, ErrOver
	}
	sol := i.Case.Solution
	v := Verdict{Accused: true, Correct: sol.Matches(killers, weapon, room)}
	switch {
	case v.Correct && sol.IsConspiracy:
		v.Text = fmt.Sprintf("CORRECT! CONSPIRACY UNCOVERED! %s worked together with %s in the %s!",
			strings.Join(sol.Killers, " and "), weapon, room)
	case v.Correct:
		v.Text = fmt.Sprintf("CORRECT! %s with %s in the %s!", sol.Primary(), weapon, room)
	case sol.IsConspiracy:
		v.Text = fmt.Sprintf("WRONG! It was a CONSPIRACY! %s with %s in the %s",
			strings.Join(sol.Killers, " and "), sol.Weapon, sol.Room)
	default:
		v.Text = fmt.Sprintf("WRONG! The real answer was %s with %s in the %s", sol.Primary(), sol.Weapon, sol.Room)
	}
	i.finish(v)
	return v, nil
}

// Note adds a clue of the investigator's own to the log. It costs no turn but can still advance chains.
func (i *Investigation) Note(text string) error {
	if i.Over() {
		return ErrOver
	}
	i.addClue("note", "", text)
	return nil
}

func (i *Investigation) addClue(source, room, text string) {
	i.clueLog = append(i.clueLog, text)
	i.bus.Publish(bus.ClueFound{Source: source, Room: room, Text: text})

	var revs []chains.Revelation
	i.progress, revs = i.chains.CheckProgress(text, i.progress)
	for _, r := range revs {
		i.log.WithField("chain", r.ChainName).Debug("chain complete")
		i.revelations = append(i.revelations, r)
		i.bus.Publish(bus.Revelation{Revelation: r})
	}
}

func (i *Investigation) applyEvent(ev events.Event) {
	state := events.State{Turn: i.turn, InterrogationsLeft: i.interrogationsLeft, Clues: i.Clues()}
	out := i.events.ApplyEffect(ev, state, i.Case.Solution)
	i.triggered = append(i.triggered, ev.ID)
	i.bus.Publish(bus.EventFired{Event: ev, Logs: out.Logs})

	u := out.Updates
	if len(u.Clues) > len(i.clueLog) {
		for _, c := range u.Clues[len(i.clueLog):] {
			i.addClue("event", "", c)
		}
	}
	if u.Turn != nil {
		i.turn = *u.Turn
	}
	if u.InterrogationsLeft != nil {
		i.interrogationsLeft = *u.InterrogationsLeft
	}
	if u.BlockInterrogation {
		i.blocked = true
	}
}

func (i *Investigation) spend(n int) {
	i.turn -= n
	if i.turn < 0 {
		i.turn = 0
	}
}

func (i *Investigation) checkTime() {
	if i.turn > 0 || i.Over() {
		return
	}
	sol := i.Case.Solution
	i.finish(Verdict{Text: fmt.Sprintf("Out of time! The real answer was %s with %s in the %s",
		strings.Join(sol.Killers, " and "), sol.Weapon, sol.Room)})
}

func (i *Investigation) finish(v Verdict) {
	i.verdict = &v
	i.bus.Publish(bus.InvestigationOver{
		Solution:  i.Case.Solution,
		Accused:   v.Accused,
		Correct:   v.Correct,
		TurnsUsed: i.Case.Difficulty.Turns - i.turn,
		Verdict:   v.Text,
	})
}

// Deduction is what the evidence gathered so far still allows.
type Deduction struct {
	Suspects []string
	Weapons  []string
	Rooms    []string
	// Conspirators is set once the conspiracy chain has been revealed.
	Conspirators []string
}

// Deduce narrows the suspects by discovered traits, the weapons by forensics, and the room by
// the crime scene.
func (i *Investigation) Deduce() Deduction {
	var d Deduction
	for _, s := range i.cfg.Suspects {
		if i.traitsMatch(s.Traits) {
			d.Suspects = append(d.Suspects, s.Name)
		}
	}
	for _, r := range i.revelations {
		if strings.HasPrefix(r.Text, "CONSPIRACY") {
			d.Conspirators = append([]string(nil), r.Suspects...)
			sort.Strings(d.Conspirators)
		}
	}

	for _, w := range i.cfg.WeaponNames() {
		if !i.examined.Has(w) {
			d.Weapons = append(d.Weapons, w)
		} else if w == i.Case.Solution.Weapon {
			d.Weapons = []string{w}
			break
		}
	}

	if room, ok := i.Case.Evidence.CrimeScene(); ok && i.searched.Has(room) {
		d.Rooms = []string{room}
	} else {
		d.Rooms = i.Unsearched()
	}
	return d
}

func (i *Investigation) traitsMatch(t config.PhysicalTraits) bool {
	for cat, v := range i.traits {
		if t.Value(cat) != v {
			return false
		}
	}
	return true
}

// Certain reports whether a single accusation remains.
func (d Deduction) Certain() bool {
	suspectsKnown := len(d.Suspects) == 1 || len(d.Conspirators) > 0
	return suspectsKnown && len(d.Weapons) == 1 && len(d.Rooms) == 1
}

// Run plays the investigation headlessly: each turn it searches a room picked by chooser, then
// examines a weapon or interrogates a suspect while resources last. It accuses once the deduction
// is certain or only one turn remains.
func (i *Investigation) Run(chooser random.Chooser) Verdict {
	for !i.Over() && i.turn > 1 && !i.Deduce().Certain() {
		room := chooser.Choose(i.Unsearched())
		if room == "" {
			break
		}
		if err := i.Search(room); err != nil {
			i.log.WithError(err).Warn("search failed")
			break
		}
		if i.Over() || i.turn <= 1 {
			break
		}

		switch {
		case i.hasKit && i.forensicsLeft > 0 && len(i.Unexamined()) > 0 && len(i.Deduce().Weapons) > 1:
			err := i.Examine(chooser.Choose(i.Deduce().Weapons))
			if err != nil {
				i.log.WithError(err).Debug("examine skipped")
			}
		case i.interrogationsLeft > 0 && len(i.Uninterrogated()) > 0:
			err := i.Interrogate(chooser.Choose(i.Uninterrogated()))
			if err != nil {
				i.log.WithError(err).Debug("interrogation skipped")
			}
		}
	}

	if v, ok := i.Verdict(); ok {
		return v
	}
	d := i.Deduce()
	killers := d.Conspirators
	if len(killers) == 0 {
		candidates := d.Suspects
		if len(candidates) == 0 {
			candidates = i.cfg.SuspectNames()
		}
		killers = []string{chooser.Choose(candidates)}
	}
	v, _ := i.Accuse(killers, chooser.Choose(d.Weapons), chooser.Choose(d.Rooms))
	return v
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
