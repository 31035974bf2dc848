// Package clues writes the clue-log lines produced by interrogating suspects, examining weapons and
// overhearing the household.
package clues

import (
	"fmt"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/random"
	"example.com/whodunit/internal/solution"
	"example.com/whodunit/internal/timeline"
	"example.com/whodunit/internal/witness"
)

var (
	weakIndicators = []string{
		"Story has some inconsistencies.",
		"Details seem vague when pressed.",
		"Hesitated when providing details.",
		"Changed minor details during questioning.",
		"Became defensive when questioned closely.",
		"Could not provide corroborating witnesses.",
	}
	solidIndicators = []string{
		"Story is consistent and detailed.",
		"Provided specific times and locations.",
		"Alibi confirmed by independent witness.",
		"Confident and forthcoming with details.",
		"Timeline checks out with other evidence.",
		"Multiple people can verify whereabouts.",
	}
)

const (
	consistent = "Forensic evidence is CONSISTENT with this weapon."
	rulesOut   = "Forensic evidence RULES OUT this weapon."
)

// Producer renders clue text against the case's reference data.
type Producer struct {
	cfg *config.GameConfig
	src random.Source
}

func NewProducer(cfg *config.GameConfig, src random.Source) *Producer {
	return &Producer{cfg: cfg, src: src}
}

// AlibiQuality is a demeanour note: shaky for a killer, solid for anyone else.
func (p *Producer) AlibiQuality(isKiller bool) string {
	if isKiller {
		return random.Pick(p.src, weakIndicators)
	}
	return random.Pick(p.src, solidIndicators)
}

// Testimony is what an interrogation adds to the clue log.
func (p *Producer) Testimony(suspect string, sol solution.Solution) (string, error) {
	s, ok := p.cfg.Suspect(suspect)
	if !ok {
		return "", fmt.Errorf("unknown suspect %q", suspect)
	}
	quality := p.AlibiQuality(sol.IsKiller(suspect))
	return fmt.Sprintf("Interrogated %s: \"%s\" - %s Motive: %s", s.Name, s.Alibi, quality, s.Motive), nil
}

// WeaponAnalysis is what a forensics examination of weapon adds to the clue log.
func (p *Producer) WeaponAnalysis(weapon string, sol solution.Solution) (string, error) {
	w, ok := p.cfg.Weapon(weapon)
	if !ok {
		return "", fmt.Errorf("unknown weapon %q", weapon)
	}
	verdict := rulesOut
	if w.Name == sol.Weapon {
		verdict = consistent
	}
	return fmt.Sprintf("%s: %s %s", w.Name, w.Forensics, verdict), nil
}

func AppointmentBook(suspect string, e timeline.Entry) string {
	return fmt.Sprintf("Appointment book: %s - %s at %s", suspect, e.Activity, e.TimeLabel)
}

func Gossip(suspect string, s witness.Statement) string {
	return fmt.Sprintf("Overheard staff gossip about %s: \"%s\"", suspect, s.Text)
}
