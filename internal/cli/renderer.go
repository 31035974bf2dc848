package cli

import (
	"example.com/whodunit/internal/bus"

	"github.com/muesli/reflow/wordwrap"
)

// InvestigationRenderer implements the bus.Listener interface to print an investigation to the console.
type InvestigationRenderer struct {
	// Quiet suppresses turn headers, for the interactive loop where the player already typed the room.
	Quiet bool
}

// HandleNotice is the central dispatcher for rendering notices.
func (r *InvestigationRenderer) HandleNotice(n bus.Notice) {
	switch notice := n.(type) {
	case bus.CaseReady:
		C.Header.Printf("--- Case %s ready (%s) ---\n", notice.CaseID, notice.Difficulty)
		C.Info.Printf("%d evidence chains to uncover.\n", notice.Chains)
	case bus.TurnStart:
		if !r.Quiet {
			C.Header.Printf("\n--- %d turns left: searching the %s ---\n", notice.TurnsLeft, notice.Room)
		}
	case bus.ClueFound:
		if notice.Text == "" {
			return
		}
		prefix := "Clue"
		if notice.Room != "" {
			prefix += " (" + notice.Room + ")"
		}
		C.Info.Printf("%s: %s\n", prefix, wordwrap.String(notice.Text, wrapWidth))
	case bus.Revelation:
		C.Yes.Printf("CHAIN COMPLETE: %s - %s\n", notice.Revelation.ChainName, notice.Revelation.Text)
		C.Yes.Printf("  Implicated: %s\n", colorizeAll(notice.Revelation.Suspects))
	case bus.EventFired:
		for _, line := range notice.Logs {
			C.Warn.Println(wordwrap.String(line, wrapWidth))
		}
	case bus.InvestigationOver:
		r.renderVerdict(notice)
	}
}

func (r *InvestigationRenderer) renderVerdict(n bus.InvestigationOver) {
	C.Header.Println("\n--- CASE CLOSED ---")
	switch {
	case n.Correct:
		C.Yes.Println(n.Verdict)
	case n.Accused:
		C.No.Println(n.Verdict)
	default:
		C.Warn.Println(n.Verdict)
	}
	C.Info.Printf("Turns used: %d\n", n.TurnsUsed)
}
