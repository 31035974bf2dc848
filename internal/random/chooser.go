package random

import (
	"sort"
)

// Chooser selects a single option from a list. The headless investigation uses it to decide
// which room to search or which suspect to question, so a run can be random or predictable.
type Chooser interface {
	Choose(options []string) string
}

// --- Implementations ---

// RandomChooser picks an option uniformly from its source.
type RandomChooser struct {
	src Source
}

// NewRandomChooser creates a new random chooser.
func NewRandomChooser(src Source) *RandomChooser {
	return &RandomChooser{src: src}
}

func (r *RandomChooser) Choose(options []string) string {
	return Pick(r.src, options)
}

// DeterministicChooser always picks the first option alphabetically. This is used for
// predictable testing.
type DeterministicChooser struct{}

func (d *DeterministicChooser) Choose(options []string) string {
	if len(options) == 0 {
		return ""
	}
	sorted := append([]string(nil), options...)
	sort.Strings(sorted)
	return sorted[0]
}
