package chains

import "strings"

// Trigger is a clue category that can satisfy a chain stage.
type Trigger string

const (
	Witness       Trigger = "witness"
	Document      Trigger = "document"
	Financial     Trigger = "financial"
	Motive        Trigger = "motive"
	Testimony     Trigger = "testimony"
	CrimeScene    Trigger = "crime_scene"
	Forensic      Trigger = "forensic"
	Interrogation Trigger = "interrogation"
	Timeline      Trigger = "timeline"
)

// Rule maps a trigger to the lowercase substrings that indicate it.
type Rule struct {
	Trigger  Trigger
	Keywords []string
}

// DefaultRules is the keyword table clue text is classified with.
var DefaultRules = []Rule{
	{Witness, []string{"witness", "saw"}},
	{Document, []string{"document", "letter", "correspondence", "diary", "telegram", "scribbled"}},
	{Financial, []string{"financial", "debt", "£"}},
	{Motive, []string{"motive", "reason", "benefit", "inherit", "fortune", "stands to"}},
	{Testimony, []string{"alibi", "claims", "story"}},
	{CrimeScene, []string{"body", "crime scene", "wound"}},
	{Forensic, []string{"forensic", "examined", "consistent"}},
	{Interrogation, []string{"interrogated"}},
	{Timeline, []string{"timeline", "time", "9:"}},
}

// Classifier sorts free text into triggers by case-insensitive substring match.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns every trigger the text matches, in rule order.
func (c *Classifier) Classify(text string) []Trigger {
	lower := strings.ToLower(text)
	var out []Trigger
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, r.Trigger)
				break
			}
		}
	}
	return out
}
