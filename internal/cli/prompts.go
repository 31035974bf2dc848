package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"example.com/whodunit/internal/chains"
	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/documents"
	"example.com/whodunit/internal/game"
	"example.com/whodunit/internal/notebook"
	"example.com/whodunit/internal/prose"
	"example.com/whodunit/internal/timeline"
	"example.com/whodunit/internal/witness"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/reflow/wordwrap"
	"github.com/schollz/closestmatch"
)

const wrapWidth = 64

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Debug *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Debug:  color.New(color.FgMagenta),
}

// SuspectColors maps suspect names to specific colors for display.
var SuspectColors = map[string]*color.Color{
	"Lady Blackwood":  color.New(color.FgMagenta),
	"Colonel Ashford": color.New(color.FgYellow),
	"Dr. Sterling":    color.New(color.FgBlue),
	"Miss Hartley":    color.New(color.FgGreen),
	"Lord Ravencrest": color.New(color.FgRed),
}

// Colorize returns a name as a colored string if it's a suspect.
func Colorize(name string) string {
	if c, ok := SuspectColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

func colorizeAll(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = Colorize(n)
	}
	return strings.Join(parts, " & ")
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	return t
}

// RenderDossier prints everything generated for a case, solution included.
func RenderDossier(c *game.Case, cfg *config.GameConfig) {
	C.Header.Printf("\n--- Case %s (%s) ---\n", c.ID, c.Difficulty.Label)
	C.Info.Printf("%d turns, %d interrogations, %d forensics uses\n",
		c.Difficulty.Turns, c.Difficulty.Interrogations, c.Difficulty.ForensicsUses)

	kind := "Solo killer"
	if c.Solution.IsConspiracy {
		kind = "CONSPIRACY"
	}
	C.No.Printf("Solution: %s with the %s in the %s (%s)\n",
		colorizeAll(c.Solution.Killers), c.Solution.Weapon, c.Solution.Room, kind)

	RenderSuspects(cfg)
	RenderNetwork(c)
	RenderEvidence(c)
	RenderDocuments(c.Documents)
	for _, name := range cfg.SuspectNames() {
		RenderTimeline(c.Timelines[name])
	}
	RenderWitnesses(cfg.SuspectNames(), c.Witnesses)
	RenderChains(c.Chains)
}

func RenderSuspects(cfg *config.GameConfig) {
	t := newTable("Suspects")
	t.AppendHeader(table.Row{"Name", "Occupation", "Motive", "Stake", "Location"})
	for _, s := range cfg.Suspects {
		t.AppendRow(table.Row{Colorize(s.Name), s.Occupation, s.MotiveStrength, prose.Pounds(s.FinancialStake), s.Location})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})
	t.Render()
}

func RenderNetwork(c *game.Case) {
	t := newTable("Relationships")
	t.AppendHeader(table.Row{"Between", "And", "Relationship", "Strength", "Conspiracy"})
	for _, e := range c.Network.Edges() {
		conspiracy := C.Maybe.Sprint("-")
		if e.Type.ConspiracyCompatible {
			conspiracy = C.Yes.Sprint("✔")
		}
		t.AppendRow(table.Row{Colorize(e.A), Colorize(e.B), e.Type.ID, e.Type.Strength, conspiracy})
	}
	t.Render()
}

func RenderEvidence(c *game.Case) {
	rooms := make([]string, 0, len(c.Evidence))
	for r := range c.Evidence {
		rooms = append(rooms, r)
	}
	sort.Strings(rooms)

	t := newTable("Evidence")
	t.AppendHeader(table.Row{"Room", "Category", "Real", "Clue"})
	for _, r := range rooms {
		p := c.Evidence[r]
		genuine := C.Maybe.Sprint("?")
		if p.Real {
			genuine = C.Yes.Sprint("✔")
		}
		t.AppendRow(table.Row{r, p.Category, genuine, wordwrap.String(p.Text, wrapWidth)})
	}
	t.Style().Options.SeparateRows = true
	t.Render()
}

func RenderDocuments(docs map[string]documents.Document) {
	if len(docs) == 0 {
		return
	}
	rooms := make([]string, 0, len(docs))
	for r := range docs {
		rooms = append(rooms, r)
	}
	sort.Strings(rooms)

	t := newTable("Documents")
	t.AppendHeader(table.Row{"Room", "Kind", "Title", "Incriminating"})
	for _, r := range rooms {
		d := docs[r]
		mark := ""
		if d.Incriminating {
			mark = C.No.Sprint("✔")
		}
		t.AppendRow(table.Row{r, d.Kind, d.Title, mark})
	}
	t.Render()
}

// RenderDocument prints the full body of one document.
func RenderDocument(d documents.Document) {
	C.Header.Printf("\n--- %s ---\n", d.Title)
	fmt.Println(wordwrap.String(d.Body, wrapWidth))
}

func RenderTimeline(tl timeline.Timeline) {
	if tl.Suspect == "" {
		return
	}
	t := newTable(fmt.Sprintf("%s's Evening", tl.Suspect))
	t.AppendHeader(table.Row{"Time", "Activity", "Alibi", "Witness"})
	for _, e := range tl.Entries {
		when := e.TimeLabel
		if e.IsCritical {
			when = C.Warn.Sprint(when + " *")
		}
		activity := e.Activity
		if e.Tell != "" {
			activity += " " + e.Tell
		}
		t.AppendRow(table.Row{when, wordwrap.String(activity, wrapWidth), strengthLabel(e.Strength), e.Witness})
	}
	s := timeline.Summarize(tl)
	footer := fmt.Sprintf("%d confirmed, %d partial, %d weak, %d none", s.Confirmed, s.Partial, s.Weak, s.None)
	if s.HasCriticalGap {
		footer += C.No.Sprint(" - no alibi for the murder window")
	}
	t.AppendFooter(table.Row{"", footer})
	t.Render()
}

func strengthLabel(s timeline.AlibiStrength) string {
	switch s {
	case timeline.Confirmed:
		return C.Yes.Sprint(s.Label())
	case timeline.Partial:
		return C.Maybe.Sprint(s.Label())
	default:
		return C.No.Sprint(s.Label())
	}
}

func RenderWitnesses(suspects []string, stmts map[string][]witness.Statement) {
	t := newTable("Witness Statements")
	t.AppendHeader(table.Row{"About", "Witness", "Reliability", "Statement"})
	for _, name := range suspects {
		for _, st := range stmts[name] {
			t.AppendRow(table.Row{Colorize(name), st.Witness, st.Reliability.Label(), wordwrap.String(st.Text, wrapWidth)})
		}
		if len(stmts[name]) > 0 {
			s := witness.Summarize(stmts[name])
			t.AppendRow(table.Row{"", "", "", C.Debug.Sprintf("%d for, %d against, %d neutral", s.Corroborating, s.Contradicting, s.Neutral)})
			t.AppendSeparator()
		}
	}
	t.Render()
}

func RenderChains(cs []chains.Chain) {
	t := newTable("Evidence Chains")
	t.AppendHeader(table.Row{"Chain", "Suspects", "Progress", "Next"})
	for _, ch := range cs {
		progress := fmt.Sprintf("%d/%d", ch.Progress, len(ch.Stages))
		next := ""
		if ch.Completed {
			progress = C.Yes.Sprint(progress)
			next = C.Yes.Sprint(ch.UnlockedRevelation)
		} else if st, ok := ch.CurrentStage(); ok {
			next = st.Description
		}
		t.AppendRow(table.Row{ch.Name, colorizeAll(ch.Suspects), progress, wordwrap.String(next, wrapWidth)})
	}
	s := chains.Summarize(cs)
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d/%d", s.Completed, s.Total), fmt.Sprintf("%d in progress", s.InProgress)})
	t.Render()
}

// RenderStatus prints the investigator's remaining resources and discovered traits.
func RenderStatus(inv *game.Investigation) {
	t := newTable("Status")
	t.AppendRows([]table.Row{
		{"Turns left", inv.TurnsLeft()},
		{"Interrogations left", inv.InterrogationsLeft()},
		{"Forensics uses left", inv.ForensicsLeft()},
		{"Free searches", inv.FreeSearches()},
		{"Clues found", len(inv.Clues())},
	})
	traits := inv.Traits()
	for _, cat := range config.TraitCategories {
		if v, ok := traits[cat]; ok {
			t.AppendRow(table.Row{"Killer's " + cat.Label(), C.Warn.Sprint(v)})
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

// RenderNotebook displays the investigator's notes in a formatted table.
func RenderNotebook(nb *notebook.Notebook) {
	t := newTable("Detective Notes")
	t.AppendHeader(table.Row{"ID", "Entry", "Type", "Solution"})
	id := 0
	for n, cat := range notebook.Categories {
		if n > 0 {
			t.AppendSeparator()
		}
		for _, name := range nb.Entries(cat) {
			id++
			t.AppendRow(table.Row{id, Colorize(name), string(cat), statusToSymbol(nb.Status(name))})
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

func statusToSymbol(status notebook.Status) string {
	switch status {
	case notebook.StatusYes:
		return C.Yes.Sprint("✔")
	case notebook.StatusNo:
		return C.No.Sprint("✖")
	default:
		return C.Maybe.Sprint("?")
	}
}

// --- Prompting and Usage ---

func (c *CLI) printUsage() {
	C.Header.Println("\n--- Whodunit ---")
	fmt.Println("Usage:")
	fmt.Println("  whodunit generate [difficulty]")
	fmt.Println("    Generate a case and print the full dossier, solution included.")
	fmt.Println("  whodunit simulate [difficulty]")
	fmt.Println("    Generate a case and let a headless detective investigate it.")
	fmt.Println("  whodunit investigate [difficulty]")
	fmt.Println("    Investigate a case yourself.")
	fmt.Println("\nDifficulties: EASY, NORMAL, HARD")
	fmt.Println("\nFlags:")
	fmt.Println("  -config path       Load reference data from a YAML file.")
	fmt.Println("  -seed n            Seed the case generator (0 picks one from the clock).")
	fmt.Println("  -loglevel debug    Enable detailed generation tracing.")
}

func (c *CLI) printInvestigateHelp() {
	C.Header.Println("\n--- Investigation Help ---")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"search <room>", "s", "Search a room for evidence."},
		{"interrogate <suspect>", "i", "Question a suspect and learn their timeline."},
		{"examine <weapon>", "e", "Run a forensic test on a weapon (needs the kit)."},
		{"clue <text>", "c", "Add your own note to the clue log."},
		{"log", "l", "Show every clue found so far."},
		{"chains", "ch", "Show evidence chain progress."},
		{"timeline <suspect>", "t", "Show an interrogated suspect's evening."},
		{"documents", "d", "Read the documents you have found."},
		{"status", "st", "Show remaining resources and known traits."},
		{"notes", "n", "Show what the evidence rules in and out."},
		{"accuse", "a", "Name the killer(s), weapon and room. Ends the game."},
		{"help", "h", "Show this help message."},
		{"quit", "q", "Give up the case."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}

func (c *CLI) promptForString(prompt string) (string, bool) {
	for {
		input, err := c.line.Prompt(prompt)
		if err != nil {
			return "", false
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			c.line.AppendHistory(trimmed)
			return trimmed, true
		}
	}
}

func (c *CLI) promptForSelection(prompt string, r *resolver) (string, bool) {
	for {
		C.Header.Println("\n" + prompt)
		for i, opt := range r.names {
			fmt.Printf(" %2d: %s\n", i+1, Colorize(opt))
		}
		input, ok := c.promptForString("Enter number or name: ")
		if !ok {
			return "", false
		}
		if name, ok := r.Resolve(input); ok {
			return name, true
		}
		C.Warn.Println("Invalid selection.")
	}
}

// resolver turns typed input into one of a fixed list of names: by 1-based number, exact match,
// unique prefix, or failing those the closest fuzzy match.
type resolver struct {
	names []string
	cm    *closestmatch.ClosestMatch
}

func newResolver(names []string) *resolver {
	return &resolver{names: names, cm: closestmatch.New(names, []int{2, 3})}
}

func (r *resolver) Resolve(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(r.names) {
			return r.names[n-1], true
		}
		return "", false
	}
	var prefixed []string
	for _, name := range r.names {
		if strings.EqualFold(name, input) {
			return name, true
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(input)) {
			prefixed = append(prefixed, name)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	if match := r.cm.Closest(input); match != "" {
		return match, true
	}
	return "", false
}
