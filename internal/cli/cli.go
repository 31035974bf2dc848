package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"example.com/whodunit/internal/config"
	"example.com/whodunit/internal/game"
	"example.com/whodunit/internal/notebook"
	"example.com/whodunit/internal/random"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, cfg *config.GameConfig, src random.Source) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}
	if len(args) > 2 {
		c.printUsage()
		return fmt.Errorf("too many arguments for '%s'", args[0])
	}
	difficulty := ""
	if len(args) == 2 {
		difficulty = args[1]
	}

	switch args[0] {
	case "generate":
		return c.runGenerate(cfg, difficulty, src)
	case "simulate":
		return c.runSimulation(cfg, difficulty, src)
	case "investigate":
		return c.runInvestigation(cfg, difficulty, src)
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func (c *CLI) runGenerate(cfg *config.GameConfig, difficulty string, src random.Source) error {
	kase, err := game.NewBuilder(cfg, c.log, src).WithDifficulty(difficulty).Build()
	if err != nil {
		return fmt.Errorf("failed to build case: %w", err)
	}
	RenderDossier(kase, cfg)
	return nil
}

func (c *CLI) runSimulation(cfg *config.GameConfig, difficulty string, src random.Source) error {
	C.Header.Println("--- Running Headless Investigation ---")

	// Create a builder and subscribe our renderer to it.
	builder := game.NewBuilder(cfg, c.log, src)
	builder.Bus().Subscribe(&InvestigationRenderer{})
	notes := notebook.New(cfg, c.log)
	builder.Bus().Subscribe(notes)

	kase, err := builder.WithDifficulty(difficulty).Build()
	if err != nil {
		return fmt.Errorf("failed to build case: %w", err)
	}

	inv := game.NewInvestigation(kase, cfg, builder.Bus(), c.log, src)
	inv.Run(random.NewRandomChooser(src))

	fmt.Println()
	RenderChains(inv.Chains())
	RenderStatus(inv)
	RenderNotebook(notes)
	return nil
}

func (c *CLI) runInvestigation(cfg *config.GameConfig, difficulty string, src random.Source) error {
	builder := game.NewBuilder(cfg, c.log, src)
	builder.Bus().Subscribe(&InvestigationRenderer{Quiet: true})
	notes := notebook.New(cfg, c.log)
	builder.Bus().Subscribe(notes)
	kase, err := builder.WithDifficulty(difficulty).Build()
	if err != nil {
		return fmt.Errorf("failed to build case: %w", err)
	}
	inv := game.NewInvestigation(kase, cfg, builder.Bus(), c.log, src)

	rooms := newResolver(cfg.Rooms)
	suspects := newResolver(cfg.SuspectNames())
	weapons := newResolver(cfg.WeaponNames())
	c.line.SetCompleter(completer(cfg))

	C.Info.Println("\nA body has been found at Ravencrest Manor. The storm has cut the house off until morning.")
	C.Info.Printf("You have %d turns, %d interrogations, and somewhere a forensics kit.\n",
		inv.TurnsLeft(), inv.InterrogationsLeft())
	c.printInvestigateHelp()

	for !inv.Over() {
		input, err := c.line.Prompt(fmt.Sprintf("(%d turns) ", inv.TurnsLeft()))
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("\nThe case goes cold. Goodbye!")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.line.AppendHistory(input)
		cmd, arg, _ := strings.Cut(input, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "search", "s":
			if room, ok := c.pick(arg, "Which room?", rooms); ok {
				c.report(inv.Search(room))
			}
		case "interrogate", "i":
			if suspect, ok := c.pick(arg, "Which suspect?", suspects); ok {
				c.report(inv.Interrogate(suspect))
			}
		case "examine", "e":
			if weapon, ok := c.pick(arg, "Which weapon?", weapons); ok {
				c.report(inv.Examine(weapon))
			}
		case "clue", "c":
			if arg == "" {
				C.Warn.Println("Usage: clue <text>")
				continue
			}
			c.report(inv.Note(arg))
		case "log", "l":
			for n, clue := range inv.Clues() {
				fmt.Printf(" %2d: %s\n", n+1, clue)
			}
		case "chains", "ch":
			RenderChains(inv.Chains())
		case "timeline", "t":
			suspect, ok := c.pick(arg, "Whose timeline?", suspects)
			if !ok {
				continue
			}
			tl, ok := inv.Timeline(suspect)
			if !ok {
				C.Warn.Printf("Interrogate %s first.\n", suspect)
				continue
			}
			RenderTimeline(tl)
		case "documents", "d":
			docs := inv.Documents()
			if len(docs) == 0 {
				C.Warn.Println("You have not found any documents yet.")
			}
			for _, d := range docs {
				RenderDocument(d)
			}
		case "status", "st":
			RenderStatus(inv)
		case "notes", "n":
			RenderNotebook(notes)
		case "accuse", "a":
			c.handleAccuse(inv, suspects, weapons, rooms)
		case "help", "h":
			c.printInvestigateHelp()
		case "quit", "q":
			C.Info.Println("You leave the manor with the case unsolved.")
			return nil
		default:
			C.Warn.Printf("Unknown command '%s'. Type 'help' for a list of commands.\n", cmd)
		}
	}
	return nil
}

// pick resolves arg against r, falling back to a numbered prompt when arg is empty or unknown.
func (c *CLI) pick(arg, prompt string, r *resolver) (string, bool) {
	if name, ok := r.Resolve(arg); ok {
		return name, true
	}
	if arg != "" {
		C.Warn.Printf("'%s' not recognised.\n", arg)
	}
	return c.promptForSelection(prompt, r)
}

func (c *CLI) report(err error) {
	if err != nil {
		C.Warn.Println(err)
	}
}

func (c *CLI) handleAccuse(inv *game.Investigation, suspects, weapons, rooms *resolver) {
	C.Header.Println("\n--- Accusation ---")
	first, ok := c.promptForSelection("Who is the killer?", suspects)
	if !ok {
		return
	}
	killers := []string{first}
	answer, ok := c.promptForString("Did they have an accomplice? (y/N): ")
	if ok && strings.HasPrefix(strings.ToLower(answer), "y") {
		second, ok := c.promptForSelection("Who was the accomplice?", suspects)
		if !ok {
			return
		}
		if second != first {
			killers = append(killers, second)
		}
	}
	weapon, ok := c.promptForSelection("With which weapon?", weapons)
	if !ok {
		return
	}
	room, ok := c.promptForSelection("In which room?", rooms)
	if !ok {
		return
	}
	if _, err := inv.Accuse(killers, weapon, room); err != nil {
		C.Warn.Println(err)
	}
}

func completer(cfg *config.GameConfig) liner.Completer {
	commands := []string{"search", "interrogate", "examine", "clue", "log", "chains", "timeline",
		"documents", "status", "notes", "accuse", "help", "quit"}
	args := map[string][]string{
		"search":      cfg.Rooms,
		"interrogate": cfg.SuspectNames(),
		"timeline":    cfg.SuspectNames(),
		"examine":     cfg.WeaponNames(),
	}
	return func(line string) []string {
		cmd, rest, spaced := strings.Cut(line, " ")
		var out []string
		if !spaced {
			for _, c := range commands {
				if strings.HasPrefix(c, strings.ToLower(line)) {
					out = append(out, c)
				}
			}
			return out
		}
		for _, name := range args[strings.ToLower(cmd)] {
			if strings.HasPrefix(strings.ToLower(name), strings.ToLower(rest)) {
				out = append(out, cmd+" "+name)
			}
		}
		return out
	}
}
