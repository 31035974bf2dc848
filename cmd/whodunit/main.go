package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"example.com/whodunit/internal/cli"
	"example.com/whodunit/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Parse command-line flags
	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", "", "Load reference data from this YAML file instead of the built-in manor")
	seed := flag.Int64("seed", 0, "Seed for case generation (0 uses the clock)")
	flag.Parse()

	// 2. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 3. Load reference data
	var gameConfig *config.GameConfig
	if *configPath != "" {
		gameConfig, err = config.Load(*configPath)
	} else {
		gameConfig, err = config.Default()
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 4. Create the CLI, injecting the logger
	ui := cli.NewCLI(log)

	// 5. Run the application
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debugf("Seed: %d", *seed)
	if err := ui.Run(flag.Args(), gameConfig, rand.New(rand.NewSource(*seed))); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
