package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"petgame/internal/chase"
	"petgame/internal/config"
	"petgame/internal/game"
	"petgame/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in balance")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	exportDir := flag.String("export-dir", "", "directory for journal exports (default ~/.config/petgame/exports)")
	card := flag.Bool("card", false, "show the creature card for the seed and exit")
	preview := flag.Bool("preview", false, "print the creature card for the seed and exit")
	yard := flag.Bool("chase", false, "play in the full-screen yard with mouse collection")
	flag.Parse()

	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "petgame")
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("Starting with seed %d", *seed)

	switch {
	case *preview:
		if err := writePreview(os.Stdout, cfg, *seed, time.Now()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	case *card:
		s, err := game.New(cfg, rand.New(rand.NewSource(*seed)), time.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := ui.DisplayCard(s.Snapshot(time.Now()), cfg.Rebirth.NirvanaThreshold); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	s, err := game.New(cfg, rand.New(rand.NewSource(*seed)), time.Now())
	if err != nil {
		fmt.Printf("Error starting game: %v\n", err)
		os.Exit(1)
	}
	if *yard {
		if err := chase.Run(s); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(ui.NewModel(s, *exportDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

// loadConfig layers the YAML file and the environment over the defaults.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// writePreview prints the card and drawing of the first creature for seed.
func writePreview(w io.Writer, cfg config.Config, seed int64, now time.Time) error {
	s, err := game.New(cfg, rand.New(rand.NewSource(seed)), now)
	if err != nil {
		return err
	}
	snap := s.Snapshot(now)
	_, err = fmt.Fprintf(w, "%s\n%s\n", ui.RenderCard(snap, cfg.Rebirth.NirvanaThreshold),
		ui.RenderCreature(snap.Creature, snap.Mood, cfg.Creature.BodyRadius, 0))
	return err
}
