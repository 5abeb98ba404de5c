package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/dialogue-engine/internal/config"
	"github.com/jwebster45206/dialogue-engine/internal/worlds"
	"github.com/jwebster45206/dialogue-engine/pkg/dialogue"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

func main() {
	cfg := config.Load()

	// Engine logs would corrupt the terminal UI.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	var w *world.World
	var err error
	if cfg.WorldFile != "" {
		w, err = worlds.LoadFile(cfg.WorldFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load world file: %v\n", err)
			os.Exit(1)
		}
	} else {
		w = worlds.Farm()
	}

	if len(w.Players) < 2 {
		fmt.Fprintf(os.Stderr, "World needs at least two players for a conversation\n")
		os.Exit(1)
	}

	gen := dialogue.NewGenerator(w, cfg.Seed, log)
	gen.RevealWorld()

	user := w.Players[0]
	for _, p := range w.Players {
		if p.Has("main") {
			user = p
			break
		}
	}

	p := tea.NewProgram(NewConsoleUI(gen, w, user),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
