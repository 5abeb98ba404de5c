package main

import (
	"fmt"
	"os"

	"github.com/jwebster45206/dialogue-engine/internal/worlds"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// validate loads a YAML world definition and checks it is usable for
// simulation: it parses, it has players and places, and every place
// can reach every other place.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	fmt.Printf("Validating %s...\n", filename)

	w, err := worlds.LoadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	var warnings []string
	if len(w.Players) == 0 {
		warnings = append(warnings, "world has no players")
	}
	places := w.Places()
	if len(places) == 0 {
		warnings = append(warnings, "world has no places")
	}
	for _, src := range places {
		for _, dst := range places {
			if src == dst {
				continue
			}
			if _, ok := w.Path(src, dst); !ok {
				warnings = append(warnings, fmt.Sprintf("no route from %s to %s", src.Key, dst.Key))
			}
		}
	}
	for _, p := range w.Players {
		if p.TopLocation() == nil {
			warnings = append(warnings, fmt.Sprintf("player %s has no location", world.DisplayName(p)))
		}
	}

	if len(warnings) > 0 {
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Fprintf(os.Stderr, "Validation failed: %d problems\n", len(warnings))
		os.Exit(1)
	}
	fmt.Printf("World file is valid! (%d entities, %d places, %d players)\n",
		len(w.Objects), len(places), len(w.Players))
}
