package worlds

import (
	"strings"
	"testing"

	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

const sampleWorld = `
entities:
  - key: hall
    type: hall
    attributes: [place]
  - key: parlor
    type: [sitting, room]
    attributes: [place]
    exits:
      west: hall
    obstacles:
      west: door
  - key: door
    type: door
    material: wood
    location:
      place: hall
    attributes: [openable, static]
    door_to: parlor
  - key: ann
    type: person
    name: Ann
    surname: Mustermann
    nickname: honey
    attributes: [player, animate]
    location:
      place: hall
  - key: ball
    type: ball
    color: red
    size: [very, small]
    location:
      prep: in
      place: parlor
`

func TestLoad(t *testing.T) {
	w, err := Load([]byte(sampleWorld))
	if err != nil {
		t.Fatalf("Expected the sample world to load, got %v", err)
	}

	hall := w.Entity("hall")
	parlor := w.Entity("parlor")
	door := w.Entity("door")
	ann := w.Entity("ann")
	ball := w.Entity("ball")
	if hall == nil || parlor == nil || door == nil || ann == nil || ball == nil {
		t.Fatal("Expected all five entities to exist")
	}

	if got := parlor.Properties[world.PropType]; !world.SameValue(got, []string{"sitting", "room"}) {
		t.Errorf("Expected a list type, got %v", got)
	}
	if got := ball.Properties[world.PropSize]; !world.SameValue(got, []string{"very", "small"}) {
		t.Errorf("Expected a list size, got %v", got)
	}
	if ann.Properties[world.PropName] != "Ann" || ann.Properties[world.PropNickname] != "honey" {
		t.Error("Expected the player's names to be set")
	}

	if loc, ok := ball.Location(); !ok || loc.Place != parlor || loc.Prep != "in" {
		t.Errorf("Expected the ball in the parlor, got %v %v", loc, ok)
	}
	if loc, ok := ann.Location(); !ok || loc.Prep != "in" {
		t.Errorf("Expected a default preposition, got %v %v", loc, ok)
	}
	// Places contain themselves.
	if hall.TopLocation() != hall {
		t.Error("Expected the hall to be its own top location")
	}

	if parlor.Properties["west"] != hall {
		t.Error("Expected the west exit wired")
	}
	if parlor.Obstacles["west"] != door {
		t.Error("Expected the west obstacle wired")
	}
	if door.Properties[world.PropDoorTo] != parlor {
		t.Error("Expected door_to wired")
	}
	if !door.Has(world.AttrOpenable) || !door.Has(world.AttrStatic) {
		t.Error("Expected the door's attributes set")
	}

	// The loader reindexes, so description matching works right away.
	desc := world.NewAbstractEntity()
	desc.Properties[world.PropType] = "ball"
	desc.Properties[world.PropColor] = "red"
	if !ball.Matches(desc) {
		t.Error("Expected the loaded ball to match its description")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"not yaml", "entities: [", "failed to parse"},
		{"empty", "entities: []", "no entities"},
		{"missing key", "entities:\n  - type: ball", "has no key"},
		{"duplicate key", "entities:\n  - key: a\n  - key: a", "duplicate entity key"},
		{"bad type", "entities:\n  - key: a\n    type:\n      nested: map", "bad type"},
		{"unknown location", "entities:\n  - key: a\n    location:\n      place: nowhere", "unknown location"},
		{"invalid prep", "entities:\n  - key: a\n  - key: b\n    location:\n      prep: beside\n      place: a", "invalid preposition"},
		{"invalid direction", "entities:\n  - key: a\n    exits:\n      sideways: a", "invalid direction"},
		{"unknown exit", "entities:\n  - key: a\n    exits:\n      east: nowhere", "unknown exit target"},
		{"unknown obstacle", "entities:\n  - key: a\n    obstacles:\n      east: nowhere", "unknown obstacle"},
		{"unknown door_to", "entities:\n  - key: a\n    door_to: nowhere", "unknown door_to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestFarm(t *testing.T) {
	w := Farm()

	if got := len(w.Players); got != 5 {
		t.Errorf("Expected 5 players, got %d", got)
	}
	if got := len(w.Places()); got != 8 {
		t.Errorf("Expected 8 places, got %d", got)
	}

	// Every place is reachable from every other place.
	places := w.Places()
	for _, src := range places {
		for _, dst := range places {
			if _, ok := w.Path(src, dst); !ok {
				t.Errorf("Expected a route from %s to %s", src.Key, dst.Key)
			}
		}
	}

	// The nested containers are indexed down to the innermost box.
	innerBox := w.Entity("inner_box")
	if innerBox == nil || !innerBox.Has(world.AttrLocked) {
		t.Fatal("Expected a locked inner box")
	}
	if innerBox.TopLocation() != w.Entity("bedroom") {
		t.Error("Expected the inner box's top location in the bedroom")
	}
}
