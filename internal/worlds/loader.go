package worlds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// EntityDef is one entity in a YAML world file.
type EntityDef struct {
	Key        string            `yaml:"key"`
	Type       yaml.Node         `yaml:"type"`
	Size       yaml.Node         `yaml:"size"`
	Color      string            `yaml:"color"`
	Material   string            `yaml:"material"`
	Name       string            `yaml:"name"`
	Surname    string            `yaml:"surname"`
	Nickname   string            `yaml:"nickname"`
	Attributes []string          `yaml:"attributes"`
	Location   *LocationDef      `yaml:"location"`
	Exits      map[string]string `yaml:"exits"`
	Obstacles  map[string]string `yaml:"obstacles"`
	DoorTo     string            `yaml:"door_to"`
}

// LocationDef places an entity in the world file.
type LocationDef struct {
	Prep  string `yaml:"prep"`
	Place string `yaml:"place"`
}

// WorldDef is the root of a YAML world file.
type WorldDef struct {
	Entities []EntityDef `yaml:"entities"`
}

// LoadFile reads and builds a world from a YAML definition file.
func LoadFile(path string) (*world.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return Load(data)
}

// Load builds a world from YAML. Entities are created in a first pass
// so later passes can resolve references by key; dangling references
// are errors.
func Load(data []byte) (*world.World, error) {
	var def WorldDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse world file: %w", err)
	}
	if len(def.Entities) == 0 {
		return nil, fmt.Errorf("world file defines no entities")
	}

	w := world.New()
	for i, ed := range def.Entities {
		if ed.Key == "" {
			return nil, fmt.Errorf("entity %d has no key", i)
		}
		if w.Entity(ed.Key) != nil {
			return nil, fmt.Errorf("duplicate entity key %q", ed.Key)
		}
		e := world.NewEntity(w, ed.Key)
		if v, err := scalarOrList(ed.Type); err != nil {
			return nil, fmt.Errorf("entity %q: bad type: %w", ed.Key, err)
		} else if v != nil {
			e.Properties[world.PropType] = v
		}
		if v, err := scalarOrList(ed.Size); err != nil {
			return nil, fmt.Errorf("entity %q: bad size: %w", ed.Key, err)
		} else if v != nil {
			e.Properties[world.PropSize] = v
		}
		setString(e, world.PropColor, ed.Color)
		setString(e, world.PropMaterial, ed.Material)
		setString(e, world.PropName, ed.Name)
		setString(e, world.PropSurname, ed.Surname)
		setString(e, world.PropNickname, ed.Nickname)
		for _, attr := range ed.Attributes {
			e.Attributes[attr] = struct{}{}
		}
	}

	for _, ed := range def.Entities {
		e := w.Entity(ed.Key)
		if ed.Location != nil {
			place := w.Entity(ed.Location.Place)
			if place == nil {
				return nil, fmt.Errorf("entity %q: unknown location %q", ed.Key, ed.Location.Place)
			}
			prep := ed.Location.Prep
			if prep == "" {
				prep = "in"
			}
			if !validPrep(prep) {
				return nil, fmt.Errorf("entity %q: invalid preposition %q", ed.Key, prep)
			}
			loc := world.Location{Prep: prep, Place: place}
			e.Properties[world.PropLocation] = loc
			place.AddObject(e)
		} else if e.Has(world.AttrPlace) {
			e.Properties[world.PropLocation] = world.Location{Prep: "in", Place: e}
		}
		for dir, key := range ed.Exits {
			if !validDirection(dir) {
				return nil, fmt.Errorf("entity %q: invalid direction %q", ed.Key, dir)
			}
			to := w.Entity(key)
			if to == nil {
				return nil, fmt.Errorf("entity %q: unknown exit target %q", ed.Key, key)
			}
			e.Properties[dir] = to
		}
		for dir, key := range ed.Obstacles {
			if !validDirection(dir) {
				return nil, fmt.Errorf("entity %q: invalid direction %q", ed.Key, dir)
			}
			door := w.Entity(key)
			if door == nil {
				return nil, fmt.Errorf("entity %q: unknown obstacle %q", ed.Key, key)
			}
			e.Obstacles[dir] = door
		}
		if ed.DoorTo != "" {
			to := w.Entity(ed.DoorTo)
			if to == nil {
				return nil, fmt.Errorf("entity %q: unknown door_to %q", ed.Key, ed.DoorTo)
			}
			e.Properties[world.PropDoorTo] = to
		}
	}

	w.Reindex()
	return w, nil
}

func setString(e *world.Entity, key, val string) {
	if val != "" {
		e.Properties[key] = val
	}
}

// scalarOrList accepts either a string or a list of strings.
func scalarOrList(n yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		var s string
		if err := n.Decode(&s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		return s, nil
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("expected string or list")
}

func validPrep(prep string) bool {
	for _, p := range world.Prepositions {
		if p == prep {
			return true
		}
	}
	return false
}

func validDirection(dir string) bool {
	for _, d := range world.Directions {
		if d == dir {
			return true
		}
	}
	return false
}
