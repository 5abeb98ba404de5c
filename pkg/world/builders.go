package world

// EntitySpec collects the optional describing properties passed to the
// builders. Zero values are skipped.
type EntitySpec struct {
	Type     any // string or []string
	Size     any
	Color    string
	Material string
	Name     string
	Surname  string
	Nickname string
	Location *Location
}

func (s EntitySpec) apply(e *Entity) {
	setIfPresent := func(key string, v any) {
		switch val := v.(type) {
		case nil:
		case string:
			if val != "" {
				e.Properties[key] = val
			}
		default:
			e.Properties[key] = v
		}
	}
	setIfPresent(PropType, s.Type)
	setIfPresent(PropSize, s.Size)
	setIfPresent(PropColor, s.Color)
	setIfPresent(PropMaterial, s.Material)
	setIfPresent(PropName, s.Name)
	setIfPresent(PropSurname, s.Surname)
	setIfPresent(PropNickname, s.Nickname)
	if s.Location != nil {
		e.Properties[PropLocation] = *s.Location
		s.Location.Place.AddObject(e)
	}
}

// In is shorthand for a Location with the "in" preposition.
func In(place *Entity) *Location {
	return &Location{Prep: "in", Place: place}
}

// On is shorthand for a Location with the "on" preposition.
func On(place *Entity) *Location {
	return &Location{Prep: "on", Place: place}
}

// BuildEntity creates a concrete entity with the given describing
// properties and, when a location is given, files it under its holder.
func BuildEntity(w *World, key string, spec EntitySpec) *Entity {
	e := NewEntity(w, key)
	spec.apply(e)
	return e
}

// BuildPlayer creates an entity that can act in the environment.
func BuildPlayer(w *World, key string, spec EntitySpec) *Entity {
	p := BuildEntity(w, key, spec)
	p.Attributes[AttrPlayer] = struct{}{}
	return p
}

// BuildPlace creates a static, self-located space that holds objects.
func BuildPlace(w *World, key string, spec EntitySpec) *Entity {
	place := BuildEntity(w, key, spec)
	place.Properties[PropLocation] = Location{Prep: "in", Place: place}
	place.Attributes[AttrStatic] = struct{}{}
	place.Attributes[AttrPlace] = struct{}{}
	return place
}

// BuildDoor creates a static openable door. doorTo, when set, names
// the place on the far side.
func BuildDoor(w *World, key string, spec EntitySpec, doorTo *Entity) *Entity {
	spec.Type = "door"
	door := BuildEntity(w, key, spec)
	if doorTo != nil {
		door.Properties[PropDoorTo] = doorTo
	}
	door.Attributes[AttrOpenable] = struct{}{}
	door.Attributes[AttrStatic] = struct{}{}
	return door
}

// BuildTable creates a static hollow supporter.
func BuildTable(w *World, key string, spec EntitySpec) *Entity {
	spec.Type = "table"
	table := BuildEntity(w, key, spec)
	table.Attributes[AttrHollow] = struct{}{}
	table.Attributes[AttrSupporter] = struct{}{}
	table.Attributes[AttrStatic] = struct{}{}
	return table
}

// BuildWindow creates a static openable window.
func BuildWindow(w *World, key string, spec EntitySpec) *Entity {
	spec.Type = "window"
	window := BuildEntity(w, key, spec)
	window.Attributes[AttrStatic] = struct{}{}
	window.Attributes[AttrOpenable] = struct{}{}
	return window
}

// Connect links two places with a direction edge and its opposite,
// optionally gated by a door obstacle on both sides.
func Connect(from *Entity, dir string, to *Entity, obstacle *Entity) {
	from.Properties[dir] = to
	if opp, ok := Opposite[dir]; ok {
		to.Properties[opp] = from
	}
	if obstacle != nil {
		from.Obstacles[dir] = obstacle
		if opp, ok := Opposite[dir]; ok {
			to.Obstacles[opp] = obstacle
		}
	}
}
