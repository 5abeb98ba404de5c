// Package world owns the mutable graph of simulated objects and the
// transaction log that makes every mutation reversible.
package world

import "reflect"

// Common property keys.
const (
	PropKey      = "key"
	PropType     = "type"
	PropSize     = "size"
	PropColor    = "color"
	PropMaterial = "material"
	PropName     = "name"
	PropSurname  = "surname"
	PropNickname = "nickname"
	PropLocation = "location"
	PropDoorTo   = "door_to"
)

// Common attribute keys.
const (
	AttrPlayer    = "player"
	AttrPlace     = "place"
	AttrStatic    = "static"
	AttrOpen      = "open"
	AttrOpenable  = "openable"
	AttrLocked    = "locked"
	AttrContainer = "container"
	AttrSupporter = "supporter"
	AttrHollow    = "hollow"
	AttrAbstract  = "abstract"
)

// Location places an entity in or on or under another entity. A place
// entity locates itself (Place == the entity) to terminate the chain.
type Location struct {
	Prep  string
	Place *Entity
}

// Entity is one node in the world graph. Properties map keys to
// arbitrary values (string, []string, *Entity or Location); Attributes
// are presence-only markers. Objects holds the entities located in, on
// or under this one, in insertion order.
//
// Seen is the epistemic shadow of the entity: what the dialogue
// participants have observed about it, maintained by the knowledge
// base and entirely independent of the ground-truth fields.
type Entity struct {
	Key        string
	Properties map[string]any
	Attributes map[string]struct{}
	Obstacles  map[string]*Entity
	Objects    []*Entity

	Seen SeenState
}

// SeenState records which facts about an entity have been revealed
// through committed utterances. A key never appears as both seen-true
// and seen-false for the same value.
type SeenState struct {
	Props    map[string]any
	PropsNeg map[string][]any
	Attrs    map[string]struct{}
	AttrsNeg map[string]struct{}
	Exists   map[string]struct{}
	Absent   map[string]struct{}
}

// NewEntity creates a concrete entity and registers it with the world.
func NewEntity(w *World, key string) *Entity {
	e := newBareEntity(key)
	w.add(e)
	return e
}

// NewAbstractEntity creates an entity that denotes a description
// ("a red ball") rather than a specific world object. It is not a
// member of any world.
func NewAbstractEntity() *Entity {
	e := newBareEntity("")
	e.Attributes[AttrAbstract] = struct{}{}
	return e
}

func newBareEntity(key string) *Entity {
	return &Entity{
		Key:        key,
		Properties: make(map[string]any),
		Attributes: make(map[string]struct{}),
		Obstacles:  make(map[string]*Entity),
		Seen: SeenState{
			Props:    make(map[string]any),
			PropsNeg: make(map[string][]any),
			Attrs:    make(map[string]struct{}),
			AttrsNeg: make(map[string]struct{}),
			Exists:   make(map[string]struct{}),
			Absent:   make(map[string]struct{}),
		},
	}
}

// IsAbstract reports whether the entity denotes a description rather
// than a concrete world object.
func (e *Entity) IsAbstract() bool {
	return e.Has(AttrAbstract)
}

// Has reports whether the attribute is present.
func (e *Entity) Has(attr string) bool {
	_, ok := e.Attributes[attr]
	return ok
}

// Prop returns a property value, or nil when absent.
func (e *Entity) Prop(key string) any {
	return e.Properties[key]
}

// Location returns the entity's location property.
func (e *Entity) Location() (Location, bool) {
	loc, ok := e.Properties[PropLocation].(Location)
	return loc, ok
}

// TopLocation follows location links until they self-loop, returning
// the outermost containing place. Returns nil when the entity has no
// location.
func (e *Entity) TopLocation() *Entity {
	cur := e
	for {
		loc, ok := cur.Location()
		if !ok || loc.Place == nil {
			return nil
		}
		if loc.Place == cur {
			return cur
		}
		cur = loc.Place
	}
}

// ContainmentPath returns the chain of containers from the entity's
// immediate holder up to (excluding) its top location.
func (e *Entity) ContainmentPath() []*Entity {
	var path []*Entity
	cur := e
	for {
		loc, ok := cur.Location()
		if !ok || loc.Place == nil || loc.Place == cur {
			return path
		}
		cur = loc.Place
		if top, ok := cur.Location(); ok && top.Place == cur {
			return path
		}
		path = append(path, cur)
	}
}

// Holds reports whether obj is a direct member of the entity's
// contents.
func (e *Entity) Holds(obj *Entity) bool {
	for _, o := range e.Objects {
		if o == obj {
			return true
		}
	}
	return false
}

// AddObject appends obj to the entity's contents if not present.
func (e *Entity) AddObject(obj *Entity) {
	if !e.Holds(obj) {
		e.Objects = append(e.Objects, obj)
	}
}

// RemoveObject deletes obj from the entity's contents, preserving
// order of the rest.
func (e *Entity) RemoveObject(obj *Entity) {
	for i, o := range e.Objects {
		if o == obj {
			e.Objects = append(e.Objects[:i], e.Objects[i+1:]...)
			return
		}
	}
}

// Matches reports whether the concrete entity is compatible with an
// abstract description: every property on the description (location
// aside) must hold, and every marker attribute must be present.
func (e *Entity) Matches(desc *Entity) bool {
	if desc == e {
		return true
	}
	for key, want := range desc.Properties {
		if key == PropLocation {
			continue
		}
		if !SameValue(e.Properties[key], want) {
			return false
		}
	}
	for attr := range desc.Attributes {
		if attr == AttrAbstract {
			continue
		}
		if !e.Has(attr) {
			return false
		}
	}
	return true
}

// SameValue compares two property values. Values are strings, string
// slices, locations or entity references.
func SameValue(a, b any) bool {
	if ea, ok := a.(*Entity); ok {
		eb, ok := b.(*Entity)
		return ok && ea == eb
	}
	if la, ok := a.(Location); ok {
		lb, ok := b.(Location)
		return ok && la.Prep == lb.Prep && la.Place == lb.Place
	}
	return reflect.DeepEqual(a, b)
}
