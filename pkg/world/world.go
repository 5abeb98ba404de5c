package world

import "sort"

// Directions players can move in, plus derived opposites.
var (
	Directions = []string{"north", "south", "east", "west",
		"northeast", "northwest", "southeast", "southwest", "up", "down"}

	Opposite = map[string]string{
		"north": "south", "south": "north",
		"east": "west", "west": "east",
		"northeast": "southwest", "southwest": "northeast",
		"northwest": "southeast", "southeast": "northwest",
		"up": "down", "down": "up",
	}

	// Prepositions are the valid location positions.
	Prepositions = []string{"in", "on", "under"}

	// ChangeableProps are the property keys the change action accepts.
	ChangeableProps = []string{PropColor, PropSize, PropNickname, PropSurname, PropName}
)

// Index holds the derived schema of a world: every distinct property
// key, the distinct values per key, and every distinct attribute.
// Rebuilt by Reindex after any schema-affecting mutation.
type Index struct {
	PropertyKeys   []string
	PropertyValues map[string][]any
	Attributes     []string
}

// World owns the concrete entity set, the single shared transaction
// log, the derived index, and the precomputed direction paths between
// places.
type World struct {
	Log     *TransactionLog
	Objects []*Entity
	Players []*Entity
	Index   Index

	byKey map[string]*Entity
	paths map[[2]*Entity][]string
}

func New() *World {
	return &World{
		Log:   NewTransactionLog(),
		byKey: make(map[string]*Entity),
		paths: make(map[[2]*Entity][]string),
	}
}

func (w *World) add(e *Entity) {
	w.Objects = append(w.Objects, e)
	if e.Key != "" {
		w.byKey[e.Key] = e
	}
}

// Entity looks up a concrete entity by its stable key.
func (w *World) Entity(key string) *Entity {
	return w.byKey[key]
}

// Places returns the entities marked as places, in insertion order.
func (w *World) Places() []*Entity {
	var places []*Entity
	for _, e := range w.Objects {
		if e.Has(AttrPlace) {
			places = append(places, e)
		}
	}
	return places
}

// Reindex recomputes the player list, the derived property/attribute
// index and the all-pairs direction paths. Call it once after building
// a world and again after any mutation that introduces a new key,
// value, attribute or direction link.
func (w *World) Reindex() {
	w.Players = w.Players[:0]
	keys := make(map[string]struct{})
	attrs := make(map[string]struct{})
	values := make(map[string][]any)

	for _, e := range w.Objects {
		if e.Has(AttrPlayer) {
			w.Players = append(w.Players, e)
		}
		for k, v := range e.Properties {
			keys[k] = struct{}{}
			found := false
			for _, existing := range values[k] {
				if SameValue(existing, v) {
					found = true
					break
				}
			}
			if !found {
				values[k] = append(values[k], v)
			}
		}
		for a := range e.Attributes {
			attrs[a] = struct{}{}
		}
	}

	w.Index = Index{
		PropertyKeys:   sortedKeys(keys),
		PropertyValues: values,
		Attributes:     sortedKeys(attrs),
	}
	w.computePaths()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidValue reports whether val is an already-indexed value for the
// given property key.
func (w *World) ValidValue(key string, val any) bool {
	for _, v := range w.Index.PropertyValues[key] {
		if SameValue(v, val) {
			return true
		}
	}
	return false
}

// Neighbor returns the place reached by walking dir from place, or nil.
func Neighbor(place *Entity, dir string) *Entity {
	next, _ := place.Properties[dir].(*Entity)
	return next
}

// computePaths runs a breadth-first search from every place, recording
// the shortest direction sequence to every other place. Obstacles are
// ignored here; a closed door blocks the walk, not the route.
func (w *World) computePaths() {
	w.paths = make(map[[2]*Entity][]string)
	places := w.Places()
	for _, src := range places {
		type node struct {
			place *Entity
			route []string
		}
		visited := map[*Entity]struct{}{src: {}}
		queue := []node{{place: src}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			w.paths[[2]*Entity{src, cur.place}] = cur.route
			for _, dir := range Directions {
				next := Neighbor(cur.place, dir)
				if next == nil {
					continue
				}
				if _, seen := visited[next]; seen {
					continue
				}
				visited[next] = struct{}{}
				route := make([]string, len(cur.route), len(cur.route)+1)
				copy(route, cur.route)
				queue = append(queue, node{place: next, route: append(route, dir)})
			}
		}
	}
}

// Path returns the shortest direction sequence from src to dst, and
// whether one exists. The empty path means src == dst.
func (w *World) Path(src, dst *Entity) ([]string, bool) {
	route, ok := w.paths[[2]*Entity{src, dst}]
	return route, ok
}

// Save returns a checkpoint of the world's transaction log.
func (w *World) Save() Checkpoint {
	return w.Log.Mark()
}

// Recover rolls the world back to a previously saved checkpoint.
func (w *World) Recover(cp Checkpoint) {
	w.Log.RevertTo(cp)
}
