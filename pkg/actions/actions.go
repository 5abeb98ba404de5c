// Package actions implements the world-changing verbs. Each function
// returns an ordered list of feedback statements: one success
// statement when nothing blocks, otherwise one statement per blocking
// reason. A successful call commits exactly one undo record to the
// world's transaction log, so callers can attempt an action
// speculatively and roll it back.
package actions

import (
	"sort"

	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// Reachable validates that actor can physically reach target. It
// returns nil when reachable, otherwise the blocking statements.
//
// An entity is reachable when the actor is a player, the target's top
// location matches the actor's (a door counts as reachable from its
// far side too), and every container on the path from the target up
// to its top location is open. A locked container on the path is
// reported instead of, never alongside, its not-open state.
func Reachable(actor, target *world.Entity, verb sentence.Verb) []*sentence.Statement {
	var blocked []*sentence.Statement
	if !actor.Has(world.AttrPlayer) {
		blocked = append(blocked, sentence.Blocked(actor, verb, sentence.ReasonNotPlayer, actor))
		return blocked
	}
	actorTop := actor.TopLocation()
	targetTop := target.TopLocation()
	if actorTop == nil || targetTop == nil || actorTop != targetTop {
		farSide, _ := target.Prop(world.PropDoorTo).(*world.Entity)
		if farSide == nil || farSide != actorTop {
			blocked = append(blocked, sentence.Blocked(actor, verb, sentence.ReasonNotReachable, target))
			return blocked
		}
	}
	path := target.ContainmentPath()
	for _, c := range path {
		if c.Has(world.AttrLocked) {
			blocked = append(blocked, sentence.Blocked(actor, verb, sentence.ReasonLocked, c))
			return blocked
		}
	}
	for _, c := range path {
		if c.Has(world.AttrOpenable) && !c.Has(world.AttrOpen) {
			blocked = append(blocked, sentence.Blocked(actor, verb, sentence.ReasonNotOpen, c))
			return blocked
		}
	}
	return nil
}

// Go moves the actor one step in a compass direction. On success the
// actor's location becomes the neighboring place.
func Go(w *world.World, actor *world.Entity, dir string) []*sentence.Statement {
	var blocked []*sentence.Statement
	if !actor.Has(world.AttrPlayer) {
		return append(blocked, sentence.Blocked(actor, sentence.VerbGo, sentence.ReasonNotPlayer, actor))
	}
	from := actor.TopLocation()
	if from == nil {
		return append(blocked, sentence.Blocked(actor, sentence.VerbGo, sentence.ReasonNoExit, actor))
	}
	to := world.Neighbor(from, dir)
	if to == nil {
		return append(blocked, sentence.Blocked(actor, sentence.VerbGo, sentence.ReasonNoExit, from))
	}
	if door := from.Obstacles[dir]; door != nil {
		if door.Has(world.AttrLocked) {
			blocked = append(blocked, sentence.Blocked(actor, sentence.VerbGo, sentence.ReasonLocked, door))
		} else if !door.Has(world.AttrOpen) {
			blocked = append(blocked, sentence.Blocked(actor, sentence.VerbGo, sentence.ReasonNotOpen, door))
		}
	}
	if len(blocked) > 0 {
		return blocked
	}
	loc := world.Location{Prep: "in", Place: to}
	moveEntity(w, actor, loc)
	done := sentence.Done(actor, sentence.VerbGo)
	done.Dir = dir
	done.Loc = &loc
	return []*sentence.Statement{done}
}

// Get moves an item into the actor's inventory. statedLoc, when
// non-nil, is the location the request claimed the item to be at; a
// mismatch blocks the action.
func Get(w *world.World, actor, item *world.Entity, statedLoc *world.Location) []*sentence.Statement {
	var blocked []*sentence.Statement
	if item == actor {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbGet, sentence.ReasonSelf, item))
	}
	blocked = append(blocked, Reachable(actor, item, sentence.VerbGet)...)
	if item.Has(world.AttrStatic) {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbGet, sentence.ReasonStatic, item))
	}
	if loc, ok := item.Location(); ok && loc.Place == actor {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbGet, sentence.ReasonAlreadyCarried, item))
	}
	if statedLoc != nil && !atStatedLocation(item, statedLoc) {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbGet, sentence.ReasonWrongLocation, item))
	}
	if len(blocked) > 0 {
		return blocked
	}
	moveEntity(w, item, world.Location{Prep: "in", Place: actor})
	done := sentence.Done(actor, sentence.VerbGet)
	done.Object = item
	return []*sentence.Statement{done}
}

// Drop moves a carried item out of the actor's inventory. target
// defaults to the actor's own location; an explicit target must be a
// reachable open holder.
func Drop(w *world.World, actor, item *world.Entity, target *world.Location) []*sentence.Statement {
	var blocked []*sentence.Statement
	if loc, ok := item.Location(); !ok || loc.Place != actor {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbDrop, sentence.ReasonNotCarried, item))
	}
	if target == nil {
		if loc, ok := actor.Location(); ok {
			target = &world.Location{Prep: loc.Prep, Place: loc.Place}
		}
	} else {
		blocked = append(blocked, Reachable(actor, target.Place, sentence.VerbDrop)...)
		if target.Place.Has(world.AttrLocked) {
			blocked = append(blocked, sentence.Blocked(actor, sentence.VerbDrop, sentence.ReasonLocked, target.Place))
		} else if target.Prep == "in" && target.Place.Has(world.AttrOpenable) && !target.Place.Has(world.AttrOpen) {
			blocked = append(blocked, sentence.Blocked(actor, sentence.VerbDrop, sentence.ReasonNotOpen, target.Place))
		}
	}
	if len(blocked) > 0 {
		return blocked
	}
	moveEntity(w, item, *target)
	done := sentence.Done(actor, sentence.VerbDrop)
	done.Object = item
	done.Loc = target
	return []*sentence.Statement{done}
}

// Open sets the open attribute on an openable, unlocked, reachable
// entity.
func Open(w *world.World, actor, item *world.Entity) []*sentence.Statement {
	blocked := Reachable(actor, item, sentence.VerbOpen)
	if !item.Has(world.AttrOpenable) {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbOpen, sentence.ReasonNotOpenable, item))
	} else {
		if item.Has(world.AttrLocked) {
			blocked = append(blocked, sentence.Blocked(actor, sentence.VerbOpen, sentence.ReasonLocked, item))
		}
		if item.Has(world.AttrOpen) {
			blocked = append(blocked, sentence.Blocked(actor, sentence.VerbOpen, sentence.ReasonAlreadyOpen, item))
		}
	}
	if len(blocked) > 0 {
		return blocked
	}
	item.Attributes[world.AttrOpen] = struct{}{}
	w.Log.Push(func() {
		delete(item.Attributes, world.AttrOpen)
	})
	done := sentence.Done(actor, sentence.VerbOpen)
	done.Object = item
	return []*sentence.Statement{done}
}

// Close clears the open attribute on an openable, open, reachable
// entity.
func Close(w *world.World, actor, item *world.Entity) []*sentence.Statement {
	blocked := Reachable(actor, item, sentence.VerbClose)
	if !item.Has(world.AttrOpenable) {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbClose, sentence.ReasonNotOpenable, item))
	} else if !item.Has(world.AttrOpen) {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbClose, sentence.ReasonAlreadyClosed, item))
	}
	if len(blocked) > 0 {
		return blocked
	}
	delete(item.Attributes, world.AttrOpen)
	w.Log.Push(func() {
		item.Attributes[world.AttrOpen] = struct{}{}
	})
	done := sentence.Done(actor, sentence.VerbClose)
	done.Object = item
	return []*sentence.Statement{done}
}

// Look reveals an item's describing properties, attributes and, for an
// open (or non-openable) holder, its direct contents. It commits no
// mutation.
func Look(w *world.World, actor, item *world.Entity) []*sentence.Statement {
	if blocked := Reachable(actor, item, sentence.VerbLook); len(blocked) > 0 {
		return blocked
	}
	done := sentence.Done(actor, sentence.VerbLook)
	done.Object = item
	out := []*sentence.Statement{done}
	for _, key := range world.FeatureKeys {
		if v, ok := item.Properties[key]; ok {
			out = append(out, sentence.PropertyFact(nil, item, key, v, false))
		}
	}
	if loc, ok := item.Location(); ok && loc.Place != item {
		out = append(out, sentence.PropertyFact(nil, item, world.PropLocation, loc, false))
	}
	attrs := make([]string, 0, len(item.Attributes))
	for attr := range item.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		out = append(out, sentence.AttributeFact(nil, item, attr, false))
	}
	holder := item.Has(world.AttrContainer) || item.Has(world.AttrSupporter) || item.Has(world.AttrPlace)
	if holder && (!item.Has(world.AttrOpenable) || item.Has(world.AttrOpen)) {
		out = append(out, sentence.Contents(nil, item, append([]*world.Entity(nil), item.Objects...)))
		for _, member := range item.Objects {
			if loc, ok := member.Location(); ok {
				out = append(out, sentence.PropertyFact(nil, member, world.PropLocation, loc, false))
			}
		}
	}
	return out
}

// Change rewrites one describing property of a reachable item. The new
// value must already be a known value for the key, and the change must
// not leave the item indistinguishable from another object: the value
// is applied tentatively, the world is scanned for a description
// collision, and the mutation is rolled back before a conflict is
// reported.
func Change(w *world.World, actor, item *world.Entity, key string, val any) []*sentence.Statement {
	blocked := Reachable(actor, item, sentence.VerbChange)
	changeable := false
	for _, k := range world.ChangeableProps {
		if k == key {
			changeable = true
			break
		}
	}
	if !changeable {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbChange, sentence.ReasonNotChangeable, item))
	} else if !w.ValidValue(key, val) {
		blocked = append(blocked, sentence.Blocked(actor, sentence.VerbChange, sentence.ReasonUnknownValue, item))
	}
	if len(blocked) > 0 {
		return blocked
	}

	old, hadOld := item.Properties[key]
	item.Properties[key] = val
	if conflict := w.DescriptionConflict(item); conflict != nil {
		if hadOld {
			item.Properties[key] = old
		} else {
			delete(item.Properties, key)
		}
		return []*sentence.Statement{
			sentence.Blocked(actor, sentence.VerbChange, sentence.ReasonConflict, conflict),
		}
	}
	w.Log.Push(func() {
		if hadOld {
			item.Properties[key] = old
		} else {
			delete(item.Properties, key)
		}
	})
	done := sentence.Done(actor, sentence.VerbChange)
	done.Object = item
	done.PropKey = key
	done.PropVal = val
	if hadOld {
		done.OldVal = old
	}
	return []*sentence.Statement{done}
}

// atStatedLocation accepts either the item's exact location or, when
// the stated place is the item's top location, the looser "somewhere
// in that place" reading a request usually means.
func atStatedLocation(item *world.Entity, stated *world.Location) bool {
	if loc, ok := item.Location(); ok && loc.Prep == stated.Prep && loc.Place == stated.Place {
		return true
	}
	return stated.Prep == "in" && item.TopLocation() == stated.Place
}

// moveEntity relocates e and pushes a single undo record restoring
// both the previous location property and the previous position in
// the old holder's contents.
func moveEntity(w *world.World, e *world.Entity, to world.Location) {
	oldLoc, hadLoc := e.Location()
	oldIndex := -1
	if hadLoc && oldLoc.Place != nil && oldLoc.Place != e {
		for i, o := range oldLoc.Place.Objects {
			if o == e {
				oldIndex = i
				break
			}
		}
		oldLoc.Place.RemoveObject(e)
	}
	e.Properties[world.PropLocation] = to
	to.Place.AddObject(e)

	w.Log.Push(func() {
		to.Place.RemoveObject(e)
		if hadLoc {
			e.Properties[world.PropLocation] = oldLoc
			if oldIndex >= 0 && oldLoc.Place != nil && oldLoc.Place != e {
				objs := oldLoc.Place.Objects
				if oldIndex > len(objs) {
					oldIndex = len(objs)
				}
				objs = append(objs, nil)
				copy(objs[oldIndex+1:], objs[oldIndex:])
				objs[oldIndex] = e
				oldLoc.Place.Objects = objs
			}
		} else {
			delete(e.Properties, world.PropLocation)
		}
	})
}
