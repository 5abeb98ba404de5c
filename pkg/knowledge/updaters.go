package knowledge

import (
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// seeProp records a property value as observed true, retracting any
// matching negative record. One undo record restores the prior state.
func (b *Base) seeProp(e *world.Entity, key string, val any) {
	oldVal, hadVal := e.Seen.Props[key]
	oldNeg := e.Seen.PropsNeg[key]

	e.Seen.Props[key] = val
	var keptNeg []any
	for _, v := range oldNeg {
		if !world.SameValue(v, val) {
			keptNeg = append(keptNeg, v)
		}
	}
	setOrDelete(e.Seen.PropsNeg, key, keptNeg)
	e.Seen.Exists[key] = struct{}{}

	b.log.Push(func() {
		if hadVal {
			e.Seen.Props[key] = oldVal
		} else {
			delete(e.Seen.Props, key)
			delete(e.Seen.Exists, key)
		}
		setOrDelete(e.Seen.PropsNeg, key, oldNeg)
	})
}

// seePropNeg records a value as observed false for a key, unless that
// exact value is already observed true.
func (b *Base) seePropNeg(e *world.Entity, key string, val any) {
	if cur, ok := e.Seen.Props[key]; ok && world.SameValue(cur, val) {
		return
	}
	for _, v := range e.Seen.PropsNeg[key] {
		if world.SameValue(v, val) {
			return
		}
	}
	e.Seen.PropsNeg[key] = append(e.Seen.PropsNeg[key], val)
	b.log.Push(func() {
		neg := e.Seen.PropsNeg[key]
		setOrDelete(e.Seen.PropsNeg, key, neg[:len(neg)-1])
	})
}

func (b *Base) seeAttr(e *world.Entity, attr string) {
	_, had := e.Seen.Attrs[attr]
	_, hadNeg := e.Seen.AttrsNeg[attr]
	e.Seen.Attrs[attr] = struct{}{}
	delete(e.Seen.AttrsNeg, attr)
	e.Seen.Exists[attr] = struct{}{}
	b.log.Push(func() {
		if !had {
			delete(e.Seen.Attrs, attr)
			delete(e.Seen.Exists, attr)
		}
		if hadNeg {
			e.Seen.AttrsNeg[attr] = struct{}{}
		}
	})
}

func (b *Base) seeAttrNeg(e *world.Entity, attr string) {
	_, had := e.Seen.AttrsNeg[attr]
	_, hadPos := e.Seen.Attrs[attr]
	e.Seen.AttrsNeg[attr] = struct{}{}
	delete(e.Seen.Attrs, attr)
	b.log.Push(func() {
		if !had {
			delete(e.Seen.AttrsNeg, attr)
		}
		if hadPos {
			e.Seen.Attrs[attr] = struct{}{}
		}
	})
}

func (b *Base) seeLink(place *world.Entity, dir string, to *world.Entity) {
	old := b.links[place][dir]
	if old == to {
		return
	}
	if b.links[place] == nil {
		b.links[place] = make(map[string]*world.Entity)
	}
	b.links[place][dir] = to
	b.log.Push(func() {
		if old == nil {
			delete(b.links[place], dir)
		} else {
			b.links[place][dir] = old
		}
	})
}

func setOrDelete(m map[string][]any, key string, vals []any) {
	if len(vals) == 0 {
		delete(m, key)
	} else {
		m[key] = vals
	}
}

func updateProperty(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormProperty || st.Object == nil {
		return false
	}
	if st.Negated {
		b.seePropNeg(st.Object, st.PropKey, st.PropVal)
	} else {
		b.seeProp(st.Object, st.PropKey, st.PropVal)
		if to, ok := st.PropVal.(*world.Entity); ok && isDirection(st.PropKey) {
			b.seeLink(st.Object, st.PropKey, to)
		}
	}
	return true
}

func updateAttribute(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormAttribute || st.Object == nil {
		return false
	}
	if st.Negated {
		b.seeAttrNeg(st.Object, st.Attr)
	} else {
		b.seeAttr(st.Object, st.Attr)
	}
	return true
}

// updateContents records coarse existence facts: the holder's contents
// have been observed, and each listed item is known to exist. Item
// locations arrive as separate property statements.
func updateContents(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormContents || st.Object == nil {
		return false
	}
	holder := st.Object
	if _, had := holder.Seen.Exists["contents"]; !had {
		holder.Seen.Exists["contents"] = struct{}{}
		b.log.Push(func() {
			delete(holder.Seen.Exists, "contents")
		})
	}
	return true
}

// updateDone folds a committed action outcome into visibility state.
func updateDone(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormDone {
		return false
	}
	switch st.Verb {
	case sentence.VerbGo:
		if st.Loc == nil {
			return true
		}
		// The traversed link is revealed along with the new location.
		if prev, ok := st.Actor.Seen.Props[world.PropLocation].(world.Location); ok && st.Dir != "" {
			from := prev.Place
			if from != nil {
				b.seeLink(from, st.Dir, st.Loc.Place)
				if opp, ok := world.Opposite[st.Dir]; ok {
					b.seeLink(st.Loc.Place, opp, from)
				}
			}
		}
		b.seeProp(st.Actor, world.PropLocation, *st.Loc)
	case sentence.VerbGet:
		if st.Object != nil {
			b.seeProp(st.Object, world.PropLocation, world.Location{Prep: "in", Place: st.Actor})
		}
	case sentence.VerbDrop:
		if st.Object != nil && st.Loc != nil {
			b.seeProp(st.Object, world.PropLocation, *st.Loc)
		}
	case sentence.VerbOpen:
		if st.Object != nil {
			b.seeAttr(st.Object, world.AttrOpen)
		}
	case sentence.VerbClose:
		if st.Object != nil {
			b.seeAttrNeg(st.Object, world.AttrOpen)
		}
	case sentence.VerbChange:
		if st.Object != nil {
			b.seeProp(st.Object, st.PropKey, st.PropVal)
			if st.OldVal != nil && !world.SameValue(st.OldVal, st.PropVal) {
				b.seePropNeg(st.Object, st.PropKey, st.OldVal)
			}
		}
	}
	return true
}

// updateBlocked learns from negative feedback: the reported reason
// reveals a fact about the entity it names.
func updateBlocked(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormBlocked || st.Cause == nil {
		return false
	}
	switch st.Reason {
	case sentence.ReasonLocked:
		b.seeAttr(st.Cause, world.AttrLocked)
	case sentence.ReasonNotOpen:
		b.seeAttrNeg(st.Cause, world.AttrOpen)
	case sentence.ReasonAlreadyOpen:
		b.seeAttr(st.Cause, world.AttrOpen)
	case sentence.ReasonAlreadyClosed:
		b.seeAttrNeg(st.Cause, world.AttrOpen)
	case sentence.ReasonStatic:
		b.seeAttr(st.Cause, world.AttrStatic)
	case sentence.ReasonNotOpenable:
		b.seeAttrNeg(st.Cause, world.AttrOpenable)
	}
	return true
}

// updateRequest folds the location a request states for its object, so
// the agent may act on where the user said the item is.
func updateRequest(b *Base, st *sentence.Statement) bool {
	if st.Form == sentence.FormAnd {
		for _, p := range st.Parts {
			updateRequest(b, p)
		}
		return true
	}
	if st.Form != sentence.FormRequest {
		return false
	}
	if st.Object != nil && st.Loc != nil && !st.Object.IsAbstract() {
		b.seeProp(st.Object, world.PropLocation, *st.Loc)
	}
	return true
}

func updatePermission(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormPermission || st.Actor == nil {
		return false
	}
	perms := b.permissions[st.Actor]
	old, had := perms[st.Verb]
	if perms == nil {
		perms = make(map[sentence.Verb]bool)
		b.permissions[st.Actor] = perms
	}
	perms[st.Verb] = !st.Negated
	actor, verb := st.Actor, st.Verb
	b.log.Push(func() {
		if had {
			b.permissions[actor][verb] = old
		} else {
			delete(b.permissions[actor], verb)
		}
	})
	return true
}

func updateValidKey(b *Base, st *sentence.Statement) bool {
	if st.Form != sentence.FormValidKey {
		return false
	}
	for _, v := range b.validValues[st.PropKey] {
		if world.SameValue(v, st.PropVal) {
			return true
		}
	}
	key := st.PropKey
	b.validValues[key] = append(b.validValues[key], st.PropVal)
	b.log.Push(func() {
		vals := b.validValues[key]
		if len(vals) <= 1 {
			delete(b.validValues, key)
		} else {
			b.validValues[key] = vals[:len(vals)-1]
		}
	})
	return true
}

func isDirection(key string) bool {
	for _, d := range world.Directions {
		if d == key {
			return true
		}
	}
	return false
}
