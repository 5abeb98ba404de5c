// Package sentence defines the structured utterance records exchanged
// between policies, the action layer and the knowledge base. Requests
// and statements share one shape: a verb tag plus named roles. Nothing
// in the core parses free text.
package sentence

import "github.com/jwebster45206/dialogue-engine/pkg/world"

// Verb tags the action a statement is about.
type Verb string

const (
	VerbGo     Verb = "go"
	VerbGet    Verb = "get"
	VerbDrop   Verb = "drop"
	VerbOpen   Verb = "open"
	VerbClose  Verb = "close"
	VerbLook   Verb = "look"
	VerbChange Verb = "change"
	VerbSay    Verb = "say"
)

// Form is the recognized shape of a statement. The knowledge base
// dispatches on it; unrecognized combinations are ignored there.
type Form string

const (
	// FormRequest asks an actor to perform a verb.
	FormRequest Form = "request"
	// FormAnd is an ordered compound of sub-requests.
	FormAnd Form = "and"
	// FormQuestion asks whether a property or attribute holds.
	FormQuestion Form = "question"
	// FormAttempt reports an actor trying a verb.
	FormAttempt Form = "attempt"
	// FormDone reports a committed action outcome.
	FormDone Form = "done"
	// FormBlocked reports a blocked action and its reason.
	FormBlocked Form = "blocked"
	// FormProperty asserts (or denies) a property value.
	FormProperty Form = "property"
	// FormAttribute asserts (or denies) a marker attribute.
	FormAttribute Form = "attribute"
	// FormContents lists an entity's direct contents.
	FormContents Form = "contents"
	// FormPermission grants or denies an actor a verb.
	FormPermission Form = "permission"
	// FormValidKey asserts a value is valid for a property key.
	FormValidKey Form = "validkey"
	// FormSay carries a literal note (placeholders, fallbacks).
	FormSay Form = "say"
)

// Reason classifies why an action was blocked.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonNotPlayer      Reason = "not a player"
	ReasonNotReachable   Reason = "not reachable"
	ReasonWrongLocation  Reason = "not at the stated location"
	ReasonNotOpen        Reason = "not open"
	ReasonLocked         Reason = "locked"
	ReasonNotOpenable    Reason = "not openable"
	ReasonAlreadyOpen    Reason = "already open"
	ReasonAlreadyClosed  Reason = "already closed"
	ReasonStatic         Reason = "static"
	ReasonNotCarried     Reason = "not carried"
	ReasonAlreadyCarried Reason = "already carried"
	ReasonSelf           Reason = "self-reference"
	ReasonNoExit         Reason = "no exit that way"
	ReasonNotChangeable  Reason = "not a changeable property"
	ReasonUnknownValue   Reason = "not a known value"
	ReasonConflict       Reason = "conflicting"
)

// Statement is one immutable utterance record. Role fields not used by
// a form stay zero. Speaker nil means the environment uttered it.
type Statement struct {
	Form    Form
	Verb    Verb
	Speaker *world.Entity
	Actor   *world.Entity
	Object  *world.Entity
	Dir     string
	Loc     *world.Location
	PropKey string
	PropVal any
	OldVal  any
	Attr    string
	Negated bool
	Reason  Reason
	Cause   *world.Entity
	Items   []*world.Entity
	Parts   []*Statement
	Text    string

	// Untrusted marks statements from non-rule-based speakers. The
	// knowledge base never folds them into visibility state.
	Untrusted bool
}

// Equal compares the semantic roles of two statements. Trust is not a
// role and is ignored.
func (s *Statement) Equal(o *Statement) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Form != o.Form || s.Verb != o.Verb || s.Speaker != o.Speaker ||
		s.Actor != o.Actor || s.Object != o.Object || s.Dir != o.Dir ||
		s.PropKey != o.PropKey || !world.SameValue(s.PropVal, o.PropVal) ||
		!world.SameValue(s.OldVal, o.OldVal) || s.Attr != o.Attr ||
		s.Negated != o.Negated || s.Reason != o.Reason || s.Cause != o.Cause ||
		s.Text != o.Text {
		return false
	}
	if (s.Loc == nil) != (o.Loc == nil) {
		return false
	}
	if s.Loc != nil && (s.Loc.Prep != o.Loc.Prep || s.Loc.Place != o.Loc.Place) {
		return false
	}
	if len(s.Items) != len(o.Items) || len(s.Parts) != len(o.Parts) {
		return false
	}
	for i := range s.Items {
		if s.Items[i] != o.Items[i] {
			return false
		}
	}
	for i := range s.Parts {
		if !s.Parts[i].Equal(o.Parts[i]) {
			return false
		}
	}
	return true
}

// Request builds a user request for an actor to perform a verb.
func Request(speaker, actor *world.Entity, verb Verb) *Statement {
	return &Statement{Form: FormRequest, Verb: verb, Speaker: speaker, Actor: actor}
}

// WithObject sets the object role.
func (s *Statement) WithObject(obj *world.Entity) *Statement {
	s.Object = obj
	return s
}

// WithDir sets the direction role.
func (s *Statement) WithDir(dir string) *Statement {
	s.Dir = dir
	return s
}

// WithLoc sets the location role.
func (s *Statement) WithLoc(loc *world.Location) *Statement {
	s.Loc = loc
	return s
}

// WithChange sets the property key and new value roles.
func (s *Statement) WithChange(key string, val any) *Statement {
	s.PropKey = key
	s.PropVal = val
	return s
}

// And builds an ordered compound request.
func And(speaker *world.Entity, parts ...*Statement) *Statement {
	return &Statement{Form: FormAnd, Speaker: speaker, Parts: parts}
}

// Attempt reports actor trying the action described by s (a request
// shape reused as the action payload).
func Attempt(actor *world.Entity, action *Statement) *Statement {
	return &Statement{
		Form:    FormAttempt,
		Verb:    action.Verb,
		Speaker: actor,
		Actor:   actor,
		Object:  action.Object,
		Dir:     action.Dir,
		Loc:     action.Loc,
		PropKey: action.PropKey,
		PropVal: action.PropVal,
	}
}

// Done reports a committed action outcome.
func Done(actor *world.Entity, verb Verb) *Statement {
	return &Statement{Form: FormDone, Verb: verb, Actor: actor}
}

// Blocked reports an action blocked for a reason, optionally naming
// the entity the reason is about.
func Blocked(actor *world.Entity, verb Verb, reason Reason, cause *world.Entity) *Statement {
	return &Statement{Form: FormBlocked, Verb: verb, Actor: actor, Reason: reason, Cause: cause}
}

// PropertyFact asserts (negated: denies) that obj's key has value val.
func PropertyFact(speaker, obj *world.Entity, key string, val any, negated bool) *Statement {
	return &Statement{Form: FormProperty, Speaker: speaker, Object: obj,
		PropKey: key, PropVal: val, Negated: negated}
}

// AttributeFact asserts (negated: denies) that obj carries attr.
func AttributeFact(speaker, obj *world.Entity, attr string, negated bool) *Statement {
	return &Statement{Form: FormAttribute, Speaker: speaker, Object: obj,
		Attr: attr, Negated: negated}
}

// Contents lists obj's direct contents.
func Contents(speaker, obj *world.Entity, items []*world.Entity) *Statement {
	return &Statement{Form: FormContents, Speaker: speaker, Object: obj, Items: items}
}

// Permission grants (negated: denies) actor the verb.
func Permission(speaker, actor *world.Entity, verb Verb, negated bool) *Statement {
	return &Statement{Form: FormPermission, Verb: verb, Speaker: speaker,
		Actor: actor, Negated: negated}
}

// ValidKey asserts val is a valid value for property key.
func ValidKey(speaker *world.Entity, key string, val any) *Statement {
	return &Statement{Form: FormValidKey, Speaker: speaker, PropKey: key, PropVal: val}
}

// Say carries a literal note from a speaker.
func Say(speaker *world.Entity, text string) *Statement {
	return &Statement{Form: FormSay, Verb: VerbSay, Speaker: speaker, Text: text}
}

// Question asks whether obj's key is val (attr != "" asks about an
// attribute instead).
func Question(speaker, actor, obj *world.Entity, key string, val any, attr string) *Statement {
	return &Statement{Form: FormQuestion, Speaker: speaker, Actor: actor,
		Object: obj, PropKey: key, PropVal: val, Attr: attr}
}
