package policy

import (
	"github.com/jwebster45206/dialogue-engine/pkg/actions"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// EnvPolicy answers one shape of player utterance on behalf of the
// environment. ok is false when the utterance is not this policy's
// business.
type EnvPolicy interface {
	Respond(w *world.World, st *sentence.Statement) (feedback []*sentence.Statement, ok bool)
}

// EnvVerb answers action attempts for one verb by running the action.
type EnvVerb struct {
	Verb sentence.Verb
}

func (e EnvVerb) Respond(w *world.World, st *sentence.Statement) ([]*sentence.Statement, bool) {
	if st.Form != sentence.FormAttempt || st.Verb != e.Verb {
		return nil, false
	}
	return Attempt(w, st), true
}

// Attempt executes the action an attempt statement describes and
// returns the action layer's feedback.
func Attempt(w *world.World, st *sentence.Statement) []*sentence.Statement {
	switch st.Verb {
	case sentence.VerbGo:
		return actions.Go(w, st.Actor, st.Dir)
	case sentence.VerbGet:
		return actions.Get(w, st.Actor, st.Object, st.Loc)
	case sentence.VerbDrop:
		return actions.Drop(w, st.Actor, st.Object, st.Loc)
	case sentence.VerbOpen:
		return actions.Open(w, st.Actor, st.Object)
	case sentence.VerbClose:
		return actions.Close(w, st.Actor, st.Object)
	case sentence.VerbLook:
		return actions.Look(w, st.Actor, st.Object)
	case sentence.VerbChange:
		return actions.Change(w, st.Actor, st.Object, st.PropKey, st.PropVal)
	}
	return nil
}

// EnvSay swallows conversational utterances: the environment has
// nothing to add to requests, questions, answers or notes.
type EnvSay struct{}

func (EnvSay) Respond(w *world.World, st *sentence.Statement) ([]*sentence.Statement, bool) {
	switch st.Form {
	case sentence.FormRequest, sentence.FormAnd, sentence.FormQuestion,
		sentence.FormProperty, sentence.FormAttribute, sentence.FormSay,
		sentence.FormPermission, sentence.FormValidKey:
		return nil, true
	}
	return nil, false
}

// EnvEmpty answers an utterance with no content at all.
type EnvEmpty struct{}

func (EnvEmpty) Respond(w *world.World, st *sentence.Statement) ([]*sentence.Statement, bool) {
	if st.Form != "" {
		return nil, false
	}
	return []*sentence.Statement{
		sentence.Say(nil, world.DisplayName(st.Speaker)+" issued an empty response"),
	}, true
}

// EnvAuto tries each environment policy in order; an utterance nothing
// claims gets the unrecognizable-command fallback.
type EnvAuto struct {
	subs []EnvPolicy
}

func NewEnvAuto() *EnvAuto {
	return &EnvAuto{subs: []EnvPolicy{
		EnvVerb{Verb: sentence.VerbGo},
		EnvVerb{Verb: sentence.VerbGet},
		EnvVerb{Verb: sentence.VerbDrop},
		EnvVerb{Verb: sentence.VerbOpen},
		EnvVerb{Verb: sentence.VerbClose},
		EnvVerb{Verb: sentence.VerbLook},
		EnvVerb{Verb: sentence.VerbChange},
		EnvSay{},
		EnvEmpty{},
	}}
}

func (a *EnvAuto) Respond(w *world.World, st *sentence.Statement) []*sentence.Statement {
	for _, p := range a.subs {
		if feedback, ok := p.Respond(w, st); ok {
			return feedback
		}
	}
	speaker := world.DisplayName(st.Speaker)
	if st.Actor != nil {
		speaker = world.DisplayName(st.Actor)
	}
	return []*sentence.Statement{
		sentence.Say(nil, speaker+" issued an unrecognizable command"),
	}
}
