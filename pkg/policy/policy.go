// Package policy implements the per-participant decision objects that
// read the knowledge base and world to propose next utterances, and
// the environment policies that answer action attempts.
package policy

import (
	"log/slog"
	"math/rand"

	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/knowledge"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// Visited is the set of players already on the current resolution
// pass. It breaks mutual recursion between coordinated policies.
type Visited map[*world.Entity]struct{}

func (v Visited) with(p *world.Entity) Visited {
	out := make(Visited, len(v)+1)
	for k := range v {
		out[k] = struct{}{}
	}
	out[p] = struct{}{}
	return out
}

// Policy is one participant behavior. Parse examines the dialogue's
// request and proposes this turn's steps plus the goal that evaluates
// the request's completion; ok is false when the request does not
// match the policy's pattern. Policies are constructed once per player
// and reset between independent dialogues.
type Policy interface {
	Player() *world.Entity
	Parse(req *sentence.Statement, visited Visited) (steps []*sentence.Statement, goal goals.Goal, ok bool)
	Reset()
}

// Session is the view of the dialogue generator that policies consult.
// It breaks the import cycle between policies and the scheduler.
type Session interface {
	World() *world.World
	Knowledge() *knowledge.Base
	Context() *sentence.Context
	Rand() *rand.Rand
	Logger() *slog.Logger
	// RequestOffset is the context offset just after the active
	// request was uttered. Goals scan from here, so every agent's
	// view of a sub-request's completion agrees regardless of when
	// its policy first parsed the request.
	RequestOffset() int
	// ParseFor routes a request to another player's policy set,
	// carrying the visited set of the current resolution pass.
	ParseFor(actor *world.Entity, req *sentence.Statement, visited Visited) (steps []*sentence.Statement, goal goals.Goal, ok bool)
}

// Auto dispatches to the first sub-policy whose Parse matches.
type Auto struct {
	player *world.Entity
	subs   []Policy
}

func NewAuto(player *world.Entity, subs []Policy) *Auto {
	return &Auto{player: player, subs: subs}
}

func (a *Auto) Player() *world.Entity {
	return a.player
}

func (a *Auto) Parse(req *sentence.Statement, visited Visited) ([]*sentence.Statement, goals.Goal, bool) {
	for _, p := range a.subs {
		if steps, goal, ok := p.Parse(req, visited); ok {
			return steps, goal, true
		}
	}
	return nil, nil, false
}

func (a *Auto) Reset() {
	for _, p := range a.subs {
		p.Reset()
	}
}

// matchAny is a goal satisfied once any statement equal to one of the
// expected alternatives appears in the context at or after offset.
func matchAny(ctx *sentence.Context, offset int, expected []*sentence.Statement) goals.Goal {
	return goals.Func(func() goals.Result {
		for _, st := range ctx.From(offset) {
			for _, e := range expected {
				if st.Equal(e) {
					return goals.Success
				}
			}
		}
		return goals.InProgress
	})
}
