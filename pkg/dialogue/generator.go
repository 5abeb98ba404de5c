// Package dialogue drives conversational episodes: the generator owns
// the shared context, knowledge base and policy tables; a Dialogue
// cooperatively steps its participants until its goal resolves.
package dialogue

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/knowledge"
	"github.com/jwebster45206/dialogue-engine/pkg/policy"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// Generator holds everything dialogues share: the world, the utterance
// context, the knowledge base, the environment policy and one policy
// set per player. A fixed seed makes every run reproducible.
type Generator struct {
	w      *world.World
	ctx    *sentence.Context
	kb     *knowledge.Base
	env    *policy.EnvAuto
	agents map[*world.Entity]*policy.Auto
	rng    *rand.Rand
	logger *slog.Logger

	reqOffset int
}

func NewGenerator(w *world.World, seed int64, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	ctx := sentence.NewContext()
	g := &Generator{
		w:      w,
		ctx:    ctx,
		kb:     knowledge.New(w, ctx, logger),
		env:    policy.NewEnvAuto(),
		agents: make(map[*world.Entity]*policy.Auto),
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
	for _, p := range w.Players {
		g.agents[p] = policy.NewAuto(p, []policy.Policy{
			policy.NewAndPolicy(g, p),
			policy.NewQuestionPolicy(g, p),
			policy.NewActionPolicy(g, p, sentence.VerbGo),
			policy.NewActionPolicy(g, p, sentence.VerbGet),
			policy.NewActionPolicy(g, p, sentence.VerbDrop),
			policy.NewActionPolicy(g, p, sentence.VerbLook),
			policy.NewActionPolicy(g, p, sentence.VerbOpen, sentence.VerbClose),
			policy.NewActionPolicy(g, p, sentence.VerbChange),
		})
	}
	return g
}

var _ policy.Session = (*Generator)(nil)

func (g *Generator) World() *world.World            { return g.w }
func (g *Generator) Knowledge() *knowledge.Base     { return g.kb }
func (g *Generator) Context() *sentence.Context     { return g.ctx }
func (g *Generator) Rand() *rand.Rand               { return g.rng }
func (g *Generator) Logger() *slog.Logger           { return g.logger }
func (g *Generator) RequestOffset() int             { return g.reqOffset }

// ParseFor routes a request to a player's policy set.
func (g *Generator) ParseFor(actor *world.Entity, req *sentence.Statement, visited policy.Visited) ([]*sentence.Statement, goals.Goal, bool) {
	auto, ok := g.agents[actor]
	if !ok {
		return nil, nil, false
	}
	return auto.Parse(req, visited)
}

// AgentPolicy returns the policy set for a player.
func (g *Generator) AgentPolicy(p *world.Entity) *policy.Auto {
	return g.agents[p]
}

// ExecuteUtterances appends the utterances to the context, lets the
// environment answer each one, and keeps the knowledge base in sync.
// When an attempt draws several equally valid blocked responses, the
// seeded RNG picks one. Returns everything that entered the context.
func (g *Generator) ExecuteUtterances(utters []*sentence.Statement) []*sentence.Statement {
	var responses []*sentence.Statement
	for _, utter := range utters {
		if utter == nil {
			continue
		}
		g.ctx.Add(utter)
		responses = append(responses, utter)
		g.kb.Sync()

		feedback := g.env.Respond(g.w, utter)
		feedback = g.pickAlternative(feedback)
		if len(feedback) > 0 {
			g.ctx.Add(feedback...)
			responses = append(responses, feedback...)
			g.kb.Sync()
		}
	}
	return responses
}

// pickAlternative reduces a list of alternative blocking reasons to
// one. Feedback that is not a pure blocked list passes through whole.
func (g *Generator) pickAlternative(feedback []*sentence.Statement) []*sentence.Statement {
	if len(feedback) < 2 {
		return feedback
	}
	for _, st := range feedback {
		if st.Form != sentence.FormBlocked {
			return feedback
		}
	}
	return []*sentence.Statement{feedback[g.rng.Intn(len(feedback))]}
}

// State captures everything a fake run mutates.
type State struct {
	world     world.Checkpoint
	kb        knowledge.Checkpoint
	ctxLen    int
	reqOffset int
}

// SaveState snapshots the generator for a later RecoverState.
func (g *Generator) SaveState() State {
	return State{
		world:     g.w.Save(),
		kb:        g.kb.Save(),
		ctxLen:    g.ctx.Len(),
		reqOffset: g.reqOffset,
	}
}

// RecoverState rolls the world, knowledge base and context back to a
// snapshot and resets every policy, which re-derives its memo from the
// restored knowledge on its next parse.
func (g *Generator) RecoverState(st State) {
	g.kb.Recover(st.kb)
	g.w.Recover(st.world)
	g.ctx.Truncate(st.ctxLen)
	g.reqOffset = st.reqOffset
	for _, auto := range g.agents {
		auto.Reset()
	}
}

// Flush discards retained context and undo records to reclaim memory.
// Derived knowledge keeps its meaning; checkpoints taken before the
// flush become unusable.
func (g *Generator) Flush() {
	g.ctx.Flush()
	g.w.Log.Flush()
	g.kb.Flush()
}

// RevealMap publishes the world's geography to the participants:
// direction links between places, place markers and player locations
// enter the context as environment statements.
func (g *Generator) RevealMap() {
	var facts []*sentence.Statement
	for _, place := range g.w.Places() {
		facts = append(facts, sentence.AttributeFact(nil, place, world.AttrPlace, false))
		for _, dir := range world.Directions {
			if next := world.Neighbor(place, dir); next != nil {
				facts = append(facts, sentence.PropertyFact(nil, place, dir, next, false))
			}
		}
	}
	for _, p := range g.w.Players {
		if loc, ok := p.Location(); ok {
			facts = append(facts, sentence.PropertyFact(nil, p, world.PropLocation, loc, false))
		}
	}
	g.ctx.Add(facts...)
	g.kb.Sync()
}

// RevealEntity publishes an entity's describing properties, attributes
// and location, as a look would.
func (g *Generator) RevealEntity(e *world.Entity) {
	var facts []*sentence.Statement
	for _, key := range world.FeatureKeys {
		if v, ok := e.Properties[key]; ok {
			facts = append(facts, sentence.PropertyFact(nil, e, key, v, false))
		}
	}
	attrs := make([]string, 0, len(e.Attributes))
	for attr := range e.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		facts = append(facts, sentence.AttributeFact(nil, e, attr, false))
	}
	if loc, ok := e.Location(); ok && loc.Place != e {
		facts = append(facts, sentence.PropertyFact(nil, e, world.PropLocation, loc, false))
	}
	g.ctx.Add(facts...)
	g.kb.Sync()
}

// RevealWorld publishes the map and every entity. Used by the batch
// simulator so generated requests land on revealed items.
func (g *Generator) RevealWorld() {
	g.RevealMap()
	for _, e := range g.w.Objects {
		g.RevealEntity(e)
	}
}
