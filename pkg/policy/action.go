package policy

import (
	"fmt"

	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// definitiveReasons block an action regardless of the actor's
// location. A request whose every candidate hits one of these is
// answered by attempting anyway and letting the environment report it.
var definitiveReasons = map[sentence.Reason]struct{}{
	sentence.ReasonStatic:         {},
	sentence.ReasonSelf:           {},
	sentence.ReasonNotOpenable:    {},
	sentence.ReasonAlreadyOpen:    {},
	sentence.ReasonAlreadyClosed:  {},
	sentence.ReasonAlreadyCarried: {},
	sentence.ReasonNotCarried:     {},
	sentence.ReasonNotChangeable:  {},
	sentence.ReasonUnknownValue:   {},
	sentence.ReasonConflict:       {},
}

type taskMode int

const (
	modePlan taskMode = iota
	modeImmediate
	modeSay
)

// candidateTask is one resolved way of satisfying a request: a
// concrete item (nil for pure movement), how to act on it, and the
// goal that recognizes the correct final response.
type candidateTask struct {
	item    *world.Entity
	mode    taskMode
	outcome []*sentence.Statement
	say     *sentence.Statement
	goal    goals.Goal
}

// ActionPolicy satisfies requests for a set of action verbs on behalf
// of one player. It resolves ambiguous item descriptions with the
// one-task rule: enumerate the candidates whose compatibility is
// already observed, stick to one chosen candidate across turns, and
// collapse to a single shared failure when every candidate fails the
// same way.
type ActionPolicy struct {
	session Session
	player  *world.Entity
	verbs   map[sentence.Verb]struct{}

	req    *sentence.Statement
	chosen *candidateTask
	goal   goals.Goal
}

func NewActionPolicy(s Session, player *world.Entity, verbs ...sentence.Verb) *ActionPolicy {
	set := make(map[sentence.Verb]struct{}, len(verbs))
	for _, v := range verbs {
		set[v] = struct{}{}
	}
	return &ActionPolicy{session: s, player: player, verbs: set}
}

func (p *ActionPolicy) Player() *world.Entity {
	return p.player
}

func (p *ActionPolicy) Reset() {
	p.req = nil
	p.chosen = nil
	p.goal = nil
}

func (p *ActionPolicy) Parse(req *sentence.Statement, visited Visited) ([]*sentence.Statement, goals.Goal, bool) {
	if req == nil || req.Form != sentence.FormRequest || req.Actor != p.player {
		return nil, nil, false
	}
	if _, ok := p.verbs[req.Verb]; !ok {
		return nil, nil, false
	}
	if p.req != req {
		p.resolve(req)
	}
	if p.goal.Execute() == goals.Success {
		return nil, p.goal, true
	}
	return p.nextSteps(), p.goal, true
}

// resolve computes the candidate set, their expected outcomes and the
// request goal, and memoizes the chosen candidate so the goal stays
// stable while a multi-turn plan is in progress.
func (p *ActionPolicy) resolve(req *sentence.Statement) {
	p.req = req
	offset := p.session.RequestOffset()
	ctx := p.session.Context()

	cands := p.candidates(req)
	if req.Object != nil && len(cands) == 0 {
		say := sentence.Say(p.player, fmt.Sprintf("%s does not know of %s",
			world.DisplayName(p.player), world.DisplayName(req.Object)))
		p.chosen = &candidateTask{mode: modeSay, say: say}
		p.goal = matchAny(ctx, offset, []*sentence.Statement{say})
		p.chosen.goal = p.goal
		return
	}

	var tasks []*candidateTask
	if req.Object == nil {
		tasks = append(tasks, p.resolveCandidate(req, nil, offset))
	} else {
		for _, item := range cands {
			tasks = append(tasks, p.resolveCandidate(req, item, offset))
		}
	}

	// All candidates deterministically failing for the same reason
	// collapse into that one shared failure.
	if shared := sharedFailure(tasks); shared != sentence.ReasonNone && len(tasks) > 1 {
		p.chosen = tasks[0]
		p.goal = tasks[0].goal
		return
	}

	p.chosen = tasks[0]
	for _, t := range tasks {
		if isSuccess(t.outcome) {
			p.chosen = t
			break
		}
	}
	subs := make([]goals.Goal, 0, len(tasks))
	for _, t := range tasks {
		subs = append(subs, t.goal)
	}
	if len(subs) == 1 {
		p.goal = subs[0]
	} else {
		p.goal = goals.Or(subs...)
	}
}

// resolveCandidate applies the precondition priority for one concrete
// item: a location-independent impossibility short-circuits to an
// immediate attempt; an unrevealed item location or route produces a
// spoken answer; otherwise the full plan is simulated speculatively to
// learn the expected final response.
func (p *ActionPolicy) resolveCandidate(req *sentence.Statement, item *world.Entity, offset int) *candidateTask {
	ctx := p.session.Context()
	t := &candidateTask{item: item}

	if item != nil {
		immediate := p.probeImmediate(req, item)
		if hasDefinitiveReason(immediate) {
			t.mode = modeImmediate
			t.outcome = immediate
			t.goal = matchAny(ctx, offset, immediate)
			return t
		}
		if p.needsTravel(req, item) {
			kb := p.session.Knowledge()
			if _, known := kb.KnownLocation(item); !known {
				t.mode = modeSay
				t.say = sentence.Say(p.player, fmt.Sprintf("%s does not know where %s is",
					world.DisplayName(p.player), world.DisplayName(item)))
				t.goal = matchAny(ctx, offset, []*sentence.Statement{t.say})
				return t
			}
			if !kb.PathKnown(p.player.TopLocation(), item.TopLocation()) {
				t.mode = modeSay
				t.say = sentence.Say(p.player, fmt.Sprintf("%s does not know the way to %s",
					world.DisplayName(p.player), world.DisplayName(item.TopLocation())))
				t.goal = matchAny(ctx, offset, []*sentence.Statement{t.say})
				return t
			}
		}
	} else if req.Loc != nil {
		kb := p.session.Knowledge()
		if !kb.PathKnown(p.player.TopLocation(), req.Loc.Place) {
			t.mode = modeSay
			t.say = sentence.Say(p.player, fmt.Sprintf("%s does not know the way to %s",
				world.DisplayName(p.player), world.DisplayName(req.Loc.Place)))
			t.goal = matchAny(ctx, offset, []*sentence.Statement{t.say})
			return t
		}
	}

	t.mode = modePlan
	_, t.outcome = p.plan(req, item)
	t.goal = matchAny(ctx, offset, t.outcome)
	return t
}

// candidates resolves the request object. A concrete object is its own
// candidate; an abstract description yields every entity whose
// compatibility the dialogue has already revealed, narrowed by the
// stated location when one was given.
func (p *ActionPolicy) candidates(req *sentence.Statement) []*world.Entity {
	if req.Object == nil {
		return nil
	}
	if !req.Object.IsAbstract() {
		return []*world.Entity{req.Object}
	}
	kb := p.session.Knowledge()
	cands := kb.Candidates(req.Object)
	if req.Loc == nil {
		return cands
	}
	var out []*world.Entity
	for _, c := range cands {
		if loc, ok := kb.KnownLocation(c); ok &&
			loc.Prep == req.Loc.Prep && loc.Place == req.Loc.Place {
			out = append(out, c)
		}
	}
	return out
}

func (p *ActionPolicy) needsTravel(req *sentence.Statement, item *world.Entity) bool {
	if req.Verb == sentence.VerbDrop {
		return req.Loc != nil && req.Loc.Place.TopLocation() != p.player.TopLocation()
	}
	return item.TopLocation() != p.player.TopLocation()
}

// probeImmediate attempts the final action from the player's current
// position and rolls it back, to discover location-independent
// blockers.
func (p *ActionPolicy) probeImmediate(req *sentence.Statement, item *world.Entity) []*sentence.Statement {
	w := p.session.World()
	cp := w.Save()
	defer w.Recover(cp)
	return Attempt(w, p.attempt(req, item))
}

// attempt builds the literal action attempt for the chosen item.
func (p *ActionPolicy) attempt(req *sentence.Statement, item *world.Entity) *sentence.Statement {
	action := &sentence.Statement{
		Verb:    req.Verb,
		Object:  item,
		Dir:     req.Dir,
		Loc:     req.Loc,
		PropKey: req.PropKey,
		PropVal: req.PropVal,
	}
	return sentence.Attempt(p.player, action)
}

// plan simulates the remaining work from the current world state:
// walk to the target (opening unlocked doors on the way), open closed
// containers around the item, then attempt the verb. Every simulated
// action is rolled back before returning. The returned attempts are
// what the player would utter, in order; outcome is the environment
// feedback to the final one.
func (p *ActionPolicy) plan(req *sentence.Statement, item *world.Entity) (attempts []*sentence.Statement, outcome []*sentence.Statement) {
	w := p.session.World()
	cp := w.Save()
	defer w.Recover(cp)

	exec := func(st *sentence.Statement) []*sentence.Statement {
		attempts = append(attempts, st)
		return Attempt(w, st)
	}

	// Single-hop movement keeps its literal direction.
	if req.Verb == sentence.VerbGo && req.Dir != "" {
		top := p.player.TopLocation()
		if door := top.Obstacles[req.Dir]; door != nil &&
			!door.Has(world.AttrOpen) && !door.Has(world.AttrLocked) &&
			world.Neighbor(top, req.Dir) != nil {
			if out := exec(p.openAttempt(door)); isBlocked(out) {
				return attempts, out
			}
		}
		return attempts, exec(p.attempt(req, item))
	}

	navTarget := p.navTarget(req, item)
	if navTarget != nil {
		out, done := p.walkTo(navTarget, exec)
		if done {
			return attempts, out
		}
		if req.Verb == sentence.VerbGo {
			if len(out) > 0 {
				return attempts, out
			}
			// Already at the destination: the correct answer states it.
			loc := world.Location{Prep: "in", Place: navTarget}
			fact := sentence.PropertyFact(p.player, p.player, world.PropLocation, loc, false)
			attempts = append(attempts, fact)
			return attempts, []*sentence.Statement{fact}
		}
	}

	if item != nil && req.Verb != sentence.VerbDrop {
		path := item.ContainmentPath()
		for i := len(path) - 1; i >= 0; i-- {
			c := path[i]
			if c.Has(world.AttrLocked) {
				return attempts, exec(p.attempt(req, item))
			}
			if c.Has(world.AttrOpenable) && !c.Has(world.AttrOpen) {
				if out := exec(p.openAttempt(c)); isBlocked(out) {
					return attempts, out
				}
			}
		}
	}
	return attempts, exec(p.attempt(req, item))
}

func (p *ActionPolicy) navTarget(req *sentence.Statement, item *world.Entity) *world.Entity {
	if req.Verb == sentence.VerbGo {
		if req.Loc != nil {
			return req.Loc.Place
		}
		return nil
	}
	if req.Verb == sentence.VerbDrop {
		if req.Loc != nil {
			return req.Loc.Place.TopLocation()
		}
		return nil
	}
	if item == nil {
		return nil
	}
	return item.TopLocation()
}

// walkTo emits go attempts along the shortest route, opening unlocked
// closed doors first. done is true when a blocked hop ends the plan;
// out then carries the final feedback. Movement requests also finish
// here, with out holding the last hop's feedback.
func (p *ActionPolicy) walkTo(target *world.Entity, exec func(*sentence.Statement) []*sentence.Statement) (out []*sentence.Statement, done bool) {
	w := p.session.World()
	for {
		cur := p.player.TopLocation()
		if cur == target {
			return out, false
		}
		route, ok := w.Path(cur, target)
		if !ok || len(route) == 0 {
			return out, false
		}
		dir := route[0]
		if door := cur.Obstacles[dir]; door != nil && !door.Has(world.AttrOpen) {
			if !door.Has(world.AttrLocked) {
				if o := exec(p.openAttempt(door)); isBlocked(o) {
					return o, true
				}
			}
		}
		out = exec(p.goAttempt(dir))
		if isBlocked(out) {
			return out, true
		}
	}
}

func (p *ActionPolicy) openAttempt(item *world.Entity) *sentence.Statement {
	return sentence.Attempt(p.player, &sentence.Statement{Verb: sentence.VerbOpen, Object: item})
}

func (p *ActionPolicy) goAttempt(dir string) *sentence.Statement {
	return sentence.Attempt(p.player, &sentence.Statement{Verb: sentence.VerbGo, Dir: dir})
}

// nextSteps recomputes the remaining plan from the live world state
// and emits its first action.
func (p *ActionPolicy) nextSteps() []*sentence.Statement {
	t := p.chosen
	switch t.mode {
	case modeSay:
		return []*sentence.Statement{t.say}
	case modeImmediate:
		return []*sentence.Statement{p.attempt(p.req, t.item)}
	}
	attempts, _ := p.plan(p.req, t.item)
	if len(attempts) == 0 {
		return nil
	}
	return attempts[:1]
}

func isBlocked(stmts []*sentence.Statement) bool {
	for _, st := range stmts {
		if st.Form == sentence.FormBlocked {
			return true
		}
	}
	return false
}

func isSuccess(stmts []*sentence.Statement) bool {
	for _, st := range stmts {
		if st.Form == sentence.FormDone || st.Form == sentence.FormProperty {
			return true
		}
	}
	return false
}

func hasDefinitiveReason(stmts []*sentence.Statement) bool {
	for _, st := range stmts {
		if st.Form != sentence.FormBlocked {
			continue
		}
		if _, ok := definitiveReasons[st.Reason]; ok {
			return true
		}
	}
	return false
}

// sharedFailure returns the common blocking reason when every
// candidate's expected outcome is blocked the same way.
func sharedFailure(tasks []*candidateTask) sentence.Reason {
	shared := sentence.ReasonNone
	for _, t := range tasks {
		if t.mode == modeSay || !isBlocked(t.outcome) {
			return sentence.ReasonNone
		}
		reason := sentence.ReasonNone
		for _, st := range t.outcome {
			if st.Form == sentence.FormBlocked {
				reason = st.Reason
				break
			}
		}
		if shared == sentence.ReasonNone {
			shared = reason
		} else if shared != reason {
			return sentence.ReasonNone
		}
	}
	return shared
}
