package policy

import (
	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// MoreIsComing is the placeholder a coordinated agent utters to break
// recursive resolution when its own sub-request is still in progress.
const MoreIsComing = "more is coming"

// AndPolicy coordinates one agent's share of an ordered compound
// request. Each agent's instance independently tracks which ordinals
// are addressed to its player and which are complete. Sub-requests are
// served strictly in order: while an earlier ordinal belonging to
// another agent is unfinished, this agent produces no step (or the
// placeholder when it already has a sub-request in progress), never a
// recursive call into the other agent's reasoning.
type AndPolicy struct {
	session Session
	player  *world.Entity

	req     *sentence.Statement
	parts   []goals.Goal
	started []bool
	goal    goals.Goal
}

func NewAndPolicy(s Session, player *world.Entity) *AndPolicy {
	return &AndPolicy{session: s, player: player}
}

func (p *AndPolicy) Player() *world.Entity {
	return p.player
}

func (p *AndPolicy) Reset() {
	p.req = nil
	p.parts = nil
	p.started = nil
	p.goal = nil
}

func (p *AndPolicy) Parse(req *sentence.Statement, visited Visited) ([]*sentence.Statement, goals.Goal, bool) {
	if req == nil || req.Form != sentence.FormAnd || len(req.Parts) == 0 {
		return nil, nil, false
	}
	mine := false
	for _, part := range req.Parts {
		if part.Actor == p.player {
			mine = true
			break
		}
	}
	if !mine {
		return nil, nil, false
	}
	if _, seen := visited[p.player]; seen {
		// Recursion break: another agent's resolution pass reached us.
		if p.inProgress() {
			return []*sentence.Statement{sentence.Say(p.player, MoreIsComing)}, p.goal, true
		}
		return nil, p.goal, true
	}
	visited = visited.with(p.player)

	if p.req != req {
		p.resolve(req, visited)
	}

	// Serve the first unfinished ordinal, whoever it belongs to.
	for i, part := range req.Parts {
		if p.parts[i].Execute() == goals.Success {
			continue
		}
		if part.Actor != p.player {
			// Not our turn. No step until the earlier sub-goal lands.
			return nil, p.goal, true
		}
		steps, _, ok := p.session.ParseFor(p.player, part, visited)
		if !ok {
			return nil, p.goal, true
		}
		p.started[i] = true
		return steps, p.goal, true
	}
	return nil, p.goal, true
}

// resolve builds one goal per ordinal by routing each sub-request
// through its actor's own policy set, and the cumulative AND goal.
func (p *AndPolicy) resolve(req *sentence.Statement, visited Visited) {
	p.req = req
	p.parts = make([]goals.Goal, len(req.Parts))
	p.started = make([]bool, len(req.Parts))
	for i, part := range req.Parts {
		_, goal, ok := p.session.ParseFor(part.Actor, part, visited)
		if !ok || goal == nil {
			goal = goals.Const(goals.InProgress)
		}
		p.parts[i] = goal
	}
	p.goal = goals.And(p.parts...)
}

func (p *AndPolicy) inProgress() bool {
	for i := range p.parts {
		if p.started[i] && p.parts[i].Execute() != goals.Success {
			return true
		}
	}
	return false
}
