package policy

import (
	"fmt"

	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/knowledge"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// QuestionPolicy answers is-questions about properties and attributes
// strictly from revealed knowledge. For an abstract description the
// candidate answers aggregate: any known-true candidate answers yes,
// all candidates known-false answers no, anything else is unknown.
type QuestionPolicy struct {
	session Session
	player  *world.Entity

	req    *sentence.Statement
	answer *sentence.Statement
	goal   goals.Goal
}

func NewQuestionPolicy(s Session, player *world.Entity) *QuestionPolicy {
	return &QuestionPolicy{session: s, player: player}
}

func (p *QuestionPolicy) Player() *world.Entity {
	return p.player
}

func (p *QuestionPolicy) Reset() {
	p.req = nil
	p.answer = nil
	p.goal = nil
}

func (p *QuestionPolicy) Parse(req *sentence.Statement, visited Visited) ([]*sentence.Statement, goals.Goal, bool) {
	if req == nil || req.Form != sentence.FormQuestion || req.Actor != p.player || req.Object == nil {
		return nil, nil, false
	}
	if p.req != req {
		p.resolve(req)
	}
	if p.goal.Execute() == goals.Success {
		return nil, p.goal, true
	}
	return []*sentence.Statement{p.answer}, p.goal, true
}

func (p *QuestionPolicy) resolve(req *sentence.Statement) {
	p.req = req
	kb := p.session.Knowledge()
	cands := kb.Candidates(req.Object)

	truth := knowledge.Unknown
	witness := req.Object
	if len(cands) > 0 {
		allFalse := true
		for _, c := range cands {
			t := kb.Check(p.question(req, c))
			if t == knowledge.True {
				truth = knowledge.True
				witness = c
				allFalse = false
				break
			}
			if t != knowledge.False {
				allFalse = false
			}
		}
		if truth == knowledge.Unknown && allFalse {
			truth = knowledge.False
		}
	}

	switch truth {
	case knowledge.True:
		p.answer = p.fact(witness, req, false)
	case knowledge.False:
		p.answer = p.fact(req.Object, req, true)
	default:
		p.answer = sentence.Say(p.player, fmt.Sprintf("%s does not know",
			world.DisplayName(p.player)))
	}
	p.goal = matchAny(p.session.Context(), p.session.RequestOffset(),
		[]*sentence.Statement{p.answer})
}

func (p *QuestionPolicy) question(req *sentence.Statement, obj *world.Entity) *sentence.Statement {
	if req.Attr != "" {
		return sentence.AttributeFact(nil, obj, req.Attr, false)
	}
	return sentence.PropertyFact(nil, obj, req.PropKey, req.PropVal, false)
}

func (p *QuestionPolicy) fact(obj *world.Entity, req *sentence.Statement, negated bool) *sentence.Statement {
	if req.Attr != "" {
		return sentence.AttributeFact(p.player, obj, req.Attr, negated)
	}
	return sentence.PropertyFact(p.player, obj, req.PropKey, req.PropVal, negated)
}
