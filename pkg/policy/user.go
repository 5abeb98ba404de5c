package policy

import (
	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// UserPolicy issues the dialogue's request. It utters the request on
// its player's first turn and stays silent afterwards.
type UserPolicy struct {
	player  *world.Entity
	uttered bool
}

func NewUserPolicy(player *world.Entity) *UserPolicy {
	return &UserPolicy{player: player}
}

func (p *UserPolicy) Player() *world.Entity {
	return p.player
}

func (p *UserPolicy) Reset() {
	p.uttered = false
}

func (p *UserPolicy) Parse(req *sentence.Statement, visited Visited) ([]*sentence.Statement, goals.Goal, bool) {
	if req == nil || req.Speaker != p.player {
		return nil, nil, false
	}
	if p.uttered {
		return nil, nil, true
	}
	p.uttered = true
	return []*sentence.Statement{req}, nil, true
}
