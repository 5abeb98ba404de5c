package main

import (
	"math/rand"

	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// sampler draws random well-formed requests over a world: single-verb
// requests, is-questions, and two-agent compound requests.
type sampler struct {
	w   *world.World
	rng *rand.Rand
}

func newSampler(w *world.World, seed int64) *sampler {
	return &sampler{w: w, rng: rand.New(rand.NewSource(seed))}
}

// next returns a request plus its user and agent players. user and
// agents are always distinct.
func (s *sampler) next() (*sentence.Statement, *world.Entity, []*world.Entity) {
	players := s.w.Players
	if len(players) < 2 {
		return nil, nil, nil
	}
	user := players[s.rng.Intn(len(players))]
	agent := user
	for agent == user {
		agent = players[s.rng.Intn(len(players))]
	}

	if s.rng.Intn(5) == 0 {
		second := agent
		for second == agent || second == user {
			second = players[s.rng.Intn(len(players))]
		}
		req := sentence.And(user, s.primitive(user, agent), s.primitive(user, second))
		return req, user, []*world.Entity{agent, second}
	}
	return s.primitive(user, agent), user, []*world.Entity{agent}
}

func (s *sampler) primitive(user, agent *world.Entity) *sentence.Statement {
	switch s.rng.Intn(8) {
	case 0:
		dir := world.Directions[s.rng.Intn(len(world.Directions))]
		return sentence.Request(user, agent, sentence.VerbGo).WithDir(dir)
	case 1:
		places := s.w.Places()
		place := places[s.rng.Intn(len(places))]
		return sentence.Request(user, agent, sentence.VerbGo).WithLoc(world.In(place))
	case 2:
		item := s.item()
		return sentence.Request(user, agent, sentence.VerbGet).
			WithObject(item).WithLoc(s.statedLoc(item))
	case 3:
		return sentence.Request(user, agent, sentence.VerbDrop).WithObject(s.item())
	case 4:
		return sentence.Request(user, agent, sentence.VerbLook).WithObject(s.item())
	case 5:
		item := s.openable()
		verb := sentence.VerbOpen
		if s.rng.Intn(2) == 0 {
			verb = sentence.VerbClose
		}
		return sentence.Request(user, agent, verb).WithObject(item)
	case 6:
		item := s.item()
		key := world.ChangeableProps[s.rng.Intn(len(world.ChangeableProps))]
		vals := s.w.Index.PropertyValues[key]
		if len(vals) == 0 {
			return sentence.Request(user, agent, sentence.VerbLook).WithObject(item)
		}
		val := vals[s.rng.Intn(len(vals))]
		return sentence.Request(user, agent, sentence.VerbChange).
			WithObject(item).WithChange(key, val)
	default:
		item := s.item()
		if s.rng.Intn(2) == 0 {
			attrs := s.w.Index.Attributes
			return sentence.Question(user, agent, item, "", nil, attrs[s.rng.Intn(len(attrs))])
		}
		key := world.FeatureKeys[s.rng.Intn(len(world.FeatureKeys))]
		vals := s.w.Index.PropertyValues[key]
		if len(vals) == 0 {
			return sentence.Request(user, agent, sentence.VerbLook).WithObject(item)
		}
		return sentence.Question(user, agent, item, key, vals[s.rng.Intn(len(vals))], "")
	}
}

// item picks a random non-place object, sometimes replaced by an
// abstract description of it so the agent must resolve ambiguity.
func (s *sampler) item() *world.Entity {
	var items []*world.Entity
	for _, e := range s.w.Objects {
		if !e.Has(world.AttrPlace) {
			items = append(items, e)
		}
	}
	item := items[s.rng.Intn(len(items))]
	if s.rng.Intn(2) == 0 {
		return item
	}
	desc := world.NewAbstractEntity()
	if t, ok := item.Properties[world.PropType]; ok {
		desc.Properties[world.PropType] = t
	}
	if c, ok := item.Properties[world.PropColor]; ok && s.rng.Intn(2) == 0 {
		desc.Properties[world.PropColor] = c
	}
	return desc
}

func (s *sampler) statedLoc(item *world.Entity) *world.Location {
	if item.IsAbstract() || s.rng.Intn(2) == 0 {
		return nil
	}
	if top := item.TopLocation(); top != nil {
		return world.In(top)
	}
	return nil
}

func (s *sampler) openable() *world.Entity {
	var items []*world.Entity
	for _, e := range s.w.Objects {
		if e.Has(world.AttrOpenable) {
			items = append(items, e)
		}
	}
	if len(items) == 0 {
		return s.item()
	}
	return items[s.rng.Intn(len(items))]
}
