package dialogue

import (
	"github.com/google/uuid"
	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/policy"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// maxSafety bounds the turn count of a single dialogue, so runaway
// rule-based recursion terminates as a failure instead of hanging.
const maxSafety = 1120

// Dialogue is one conversational episode: a user issuing a request, one
// or more agents satisfying it, round-robin turns, and a goal deciding
// success. Stepping is strictly cooperative; there is one turn owner at
// a time.
type Dialogue struct {
	ID      uuid.UUID
	gen     *Generator
	request *sentence.Statement

	policies []policy.Policy
	goal     goals.Goal
	turn     int
	halted   bool
}

// New builds a dialogue for a request. The user's policy speaks first;
// each agent then takes turns in the given order.
func New(gen *Generator, request *sentence.Statement, user *world.Entity, agents ...*world.Entity) *Dialogue {
	d := &Dialogue{
		ID:      uuid.New(),
		gen:     gen,
		request: request,
	}
	d.policies = append(d.policies, policy.NewUserPolicy(user))
	for _, a := range agents {
		if auto := gen.agents[a]; auto != nil {
			auto.Reset()
			d.policies = append(d.policies, auto)
		}
	}
	gen.reqOffset = gen.ctx.Len() + 1
	return d
}

// Step lets the next policy in round-robin order take its turn. A
// policy failure is logged and treated as a silent turn; it never
// aborts the dialogue.
func (d *Dialogue) Step() {
	p := d.policies[d.turn%len(d.policies)]
	d.turn++

	steps, goal := d.safeParse(p)
	if goal != nil && d.goal == nil {
		d.goal = goal
	}
	if len(steps) > 0 {
		d.gen.ExecuteUtterances(steps)
	}
}

func (d *Dialogue) safeParse(p policy.Policy) (steps []*sentence.Statement, goal goals.Goal) {
	defer func() {
		if r := recover(); r != nil {
			d.gen.logger.Error("policy failed, skipping turn",
				"dialogue", d.ID.String(),
				"player", world.DisplayName(p.Player()),
				"error", r)
			steps, goal = nil, nil
		}
	}()
	steps, goal, _ = p.Parse(d.request, nil)
	return steps, goal
}

// IsOver reports whether the goal has resolved and the current round
// of turns has completed.
func (d *Dialogue) IsOver() bool {
	if d.goal == nil || d.turn == 0 || d.turn%len(d.policies) != 0 {
		return false
	}
	return d.goal.Execute() != goals.InProgress || d.halted
}

// EvaluateGoal returns the dialogue's current result. A finished
// dialogue whose goal did not succeed is a failure.
func (d *Dialogue) EvaluateGoal() goals.Result {
	if d.goal == nil {
		if d.halted {
			return goals.Failure
		}
		return goals.InProgress
	}
	r := d.goal.Execute()
	if r != goals.Success && d.halted {
		return goals.Failure
	}
	return r
}

// Run steps the dialogue until it is over or the safety bound is hit.
// With fake true the full generator state is snapshotted first, the
// dialogue runs to completion, and the snapshot is unconditionally
// restored: the caller learns what would happen without committing it.
func (d *Dialogue) Run(fake bool) goals.Result {
	if fake {
		st := d.gen.SaveState()
		savedTurn, savedHalted, savedGoal := d.turn, d.halted, d.goal
		defer func() {
			d.gen.RecoverState(st)
			d.turn, d.halted, d.goal = savedTurn, savedHalted, savedGoal
			for _, p := range d.policies {
				p.Reset()
			}
		}()
	}
	return d.run()
}

func (d *Dialogue) run() goals.Result {
	for !d.IsOver() {
		if d.turn >= maxSafety {
			d.halted = true
			break
		}
		d.Step()
	}
	return d.EvaluateGoal()
}
