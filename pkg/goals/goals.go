// Package goals defines deferred completion predicates over the
// growing utterance log.
package goals

import "github.com/jwebster45206/dialogue-engine/pkg/sentence"

// Result is the trinary outcome of a goal evaluation.
type Result int

const (
	Failure    Result = -1
	InProgress Result = 0
	Success    Result = 1
)

// Goal is a deferred predicate. Callers never inspect internals, only
// call Execute.
type Goal interface {
	Execute() Result
}

// Func adapts a plain function to a Goal.
type Func func() Result

func (f Func) Execute() Result {
	return f()
}

// Const always evaluates to the given result.
func Const(r Result) Goal {
	return Func(func() Result { return r })
}

type andGoal struct {
	subs []Goal
}

// And succeeds when every sub-goal succeeds, fails as soon as any
// fails, and is otherwise in progress.
func And(subs ...Goal) Goal {
	return andGoal{subs: subs}
}

func (g andGoal) Execute() Result {
	all := Success
	for _, s := range g.subs {
		switch s.Execute() {
		case Failure:
			return Failure
		case InProgress:
			all = InProgress
		}
	}
	return all
}

type orGoal struct {
	subs []Goal
}

// Or succeeds as soon as any sub-goal succeeds, fails only when every
// sub-goal fails, and is otherwise in progress.
func Or(subs ...Goal) Goal {
	return orGoal{subs: subs}
}

func (g orGoal) Execute() Result {
	all := Failure
	for _, s := range g.subs {
		switch s.Execute() {
		case Success:
			return Success
		case InProgress:
			all = InProgress
		}
	}
	if len(g.subs) == 0 {
		return InProgress
	}
	return all
}

// Steps succeeds once the expected statements all appear in the
// context, in order, at or after the given absolute offset. It never
// fails on its own; an enclosing goal or the dialogue decides failure.
func Steps(ctx *sentence.Context, offset int, expected ...*sentence.Statement) Goal {
	return Func(func() Result {
		idx := 0
		for _, st := range ctx.From(offset) {
			if idx == len(expected) {
				break
			}
			if st.Equal(expected[idx]) {
				idx++
			}
		}
		if idx == len(expected) {
			return Success
		}
		return InProgress
	})
}

// AnySteps succeeds once any one of the alternative step sequences
// appears in the context.
func AnySteps(ctx *sentence.Context, offset int, alternatives ...[]*sentence.Statement) Goal {
	subs := make([]Goal, 0, len(alternatives))
	for _, alt := range alternatives {
		subs = append(subs, Steps(ctx, offset, alt...))
	}
	return Func(func() Result {
		for _, s := range subs {
			if s.Execute() == Success {
				return Success
			}
		}
		return InProgress
	})
}
