// Package knowledge derives what dialogue participants have actually
// been told from the committed utterance log. Visibility state lives
// on the entities (world.SeenState) and is mutated only here, never by
// the action layer, so speculative action execution leaves knowledge
// untouched.
package knowledge

import (
	"log/slog"

	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// Truth is the trinary answer of a knowledge check. Unknown means "not
// yet observed", not "false".
type Truth int

const (
	Unknown Truth = iota
	True
	False
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// Checkpoint captures a knowledge base state for later recovery.
type Checkpoint struct {
	Log    world.Checkpoint
	Offset int
}

// Base is the epistemic knowledge base. It lazily re-synchronizes with
// the utterance log: it remembers the offset of the last statement it
// processed and replays only the delta before every check. All of its
// mutations go through its own transaction log, so a saved state can
// be recovered exactly.
type Base struct {
	world  *world.World
	ctx    *sentence.Context
	log    *world.TransactionLog
	logger *slog.Logger

	offset      int
	validValues map[string][]any
	permissions map[*world.Entity]map[sentence.Verb]bool
	links       map[*world.Entity]map[string]*world.Entity

	updaters []updater
	checkers []checker
}

type updater func(b *Base, st *sentence.Statement) bool

type checker func(b *Base, st *sentence.Statement) Truth

func New(w *world.World, ctx *sentence.Context, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Base{
		world:       w,
		ctx:         ctx,
		log:         world.NewTransactionLog(),
		logger:      logger,
		validValues: make(map[string][]any),
		permissions: make(map[*world.Entity]map[sentence.Verb]bool),
		links:       make(map[*world.Entity]map[string]*world.Entity),
	}
	b.updaters = []updater{
		updateProperty,
		updateAttribute,
		updateContents,
		updateDone,
		updateBlocked,
		updateRequest,
		updatePermission,
		updateValidKey,
	}
	b.checkers = []checker{
		checkProperty,
		checkAttribute,
		checkPermission,
		checkValidKey,
	}
	return b
}

// Sync processes every committed statement appended since the last
// sync, strictly in order. Untrusted statements are skipped.
// Re-running with no new statements is a no-op.
func (b *Base) Sync() {
	end := b.ctx.Len()
	for ; b.offset < end; b.offset++ {
		st := b.ctx.At(b.offset)
		if st.Untrusted {
			continue
		}
		b.apply(st)
	}
}

// apply runs the updater chain on one statement. Unrecognized shapes
// are ignored; a panicking updater is logged and skipped, never fatal.
func (b *Base) apply(st *sentence.Statement) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("knowledge update failed",
				"statement", st.String(), "error", r)
		}
	}()
	for _, u := range b.updaters {
		if u(b, st) {
			return
		}
	}
}

// Check syncs and answers a statement-shaped question by trying each
// checker in priority order, returning the first non-unknown result.
func (b *Base) Check(st *sentence.Statement) Truth {
	b.Sync()
	for _, c := range b.checkers {
		if t := c(b, st); t != Unknown {
			return t
		}
	}
	return Unknown
}

// Save captures the current knowledge state.
func (b *Base) Save() Checkpoint {
	b.Sync()
	return Checkpoint{Log: b.log.Mark(), Offset: b.offset}
}

// Recover rolls the knowledge state back to a checkpoint.
func (b *Base) Recover(cp Checkpoint) {
	b.log.RevertTo(cp.Log)
	b.offset = cp.Offset
}

// Flush discards the undo records accumulated so far. Derived
// visibility state is authoritative once processed; flushing never
// changes an already-computed answer.
func (b *Base) Flush() {
	b.log.Flush()
}

// KnownLocation returns the entity's location as revealed so far.
func (b *Base) KnownLocation(e *world.Entity) (world.Location, bool) {
	b.Sync()
	loc, ok := e.Seen.Props[world.PropLocation].(world.Location)
	return loc, ok
}

// KnownLink returns the revealed neighbor of a place in a direction.
func (b *Base) KnownLink(place *world.Entity, dir string) *world.Entity {
	b.Sync()
	return b.links[place][dir]
}

// PathKnown reports whether every direction link on the world's
// shortest route from src to dst has been revealed.
func (b *Base) PathKnown(src, dst *world.Entity) bool {
	b.Sync()
	route, ok := b.world.Path(src, dst)
	if !ok {
		return false
	}
	cur := src
	for _, dir := range route {
		next := b.links[cur][dir]
		if next == nil {
			return false
		}
		cur = next
	}
	return cur == dst
}

// Candidates returns the concrete entities whose compatibility with an
// abstract description is itself already observed: every property the
// description states must be seen-true with an equal value, and every
// marker attribute must be seen.
func (b *Base) Candidates(desc *world.Entity) []*world.Entity {
	b.Sync()
	if !desc.IsAbstract() {
		return []*world.Entity{desc}
	}
	var out []*world.Entity
	for _, e := range b.world.Objects {
		if seenMatch(e, desc) {
			out = append(out, e)
		}
	}
	return out
}

func seenMatch(e, desc *world.Entity) bool {
	for key, want := range desc.Properties {
		if key == world.PropLocation {
			continue
		}
		got, ok := e.Seen.Props[key]
		if !ok || !world.SameValue(got, want) {
			return false
		}
	}
	for attr := range desc.Attributes {
		if attr == world.AttrAbstract {
			continue
		}
		if _, ok := e.Seen.Attrs[attr]; !ok {
			return false
		}
	}
	return true
}
