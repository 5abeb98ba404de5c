package dialogue_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jwebster45206/dialogue-engine/pkg/dialogue"
	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// buildWorld constructs the dialogue test fixture:
//
//	hall --east(door)-- parlor --east-- study
//
// Ann requests, Bob and Cara comply. The door between hall and parlor
// starts closed.
func buildWorld(t *testing.T) (*world.World, map[string]*world.Entity) {
	t.Helper()
	w := world.New()

	hall := world.BuildPlace(w, "hall", world.EntitySpec{Type: "hall"})
	parlor := world.BuildPlace(w, "parlor", world.EntitySpec{Type: "parlor"})
	study := world.BuildPlace(w, "study", world.EntitySpec{Type: "study"})

	door := world.BuildDoor(w, "door", world.EntitySpec{
		Material: "wood", Location: world.In(hall)}, nil)
	world.Connect(hall, "east", parlor, door)
	world.Connect(parlor, "east", study, nil)

	ann := world.BuildPlayer(w, "ann", world.EntitySpec{
		Type: "person", Name: "Ann", Location: world.In(hall)})
	bob := world.BuildPlayer(w, "bob", world.EntitySpec{
		Type: "person", Name: "Bob", Location: world.In(hall)})
	cara := world.BuildPlayer(w, "cara", world.EntitySpec{
		Type: "person", Name: "Cara", Location: world.In(hall)})

	ball := world.BuildEntity(w, "ball", world.EntitySpec{
		Type: "ball", Color: "red", Location: world.In(hall)})

	w.Reindex()
	return w, map[string]*world.Entity{
		"hall": hall, "parlor": parlor, "study": study, "door": door,
		"ann": ann, "bob": bob, "cara": cara, "ball": ball,
	}
}

func newGenerator(w *world.World) *dialogue.Generator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return dialogue.NewGenerator(w, 1, logger)
}

func TestRunPrimitiveGo(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()

	// The door is closed, so the plan opens it first.
	req := sentence.Request(e["ann"], e["bob"], sentence.VerbGo).WithDir("east")
	d := dialogue.New(gen, req, e["ann"], e["bob"])

	if d.EvaluateGoal() != goals.InProgress {
		t.Fatal("Expected a fresh dialogue to be in progress")
	}
	if result := d.Run(false); result != goals.Success {
		t.Fatalf("Expected success, got %d", result)
	}
	if e["bob"].TopLocation() != e["parlor"] {
		t.Error("Expected Bob in the parlor")
	}
	if !e["door"].Has(world.AttrOpen) {
		t.Error("Expected Bob to have opened the door on the way")
	}
	if !d.IsOver() {
		t.Error("Expected the dialogue to be over")
	}
}

func TestRunGoToPlace(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()

	req := sentence.Request(e["ann"], e["bob"], sentence.VerbGo).
		WithLoc(world.In(e["study"]))
	d := dialogue.New(gen, req, e["ann"], e["bob"])

	if result := d.Run(false); result != goals.Success {
		t.Fatalf("Expected success, got %d", result)
	}
	if e["bob"].TopLocation() != e["study"] {
		t.Error("Expected Bob in the study")
	}
}

func TestRunCompoundRequestInOrder(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()
	start := gen.Context().Len()

	// Cara's sub-request comes second and must not complete first.
	req := sentence.And(e["ann"],
		sentence.Request(e["ann"], e["bob"], sentence.VerbGet).WithObject(e["ball"]),
		sentence.Request(e["ann"], e["cara"], sentence.VerbGo).WithDir("east"),
	)
	d := dialogue.New(gen, req, e["ann"], e["bob"], e["cara"])

	if result := d.Run(false); result != goals.Success {
		t.Fatalf("Expected success, got %d", result)
	}

	getAt, goAt := -1, -1
	for i, st := range gen.Context().From(start) {
		if st.Form != sentence.FormDone {
			continue
		}
		switch st.Verb {
		case sentence.VerbGet:
			getAt = i
		case sentence.VerbGo:
			if goAt == -1 {
				goAt = i
			}
		}
	}
	if getAt == -1 || goAt == -1 {
		t.Fatalf("Expected both actions committed, got get=%d go=%d", getAt, goAt)
	}
	if getAt > goAt {
		t.Errorf("Expected the get (ordinal 1) before the go (ordinal 2), got get=%d go=%d", getAt, goAt)
	}

	if loc, ok := e["ball"].Location(); !ok || loc.Place != e["bob"] {
		t.Error("Expected Bob to carry the ball")
	}
	if e["cara"].TopLocation() != e["parlor"] {
		t.Error("Expected Cara in the parlor")
	}
}

func TestFakeRunLeavesNoTrace(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()

	ctxLen := gen.Context().Len()
	logLen := w.Log.Len()

	req := sentence.Request(e["ann"], e["bob"], sentence.VerbGet).WithObject(e["ball"])
	d := dialogue.New(gen, req, e["ann"], e["bob"])

	if result := d.Run(true); result != goals.Success {
		t.Fatalf("Expected the probe to report success, got %d", result)
	}

	if loc, ok := e["ball"].Location(); !ok || loc.Place != e["hall"] {
		t.Error("Expected the ball untouched after a fake run")
	}
	if gen.Context().Len() != ctxLen {
		t.Errorf("Expected context length %d after a fake run, got %d", ctxLen, gen.Context().Len())
	}
	if w.Log.Len() != logLen {
		t.Errorf("Expected log length %d after a fake run, got %d", logLen, w.Log.Len())
	}

	// The same dialogue still runs for real afterwards.
	if result := d.Run(false); result != goals.Success {
		t.Fatalf("Expected the real run to succeed, got %d", result)
	}
	if loc, ok := e["ball"].Location(); !ok || loc.Place != e["bob"] {
		t.Error("Expected Bob to carry the ball after the real run")
	}
}

func TestRunHaltsAtSafetyBound(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()

	// The request is addressed to Cara, but only Bob participates, so
	// no policy ever produces a goal.
	req := sentence.Request(e["ann"], e["cara"], sentence.VerbGo).WithDir("east")
	d := dialogue.New(gen, req, e["ann"], e["bob"])

	if result := d.Run(false); result != goals.Failure {
		t.Errorf("Expected the safety bound to fail the dialogue, got %d", result)
	}
}

func TestGeneratorSaveRecoverState(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()

	st := gen.SaveState()
	ctxLen := gen.Context().Len()

	req := sentence.Request(e["ann"], e["bob"], sentence.VerbGet).WithObject(e["ball"])
	d := dialogue.New(gen, req, e["ann"], e["bob"])
	if result := d.Run(false); result != goals.Success {
		t.Fatalf("Expected success, got %d", result)
	}

	gen.RecoverState(st)

	if gen.Context().Len() != ctxLen {
		t.Errorf("Expected context truncated to %d, got %d", ctxLen, gen.Context().Len())
	}
	if loc, ok := e["ball"].Location(); !ok || loc.Place != e["hall"] {
		t.Error("Expected the ball back in the hall")
	}
}

func TestFlushKeepsDialoguesWorking(t *testing.T) {
	w, e := buildWorld(t)
	gen := newGenerator(w)
	gen.RevealWorld()

	req := sentence.Request(e["ann"], e["bob"], sentence.VerbGet).WithObject(e["ball"])
	d := dialogue.New(gen, req, e["ann"], e["bob"])
	if result := d.Run(false); result != goals.Success {
		t.Fatalf("Expected success, got %d", result)
	}

	gen.Flush()

	// Knowledge derived before the flush still answers; a new dialogue
	// can run on the flushed context.
	req2 := sentence.Request(e["ann"], e["bob"], sentence.VerbDrop).WithObject(e["ball"])
	d2 := dialogue.New(gen, req2, e["ann"], e["bob"])
	if result := d2.Run(false); result != goals.Success {
		t.Fatalf("Expected the post-flush dialogue to succeed, got %d", result)
	}
	if loc, ok := e["ball"].Location(); !ok || loc.Place != e["hall"] {
		t.Error("Expected the ball dropped back in the hall")
	}
}
