package sentence

import "testing"

func TestContextOffsetsAreAbsolute(t *testing.T) {
	ctx := NewContext()

	a := Say(nil, "a")
	b := Say(nil, "b")
	c := Say(nil, "c")

	if off := ctx.Add(a, b); off != 0 {
		t.Fatalf("Expected first add at offset 0, got %d", off)
	}
	if off := ctx.Add(c); off != 2 {
		t.Fatalf("Expected second add at offset 2, got %d", off)
	}
	if ctx.At(1) != b {
		t.Error("Expected At(1) to return the second statement")
	}

	ctx.Flush()

	if ctx.Len() != 3 {
		t.Errorf("Expected absolute length 3 after flush, got %d", ctx.Len())
	}
	d := Say(nil, "d")
	if off := ctx.Add(d); off != 3 {
		t.Errorf("Expected post-flush add at offset 3, got %d", off)
	}
	if ctx.At(3) != d {
		t.Error("Expected At(3) to return the post-flush statement")
	}
	if got := ctx.From(0); len(got) != 1 || got[0] != d {
		t.Errorf("Expected From(0) to omit flushed statements, got %d", len(got))
	}
}

func TestContextAtFlushedOffsetPanics(t *testing.T) {
	ctx := NewContext()
	ctx.Add(Say(nil, "a"))
	ctx.Flush()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic reading a flushed offset")
		}
	}()
	ctx.At(0)
}

func TestContextTruncate(t *testing.T) {
	ctx := NewContext()
	ctx.Add(Say(nil, "a"), Say(nil, "b"), Say(nil, "c"))

	ctx.Truncate(1)

	if ctx.Len() != 1 {
		t.Errorf("Expected length 1 after truncate, got %d", ctx.Len())
	}
	// Truncating past the end is a no-op.
	ctx.Truncate(10)
	if ctx.Len() != 1 {
		t.Errorf("Expected truncate past the end to be a no-op, got %d", ctx.Len())
	}
}

func TestStatementEqual(t *testing.T) {
	a := Say(nil, "hello")
	b := Say(nil, "hello")
	if !a.Equal(b) {
		t.Error("Expected equal says to compare equal")
	}

	b.Untrusted = true
	if !a.Equal(b) {
		t.Error("Expected trust to be ignored by Equal")
	}

	c := Say(nil, "goodbye")
	if a.Equal(c) {
		t.Error("Expected different texts to compare unequal")
	}

	done1 := Done(nil, VerbGo)
	done1.Dir = "north"
	done2 := Done(nil, VerbGo)
	done2.Dir = "south"
	if done1.Equal(done2) {
		t.Error("Expected different directions to compare unequal")
	}

	and1 := And(nil, Say(nil, "x"), Say(nil, "y"))
	and2 := And(nil, Say(nil, "x"), Say(nil, "y"))
	and3 := And(nil, Say(nil, "y"), Say(nil, "x"))
	if !and1.Equal(and2) {
		t.Error("Expected identical compounds to compare equal")
	}
	if and1.Equal(and3) {
		t.Error("Expected reordered compounds to compare unequal")
	}
}
