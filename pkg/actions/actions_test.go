package actions

import (
	"testing"

	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// buildWorld constructs the fixture shared by the action tests:
//
//	kitchen --east(door)-- parlor --east-- study
//	kitchen --south(locked door)-- cellar
//
// The kitchen holds the player, a closed box with a red ball inside, a
// locked box with a gem inside, a table carrying a white cup, and a
// loose green ball. The parlor holds a vase.
func buildWorld(t *testing.T) (*world.World, map[string]*world.Entity) {
	t.Helper()
	w := world.New()

	kitchen := world.BuildPlace(w, "kitchen", world.EntitySpec{Type: "kitchen"})
	parlor := world.BuildPlace(w, "parlor", world.EntitySpec{Type: "parlor"})
	study := world.BuildPlace(w, "study", world.EntitySpec{Type: "study"})
	cellar := world.BuildPlace(w, "cellar", world.EntitySpec{Type: "cellar"})

	door := world.BuildDoor(w, "door", world.EntitySpec{
		Material: "wood", Location: world.In(kitchen)}, nil)
	lockedDoor := world.BuildDoor(w, "locked_door", world.EntitySpec{
		Material: "metal", Location: world.In(kitchen)}, nil)
	lockedDoor.Attributes[world.AttrLocked] = struct{}{}

	world.Connect(kitchen, "east", parlor, door)
	world.Connect(parlor, "east", study, nil)
	world.Connect(kitchen, "south", cellar, lockedDoor)

	player := world.BuildPlayer(w, "ann", world.EntitySpec{
		Type: "person", Name: "Ann", Location: world.In(kitchen)})

	box := world.BuildEntity(w, "box", world.EntitySpec{
		Type: "box", Material: "cardboard", Location: world.In(kitchen)})
	box.Attributes[world.AttrContainer] = struct{}{}
	box.Attributes[world.AttrOpenable] = struct{}{}

	redBall := world.BuildEntity(w, "red_ball", world.EntitySpec{
		Type: "ball", Color: "red", Location: world.In(box)})

	lockedBox := world.BuildEntity(w, "locked_box", world.EntitySpec{
		Type: "chest", Material: "iron", Location: world.In(kitchen)})
	lockedBox.Attributes[world.AttrContainer] = struct{}{}
	lockedBox.Attributes[world.AttrOpenable] = struct{}{}
	lockedBox.Attributes[world.AttrLocked] = struct{}{}

	gem := world.BuildEntity(w, "gem", world.EntitySpec{
		Type: "gem", Color: "white", Location: world.In(lockedBox)})

	table := world.BuildTable(w, "table", world.EntitySpec{
		Material: "oak", Location: world.In(kitchen)})
	cup := world.BuildEntity(w, "cup", world.EntitySpec{
		Type: "cup", Color: "white", Location: world.On(table)})

	greenBall := world.BuildEntity(w, "green_ball", world.EntitySpec{
		Type: "ball", Color: "green", Location: world.In(kitchen)})

	vase := world.BuildEntity(w, "vase", world.EntitySpec{
		Type: "vase", Location: world.In(parlor)})

	w.Reindex()
	return w, map[string]*world.Entity{
		"kitchen": kitchen, "parlor": parlor, "study": study, "cellar": cellar,
		"door": door, "locked_door": lockedDoor, "player": player,
		"box": box, "red_ball": redBall, "locked_box": lockedBox, "gem": gem,
		"table": table, "cup": cup, "green_ball": greenBall, "vase": vase,
	}
}

func soleReason(t *testing.T, out []*sentence.Statement, want sentence.Reason) *sentence.Statement {
	t.Helper()
	if len(out) != 1 {
		t.Fatalf("Expected exactly one statement, got %d: %v", len(out), out)
	}
	if out[0].Form != sentence.FormBlocked {
		t.Fatalf("Expected a blocked statement, got %v", out[0].Form)
	}
	if out[0].Reason != want {
		t.Fatalf("Expected reason %q, got %q", want, out[0].Reason)
	}
	return out[0]
}

func isDone(out []*sentence.Statement) bool {
	return len(out) == 1 && out[0].Form == sentence.FormDone
}

func TestGoThroughDoorAndRecover(t *testing.T) {
	w, e := buildWorld(t)
	player, door := e["player"], e["door"]
	cp := w.Save()

	out := Go(w, player, "east")
	blocked := soleReason(t, out, sentence.ReasonNotOpen)
	if blocked.Cause != door {
		t.Errorf("Expected the door as cause, got %v", blocked.Cause)
	}

	if out := Open(w, player, door); !isDone(out) {
		t.Fatalf("Expected opening the door to succeed, got %v", out)
	}
	out = Go(w, player, "east")
	if !isDone(out) {
		t.Fatalf("Expected go to succeed after opening the door, got %v", out)
	}
	if player.TopLocation() != e["parlor"] {
		t.Error("Expected the player in the parlor")
	}

	w.Recover(cp)

	if player.TopLocation() != e["kitchen"] {
		t.Error("Expected recover to return the player to the kitchen")
	}
	if door.Has(world.AttrOpen) {
		t.Error("Expected recover to close the door again")
	}
	if w.Log.Len() != int(cp) {
		t.Errorf("Expected log length %d after recover, got %d", int(cp), w.Log.Len())
	}
}

func TestGoBlockedReasons(t *testing.T) {
	w, e := buildWorld(t)
	player := e["player"]

	out := Go(w, player, "north")
	soleReason(t, out, sentence.ReasonNoExit)

	out = Go(w, player, "south")
	blocked := soleReason(t, out, sentence.ReasonLocked)
	if blocked.Cause != e["locked_door"] {
		t.Errorf("Expected the locked door as cause, got %v", blocked.Cause)
	}
}

func TestReachableLockedBeatsClosed(t *testing.T) {
	w, e := buildWorld(t)

	// The locked box is both locked and closed; only locked is reported.
	out := Reachable(e["player"], e["gem"], sentence.VerbGet)
	blocked := soleReason(t, out, sentence.ReasonLocked)
	if blocked.Cause != e["locked_box"] {
		t.Errorf("Expected the locked box as cause, got %v", blocked.Cause)
	}
	_ = w
}

func TestGetBlockedReasons(t *testing.T) {
	w, e := buildWorld(t)
	player := e["player"]

	tests := []struct {
		name   string
		item   *world.Entity
		stated *world.Location
		want   sentence.Reason
	}{
		{"inside closed box", e["red_ball"], nil, sentence.ReasonNotOpen},
		{"inside locked box", e["gem"], nil, sentence.ReasonLocked},
		{"static", e["table"], nil, sentence.ReasonStatic},
		{"other room", e["vase"], nil, sentence.ReasonNotReachable},
		{"wrong stated location", e["cup"], world.In(e["parlor"]), sentence.ReasonWrongLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := w.Save()
			out := Get(w, player, tt.item, tt.stated)
			soleReason(t, out, tt.want)
			w.Recover(cp)
		})
	}

	out := Get(w, player, player, nil)
	found := false
	for _, st := range out {
		if st.Form == sentence.FormBlocked && st.Reason == sentence.ReasonSelf {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a self-reference block, got %v", out)
	}
}

func TestGetAndDrop(t *testing.T) {
	w, e := buildWorld(t)
	player, cup, table := e["player"], e["cup"], e["table"]

	// The stated top location is accepted for a nested item.
	out := Get(w, player, cup, world.In(e["kitchen"]))
	if !isDone(out) {
		t.Fatalf("Expected get to succeed, got %v", out)
	}
	if table.Holds(cup) {
		t.Error("Expected the cup off the table")
	}
	if loc, _ := cup.Location(); loc.Place != player {
		t.Error("Expected the cup in the player's inventory")
	}

	out = Get(w, player, cup, nil)
	soleReason(t, out, sentence.ReasonAlreadyCarried)

	// Default drop target is the player's own location.
	out = Drop(w, player, cup, nil)
	if !isDone(out) {
		t.Fatalf("Expected drop to succeed, got %v", out)
	}
	if loc, _ := cup.Location(); loc.Place != e["kitchen"] {
		t.Error("Expected the cup dropped in the kitchen")
	}

	out = Drop(w, player, cup, nil)
	soleReason(t, out, sentence.ReasonNotCarried)
}

func TestDropIntoContainer(t *testing.T) {
	w, e := buildWorld(t)
	player, box, ball := e["player"], e["box"], e["green_ball"]

	if out := Get(w, player, ball, nil); !isDone(out) {
		t.Fatalf("Expected get to succeed, got %v", out)
	}

	out := Drop(w, player, ball, world.In(box))
	soleReason(t, out, sentence.ReasonNotOpen)

	if out := Open(w, player, box); !isDone(out) {
		t.Fatalf("Expected open to succeed, got %v", out)
	}
	out = Drop(w, player, ball, world.In(box))
	if !isDone(out) {
		t.Fatalf("Expected drop into the open box to succeed, got %v", out)
	}
	if !box.Holds(ball) {
		t.Error("Expected the box to hold the ball")
	}
}

func TestOpenCloseEdgeCases(t *testing.T) {
	w, e := buildWorld(t)
	player := e["player"]

	out := Open(w, player, e["table"])
	soleReason(t, out, sentence.ReasonNotOpenable)

	out = Open(w, player, e["locked_box"])
	soleReason(t, out, sentence.ReasonLocked)

	out = Close(w, player, e["box"])
	soleReason(t, out, sentence.ReasonAlreadyClosed)

	before := w.Log.Len()
	if out := Open(w, player, e["box"]); !isDone(out) {
		t.Fatalf("Expected open to succeed, got %v", out)
	}
	if w.Log.Len() != before+1 {
		t.Errorf("Expected exactly one undo record, got %d", w.Log.Len()-before)
	}

	out = Open(w, player, e["box"])
	soleReason(t, out, sentence.ReasonAlreadyOpen)

	if out := Close(w, player, e["box"]); !isDone(out) {
		t.Fatalf("Expected close to succeed, got %v", out)
	}
	if e["box"].Has(world.AttrOpen) {
		t.Error("Expected the box closed")
	}
}

func TestLook(t *testing.T) {
	w, e := buildWorld(t)
	player, box := e["player"], e["box"]

	// Closed holder: no contents listed.
	out := Look(w, player, box)
	for _, st := range out {
		if st.Form == sentence.FormContents {
			t.Fatal("Expected no contents statement for a closed box")
		}
	}

	if out := Open(w, player, box); !isDone(out) {
		t.Fatalf("Expected open to succeed, got %v", out)
	}
	out = Look(w, player, box)

	var contents *sentence.Statement
	sawMaterial := false
	for _, st := range out {
		if st.Form == sentence.FormContents {
			contents = st
		}
		if st.Form == sentence.FormProperty && st.PropKey == world.PropMaterial {
			sawMaterial = true
		}
	}
	if contents == nil {
		t.Fatal("Expected a contents statement for an open box")
	}
	if len(contents.Items) != 1 || contents.Items[0] != e["red_ball"] {
		t.Errorf("Expected the red ball as contents, got %v", contents.Items)
	}
	if !sawMaterial {
		t.Error("Expected the box's material among the revealed properties")
	}

	out = Look(w, player, e["vase"])
	soleReason(t, out, sentence.ReasonNotReachable)
}

func TestChange(t *testing.T) {
	w, e := buildWorld(t)
	player, ball := e["player"], e["green_ball"]

	out := Change(w, player, ball, world.PropMaterial, "wood")
	soleReason(t, out, sentence.ReasonNotChangeable)

	out = Change(w, player, ball, world.PropColor, "chartreuse")
	soleReason(t, out, sentence.ReasonUnknownValue)

	before := w.Log.Len()
	out = Change(w, player, ball, world.PropColor, "white")
	if !isDone(out) {
		t.Fatalf("Expected change to succeed, got %v", out)
	}
	if out[0].OldVal != "green" {
		t.Errorf("Expected old value green, got %v", out[0].OldVal)
	}
	if ball.Properties[world.PropColor] != "white" {
		t.Error("Expected the ball recolored white")
	}
	if w.Log.Len() != before+1 {
		t.Errorf("Expected exactly one undo record, got %d", w.Log.Len()-before)
	}

	w.Log.RevertTo(world.Checkpoint(before))
	if ball.Properties[world.PropColor] != "green" {
		t.Error("Expected the undo to restore the green color")
	}
}

func TestChangeConflictRollsBack(t *testing.T) {
	w, e := buildWorld(t)
	player, ball := e["player"], e["green_ball"]
	before := w.Log.Len()

	// A red ball already exists; recoloring the green one would make
	// the two indistinguishable.
	out := Change(w, player, ball, world.PropColor, "red")
	blocked := soleReason(t, out, sentence.ReasonConflict)
	if blocked.Cause != e["red_ball"] {
		t.Errorf("Expected the red ball as the conflicting entity, got %v", blocked.Cause)
	}
	if ball.Properties[world.PropColor] != "green" {
		t.Error("Expected the tentative change rolled back")
	}
	if w.Log.Len() != before {
		t.Error("Expected no undo record for a conflicting change")
	}
}

func TestRecoverRestoresContentsOrder(t *testing.T) {
	w, e := buildWorld(t)
	player, kitchen, ball := e["player"], e["kitchen"], e["green_ball"]

	idx := -1
	for i, o := range kitchen.Objects {
		if o == ball {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("Expected the green ball in the kitchen")
	}

	cp := w.Save()
	if out := Get(w, player, ball, nil); !isDone(out) {
		t.Fatalf("Expected get to succeed, got %v", out)
	}
	w.Recover(cp)

	if kitchen.Objects[idx] != ball {
		t.Errorf("Expected the ball back at contents index %d", idx)
	}
}
