package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

func renderFixture() (*world.World, *world.Entity, *world.Entity, *world.Entity) {
	w := world.New()
	hall := world.BuildPlace(w, "hall", world.EntitySpec{Type: "hall"})
	ann := world.BuildPlayer(w, "ann", world.EntitySpec{
		Type: "person", Name: "Ann", Location: world.In(hall)})
	ball := world.BuildEntity(w, "ball", world.EntitySpec{
		Type: "ball", Size: "small", Color: "red", Location: world.In(hall)})
	w.Reindex()
	return w, hall, ann, ball
}

func TestRenderRequests(t *testing.T) {
	_, hall, ann, ball := renderFixture()

	assert.Equal(t, "Ann, go east.",
		Request(ann, ann, VerbGo).WithDir("east").String())
	assert.Equal(t, "Ann, go in the hall.",
		Request(ann, ann, VerbGo).WithLoc(world.In(hall)).String())
	assert.Equal(t, "Ann, get the small red ball.",
		Request(ann, ann, VerbGet).WithObject(ball).String())
	assert.Equal(t, "Ann, get the small red ball in the hall.",
		Request(ann, ann, VerbGet).WithObject(ball).WithLoc(world.In(hall)).String())
	assert.Equal(t, "Ann, look at the small red ball.",
		Request(ann, ann, VerbLook).WithObject(ball).String())
	assert.Equal(t, "Ann, change the color of the small red ball to green.",
		Request(ann, ann, VerbChange).WithObject(ball).WithChange(world.PropColor, "green").String())

	compound := And(ann,
		Request(ann, ann, VerbGet).WithObject(ball),
		Request(ann, ann, VerbGo).WithDir("east"))
	assert.Equal(t, "Ann, get the small red ball, and then Ann, go east.", compound.String())
}

func TestRenderAbstractObject(t *testing.T) {
	_, _, ann, _ := renderFixture()

	desc := world.NewAbstractEntity()
	desc.Properties[world.PropType] = "ball"
	desc.Properties[world.PropColor] = "red"
	assert.Equal(t, "Ann, get a red ball.",
		Request(ann, ann, VerbGet).WithObject(desc).String())
}

func TestRenderOutcomes(t *testing.T) {
	_, hall, ann, ball := renderFixture()

	assert.Equal(t, "Ann goes in the hall.",
		func() string {
			d := Done(ann, VerbGo)
			d.Loc = world.In(hall)
			return d.String()
		}())
	assert.Equal(t, "Ann gets the small red ball.",
		func() string {
			d := Done(ann, VerbGet)
			d.Object = ball
			return d.String()
		}())
	assert.Equal(t, "Ann can't get because the small red ball is static.",
		Blocked(ann, VerbGet, ReasonStatic, ball).String())
	assert.Equal(t, "Ann can't change because that conflicts with the small red ball.",
		Blocked(ann, VerbChange, ReasonConflict, ball).String())
	assert.Equal(t, "Ann tries to open the small red ball.",
		Attempt(ann, Request(ann, ann, VerbOpen).WithObject(ball)).String())
}

func TestRenderFacts(t *testing.T) {
	_, _, ann, ball := renderFixture()

	assert.Equal(t, "The color of the small red ball is red.",
		PropertyFact(nil, ball, world.PropColor, "red", false).String())
	assert.Equal(t, "The color of the small red ball is not green.",
		PropertyFact(nil, ball, world.PropColor, "green", true).String())
	assert.Equal(t, "The small red ball is open.",
		AttributeFact(nil, ball, world.AttrOpen, false).String())
	assert.Equal(t, "The small red ball is not open.",
		AttributeFact(nil, ball, world.AttrOpen, true).String())
	assert.Equal(t, "The small red ball holds nothing.",
		Contents(nil, ball, nil).String())
	assert.Equal(t, "Ann is allowed to go.",
		Permission(nil, ann, VerbGo, false).String())
	assert.Equal(t, "Red is a color.",
		ValidKey(nil, world.PropColor, "red").String())
	assert.Equal(t, "Ann: hello.",
		Say(ann, "hello.").String())
}

func TestRenderQuestions(t *testing.T) {
	_, _, ann, ball := renderFixture()

	assert.Equal(t, "Ann, is the color of the small red ball red?",
		Question(ann, ann, ball, world.PropColor, "red", "").String())
	assert.Equal(t, "Ann, is the small red ball open?",
		Question(ann, ann, ball, "", nil, world.AttrOpen).String())
}

func TestJoinAnd(t *testing.T) {
	assert.Equal(t, "nothing", joinAnd(nil))
	assert.Equal(t, "a", joinAnd([]string{"a"}))
	assert.Equal(t, "a and b", joinAnd([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinAnd([]string{"a", "b", "c"}))
}
