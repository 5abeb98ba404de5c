// Package worlds builds simulation worlds, either programmatically or
// from YAML definition files.
package worlds

import "github.com/jwebster45206/dialogue-engine/pkg/world"

// Farm builds the standard training world: eight connected places,
// five players, nested containers and a mix of open, closed and locked
// doors.
func Farm() *world.World {
	w := world.New()

	barn := world.BuildPlace(w, "barn", world.EntitySpec{Type: []string{"family", "barn"}})
	mainPath := world.BuildPlace(w, "main_path", world.EntitySpec{Type: []string{"porch", "path"}})
	well := world.BuildPlace(w, "well", world.EntitySpec{Type: "well"})
	livingRoom := world.BuildPlace(w, "living_room", world.EntitySpec{Type: []string{"living", "room"}, Size: "big", Nickname: "tranquility room"})
	kitchen := world.BuildPlace(w, "kitchen", world.EntitySpec{Type: "kitchen", Material: "wood"})
	bedroom := world.BuildPlace(w, "bedroom", world.EntitySpec{Type: "bedroom", Material: "plaster"})
	bathroom := world.BuildPlace(w, "bathroom", world.EntitySpec{Type: "bathroom"})
	basement := world.BuildPlace(w, "basement", world.EntitySpec{Type: "basement"})

	gretel := world.BuildPlayer(w, "player", world.EntitySpec{
		Type: "person", Size: "medium", Location: world.In(barn),
		Name: "Gretel", Surname: "Mustermann", Nickname: "honey"})
	gretel.Attributes["main"] = struct{}{}
	world.BuildPlayer(w, "player2", world.EntitySpec{
		Type: "person", Size: "small", Location: world.In(barn),
		Name: "Hans", Surname: "Doe", Nickname: "peanut"})
	world.BuildPlayer(w, "inv", world.EntitySpec{
		Type: "person", Size: []string{"very", "big"}, Location: world.In(basement),
		Name: "Max", Nickname: "uncle"})
	world.BuildPlayer(w, "bear", world.EntitySpec{
		Type: "bear", Color: "orange", Location: world.In(barn),
		Name: "Andy", Nickname: "fluffy"})
	world.BuildPlayer(w, "dog", world.EntitySpec{
		Type: "dog", Location: world.In(kitchen),
		Name: "Hannah", Nickname: "coco"})

	toysDrawer := world.BuildEntity(w, "toys_drawer", world.EntitySpec{
		Type: []string{"toys", "drawer"}, Color: "red", Location: world.In(bedroom)})
	toysDrawer.Attributes[world.AttrContainer] = struct{}{}
	toysDrawer.Attributes[world.AttrSupporter] = struct{}{}
	toysDrawer.Attributes[world.AttrOpenable] = struct{}{}
	toysDrawer.Attributes[world.AttrOpen] = struct{}{}

	smallDrawer := world.BuildEntity(w, "small_drawer", world.EntitySpec{
		Type: []string{"toys", "drawer"}, Color: "green", Location: world.In(toysDrawer)})
	smallDrawer.Attributes[world.AttrContainer] = struct{}{}
	smallDrawer.Attributes[world.AttrOpenable] = struct{}{}

	innerBox := world.BuildEntity(w, "inner_box", world.EntitySpec{
		Type: "box", Material: "cardboard", Location: world.In(smallDrawer)})
	innerBox.Attributes[world.AttrContainer] = struct{}{}
	innerBox.Attributes[world.AttrLocked] = struct{}{}

	rug := world.BuildEntity(w, "rug", world.EntitySpec{Type: "rug", Location: world.In(kitchen)})
	rug.Attributes[world.AttrHollow] = struct{}{}

	world.BuildEntity(w, "small_ball", world.EntitySpec{
		Type: "ball", Size: "small", Color: "red", Location: world.In(smallDrawer)})
	world.BuildEntity(w, "big_ball", world.EntitySpec{
		Type: "ball", Size: "big", Color: "green", Location: world.In(toysDrawer)})
	world.BuildEntity(w, "small_apple", world.EntitySpec{
		Type: "apple", Size: "small", Color: "red", Location: world.In(mainPath)})
	world.BuildEntity(w, "big_apple", world.EntitySpec{
		Type: "apple", Size: "big", Color: "green", Location: world.In(mainPath)})
	world.BuildEntity(w, "chicken", world.EntitySpec{Type: "chicken", Location: world.In(well)})

	kitchenTable := world.BuildTable(w, "kitchen_table", world.EntitySpec{
		Material: "plastic", Location: world.In(kitchen)})
	kitchenWindow := world.BuildWindow(w, "kitchen_window", world.EntitySpec{
		Size: "small", Color: "green", Material: "wood", Location: world.In(kitchen)})
	kitchenWindow.Attributes[world.AttrOpen] = struct{}{}

	world.BuildEntity(w, "carrot", world.EntitySpec{
		Type: "carrot", Color: "orange", Location: world.On(kitchenTable)})

	foodDrawer := world.BuildEntity(w, "food_drawer", world.EntitySpec{
		Type: []string{"food", "drawer"}, Color: "green", Location: world.In(kitchen)})
	foodDrawer.Attributes[world.AttrOpenable] = struct{}{}
	foodDrawer.Attributes[world.AttrHollow] = struct{}{}
	foodDrawer.Attributes[world.AttrContainer] = struct{}{}
	foodDrawer.Attributes[world.AttrStatic] = struct{}{}

	shelf := world.BuildEntity(w, "shelf", world.EntitySpec{
		Type: "shelf", Color: "brown", Material: "plastic", Location: world.In(foodDrawer)})
	shelf.Attributes[world.AttrSupporter] = struct{}{}

	cardboardBox := world.BuildEntity(w, "cardboard_box", world.EntitySpec{
		Type: "box", Size: "big", Material: "cardboard", Location: world.On(shelf)})
	cardboardBox.Attributes[world.AttrContainer] = struct{}{}
	cardboardBox.Attributes[world.AttrOpen] = struct{}{}

	flourBag := world.BuildEntity(w, "flour_bag", world.EntitySpec{
		Type: "bag", Size: "small", Material: "cotton", Color: "white", Location: world.In(cardboardBox)})
	flourBag.Attributes[world.AttrContainer] = struct{}{}
	flourBag.Attributes[world.AttrOpenable] = struct{}{}

	sugarBowl := world.BuildEntity(w, "sugar_bowl", world.EntitySpec{
		Type: "bowl", Size: "small", Material: "plastic", Color: "white", Location: world.In(cardboardBox)})
	sugarBowl.Attributes[world.AttrContainer] = struct{}{}
	sugarBowl.Attributes[world.AttrOpen] = struct{}{}

	world.BuildEntity(w, "white_sugar_cube", world.EntitySpec{
		Type: "cube", Size: []string{"very", "small"}, Material: "sugar", Color: "white",
		Location: world.In(sugarBowl)})
	world.BuildEntity(w, "brown_sugar_cube", world.EntitySpec{
		Type: "cube", Size: []string{"very", "small"}, Material: "sugar", Color: "brown",
		Location: world.In(sugarBowl)})

	mainDoor := world.BuildDoor(w, "main_door", world.EntitySpec{
		Size: "medium", Material: "plastic", Location: world.In(kitchen)}, livingRoom)
	livRoomDoor := world.BuildDoor(w, "liv_room_door", world.EntitySpec{
		Material: "metal", Location: world.In(livingRoom)}, nil)
	livRoomDoor.Attributes[world.AttrLocked] = struct{}{}
	bathroomDoor := world.BuildDoor(w, "bathroom_door", world.EntitySpec{
		Size: "big", Color: "red", Material: "wood", Nickname: "privacy portal",
		Location: world.In(bathroom)}, nil)
	bathroomDoor.Attributes[world.AttrLocked] = struct{}{}
	barnDoor := world.BuildDoor(w, "barn_door", world.EntitySpec{
		Size: "small", Color: "brown", Location: world.In(barn)}, nil)
	barnDoor.Attributes[world.AttrLocked] = struct{}{}

	world.Connect(mainPath, "west", barn, nil)
	world.Connect(mainPath, "south", well, nil)
	world.Connect(mainPath, "north", livingRoom, nil)
	world.Connect(livingRoom, "west", kitchen, mainDoor)
	world.Connect(livingRoom, "east", bedroom, nil)
	world.Connect(kitchen, "south", basement, nil)
	world.Connect(bedroom, "south", bathroom, nil)

	// Locked doors without a mapped edge still block their direction.
	barn.Obstacles["north"] = barnDoor
	livingRoom.Obstacles["north"] = livRoomDoor
	bathroom.Obstacles["east"] = bathroomDoor

	w.Reindex()
	return w
}
