/******
This file is part of Vaelen/ZorkVM.

Copyright 2017, Andrew Young <andrew@vaelen.org>

    Vaelen/ZorkVM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

    Vaelen/ZorkVM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
along with Vaelen/ZorkVM.  If not, see <http://www.gnu.org/licenses/>.
******/

package worldgen

import "github.com/vaelen/zorkvm"

// Location IDs for the fixture world.
const (
	WestOfHouse zorkvm.LocationID = iota + 1
	EastOfHouse
	Kitchen
	GratingClearing
	Cellar
	TrollRoom
)

// Item IDs for the fixture world.
const (
	Leaflet zorkvm.ItemID = iota + 1
	Window
	Leaves
	Grate
	Lantern
	Egg
	LargeBag
	Thief
	Troll
	Axe
	Sword
)

// Fixture builds a small non-Zork-content standin world sized to exercise
// every end-to-end scenario: take-and-examine, open-the-window, reveal-the-
// grating, grue-safe lighting, the thief's theft, and the troll disarm.
// It returns the populated GameState and the HookRegistry wired against it;
// combat systems and daemons are built separately (see content.go) since
// they need a live Engine/Scheduler to register against.
func Fixture() (*zorkvm.GameState, *zorkvm.HookRegistry) {
	state := zorkvm.NewGameState()
	state.NextLocationID = TrollRoom + 1
	state.NextItemID = Sword + 1
	state.Player = zorkvm.NewPlayer(WestOfHouse)

	state.Locations[WestOfHouse] = Room(WestOfHouse, "West of House").
		Describe("You are standing in an open field west of a white house, with a boarded front door.").
		Lit().
		Exit(zorkvm.East, EastOfHouse).
		BlockedExit(zorkvm.North, "The forest extends in all directions, offering no way through.").
		Build()

	state.Locations[EastOfHouse] = Room(EastOfHouse, "Behind House").
		Describe("You are behind the white house. A path leads off into the forest to the east.").
		Lit().
		LockedExit(zorkvm.West, Kitchen, Window).
		Build()

	state.Locations[Kitchen] = Room(Kitchen, "Kitchen").
		Describe("You are in the kitchen of the white house. A table seems to have been used recently for the preparation of food.").
		Lit().
		Exit(zorkvm.East, EastOfHouse).
		Exit(zorkvm.Down, Cellar).
		Build()

	state.Locations[GratingClearing] = Room(GratingClearing, "Clearing").
		Describe("You are in a small clearing in a well-marked forest path.").
		Lit().
		LocalGlobal(Leaves).
		LocalGlobal(Grate).
		Build()

	state.Locations[Cellar] = Room(Cellar, "Cellar").
		Describe("You are in a dark and damp cellar with a narrow passageway leading north, and a wide staircase leading up.").
		Exit(zorkvm.Up, Kitchen).
		Exit(zorkvm.North, TrollRoom).
		Build()

	state.Locations[TrollRoom] = Room(TrollRoom, "Troll Room").
		Describe("This is a small room with passages to the east and south, and a forbidding hole leading west.").
		Exit(zorkvm.South, Cellar).
		Build()

	state.Items[Leaflet] = NewItem(Leaflet, "leaflet").
		Describe("\"WELCOME TO ZORK!\n\nZORK is a game of adventure, danger, and low cunning.\"").
		Short("There is a leaflet here.").
		Synonyms("paper").
		Takable(2).
		Readable("\"WELCOME TO ZORK!\n\nZORK is a game of adventure, danger, and low cunning.\"").
		In(WestOfHouse).
		Build()

	state.Items[Window] = NewItem(Window, "window").
		Describe("The window is slightly ajar, but not enough to allow entry.").
		Adjectives("kitchen").
		Flags(func(f *zorkvm.ItemFlags) { f.Openable = true }).
		In(EastOfHouse).
		Build()

	state.Items[Leaves] = NewItem(Leaves, "pile of leaves").
		Describe("A pile of leaves, not entirely unlike a cloak in texture.").
		Synonyms("leaves", "pile").
		Build()

	state.Items[Grate] = NewItem(Grate, "grating").
		Describe("The grating is solidly fastened into the ground.").
		Synonyms("grate").
		Build()
	state.Items[Grate].Flags.Invisible = true

	state.Items[Lantern] = NewItem(Lantern, "brass lantern").
		Describe("A battery-powered brass lantern is on the ground.").
		Synonyms("lamp").
		Adjectives("brass").
		Takable(5).
		LightSource().
		In(WestOfHouse).
		Build()

	state.Items[Egg] = NewItem(Egg, "jewel-encrusted egg").
		Describe("A jewel-encrusted egg, with fine gold inlay, sits here.").
		Synonyms("egg").
		Adjectives("jewel-encrusted", "jeweled").
		Takable(3).
		In(TrollRoom).
		Build()
	state.Items[Egg].Value = 5

	state.Items[LargeBag] = NewItem(LargeBag, "large bag").
		Describe("The thief's large bag.").
		Container(50).
		Build()
	state.Items[LargeBag].Flags.Open = true
	state.Items[LargeBag].Parent = zorkvm.InItem(Thief)

	state.Items[Thief] = NewItem(Thief, "suspicious-looking man").
		Describe("There is a suspicious-looking individual leaning against one wall.").
		Synonyms("thief", "man", "robber").
		NPC(zorkvm.CharacterSheet{Health: 30, MaxHealth: 30, Strength: 14, Dexterity: 16, Accuracy: 16, ArmorClass: 6}).
		In(Cellar).
		Build()

	state.Items[Troll] = NewItem(Troll, "troll").
		Describe("A nasty-looking troll, brandishing a bloody axe, blocks all passages out of the room.").
		Synonyms("troll").
		NPC(zorkvm.CharacterSheet{Health: 20, MaxHealth: 20, Strength: 16, Dexterity: 10, Accuracy: 12, ArmorClass: 9}).
		In(TrollRoom).
		Build()

	state.Items[Axe] = NewItem(Axe, "bloody axe").
		Describe("A bloody axe.").
		Short("").
		Synonyms("axe").
		Weapon(6).
		Build()
	state.Items[Axe].Flags.OmitDescription = true
	state.Items[Axe].Parent = zorkvm.InItem(Troll)

	state.Items[Sword] = NewItem(Sword, "elvish sword").
		Describe("A glowing blue sword is on the ground.").
		Synonyms("sword").
		Adjectives("elvish").
		Takable(4).
		Weapon(8).
		Build()
	state.Items[Sword].Flags.SelfIgnitable = true
	state.Items[Sword].Parent = zorkvm.WithPlayer

	hooks := zorkvm.NewHookRegistry()
	registerHooks(hooks)

	return state, hooks
}
