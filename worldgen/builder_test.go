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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaelen/zorkvm"
)

func TestRoomBuilderExits(t *testing.T) {
	loc := Room(1, "Foyer").
		Describe("A grand foyer.").
		Lit().
		Exit(zorkvm.North, 2).
		BlockedExit(zorkvm.South, "You can't go that way.").
		Build()

	assert.Equal(t, "Foyer", loc.Name)
	assert.True(t, loc.Flags.InherentlyLit)

	north, ok := loc.ExitTo(zorkvm.North)
	require.True(t, ok)
	assert.Equal(t, zorkvm.LocationID(2), north.Destination)
	assert.False(t, north.Blocked)

	south, ok := loc.ExitTo(zorkvm.South)
	require.True(t, ok)
	assert.True(t, south.Blocked)
	assert.Equal(t, "You can't go that way.", south.BlockedText)
}

func TestRoomBuilderLockedExit(t *testing.T) {
	loc := Room(1, "Hall").LockedExit(zorkvm.West, 2, 99).Build()
	exit, ok := loc.ExitTo(zorkvm.West)
	require.True(t, ok)
	require.NotNil(t, exit.DoorID)
	assert.Equal(t, zorkvm.ItemID(99), *exit.DoorID)
}

func TestItemBuilderTakableAndContainer(t *testing.T) {
	chest := NewItem(1, "chest").Container(20).Build()
	assert.True(t, chest.Flags.Container)
	assert.True(t, chest.Flags.Openable)
	assert.Equal(t, 20, chest.Capacity)

	coin := NewItem(2, "coin").Takable(1).In(5).Build()
	assert.True(t, coin.Flags.Takable)
	assert.Equal(t, 1, coin.Size)
	assert.Equal(t, zorkvm.InLocation(5), coin.Parent)
}

func TestItemBuilderPlacement(t *testing.T) {
	held := NewItem(1, "ring").Held().Build()
	assert.Equal(t, zorkvm.WithPlayer, held.Parent)

	inside := NewItem(2, "gem").Inside(9).Build()
	assert.Equal(t, zorkvm.InItem(9), inside.Parent)
}

func TestItemBuilderNPCCopiesSheet(t *testing.T) {
	sheet := zorkvm.CharacterSheet{Health: 5, MaxHealth: 5}
	npc := NewItem(1, "rat").NPC(sheet).Build()
	require.NotNil(t, npc.CharacterSheet)
	assert.Equal(t, 5, npc.CharacterSheet.Health)

	npc.CharacterSheet.Health = 0
	assert.Equal(t, 5, sheet.Health, "NPC must copy the sheet, not alias the caller's")
}
