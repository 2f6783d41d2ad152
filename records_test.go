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

package zorkvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemDefaults(t *testing.T) {
	it := NewItem(5, "torch")
	assert.Equal(t, Nowhere, it.Parent)
	assert.NotNil(t, it.Properties)
	assert.Empty(t, it.Properties)
}

func TestItemStringHandlesNil(t *testing.T) {
	var it *Item
	assert.Equal(t, "", it.String())

	it = NewItem(1, "torch")
	assert.Contains(t, it.String(), "torch")
}

func TestNewLocationDefaults(t *testing.T) {
	loc := NewLocation(3, "Vault")
	assert.Equal(t, "Vault", loc.Name)
	assert.False(t, loc.Flags.InherentlyLit)
	assert.NotNil(t, loc.Properties)
}

func TestLocationStringHandlesNil(t *testing.T) {
	var loc *Location
	assert.Equal(t, "", loc.String())

	loc = NewLocation(1, "Vault")
	assert.Contains(t, loc.String(), "Vault")
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(7)
	assert.Equal(t, LocationID(7), p.Location)
	assert.Equal(t, 100, p.CarryingCapacity)
	assert.Equal(t, 100, p.CharacterSheet.Health)
	assert.Equal(t, Conscious, p.CharacterSheet.Consciousness)
}

func TestPlayerStringHandlesNil(t *testing.T) {
	var p *Player
	assert.Equal(t, "", p.String())

	p = NewPlayer(1)
	p.Score = 42
	assert.Contains(t, p.String(), "42")
}
