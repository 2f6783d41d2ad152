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
	"github.com/stretchr/testify/require"
)

func TestComputedPropertiesRegisterAndComputeItem(t *testing.T) {
	comp := NewComputedProperties()
	comp.RegisterItem(1, PropName, FuncComputer(func(ctx ComputeContext) (StateValue, bool) {
		return StringValue("the glowing orb"), true
	}))

	v, ok := comp.ComputeItem(1, PropName, nil)
	require.True(t, ok)
	assert.Equal(t, "the glowing orb", v.String())
}

func TestComputedPropertiesMissReturnsFalse(t *testing.T) {
	comp := NewComputedProperties()
	_, ok := comp.ComputeItem(1, PropName, nil)
	assert.False(t, ok)

	comp.RegisterItem(1, PropName, FuncComputer(func(ctx ComputeContext) (StateValue, bool) { return StateValue{}, true }))
	_, ok = comp.ComputeItem(2, PropName, nil)
	assert.False(t, ok, "a computer registered for a different item must not apply")
}

func TestComputedPropertiesNilRegistryIsSafe(t *testing.T) {
	var comp *ComputedProperties
	_, ok := comp.ComputeItem(1, PropName, nil)
	assert.False(t, ok)
}

func TestComputedPropertiesRegisterAndComputeLocation(t *testing.T) {
	comp := NewComputedProperties()
	comp.RegisterLocation(1, LocationVisited, FuncComputer(func(ctx ComputeContext) (StateValue, bool) {
		return BoolValue(true), true
	}))
	v, ok := comp.ComputeLocation(1, LocationVisited, nil)
	require.True(t, ok)
	assert.True(t, v.Bool())
}

func TestLispPropertyComputerEvaluatesStringLiteral(t *testing.T) {
	lpc := &LispPropertyComputer{Source: `"a whisper of magic"`, Kind: KindString}
	v, ok := lpc.Compute(ComputeContext{Property: string(PropDescription)})
	require.True(t, ok)
	assert.Equal(t, "a whisper of magic", v.String())
}

func TestLispPropertyComputerEvaluatesItemID(t *testing.T) {
	id := ItemID(42)
	lpc := &LispPropertyComputer{Source: `(item-id)`, Kind: KindInt}
	v, ok := lpc.Compute(ComputeContext{ItemID: &id})
	require.True(t, ok)
	assert.Equal(t, 42, v.Int())
}

func TestLispPropertyComputerInvalidSourceReturnsFalse(t *testing.T) {
	lpc := &LispPropertyComputer{Source: `(this-is-not-a-function)`, Kind: KindString}
	_, ok := lpc.Compute(ComputeContext{})
	assert.False(t, ok)
}
