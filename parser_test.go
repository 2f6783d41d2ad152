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

func newParserFixture(t *testing.T) *Parser {
	t.Helper()
	state := NewGameState()
	state.Locations[1] = NewLocation(1, "Room")
	state.Locations[1].Flags.InherentlyLit = true

	state.Items[1] = NewItem(1, "brass lantern")
	state.Items[1].Synonyms = []string{"lamp"}
	state.Items[1].Adjectives = []string{"brass"}
	state.Items[1].Parent = InLocation(1)

	state.Items[2] = NewItem(2, "elvish sword")
	state.Items[2].Synonyms = []string{"sword"}
	state.Items[2].Adjectives = []string{"elvish"}
	state.Items[2].Parent = WithPlayer

	state.Player = NewPlayer(1)

	e := NewEngine(state, 1, nil)
	go e.Run()
	t.Cleanup(e.Stop)
	comp := NewComputedProperties()
	return NewParser(e, comp)
}

func TestTokenizeDropsStopWords(t *testing.T) {
	assert.Equal(t, []string{"take", "lamp"}, Tokenize("take the lamp"))
	assert.Equal(t, []string{"open", "door"}, Tokenize("Open AN Door"))
}

func TestResolveBareDirection(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("north")
	require.NoError(t, err)
	assert.Equal(t, IntentMove, cmd.Intent)
	require.NotNil(t, cmd.Direction)
	assert.Equal(t, North, *cmd.Direction)
}

func TestResolveUnknownVerb(t *testing.T) {
	p := newParserFixture(t)
	_, err := p.Resolve("frobnicate the lamp")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, UnknownVerb, pe.Kind)
}

func TestResolveMissingDirectObject(t *testing.T) {
	p := newParserFixture(t)
	_, err := p.Resolve("take")
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, NotUnderstood, pe.Kind)
}

func TestResolveTakeByNounAndAdjective(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("take the brass lantern")
	require.NoError(t, err)
	assert.Equal(t, IntentTake, cmd.Intent)
	require.NotNil(t, cmd.DirectObject)
	assert.Equal(t, ItemID(1), cmd.DirectObject.Item)
}

func TestResolveTakeBySynonym(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("take lamp")
	require.NoError(t, err)
	require.NotNil(t, cmd.DirectObject)
	assert.Equal(t, ItemID(1), cmd.DirectObject.Item)
}

func TestResolvePutWithPreposition(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("put sword in lantern")
	require.NoError(t, err)
	assert.Equal(t, IntentPut, cmd.Intent)
	assert.Equal(t, "in", cmd.Preposition)
	require.NotNil(t, cmd.DirectObject)
	assert.Equal(t, ItemID(2), cmd.DirectObject.Item)
	require.NotNil(t, cmd.IndirectObject)
	assert.Equal(t, ItemID(1), cmd.IndirectObject.Item)
}

func TestResolvePronounUsesLastReference(t *testing.T) {
	p := newParserFixture(t)
	_, err := p.Resolve("take lamp")
	require.NoError(t, err)

	cmd, err := p.Resolve("examine it")
	require.NoError(t, err)
	require.NotNil(t, cmd.DirectObject)
	assert.Equal(t, ItemID(1), cmd.DirectObject.Item)
}

func TestResolvePronounWithNoPriorReferenceFails(t *testing.T) {
	p := newParserFixture(t)
	_, err := p.Resolve("examine it")
	require.Error(t, err)
}

func TestResolveUniversal(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("examine ground")
	require.NoError(t, err)
	require.NotNil(t, cmd.DirectObject)
	assert.Equal(t, RefUniversal, cmd.DirectObject.Kind)
	assert.Equal(t, "ground", cmd.DirectObject.Universal)
}

func TestResolveTurnOnOff(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("turn on lamp")
	require.NoError(t, err)
	assert.Equal(t, IntentLightSource, cmd.Intent)

	cmd, err = p.Resolve("turn off lamp")
	require.NoError(t, err)
	assert.Equal(t, IntentExtinguish, cmd.Intent)
}

func TestCommandReserialize(t *testing.T) {
	p := newParserFixture(t)
	cmd, err := p.Resolve("take the brass lantern")
	require.NoError(t, err)
	assert.Equal(t, []string{"take", "brass", "lantern"}, cmd.Reserialize())
}
