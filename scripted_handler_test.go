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

func scriptedHandlerFixture(t *testing.T) *HookContext {
	t.Helper()
	state := NewGameState()
	state.Locations[1] = NewLocation(1, "Room")
	state.Locations[1].Flags.InherentlyLit = true
	state.Items[1] = NewItem(1, "idol")
	state.Items[1].Parent = InLocation(1)
	state.Player = NewPlayer(1)

	e := NewEngine(state, 1, nil)
	go e.Run()
	t.Cleanup(e.Stop)
	comp := NewComputedProperties()
	player := PlayerProxyFor(e, comp)
	return &HookContext{Engine: e, Comp: comp, Location: player.Location(), Player: player}
}

func TestScriptedHandlerReturnsMessage(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	h := NewScriptedHandler(vm, `"the idol gleams faintly"`)

	out := h.Handle(ctx, Command{Verb: "examine"})
	require.NotNil(t, out)
	require.NotNil(t, out.Message)
	assert.Equal(t, "the idol gleams faintly", *out.Message)
}

func TestScriptedHandlerEmptyStringFallsThrough(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	h := NewScriptedHandler(vm, `""`)

	out := h.Handle(ctx, Command{Verb: "examine"})
	assert.Nil(t, out)
}

func TestScriptedHandlerNonStringResultFallsThrough(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	h := NewScriptedHandler(vm, `1 + 1`)

	out := h.Handle(ctx, Command{Verb: "examine"})
	assert.Nil(t, out)
}

func TestScriptedHandlerSeesBoundVerb(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	h := NewScriptedHandler(vm, `verb + "!"`)

	out := h.Handle(ctx, Command{Verb: "xyzzy"})
	require.NotNil(t, out)
	require.NotNil(t, out.Message)
	assert.Equal(t, "xyzzy!", *out.Message)
}

func TestScriptedHandlerSeesDirectObject(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	h := NewScriptedHandler(vm, `directObject.Name()`)

	out := h.Handle(ctx, Command{Verb: "examine", DirectObject: &EntityReference{Kind: RefItem, Item: 1}})
	require.NotNil(t, out)
	require.NotNil(t, out.Message)
	assert.Equal(t, "idol", *out.Message)
}

func TestScriptedHandlerSyntaxErrorReportsMisfire(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	h := NewScriptedHandler(vm, `this is not ) valid anko (`)

	out := h.Handle(ctx, Command{Verb: "examine"})
	require.NotNil(t, out)
	require.NotNil(t, out.Message)
	assert.Equal(t, "Something in the world's scripting misfired.", *out.Message)
}

func TestScriptedHandlersShareVMButIsolateEnv(t *testing.T) {
	ctx := scriptedHandlerFixture(t)
	vm := NewScriptingVM()
	first := NewScriptedHandler(vm, `x = "leaked"; x`)
	second := NewScriptedHandler(vm, `x`)

	out1 := first.Handle(ctx, Command{Verb: "examine"})
	require.NotNil(t, out1)
	require.NotNil(t, out1.Message)
	assert.Equal(t, "leaked", *out1.Message)

	out2 := second.Handle(ctx, Command{Verb: "examine"})
	assert.NotNil(t, out2, "an undefined variable errors, which Handle reports as a misfire rather than leaking state from another handler's env")
}
