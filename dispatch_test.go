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

func newDispatchFixture(t *testing.T) (*Engine, *ComputedProperties, *HookRegistry) {
	t.Helper()
	state := NewGameState()
	state.Locations[1] = NewLocation(1, "Room")
	state.Locations[1].Flags.InherentlyLit = true
	state.Items[1] = NewItem(1, "window")
	state.Items[1].Parent = InLocation(1)
	state.Items[1].Flags.Openable = true
	state.Player = NewPlayer(1)

	e := NewEngine(state, 1, nil)
	go e.Run()
	t.Cleanup(e.Stop)
	comp := NewComputedProperties()
	hooks := NewHookRegistry()
	return e, comp, hooks
}

func TestDispatchRunsDefaultHandlerWhenNoHooksRegistered(t *testing.T) {
	e, comp, hooks := newDispatchFixture(t)
	defaults := map[Intent]HandlerFunc{
		IntentOpen: func(ctx *HookContext, cmd Command) *ActionResult {
			return Msg("default open handler ran")
		},
	}
	d := NewDispatcher(e, comp, hooks, defaults)
	cmd := Command{Verb: "open", Intent: IntentOpen, DirectObject: &EntityReference{Kind: RefItem, Item: 1}}

	out := d.Dispatch(cmd)
	require.NotNil(t, out.Message)
	assert.Equal(t, "default open handler ran", *out.Message)
}

func TestDispatchBeforeItemHookOverridesDefault(t *testing.T) {
	e, comp, hooks := newDispatchFixture(t)
	defaultRan := false
	defaults := map[Intent]HandlerFunc{
		IntentOpen: func(ctx *HookContext, cmd Command) *ActionResult {
			defaultRan = true
			return Msg("default ran")
		},
	}
	hooks.BeforeItem(1, IntentOpen, func(ctx *HookContext, cmd Command) *ActionResult {
		return Override("the before hook wins")
	})
	d := NewDispatcher(e, comp, hooks, defaults)
	cmd := Command{Verb: "open", Intent: IntentOpen, DirectObject: &EntityReference{Kind: RefItem, Item: 1}}

	out := d.Dispatch(cmd)
	require.NotNil(t, out.Message)
	assert.Equal(t, "the before hook wins", *out.Message)
	assert.False(t, defaultRan, "ControlOverride must short-circuit the remaining pipeline")
}

func TestDispatchContinueFoldsIntoAccumulatedResult(t *testing.T) {
	e, comp, hooks := newDispatchFixture(t)
	hooks.BeforeItem(1, IntentOpen, func(ctx *HookContext, cmd Command) *ActionResult {
		return Msg("before hook note")
	})
	defaults := map[Intent]HandlerFunc{
		IntentOpen: func(ctx *HookContext, cmd Command) *ActionResult {
			return Msg("default message")
		},
	}
	d := NewDispatcher(e, comp, hooks, defaults)
	cmd := Command{Verb: "open", Intent: IntentOpen, DirectObject: &EntityReference{Kind: RefItem, Item: 1}}

	out := d.Dispatch(cmd)
	require.NotNil(t, out.Message)
	assert.Equal(t, "default message", *out.Message, "later ControlContinue messages take precedence, per mergeResults")
}

func TestDispatchUnknownIntentFallsBackToCantDoThat(t *testing.T) {
	e, comp, hooks := newDispatchFixture(t)
	d := NewDispatcher(e, comp, hooks, map[Intent]HandlerFunc{})
	cmd := Command{Verb: "xyzzy", Intent: IntentMeta}

	out := d.Dispatch(cmd)
	require.NotNil(t, out.Message)
	assert.Equal(t, "You can't do that.", *out.Message)
}

func TestDispatchLocationHookRuns(t *testing.T) {
	e, comp, hooks := newDispatchFixture(t)
	hooks.BeforeLocation(1, IntentLook, func(ctx *HookContext, cmd Command) *ActionResult {
		return Override("a location-specific look override")
	})
	d := NewDispatcher(e, comp, hooks, map[Intent]HandlerFunc{})
	out := d.Dispatch(Command{Verb: "look", Intent: IntentLook})
	require.NotNil(t, out.Message)
	assert.Equal(t, "a location-specific look override", *out.Message)
}
