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

func newCombatFixture(t *testing.T, seed int64) (*Engine, *ComputedProperties) {
	t.Helper()
	state := NewGameState()
	state.Locations[1] = NewLocation(1, "Arena")
	state.Locations[1].Flags.InherentlyLit = true

	state.Items[1] = NewItem(1, "goblin")
	state.Items[1].Parent = InLocation(1)
	state.Items[1].CharacterSheet = &CharacterSheet{Health: 1, MaxHealth: 10, ArmorClass: 0}
	state.Items[1].Properties[PropIsFighting] = BoolValue(true)

	state.Player = NewPlayer(1)
	state.Player.CharacterSheet.Accuracy = 50 // guarantees a hit regardless of roll

	e := NewEngine(state, seed, nil)
	go e.Run()
	t.Cleanup(e.Stop)
	return e, NewComputedProperties()
}

func TestCombatDaemonInactiveWhenEnemyNotFighting(t *testing.T) {
	e, comp := newCombatFixture(t, 1)
	e.Mutate(func(g *GameState) { g.Items[1].Properties[PropIsFighting] = BoolValue(false) })

	registry := NewCombatRegistry()
	fn := CombatDaemon(comp, registry, 1)
	result, next := fn(e, e.Snapshot())
	assert.Nil(t, result)
	assert.Equal(t, DaemonInactive, next)
}

func TestCombatDaemonInactiveWhenEnemyDead(t *testing.T) {
	e, comp := newCombatFixture(t, 1)
	e.Mutate(func(g *GameState) { g.Items[1].CharacterSheet.Consciousness = Dead })

	registry := NewCombatRegistry()
	fn := CombatDaemon(comp, registry, 1)
	result, next := fn(e, e.Snapshot())
	assert.Nil(t, result)
	assert.Equal(t, DaemonInactive, next)
}

func TestCombatDaemonKillsEnemyAndStopsItself(t *testing.T) {
	e, comp := newCombatFixture(t, 1)
	registry := NewCombatRegistry()
	fn := CombatDaemon(comp, registry, 1)

	result, next := fn(e, e.Snapshot())
	require.NotNil(t, result)
	require.NoError(t, e.ApplyResult(result))
	assert.Equal(t, DaemonInactive, next, "a slain enemy's combat daemon must deactivate itself")

	enemy, err := e.Item(1)
	require.NoError(t, err)
	assert.Equal(t, Dead, enemy.CharacterSheet.Consciousness)
	assert.Equal(t, Nowhere, enemy.Parent, "a dead NPC's corpse moves to .nowhere")
}

func TestCombatDaemonDropsWeaponOnDeath(t *testing.T) {
	e, comp := newCombatFixture(t, 1)
	e.Mutate(func(g *GameState) {
		g.Items[2] = NewItem(2, "goblin's knife")
		g.Items[2].Parent = InItem(1)
		g.Items[2].Flags.Weapon = true
	})

	registry := NewCombatRegistry()
	fn := CombatDaemon(comp, registry, 1)
	result, _ := fn(e, e.Snapshot())
	require.NotNil(t, result)
	require.NoError(t, e.ApplyResult(result))

	knife, err := e.Item(2)
	require.NoError(t, err)
	assert.Equal(t, InLocation(1), knife.Parent, "a weapon drops to the room floor when its owner dies")
}

func TestCombatSystemRegistryOverridesDefaultFlavorText(t *testing.T) {
	e, comp := newCombatFixture(t, 1)
	registry := NewCombatRegistry()
	registry.Register(1, CombatSystemFunc(func(ctx *HookContext, o CombatOutcome) *ActionResult {
		return Msg("custom combat narration")
	}))
	fn := CombatDaemon(comp, registry, 1)

	result, _ := fn(e, e.Snapshot())
	require.NotNil(t, result)
	assert.Equal(t, "custom combat narration", *result.Message)
}

// survivingEnemyFixture builds a combat encounter where the enemy survives
// the player's opening blow, so resolveRound reaches the enemy's own
// counterattack (spec §4.7 steps 2-3) rather than returning EnemySlain.
func survivingEnemyFixture(t *testing.T, seed int64) (*Engine, PlayerProxy, ItemProxy) {
	t.Helper()
	e, comp := newCombatFixture(t, seed)
	e.Mutate(func(g *GameState) {
		g.Items[1].CharacterSheet.Health = 100
		g.Items[1].CharacterSheet.MaxHealth = 100
	})
	return e, PlayerProxyFor(e, comp), ItemProxyFor(e, comp, 1)
}

func TestResolveRoundEnemyCounterattackMissesWithHighPlayerArmor(t *testing.T) {
	e, player, enemy := survivingEnemyFixture(t, 2)
	e.Mutate(func(g *GameState) { g.Player.CharacterSheet.ArmorClass = 1000 })

	out := resolveRound(e, player, enemy)
	assert.True(t, out.PlayerHit, "the fixture's +50 accuracy always lands the player's own swing")
	assert.Equal(t, 1, out.EnemyDamage)
	assert.Equal(t, 99, out.EnemyRemainingHealth)
	assert.Equal(t, EnemyMissed, out.Event, "an unbeatable player armor class means the enemy's counterswing always misses")
}

func TestResolveRoundInjuresPlayerWhenEnemyLandsAHit(t *testing.T) {
	e, player, enemy := survivingEnemyFixture(t, 3)
	e.Mutate(func(g *GameState) {
		g.Items[1].CharacterSheet.Accuracy = 50
		g.Player.CharacterSheet.ArmorClass = 0
	})

	injuries := map[CombatEvent]bool{
		PlayerLightlyInjured: true, PlayerGravelyInjured: true,
		PlayerUnconscious: true, PlayerSlain: true,
	}
	var out CombatOutcome
	found := false
	for i := 0; i < 200 && !found; i++ {
		out = resolveRound(e, player, enemy)
		found = injuries[out.Event]
	}
	require.True(t, found, "an always-hit enemy attacking an undefended player must eventually land a classified injury")
	assert.Greater(t, out.Damage, 0)
	assert.Equal(t, 100-out.Damage, out.PlayerRemainingHealth)
}

func TestResolveRoundEnemyFleesWhenCriticallyWounded(t *testing.T) {
	e, player, enemy := survivingEnemyFixture(t, 4)
	e.Mutate(func(g *GameState) {
		g.Items[1].CharacterSheet.Health = 2
		g.Items[1].CharacterSheet.MaxHealth = 8
	})

	var out CombatOutcome
	found := false
	for i := 0; i < 200 && !found; i++ {
		out = resolveRound(e, player, enemy)
		found = out.Event == EnemyFlees
	}
	require.True(t, found, "a badly wounded enemy must eventually flee instead of always countering")

	changes := baselineChanges(e, out)
	require.NoError(t, e.ApplyResult(&ActionResult{Changes: changes}))
	enemyItem, err := e.Item(1)
	require.NoError(t, err)
	assert.Equal(t, Nowhere, enemyItem.Parent, "a fleeing enemy leaves the scene")
}

func TestResolveRoundCanDisarmThePlayer(t *testing.T) {
	e, player, enemy := survivingEnemyFixture(t, 5)
	e.Mutate(func(g *GameState) {
		g.Items[1].CharacterSheet.Accuracy = 50
		g.Player.CharacterSheet.ArmorClass = 0
		g.Items[6] = NewItem(6, "rusty sword")
		g.Items[6].Parent = WithPlayer
		g.Items[6].Flags.Weapon = true
	})

	var out CombatOutcome
	found := false
	for i := 0; i < 400 && !found; i++ {
		out = resolveRound(e, player, enemy)
		found = out.Event == PlayerDisarmed
	}
	require.True(t, found, "repeated always-hit rounds must eventually roll the disarm chance")
	assert.Equal(t, ItemID(6), out.PlayerWeapon)

	changes := baselineChanges(e, out)
	require.NoError(t, e.ApplyResult(&ActionResult{Changes: changes}))
	sword, err := e.Item(6)
	require.NoError(t, err)
	assert.Equal(t, InLocation(1), sword.Parent, "the disarmed weapon drops to the player's current room")
}

func TestDeathChangesMovesNestedTreasureAlongWithItsBag(t *testing.T) {
	e, comp := newCombatFixture(t, 6)
	e.Mutate(func(g *GameState) {
		g.Items[2] = NewItem(2, "bag")
		g.Items[2].Parent = InItem(1)
		g.Items[2].Flags.Container = true
		g.Items[3] = NewItem(3, "egg")
		g.Items[3].Parent = InItem(2)
		g.Items[3].Value = 5
	})

	registry := NewCombatRegistry()
	fn := CombatDaemon(comp, registry, 1)
	result, _ := fn(e, e.Snapshot())
	require.NotNil(t, result)
	require.NoError(t, e.ApplyResult(result))

	bag, err := e.Item(2)
	require.NoError(t, err)
	assert.Equal(t, InLocation(1), bag.Parent, "a dead NPC's container moves to the room even with no value of its own")

	egg, err := e.Item(3)
	require.NoError(t, err)
	assert.Equal(t, InItem(2), egg.Parent, "the nested treasure rides along inside its bag, not moved independently")
}
