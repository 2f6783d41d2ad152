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

// registerHooks wires the fixture's per-item before/after hooks: the two
// scenery reactions ("open window", "move leaves") that need flavor text and
// a side effect beyond what the default handlers give for free (spec §8
// scenarios 2 and 3).
func registerHooks(hooks *zorkvm.HookRegistry) {
	hooks.BeforeItem(Window, zorkvm.IntentOpen, openWindow)
	hooks.BeforeItem(Leaves, zorkvm.IntentMoveObject, moveLeaves)
}

func openWindow(ctx *zorkvm.HookContext, cmd zorkvm.Command) *zorkvm.ActionResult {
	window := zorkvm.ItemProxyFor(ctx.Engine, ctx.Comp, Window)
	if window.IsOpen() {
		return zorkvm.Override("It's already open.")
	}
	change := window.SetFlagChange(zorkvm.PropOpen, window.IsOpen())
	return zorkvm.Override("With great effort, you open the window far enough to allow entry.").WithChanges(change)
}

func moveLeaves(ctx *zorkvm.HookContext, cmd zorkvm.Command) *zorkvm.ActionResult {
	grate := zorkvm.ItemProxyFor(ctx.Engine, ctx.Comp, Grate)
	if !grate.IsInvisible() {
		return zorkvm.Override("Moving the pile of leaves reveals nothing of interest.")
	}
	change := grate.ClearFlagChange(zorkvm.PropInvisible, grate.IsInvisible())
	return zorkvm.Override("In disturbing the pile of leaves, a grating is revealed.").WithChanges(change)
}

// TrollCombatSystem implements the troll's disarm-on-defeat behavior from
// spec §8 scenario 6: reducing the troll to critical health knocks it
// unconscious and ends the fight rather than killing it, dropping its axe.
func TrollCombatSystem() zorkvm.CombatSystemFunc {
	return func(ctx *zorkvm.HookContext, o zorkvm.CombatOutcome) *zorkvm.ActionResult {
		if o.Event == zorkvm.EnemySlain || !o.PlayerHit {
			return nil
		}
		if o.EnemyRemainingHealth <= 0 || o.EnemyRemainingHealth >= o.EnemyMaxHealth/4 {
			return nil
		}
		troll := zorkvm.ItemProxyFor(ctx.Engine, ctx.Comp, Troll)
		axe := zorkvm.ItemProxyFor(ctx.Engine, ctx.Comp, Axe)
		changes := []zorkvm.StateChange{
			zorkvm.SetItemProperty{Item: Troll, Property: zorkvm.PropConsciousness, Value: zorkvm.IntValue(int(zorkvm.Unconscious))},
			troll.SetPropertyChange(zorkvm.PropIsFighting, zorkvm.BoolValue(false)),
		}
		if axe.Parent().Kind == zorkvm.ParentItem && axe.Parent().Item == Troll {
			changes = append(changes,
				axe.MoveChange(zorkvm.InLocation(TrollRoom)),
				axe.ClearFlagChange(zorkvm.PropOmitDescription, axe.OmitsDescription()),
			)
		}
		return zorkvm.Override("The troll, disarmed and beaten, cowers in terror, pleading for his life.").WithChanges(changes...)
	}
}

// ThiefDaemon implements spec §8 scenario 5: while the thief shares the
// player's location and the player carries a valuable, each tick has a 30%
// chance of the thief lifting it into his bag.
func ThiefDaemon(comp *zorkvm.ComputedProperties) zorkvm.DaemonFunc {
	return func(e *zorkvm.Engine, state *zorkvm.GameState) (*zorkvm.ActionResult, zorkvm.DaemonState) {
		thief := zorkvm.ItemProxyFor(e, comp, Thief)
		if !thief.IsAlive() {
			return nil, zorkvm.DaemonInactive
		}
		player := zorkvm.PlayerProxyFor(e, comp)
		thiefLoc, ok := e.AncestorLocation(Thief)
		if !ok || thiefLoc != player.LocationID() {
			return nil, zorkvm.DaemonActive
		}
		egg := zorkvm.ItemProxyFor(e, comp, Egg)
		if !egg.PlayerIsHolding() || egg.Value() <= 0 {
			return nil, zorkvm.DaemonActive
		}
		if !e.RandomPercentage(30) {
			return nil, zorkvm.DaemonActive
		}
		change := egg.MoveChange(zorkvm.InItem(LargeBag))
		if change == nil {
			return nil, zorkvm.DaemonActive
		}
		return zorkvm.Msg("The thief, who has been watching you, neatly robbed you blind.").WithChanges(change), zorkvm.DaemonActive
	}
}
