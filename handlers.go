package zorkvm

import (
	"fmt"
	"strings"
)

// resolveItem returns the ItemProxy a direct/indirect-object EntityReference
// names, or nil if it doesn't name an item (universal, location, or absent).
func resolveItem(ctx *HookContext, ref *EntityReference) *ItemProxy {
	if ref == nil || ref.Kind != RefItem {
		return nil
	}
	p := ItemProxyFor(ctx.Engine, ctx.Comp, ref.Item)
	return &p
}

// DefaultHandlers implements the canonical semantics for every verb in spec
// §6. The turn loop handles the meta verbs (save/restore/quit) itself, one
// level above dispatch, so IntentMeta has no entry here.
var DefaultHandlers = map[Intent]HandlerFunc{
	IntentMove:       handleMove,
	IntentLook:       handleLook,
	IntentExamine:    handleExamine,
	IntentTake:       handleTake,
	IntentDrop:       handleDrop,
	IntentPut:        handlePut,
	IntentOpen:       handleOpen,
	IntentClose:      handleClose,
	IntentLock:       handleLock,
	IntentUnlock:     handleUnlock,
	IntentRead:       handleRead,
	IntentLightSource: handleLightOn,
	IntentExtinguish: handleLightOff,
	IntentAttack:     handleAttack,
	IntentThrow:      handleThrow,
	IntentGive:       handleGive,
	IntentTell:       handleTell,
	IntentAsk:        handleAsk,
	IntentListen:     handleListen,
	IntentPush:       handlePush,
	IntentPull:       handlePull,
	IntentMoveObject: handleMoveObject,
	IntentMung:       handleMung,
	IntentClimb:      handleClimb,
	IntentInventory:  handleInventory,
	IntentWait:       handleWait,
}

// handleMove implements the movement protocol from spec §4.5: look up the
// exit, honor door lock/closed state, then move the player and mark the
// destination visited, running its onEnter hook if one is registered.
func handleMove(ctx *HookContext, cmd Command) *ActionResult {
	if cmd.Direction == nil {
		return Msg("Go where?")
	}
	loc := ctx.Location.loc()
	if loc == nil {
		return Msg("You can't go that way.")
	}
	exit, ok := loc.ExitTo(*cmd.Direction)
	if !ok {
		return Msg("You can't go that way.")
	}
	if exit.Blocked {
		if exit.BlockedText != "" {
			return Msg(exit.BlockedText)
		}
		return Msg("You can't go that way.")
	}
	if exit.DoorID != nil {
		door := ItemProxyFor(ctx.Engine, ctx.Comp, *exit.DoorID)
		if door.IsLocked() {
			return Msg("The door is locked.")
		}
		if !door.IsOpen() {
			return Msg("The door is closed.")
		}
	}

	result := (&ActionResult{Control: ControlContinue}).WithChanges(
		SetPlayerProperty{Property: PlayerLocation, Value: RefValue(ItemID(exit.Destination))},
		SetLocationProperty{Location: exit.Destination, Property: LocationVisited, Value: BoolValue(true)},
	)

	if onEnter, ok := ctx.Hooks.LookupOnEnter(exit.Destination); ok {
		result = result.Appending(onEnter(ctx, cmd))
	}
	return result
}

// handleLook prints the location's description and a listing of its visible
// items (spec §4.5 Examine/Look). Listed items transition from their
// firstDescription to their shortDescription by being marked .touched here,
// the same rule touchChange applies to Examine.
func handleLook(ctx *HookContext, cmd Command) *ActionResult {
	loc := ctx.Location
	if !loc.IsLit() {
		return Msg("It is pitch black. You are likely to be eaten by a grue.")
	}
	msg := fmt.Sprintf("%s\n%s", loc.Name(), loc.Description())
	listing, changes := renderContents(ctx, loc.DirectItems(), 0)
	msg += listing
	return Msg("%s", msg).WithChanges(changes...)
}

// renderContents lists items for a Look, recursing into visible container
// contents with indentation, using firstDescription/shortDescription/default
// per spec §4.5, and collects the .touched changes listing each item for the
// first time requires.
func renderContents(ctx *HookContext, items []ItemProxy, depth int) (string, []StateChange) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	out := ""
	var changes []StateChange
	for _, it := range items {
		if !it.ShouldDescribe() {
			continue
		}
		out += "\n" + indent + describeForListing(ctx, it)
		changes = append(changes, touchChange(it)...)
		if it.IsContainer() && it.ContentsAreVisible() {
			childText, childChanges := renderContents(ctx, it.Contents(), depth+1)
			out += childText
			changes = append(changes, childChanges...)
		}
	}
	return out, changes
}

func describeForListing(ctx *HookContext, it ItemProxy) string {
	raw := it.item()
	if raw == nil {
		return ""
	}
	if !it.IsTouched() {
		if raw.FirstDescription != "" {
			return raw.FirstDescription
		}
	} else if raw.ShortDescription != "" {
		return raw.ShortDescription
	}
	return "There is " + it.WithIndefiniteArticle() + " here."
}

// handleExamine prints the direct object's description (spec §4.5).
func handleExamine(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	if !it.IsVisible() {
		return Msg("You don't see that here.")
	}
	changes := touchChange(*it)
	return Msg("%s", it.Description()).WithChanges(changes...)
}

func touchChange(it ItemProxy) []StateChange {
	if c := it.SetFlagChange(PropTouched, it.IsTouched()); c != nil {
		return []StateChange{c}
	}
	return nil
}

// handleTake moves the direct object into the player's inventory iff takable
// and within capacity (spec §4.5).
func handleTake(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	if !it.IsVisible() {
		return Msg("You don't see that here.")
	}
	if it.PlayerIsHolding() {
		return Msg("You already have that.")
	}
	if !it.IsTakable() {
		return Msg("You can't take that.")
	}
	if !ctx.Player.CanCarry(*it) {
		return Msg("Your hands are full.")
	}
	move := it.MoveChange(WithPlayer)
	if move == nil {
		return Msg("You already have that.")
	}
	return Msg("Taken.").WithChanges(move)
}

// handleDrop moves the direct object to the current location (spec §4.5).
func handleDrop(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't have that.")
	}
	if !it.PlayerIsHolding() {
		return Msg("You don't have that.")
	}
	move := it.MoveChange(InLocation(ctx.Location.ID()))
	if move == nil {
		return Msg("You already dropped that.")
	}
	return Msg("Dropped.").WithChanges(move)
}

// handlePut moves the direct object into the indirect object, a container
// (spec §6 "put X in Y").
func handlePut(ctx *HookContext, cmd Command) *ActionResult {
	item := resolveItem(ctx, cmd.DirectObject)
	target := resolveItem(ctx, cmd.IndirectObject)
	if item == nil {
		return Msg("You don't have that.")
	}
	if !item.PlayerIsHolding() {
		return Msg("You aren't holding that.")
	}
	if target == nil {
		return Msg("Put it in what?")
	}
	if !target.IsContainer() {
		return Msg("You can't put anything in that.")
	}
	if !target.IsOpen() {
		return Msg("That's closed.")
	}
	if !CanHold(ctx.Engine, *target, *item) {
		return Msg("There's no room.")
	}
	move := item.MoveChange(InItem(target.ID()))
	if move == nil {
		return Msg("It's already there.")
	}
	return Msg("Done.").WithChanges(move)
}

// handleOpen toggles the open flag on an openable item (spec §4.5).
func handleOpen(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	if !it.IsOpenable() {
		return Msg("You can't open that.")
	}
	if it.IsLocked() {
		return Msg("It's locked.")
	}
	change := it.SetFlagChange(PropOpen, it.IsOpen())
	if change == nil {
		return Msg("It's already open.")
	}
	return Msg("Opened.").WithChanges(change)
}

// handleClose toggles the open flag off (spec §4.5).
func handleClose(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	if !it.IsOpenable() {
		return Msg("You can't close that.")
	}
	change := it.ClearFlagChange(PropOpen, it.IsOpen())
	if change == nil {
		return Msg("It's already closed.")
	}
	return Msg("Closed.").WithChanges(change)
}

// handleLock requires the indirect object (the key) to match the item's
// LockKey (spec §6 "lock, unlock with K").
func handleLock(ctx *HookContext, cmd Command) *ActionResult {
	return lockUnlock(ctx, cmd, true)
}

func handleUnlock(ctx *HookContext, cmd Command) *ActionResult {
	return lockUnlock(ctx, cmd, false)
}

func lockUnlock(ctx *HookContext, cmd Command, locking bool) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	raw := it.item()
	if raw == nil || !raw.Flags.Lockable {
		return Msg("That doesn't lock.")
	}
	key := resolveItem(ctx, cmd.IndirectObject)
	if raw.LockKey != nil {
		if key == nil || key.ID() != *raw.LockKey || !key.PlayerIsHolding() {
			return Msg("You don't have the right key.")
		}
	}
	var change StateChange
	if locking {
		change = it.SetFlagChange(PropLocked, it.IsLocked())
	} else {
		change = it.ClearFlagChange(PropLocked, it.IsLocked())
	}
	if change == nil {
		if locking {
			return Msg("It's already locked.")
		}
		return Msg("It's already unlocked.")
	}
	verb := "unlocked"
	if locking {
		verb = "locked"
	}
	return Msg("%s.", capitalize(verb)).WithChanges(change)
}

// handleRead emits the item's readText (spec §4.5 and §6).
func handleRead(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	raw := it.item()
	if raw == nil || !raw.Flags.Readable {
		return Msg("There's nothing written on that.")
	}
	if it.PlayerIsHolding() && raw.ReadWhileHeldText != "" {
		return Msg("%s", raw.ReadWhileHeldText)
	}
	return Msg("%s", it.ReadText())
}

// handleLightOn turns on a light source / ignites a flammable item (spec §6
// "turn on / light").
func handleLightOn(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	raw := it.item()
	if raw == nil {
		return Msg("You can't do that.")
	}
	if raw.Flags.LightSource {
		if it.IsBurnedOut() {
			return Msg("It's burned out.")
		}
		change := it.SetFlagChange(PropOn, it.IsOn())
		if change == nil {
			return Msg("It's already on.")
		}
		return Msg("It's now on.").WithChanges(change)
	}
	if raw.Flags.Flammable {
		change := it.SetFlagChange(PropBurning, it.IsBurning())
		if change == nil {
			return Msg("It's already burning.")
		}
		return Msg("It catches fire.").WithChanges(change)
	}
	return Msg("You can't light that.")
}

// handleLightOff turns off a light source or extinguishes a burning item.
func handleLightOff(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	raw := it.item()
	if raw == nil {
		return Msg("You can't do that.")
	}
	if raw.Flags.LightSource {
		change := it.ClearFlagChange(PropOn, it.IsOn())
		if change == nil {
			return Msg("It's already off.")
		}
		return Msg("It's now off.").WithChanges(change)
	}
	if raw.Flags.Flammable {
		change := it.ClearFlagChange(PropBurning, it.IsBurning())
		if change == nil {
			return Msg("It isn't burning.")
		}
		return Msg("The fire goes out.").WithChanges(change)
	}
	return Msg("You can't do that.")
}

// CombatDaemonID is the naming convention a CombatDaemon must be registered
// under for handleAttack to find and arm it: one combat daemon per
// combat-eligible ItemID (spec §4.7).
func CombatDaemonID(enemy ItemID) DaemonID {
	return DaemonID("combat:" + enemy.String())
}

// handleAttack starts a fight: the combat subsystem (combat.go) resolves the
// actual round on the daemon tick that follows; this handler marks the
// defender as engaged and arms its registered CombatDaemon (spec §4.7: "when
// player and enemy are co-located and isFighting").
func handleAttack(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	if !it.IsHostileEnemy() {
		return Msg("That doesn't seem like a good idea.")
	}
	change := it.SetPropertyChange(PropIsFighting, BoolValue(true))
	if change == nil {
		return Msg("You're already fighting!")
	}
	changes := []StateChange{change}
	if id := CombatDaemonID(it.ID()); ctx.Engine.Snapshot().Daemons[id] != nil {
		changes = append(changes, RunDaemon{Daemon: id})
	}
	return Msg("You ready yourself for battle.").WithChanges(changes...)
}

// handleThrow drops the held direct object in the player's current location,
// naming the indirect object in the message when it is a hostile enemy. No
// damage is resolved against the target.
func handleThrow(ctx *HookContext, cmd Command) *ActionResult {
	item := resolveItem(ctx, cmd.DirectObject)
	if item == nil || !item.PlayerIsHolding() {
		return Msg("You aren't holding that.")
	}
	move := item.MoveChange(InLocation(ctx.Location.ID()))
	if move == nil {
		return Msg("Nothing happens.")
	}
	target := resolveItem(ctx, cmd.IndirectObject)
	if target != nil && target.IsHostileEnemy() {
		return Msg("You throw it at %s.", target.Name()).WithChanges(move)
	}
	return Msg("You throw it down.").WithChanges(move)
}

// handleGive moves the direct object to an NPC's inventory (spec §6 "give X to Y").
func handleGive(ctx *HookContext, cmd Command) *ActionResult {
	item := resolveItem(ctx, cmd.DirectObject)
	if item == nil || !item.PlayerIsHolding() {
		return Msg("You aren't holding that.")
	}
	target := resolveItem(ctx, cmd.IndirectObject)
	if target == nil {
		return Msg("Give it to whom?")
	}
	move := item.MoveChange(InItem(target.ID()))
	if move == nil {
		return Msg("Nothing happens.")
	}
	return Msg("You give %s to %s.", item.Name(), target.Name()).WithChanges(move)
}

// handleTell and handleAsk are conversational stubs: spec §6 requires the
// verbs to parse and dispatch, but leaves actual dialogue content to
// per-NPC hooks registered at the world-declaration layer.
func handleTell(ctx *HookContext, cmd Command) *ActionResult {
	if resolveItem(ctx, cmd.DirectObject) == nil {
		return Msg("There's no one here to tell that to.")
	}
	return Msg("It doesn't seem interested.")
}

func handleAsk(ctx *HookContext, cmd Command) *ActionResult {
	if resolveItem(ctx, cmd.DirectObject) == nil {
		return Msg("There's no one here to ask.")
	}
	return Msg("It doesn't answer.")
}

// handleListen reports ambient sound; content is supplied by location hooks.
func handleListen(ctx *HookContext, cmd Command) *ActionResult {
	return Msg("You hear nothing unexpected.")
}

// handlePush and handlePull are scenery-interaction stubs overridden by
// per-item before hooks for anything with a notable reaction (spec §6: the
// grating-reveal scenario is implemented as a leaf-pile item's before hook
// on "move" (IntentMoveObject), not here).
func handlePush(ctx *HookContext, cmd Command) *ActionResult {
	if resolveItem(ctx, cmd.DirectObject) == nil {
		return Msg("You don't see that here.")
	}
	return Msg("Pushing that doesn't seem to do anything.")
}

func handlePull(ctx *HookContext, cmd Command) *ActionResult {
	if resolveItem(ctx, cmd.DirectObject) == nil {
		return Msg("You don't see that here.")
	}
	return Msg("Pulling that doesn't seem to do anything.")
}

// handleMoveObject is the "move X" shove, distinct from player travel.
func handleMoveObject(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	if it.Size() > 0 && it.IsTakable() {
		return Msg("Moving that reveals nothing of interest.")
	}
	return Msg("It won't budge.")
}

// handleMung is the default for break/rip: it only prints a refusal and
// changes nothing about the direct object; content-specific destruction
// (weapon drop, scoring) belongs to before(mung) hooks.
func handleMung(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	return Msg("Destroying that seems both difficult and pointless.")
}

// handleClimb checks that the direct object is climbable and prints a
// message; it does not move the player.
func handleClimb(ctx *HookContext, cmd Command) *ActionResult {
	it := resolveItem(ctx, cmd.DirectObject)
	if it == nil {
		return Msg("You don't see that here.")
	}
	raw := it.item()
	if raw == nil || !raw.Flags.Climbable {
		return Msg("You can't climb that.")
	}
	return Msg("You climb up and look around.")
}

// handleInventory lists carried items (spec §6).
func handleInventory(ctx *HookContext, cmd Command) *ActionResult {
	items := ctx.Player.Inventory()
	if len(items) == 0 {
		return Msg("You are empty-handed.")
	}
	out := "You are carrying:"
	for _, it := range items {
		out += "\n  " + it.WithIndefiniteArticle()
	}
	return Msg("%s", out)
}

// handleWait is a no-op turn (spec §6).
func handleWait(ctx *HookContext, cmd Command) *ActionResult {
	return Msg("Time passes.")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
