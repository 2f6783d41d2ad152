package zorkvm

import "fmt"

// CombatEvent classifies the outcome of one attack round (spec §4.7), the
// closed set the engine dispatches to a CombatSystem for flavor text.
type CombatEvent uint8

const (
	PlayerMissed CombatEvent = iota
	EnemyMissed
	PlayerLightlyInjured
	PlayerGravelyInjured
	PlayerCriticallyWounded
	PlayerUnconscious
	PlayerSlain
	PlayerDodged
	PlayerDisarmed
	EnemyFlees
	EnemySpecialAction
	EnemySlain
)

// CombatOutcome carries a classified CombatEvent plus the round's mechanical
// detail, handed to the registered CombatSystem for flavor text (spec §4.7).
// Damage is the enemy's blow against the player and is set only when the
// round classifies to a player-injury event (PlayerLightlyInjured,
// PlayerGravelyInjured, PlayerUnconscious, PlayerSlain); it is zero for every
// other event. EnemyDamage, EnemyRemainingHealth and EnemyMaxHealth always
// describe the player's attack on the enemy earlier in the same round, so a
// custom CombatSystem can inspect the enemy's condition regardless of which
// event the round ultimately classified to.
type CombatOutcome struct {
	Event        CombatEvent
	Attacker     ItemID
	Defender     ItemID
	Location     LocationID
	Damage       int
	PlayerWeapon ItemID
	EnemyWeapon  ItemID
	WasFumble    bool

	PlayerHit             bool
	EnemyDamage           int
	EnemyRemainingHealth  int
	EnemyMaxHealth        int
	PlayerRemainingHealth int
}

// CombatSystem resolves one attack round into flavor text and any extra
// changes beyond the engine's baseline (HP delta, death handling). Registered
// per enemy ItemID (spec §4.7).
type CombatSystem interface {
	Resolve(ctx *HookContext, outcome CombatOutcome) *ActionResult
}

// CombatSystemFunc adapts a function to CombatSystem.
type CombatSystemFunc func(ctx *HookContext, outcome CombatOutcome) *ActionResult

// Resolve invokes the wrapped function.
func (f CombatSystemFunc) Resolve(ctx *HookContext, outcome CombatOutcome) *ActionResult {
	return f(ctx, outcome)
}

// CombatRegistry maps a fighting enemy's ItemID to its flavor-text generator.
type CombatRegistry struct {
	systems map[ItemID]CombatSystem
}

// NewCombatRegistry constructs an empty registry.
func NewCombatRegistry() *CombatRegistry {
	return &CombatRegistry{systems: make(map[ItemID]CombatSystem)}
}

// Register binds a CombatSystem to an enemy ItemID.
func (r *CombatRegistry) Register(enemy ItemID, sys CombatSystem) {
	r.systems[enemy] = sys
}

// CombatDaemon returns a DaemonFunc (for scheduler.Register) that, while the
// player and enemy are co-located and the enemy is isFighting, resolves one
// attack round per tick per spec §4.7 steps 1-4.
func CombatDaemon(comp *ComputedProperties, registry *CombatRegistry, enemy ItemID) DaemonFunc {
	return func(engine *Engine, state *GameState) (*ActionResult, DaemonState) {
		enemyProxy := ItemProxyFor(engine, comp, enemy)
		if !enemyProxy.IsFighting() || !enemyProxy.IsAlive() {
			return nil, DaemonInactive
		}
		player := PlayerProxyFor(engine, comp)
		if player.LocationID() != ancestorLocationOf(engine, enemy) {
			return nil, DaemonActive
		}

		ctx := &HookContext{Engine: engine, Comp: comp, Location: player.Location(), Player: player}
		outcome := resolveRound(engine, player, enemyProxy)

		sys := registry.systems[enemy]
		var result *ActionResult
		if sys != nil {
			result = sys.Resolve(ctx, outcome)
		} else {
			result = Msg("%s", defaultCombatText(outcome, enemyProxy.Name()))
		}
		result = result.WithChanges(baselineChanges(engine, outcome)...)

		switch outcome.Event {
		case EnemySlain, EnemyFlees, PlayerSlain:
			return result, DaemonInactive
		}
		return result, DaemonActive
	}
}

func ancestorLocationOf(e *Engine, id ItemID) LocationID {
	loc, _ := e.AncestorLocation(id)
	return loc
}

// resolveRound implements spec §4.7 steps 1-3 for a full round: the player's
// d20 attack roll against the enemy's armor class, then — unless that blow
// already killed or routed the enemy — the enemy's own d20 attack roll
// against the player, classified into the player-condition CombatEvents.
func resolveRound(e *Engine, player PlayerProxy, enemy ItemProxy) CombatOutcome {
	sheet := player.CharacterSheet()
	enemySheet := enemy.CharacterSheet()
	if enemySheet == nil {
		enemySheet = &CharacterSheet{}
	}

	out := CombatOutcome{
		Attacker:       0,
		Defender:       enemy.ID(),
		Location:       player.LocationID(),
		EnemyMaxHealth: enemySheet.MaxHealth,
	}

	// Step 1: the player attacks the enemy.
	weapon := playerWeapon(e, player)
	if weapon != nil {
		out.PlayerWeapon = weapon.ID()
	}
	attackRoll := e.RandomIntn(20) + 1 + sheet.Accuracy + sheet.Dexterity/2
	out.PlayerHit = attackRoll >= enemySheet.ArmorClass
	out.EnemyRemainingHealth = enemySheet.Health
	if out.PlayerHit {
		damage := 1
		if weapon != nil {
			if raw := weapon.item(); raw != nil && raw.Damage > 0 {
				damage = e.RandomIntn(raw.Damage) + 1
			}
		}
		out.EnemyDamage = damage
		out.EnemyRemainingHealth = enemySheet.Health - damage
	}

	if out.PlayerHit && out.EnemyRemainingHealth <= 0 {
		out.Event = EnemySlain
		return out
	}
	if out.PlayerHit && out.EnemyRemainingHealth < enemySheet.MaxHealth/4 && e.RandomPercentage(20) {
		out.Event = EnemyFlees
		return out
	}

	// Step 2: the enemy counterattacks, classified into the player-condition
	// events spec §4.7 steps 2-3 name.
	npcWeapon := enemyWeapon(enemy)
	if npcWeapon != nil {
		out.EnemyWeapon = npcWeapon.ID()
	}
	enemyRoll := e.RandomIntn(20) + 1 + enemySheet.Accuracy
	if enemyRoll < sheet.ArmorClass {
		if out.PlayerHit {
			out.Event = EnemyMissed
		} else {
			out.Event = PlayerMissed
		}
		return out
	}
	if e.RandomPercentage(5) {
		out.Event = PlayerDodged
		return out
	}
	if weapon != nil && e.RandomPercentage(5) {
		out.Event = PlayerDisarmed
		return out
	}
	if e.RandomPercentage(8) {
		out.Event = EnemySpecialAction
		return out
	}

	damage := 2
	if npcWeapon != nil {
		if raw := npcWeapon.item(); raw != nil && raw.Damage > 0 {
			damage = e.RandomIntn(raw.Damage) + 1
		}
	} else if enemySheet.Strength > 0 {
		damage = e.RandomIntn(enemySheet.Strength/2+1) + 1
	}
	out.Damage = damage
	out.PlayerRemainingHealth = sheet.Health - damage
	switch {
	case out.PlayerRemainingHealth <= 0:
		out.Event = PlayerSlain
	case out.PlayerRemainingHealth < sheet.MaxHealth/8:
		out.Event = PlayerUnconscious
	case out.PlayerRemainingHealth < sheet.MaxHealth/4:
		out.Event = PlayerGravelyInjured
	default:
		out.Event = PlayerLightlyInjured
	}
	return out
}

func playerWeapon(e *Engine, player PlayerProxy) *ItemProxy {
	for _, it := range player.Inventory() {
		raw := it.item()
		if raw != nil && raw.Flags.Weapon {
			item := it
			return &item
		}
	}
	return nil
}

// enemyWeapon returns the NPC's wielded weapon, if it carries one among its
// direct contents, mirroring playerWeapon for the enemy side of a round.
func enemyWeapon(enemy ItemProxy) *ItemProxy {
	for _, it := range enemy.Contents() {
		raw := it.item()
		if raw != nil && raw.Flags.Weapon {
			item := it
			return &item
		}
	}
	return nil
}

func defaultCombatText(o CombatOutcome, enemyName string) string {
	switch o.Event {
	case PlayerMissed:
		return fmt.Sprintf("You swing at %s and miss.", enemyName)
	case EnemyMissed:
		return fmt.Sprintf("You hit %s, but %s fails to land a blow on you.", enemyName, enemyName)
	case PlayerDodged:
		return fmt.Sprintf("You dodge %s's attack.", enemyName)
	case PlayerDisarmed:
		return fmt.Sprintf("%s knocks the weapon from your hand!", enemyName)
	case EnemySpecialAction:
		return fmt.Sprintf("%s does something unexpected.", enemyName)
	case EnemyFlees:
		return fmt.Sprintf("%s, badly hurt, turns and flees!", enemyName)
	case EnemySlain:
		return fmt.Sprintf("%s is dead.", enemyName)
	case PlayerLightlyInjured:
		return fmt.Sprintf("%s wounds you slightly.", enemyName)
	case PlayerGravelyInjured:
		return fmt.Sprintf("%s wounds you gravely!", enemyName)
	case PlayerUnconscious:
		return fmt.Sprintf("%s knocks you senseless. You black out.", enemyName)
	case PlayerSlain:
		return fmt.Sprintf("%s deals you a mortal blow. You have died.", enemyName)
	default:
		return fmt.Sprintf("You attack %s.", enemyName)
	}
}

// baselineChanges composes the round's HP deltas on both sides plus, on a
// kill, flee, or disarm, the associated handling spec §4.7 requires:
// - EnemySlain: consciousness → dead, corpse → .nowhere, and the NPC's
//   directly held weapons, treasures and containers move to the room (a
//   container moves whole; its contents are not emptied out of it).
// - EnemyFlees: the enemy leaves the scene and disengages.
// - PlayerSlain/PlayerUnconscious: the player's consciousness updates too.
// - PlayerDisarmed: the player's wielded weapon is knocked to the floor.
func baselineChanges(e *Engine, o CombatOutcome) []StateChange {
	var changes []StateChange
	if o.PlayerHit && o.EnemyDamage > 0 {
		changes = append(changes, SetItemProperty{
			Item:     o.Defender,
			Property: PropCharacterHealth,
			Value:    IntValue(o.EnemyRemainingHealth),
		})
	}

	switch o.Event {
	case EnemySlain:
		changes = append(changes, deathChanges(e, o.Defender)...)
	case EnemyFlees:
		changes = append(changes,
			SetItemProperty{Item: o.Defender, Property: PropIsFighting, Value: BoolValue(false)},
			MoveItem{Item: o.Defender, To: Nowhere},
		)
	case PlayerDisarmed:
		if o.PlayerWeapon != 0 {
			changes = append(changes, MoveItem{Item: o.PlayerWeapon, To: InLocation(o.Location)})
		}
	case PlayerSlain, PlayerUnconscious, PlayerGravelyInjured, PlayerLightlyInjured:
		if o.Damage > 0 {
			changes = append(changes, SetPlayerProperty{Property: PlayerHealth, Value: IntValue(o.PlayerRemainingHealth)})
		}
		if o.Event == PlayerSlain {
			changes = append(changes, SetPlayerProperty{Property: PlayerConsciousness, Value: IntValue(int(Dead))})
		} else if o.Event == PlayerUnconscious {
			changes = append(changes, SetPlayerProperty{Property: PlayerConsciousness, Value: IntValue(int(Unconscious))})
		}
	}
	return changes
}

// deathChanges implements spec §4.7's death handling for a slain NPC: its
// weapon and any treasures it's directly holding spill to the room, and any
// container it's carrying moves to the room intact — carrying whatever is
// nested inside it (a treasure held in a bag, not directly on the NPC)
// along for free, since a MoveItem only repositions the container, not its
// contents' own parent edges.
func deathChanges(e *Engine, id ItemID) []StateChange {
	var changes []StateChange
	changes = append(changes, SetItemProperty{Item: id, Property: PropConsciousness, Value: IntValue(int(Dead))})

	loc, ok := e.Snapshot().ancestorLocation(id)
	snap := e.Snapshot()
	for childID, it := range snap.Items {
		if it.Parent.Kind != ParentItem || it.Parent.Item != id {
			continue
		}
		if !ok {
			changes = append(changes, MoveItem{Item: childID, To: Nowhere})
			continue
		}
		if it.Flags.Weapon || it.Value > 0 || it.Flags.Container {
			changes = append(changes, MoveItem{Item: childID, To: InLocation(loc)})
		}
	}
	changes = append(changes, MoveItem{Item: id, To: Nowhere})
	return changes
}
