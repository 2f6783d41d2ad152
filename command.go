package zorkvm

// Intent is the canonical action a parsed verb maps to (spec §4.4/§6). A
// single verb token may map to more than one Intent (e.g. "mung" → IntentMung
// and IntentAttack); VerbTable carries the full set and the parser narrows it
// using the object phrase.
type Intent uint8

const (
	IntentMove Intent = iota
	IntentLook
	IntentExamine
	IntentTake
	IntentDrop
	IntentPut
	IntentOpen
	IntentClose
	IntentLock
	IntentUnlock
	IntentRead
	IntentLightSource // turn on / light
	IntentExtinguish  // turn off / extinguish
	IntentAttack
	IntentThrow
	IntentGive
	IntentTell
	IntentAsk
	IntentListen
	IntentPush
	IntentPull
	IntentMoveObject // "move X" as in shove, distinct from IntentMove (travel)
	IntentMung
	IntentClimb
	IntentInventory
	IntentWait
	IntentMeta // save, restore, quit
)

// ReferenceKind discriminates what an EntityReference resolves to.
type ReferenceKind uint8

const (
	RefItem ReferenceKind = iota
	RefLocation
	RefPlayer
	RefUniversal
)

// EntityReference is a resolved parser object: an item, a location, the
// player, or a universal pseudo-object ("ground", "sky", "walls", "self").
type EntityReference struct {
	Kind       ReferenceKind
	Item       ItemID
	Location   LocationID
	Universal  string
}

// Universals always resolve regardless of location (spec §6).
var Universals = map[string]bool{
	"ground": true,
	"sky":    true,
	"walls":  true,
	"self":   true,
}

// Command is the parser's output: a fully resolved player action (spec §4.4).
type Command struct {
	Verb          string
	Intent        Intent
	Direction     *Direction
	DirectObject  *EntityReference
	Preposition   string
	IndirectObject *EntityReference
	RawTokens     []string
}

// Reserialize reproduces "verb + rawTokens" for the §8 parser round-trip property.
func (c Command) Reserialize() []string {
	out := make([]string, 0, len(c.RawTokens)+1)
	out = append(out, c.Verb)
	out = append(out, c.RawTokens...)
	return out
}
