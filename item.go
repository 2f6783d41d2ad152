package zorkvm

import "fmt"

// ParentKind discriminates what an Item's ParentEntity points at.
type ParentKind uint8

const (
	// ParentNowhere means the item has been removed from play.
	ParentNowhere ParentKind = iota
	ParentLocation
	ParentItem
	ParentPlayer
)

// ParentEntity is the containment edge from an item to its location,
// containing item, the player, or nowhere. Forms a forest: no cycles.
type ParentEntity struct {
	Kind     ParentKind
	Location LocationID
	Item     ItemID
}

// Nowhere is the ParentEntity used for items that are not currently in play.
var Nowhere = ParentEntity{Kind: ParentNowhere}

// InLocation builds a ParentEntity rooted at a location.
func InLocation(id LocationID) ParentEntity { return ParentEntity{Kind: ParentLocation, Location: id} }

// InItem builds a ParentEntity rooted at a containing item.
func InItem(id ItemID) ParentEntity { return ParentEntity{Kind: ParentItem, Item: id} }

// WithPlayer is the ParentEntity for items in the player's inventory.
var WithPlayer = ParentEntity{Kind: ParentPlayer}

func (p ParentEntity) String() string {
	switch p.Kind {
	case ParentLocation:
		return p.Location.String()
	case ParentItem:
		return p.Item.String()
	case ParentPlayer:
		return ".player"
	default:
		return ".nowhere"
	}
}

// CharacterSheet holds combat-relevant attributes for NPCs and the player.
type CharacterSheet struct {
	Health       int
	MaxHealth    int
	Strength     int
	Dexterity    int
	Accuracy     int
	ArmorClass   int
	Consciousness Consciousness
}

// Consciousness tracks a combatant's state for the combat subsystem (§4.7).
type Consciousness uint8

const (
	Conscious Consciousness = iota
	Unconscious
	Dead
)

// ItemFlags is the set of boolean attributes an Item may carry (spec §3).
type ItemFlags struct {
	Open              bool
	Openable          bool
	Locked            bool
	Lockable          bool
	Container         bool
	Surface           bool
	Transparent       bool
	Takable           bool
	Weapon            bool
	Tool              bool
	Flammable         bool
	Burning           bool
	LightSource       bool
	Device            bool
	On                bool
	Searchable        bool
	Climbable         bool
	Readable          bool
	Invisible         bool
	Touched           bool
	Visited           bool
	Plural            bool
	OmitArticle       bool
	OmitDescription   bool
	RequiresTryTake   bool
	Vehicle           bool
	Edible            bool
	Drinkable         bool
	Sacred            bool
	SelfIgnitable     bool
	BurnedOut         bool
	IsPlural          bool
}

// Item is a discrete noun: an object, piece of scenery, or NPC.
type Item struct {
	ID ItemID

	Name             string
	Description      string
	FirstDescription string
	ShortDescription string
	ReadText         string
	ReadWhileHeldText string

	Synonyms  []string
	Adjectives []string

	Parent ParentEntity
	Flags  ItemFlags

	Size     int
	Capacity int
	Value    int
	TmpValue int
	Damage   int

	CharacterSheet *CharacterSheet
	LockKey        *ItemID
	ValidLocations []LocationID

	Properties map[ItemPropertyID]StateValue
}

// NewItem constructs an Item with an initialized property bag.
func NewItem(id ItemID, name string) *Item {
	return &Item{
		ID:         id,
		Name:       name,
		Parent:     Nowhere,
		Properties: make(map[ItemPropertyID]StateValue),
	}
}

func (i *Item) String() string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s [%s]", i.Name, i.ID)
}
