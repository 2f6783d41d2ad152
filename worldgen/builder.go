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

// Package worldgen is an authoring convenience: fluent builders that produce
// plain *zorkvm.Location/*zorkvm.Item records. Chaining is visible only here
// — the engine never sees a builder, only the records it returns.
package worldgen

import "github.com/vaelen/zorkvm"

// RoomBuilder accumulates a Location's fields before Build.
type RoomBuilder struct {
	loc *zorkvm.Location
}

// Room starts a RoomBuilder for id/name.
func Room(id zorkvm.LocationID, name string) *RoomBuilder {
	return &RoomBuilder{loc: zorkvm.NewLocation(id, name)}
}

// Describe sets the room's long description.
func (b *RoomBuilder) Describe(s string) *RoomBuilder {
	b.loc.Description = s
	return b
}

// Lit marks the room as inherently lit (no light source required).
func (b *RoomBuilder) Lit() *RoomBuilder {
	b.loc.Flags.InherentlyLit = true
	return b
}

// Exit adds a plain, never-blocked exit.
func (b *RoomBuilder) Exit(dir zorkvm.Direction, dest zorkvm.LocationID) *RoomBuilder {
	b.loc.Exits = append(b.loc.Exits, zorkvm.Exit{Direction: dir, Destination: dest})
	return b
}

// LockedExit adds an exit gated by a door item; closed/locked checks happen
// against that item at move time.
func (b *RoomBuilder) LockedExit(dir zorkvm.Direction, dest zorkvm.LocationID, door zorkvm.ItemID) *RoomBuilder {
	d := door
	b.loc.Exits = append(b.loc.Exits, zorkvm.Exit{Direction: dir, Destination: dest, DoorID: &d})
	return b
}

// BlockedExit adds an exit that always refuses movement with the given text
// (scenery directions: "You can't go that way.").
func (b *RoomBuilder) BlockedExit(dir zorkvm.Direction, text string) *RoomBuilder {
	b.loc.Exits = append(b.loc.Exits, zorkvm.Exit{Direction: dir, Blocked: true, BlockedText: text})
	return b
}

// LocalGlobal adds an item ID to the location's local-globals list, the
// scenery-without-presence set the parser's tier-2 lookup consults.
func (b *RoomBuilder) LocalGlobal(id zorkvm.ItemID) *RoomBuilder {
	b.loc.LocalGlobals = append(b.loc.LocalGlobals, id)
	return b
}

// Build returns the accumulated Location.
func (b *RoomBuilder) Build() *zorkvm.Location {
	return b.loc
}

// ItemBuilder accumulates an Item's fields before Build.
type ItemBuilder struct {
	item *zorkvm.Item
}

// NewItem starts an ItemBuilder for id/name, placed nowhere until .In is called.
func NewItem(id zorkvm.ItemID, name string) *ItemBuilder {
	return &ItemBuilder{item: zorkvm.NewItem(id, name)}
}

// Describe sets the item's long description.
func (b *ItemBuilder) Describe(s string) *ItemBuilder {
	b.item.Description = s
	return b
}

// FirstSeen sets the one-time first-encounter description.
func (b *ItemBuilder) FirstSeen(s string) *ItemBuilder {
	b.item.FirstDescription = s
	return b
}

// Short sets the short room-listing description.
func (b *ItemBuilder) Short(s string) *ItemBuilder {
	b.item.ShortDescription = s
	return b
}

// Synonyms adds alternate nouns the parser may match against.
func (b *ItemBuilder) Synonyms(s ...string) *ItemBuilder {
	b.item.Synonyms = append(b.item.Synonyms, s...)
	return b
}

// Adjectives adds adjectives the parser requires a full match on.
func (b *ItemBuilder) Adjectives(s ...string) *ItemBuilder {
	b.item.Adjectives = append(b.item.Adjectives, s...)
	return b
}

// In places the item in a location.
func (b *ItemBuilder) In(loc zorkvm.LocationID) *ItemBuilder {
	b.item.Parent = zorkvm.InLocation(loc)
	return b
}

// Inside places the item inside a containing item.
func (b *ItemBuilder) Inside(container zorkvm.ItemID) *ItemBuilder {
	b.item.Parent = zorkvm.InItem(container)
	return b
}

// Held places the item directly in the player's inventory.
func (b *ItemBuilder) Held() *ItemBuilder {
	b.item.Parent = zorkvm.WithPlayer
	return b
}

// Flags mutates the item's flag struct via fn, the escape hatch for the
// flags this builder has no dedicated method for.
func (b *ItemBuilder) Flags(fn func(*zorkvm.ItemFlags)) *ItemBuilder {
	fn(&b.item.Flags)
	return b
}

// Takable marks the item takable, carrying the given size against the
// player's carrying capacity.
func (b *ItemBuilder) Takable(size int) *ItemBuilder {
	b.item.Flags.Takable = true
	b.item.Size = size
	return b
}

// Container marks the item an openable/closed container with the given
// interior capacity.
func (b *ItemBuilder) Container(capacity int) *ItemBuilder {
	b.item.Flags.Container = true
	b.item.Flags.Openable = true
	b.item.Capacity = capacity
	return b
}

// Lockable marks the item lockable with the given key and starts it locked.
func (b *ItemBuilder) Lockable(key zorkvm.ItemID) *ItemBuilder {
	b.item.Flags.Lockable = true
	b.item.Flags.Locked = true
	k := key
	b.item.LockKey = &k
	return b
}

// LightSource marks the item a light source, off by default.
func (b *ItemBuilder) LightSource() *ItemBuilder {
	b.item.Flags.LightSource = true
	return b
}

// Weapon marks the item usable as a weapon, dealing the given damage.
func (b *ItemBuilder) Weapon(damage int) *ItemBuilder {
	b.item.Flags.Weapon = true
	b.item.Damage = damage
	return b
}

// NPC gives the item a character sheet, making it a combat-eligible actor.
func (b *ItemBuilder) NPC(sheet zorkvm.CharacterSheet) *ItemBuilder {
	cp := sheet
	b.item.CharacterSheet = &cp
	return b
}

// Readable sets the item's read text and marks it readable.
func (b *ItemBuilder) Readable(text string) *ItemBuilder {
	b.item.Flags.Readable = true
	b.item.ReadText = text
	return b
}

// Build returns the accumulated Item.
func (b *ItemBuilder) Build() *zorkvm.Item {
	return b.item
}
