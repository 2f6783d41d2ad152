package zorkvm

// DaemonRecord is the serializable half of a scheduler entry: the part that
// belongs in a save file. The non-serializable half (the Go callback) lives
// on the Scheduler itself (see scheduler.go) and is re-attached by name when
// a world boots.
type DaemonRecord struct {
	ID        DaemonID
	State     DaemonState
	Frequency int
	Remaining int
}

// GameState is the authoritative world: items, locations, the player, the
// global store, and the append-only change history (spec §4.1).
//
// Grounded on the teacher's WorldDatabase (game.go), generalized from three
// separate maps-plus-player to the single struct spec §3 calls for, with a
// Daemons table added so Persisted State (§6) covers scheduler state too.
type GameState struct {
	NextItemID     ItemID
	NextLocationID LocationID

	Items     map[ItemID]*Item
	Locations map[LocationID]*Location
	Player    *Player
	Globals   map[GlobalID]StateValue
	Daemons   map[DaemonID]*DaemonRecord

	ChangeHistory []StateChange

	// RandSeed is the PRNG seed this state was (or should be) initialized
	// with, carried so a save captures enough to reproduce a transcript
	// deterministically (spec §5, §6, §8).
	RandSeed int64
}

// NewGameState constructs an empty GameState ready for a world builder to populate.
func NewGameState() *GameState {
	return &GameState{
		NextItemID:     1,
		NextLocationID: 1,
		Items:          make(map[ItemID]*Item),
		Locations:      make(map[LocationID]*Location),
		Globals:        make(map[GlobalID]StateValue),
		Daemons:        make(map[DaemonID]*DaemonRecord),
	}
}

// Clone returns a structural copy suitable for read-only use (status lines,
// the `check` subcommand, test fixtures) without risking a caller mutating
// the authoritative state out from under the engine goroutine.
func (s *GameState) Clone() *GameState {
	out := NewGameState()
	out.NextItemID = s.NextItemID
	out.NextLocationID = s.NextLocationID
	out.RandSeed = s.RandSeed

	for id, it := range s.Items {
		cp := *it
		cp.Properties = make(map[ItemPropertyID]StateValue, len(it.Properties))
		for k, v := range it.Properties {
			cp.Properties[k] = v
		}
		cp.Synonyms = append([]string(nil), it.Synonyms...)
		cp.Adjectives = append([]string(nil), it.Adjectives...)
		cp.ValidLocations = append([]LocationID(nil), it.ValidLocations...)
		out.Items[id] = &cp
	}
	for id, loc := range s.Locations {
		cp := *loc
		cp.Properties = make(map[LocationPropertyID]StateValue, len(loc.Properties))
		for k, v := range loc.Properties {
			cp.Properties[k] = v
		}
		cp.Exits = append([]Exit(nil), loc.Exits...)
		cp.LocalGlobals = append([]ItemID(nil), loc.LocalGlobals...)
		out.Locations[id] = &cp
	}
	if s.Player != nil {
		cp := *s.Player
		cp.Properties = make(map[PlayerPropertyID]StateValue, len(s.Player.Properties))
		for k, v := range s.Player.Properties {
			cp.Properties[k] = v
		}
		out.Player = &cp
	}
	for k, v := range s.Globals {
		out.Globals[k] = v
	}
	for k, v := range s.Daemons {
		cp := *v
		out.Daemons[k] = &cp
	}
	out.ChangeHistory = append([]StateChange(nil), s.ChangeHistory...)
	return out
}

// nextItemID allocates and returns the next ItemID, mutating the state's counter.
func (s *GameState) nextItemID() ItemID {
	id := s.NextItemID
	s.NextItemID++
	return id
}

// nextLocationID allocates and returns the next LocationID, mutating the state's counter.
func (s *GameState) nextLocationID() LocationID {
	id := s.NextLocationID
	s.NextLocationID++
	return id
}

// ancestorLocation walks an item's Parent chain up to its nearest Location
// ancestor, or reports false if the chain ends in Nowhere without one, or if
// the item is (directly or via containers) held by the player.
func (s *GameState) ancestorLocation(id ItemID) (LocationID, bool) {
	seen := make(map[ItemID]bool)
	cur := s.Items[id]
	for cur != nil {
		if seen[cur.ID] {
			return 0, false // cycle guard; should never happen (§3 invariant)
		}
		seen[cur.ID] = true
		switch cur.Parent.Kind {
		case ParentLocation:
			return cur.Parent.Location, true
		case ParentItem:
			cur = s.Items[cur.Parent.Item]
		default:
			return 0, false
		}
	}
	return 0, false
}

// isAncestorOf reports whether candidate is an ancestor of id in the
// containment forest (used to reject cycle-forming MoveItem changes).
func (s *GameState) isAncestorOf(candidate, id ItemID) bool {
	seen := make(map[ItemID]bool)
	cur := s.Items[id]
	for cur != nil {
		if cur.Parent.Kind != ParentItem {
			return false
		}
		if cur.Parent.Item == candidate {
			return true
		}
		if seen[cur.Parent.Item] {
			return false
		}
		seen[cur.Parent.Item] = true
		cur = s.Items[cur.Parent.Item]
	}
	return false
}

// directChildrenSize sums the Size of an item's direct children, for
// capacity arithmetic (spec §4.3 "currentLoad").
func (s *GameState) directChildrenSize(container ItemID) int {
	total := 0
	for _, it := range s.Items {
		if it.Parent.Kind == ParentItem && it.Parent.Item == container {
			total += it.Size
		}
	}
	return total
}
