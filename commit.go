package zorkvm

// applyOne validates and applies a single StateChange against the live
// state. Returns applied=false, err=nil for a no-op (spec §4.1/§4.3 no-op
// contract). Must only ever be called from the engine's own goroutine.
func (e *Engine) applyOne(c StateChange) (bool, error) {
	switch ch := c.(type) {
	case MoveItem:
		return e.commitMoveItem(ch)
	case SetItemProperty:
		return e.commitSetItemProperty(ch)
	case SetLocationProperty:
		return e.commitSetLocationProperty(ch)
	case SetLocationName:
		return e.commitSetLocationName(ch)
	case SetPlayerProperty:
		return e.commitSetPlayerProperty(ch)
	case SetGlobal:
		return e.commitSetGlobal(ch)
	case SetGlobalCodable:
		return e.commitSetGlobalCodable(ch)
	case RunDaemon:
		return e.commitRunDaemon(ch)
	case StopDaemon:
		return e.commitStopDaemon(ch)
	case ScheduleFuse:
		return e.commitScheduleFuse(ch)
	default:
		return false, &CommitError{Change: c, Reason: "unknown StateChange variant"}
	}
}

// applyBatch applies changes in order against a scratch copy of the state
// first; if every change validates, it re-applies them against the live
// state (which, by construction, cannot fail the second time). This gives
// spec §4.1's "if any change fails validation... the engine rolls the batch
// back" without needing true transactional rollback machinery.
func (e *Engine) applyBatch(changes []StateChange) (int, error) {
	scratch := e.state.Clone()
	saved := e.state
	e.state = scratch
	applied := 0
	var failErr error
	for _, c := range changes {
		ok, err := e.applyOne(c)
		if err != nil {
			failErr = err
			break
		}
		if ok {
			applied++
		}
	}
	e.state = saved
	if failErr != nil {
		return 0, &ValidationError{Batch: changes, Err: failErr}
	}

	n := 0
	for _, c := range changes {
		ok, err := e.applyOne(c)
		if err != nil {
			// Should be unreachable: the scratch pass already validated
			// every change against an identically-shaped state.
			return n, &ValidationError{Batch: changes, Err: err}
		}
		if ok {
			n++
			e.state.ChangeHistory = append(e.state.ChangeHistory, c)
		}
	}
	return n, nil
}

func (e *Engine) commitMoveItem(c MoveItem) (bool, error) {
	item, ok := e.state.Items[c.Item]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown item"}
	}
	if item.Parent == c.To {
		return false, nil // no-op
	}
	switch c.To.Kind {
	case ParentLocation:
		if _, ok := e.state.Locations[c.To.Location]; !ok {
			return false, &CommitError{Change: c, Reason: "unknown destination location"}
		}
	case ParentItem:
		if _, ok := e.state.Items[c.To.Item]; !ok {
			return false, &CommitError{Change: c, Reason: "unknown destination item"}
		}
		if c.To.Item == c.Item {
			return false, &CommitError{Change: c, Reason: "item cannot contain itself"}
		}
		if e.state.isAncestorOf(c.Item, c.To.Item) {
			return false, &CommitError{Change: c, Reason: "move would create a containment cycle"}
		}
		dest := e.state.Items[c.To.Item]
		if dest.Capacity >= 0 {
			load := e.state.directChildrenSize(c.To.Item)
			// Subtract the item's own prior contribution if it was already
			// a child of dest (defensive; MoveItem changes parent so this
			// is generally zero, but keeps the arithmetic honest).
			if item.Parent.Kind == ParentItem && item.Parent.Item == c.To.Item {
				load -= item.Size
			}
			if load+item.Size > dest.Capacity {
				return false, &CommitError{Change: c, Reason: "destination container is over capacity"}
			}
		}
	}
	item.Parent = c.To
	return true, nil
}

// Well-known item property IDs that write through to a struct field instead
// of the generic property bag, mirroring commitSetPlayerProperty's well-known
// IDs (spec §4.7 combat needs a real home for HP/consciousness, not a bag
// entry the typed accessors never look at).
const (
	PropCharacterHealth ItemPropertyID = "characterSheet.health"
	PropConsciousness   ItemPropertyID = "consciousness"
)

func (e *Engine) commitSetItemProperty(c SetItemProperty) (bool, error) {
	item, ok := e.state.Items[c.Item]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown item"}
	}
	switch c.Property {
	case PropCharacterHealth:
		if item.CharacterSheet == nil {
			return false, &CommitError{Change: c, Reason: "item has no character sheet"}
		}
		v := c.Value.Int()
		if item.CharacterSheet.Health == v {
			return false, nil
		}
		item.CharacterSheet.Health = v
		return true, nil
	case PropConsciousness:
		if item.CharacterSheet == nil {
			return false, &CommitError{Change: c, Reason: "item has no character sheet"}
		}
		v := Consciousness(c.Value.Int())
		if item.CharacterSheet.Consciousness == v {
			return false, nil
		}
		item.CharacterSheet.Consciousness = v
		return true, nil
	}
	if cur, ok := item.Properties[c.Property]; ok && cur.Equal(c.Value) {
		return false, nil
	}
	item.Properties[c.Property] = c.Value
	return true, nil
}

func (e *Engine) commitSetLocationProperty(c SetLocationProperty) (bool, error) {
	loc, ok := e.state.Locations[c.Location]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown location"}
	}
	if c.Property == LocationVisited {
		v := c.Value.Bool()
		if loc.Flags.IsVisited == v {
			return false, nil
		}
		loc.Flags.IsVisited = v
		return true, nil
	}
	if cur, ok := loc.Properties[c.Property]; ok && cur.Equal(c.Value) {
		return false, nil
	}
	loc.Properties[c.Property] = c.Value
	return true, nil
}

func (e *Engine) commitSetLocationName(c SetLocationName) (bool, error) {
	loc, ok := e.state.Locations[c.Location]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown location"}
	}
	if loc.Name == c.Name {
		return false, nil
	}
	loc.Name = c.Name
	return true, nil
}

func (e *Engine) commitSetPlayerProperty(c SetPlayerProperty) (bool, error) {
	p := e.state.Player
	if p == nil {
		return false, &CommitError{Change: c, Reason: "no player in state"}
	}
	switch c.Property {
	case PlayerLocation:
		dest := c.Value.Ref()
		if _, ok := e.state.Locations[LocationID(dest)]; !ok {
			return false, &CommitError{Change: c, Reason: "unknown destination location"}
		}
		if p.Location == LocationID(dest) {
			return false, nil
		}
		p.Location = LocationID(dest)
		return true, nil
	case PlayerScore:
		v := c.Value.Int()
		if p.Score == v {
			return false, nil
		}
		p.Score = v
		return true, nil
	case PlayerHealth:
		v := c.Value.Int()
		if p.CharacterSheet.Health == v {
			return false, nil
		}
		p.CharacterSheet.Health = v
		return true, nil
	case PlayerConsciousness:
		v := Consciousness(c.Value.Int())
		if p.CharacterSheet.Consciousness == v {
			return false, nil
		}
		p.CharacterSheet.Consciousness = v
		return true, nil
	default:
		if cur, ok := p.Properties[c.Property]; ok && cur.Equal(c.Value) {
			return false, nil
		}
		p.Properties[c.Property] = c.Value
		return true, nil
	}
}

func (e *Engine) commitSetGlobal(c SetGlobal) (bool, error) {
	if cur, ok := e.state.Globals[c.Global]; ok && cur.Equal(c.Value) {
		return false, nil
	}
	e.state.Globals[c.Global] = c.Value
	return true, nil
}

func (e *Engine) commitSetGlobalCodable(c SetGlobalCodable) (bool, error) {
	v := BlobValue(c.Blob)
	if cur, ok := e.state.Globals[c.Global]; ok && cur.Equal(v) {
		return false, nil
	}
	e.state.Globals[c.Global] = v
	return true, nil
}

func (e *Engine) commitRunDaemon(c RunDaemon) (bool, error) {
	rec, ok := e.state.Daemons[c.Daemon]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown daemon"}
	}
	if rec.State == DaemonActive {
		return false, nil
	}
	rec.State = DaemonActive
	return true, nil
}

func (e *Engine) commitStopDaemon(c StopDaemon) (bool, error) {
	rec, ok := e.state.Daemons[c.Daemon]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown daemon"}
	}
	if rec.State == DaemonInactive {
		return false, nil
	}
	rec.State = DaemonInactive
	rec.Remaining = 0
	return true, nil
}

func (e *Engine) commitScheduleFuse(c ScheduleFuse) (bool, error) {
	rec, ok := e.state.Daemons[c.Fuse]
	if !ok {
		return false, &CommitError{Change: c, Reason: "unknown fuse"}
	}
	if rec.State == DaemonFuse && rec.Remaining == c.Turns {
		return false, nil
	}
	rec.State = DaemonFuse
	rec.Remaining = c.Turns
	return true, nil
}
