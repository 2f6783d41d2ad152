package zorkvm

import "fmt"

// StateChange is a declarative, atomically applicable mutation to the world
// store (spec §4.2). Implementations are the exhaustive set below; the
// unexported marker method keeps the sum type closed to this package.
type StateChange interface {
	isStateChange()
}

// MoveItem repositions one item to a new ParentEntity.
type MoveItem struct {
	Item ItemID
	To   ParentEntity
}

// SetItemProperty overwrites one slot in an item's property bag.
type SetItemProperty struct {
	Item     ItemID
	Property ItemPropertyID
	Value    StateValue
}

// SetLocationProperty overwrites one slot in a location's property bag.
type SetLocationProperty struct {
	Location LocationID
	Property LocationPropertyID
	Value    StateValue
}

// SetLocationName overwrites a location's display name.
type SetLocationName struct {
	Location LocationID
	Name     string
}

// SetPlayerProperty overwrites one slot in the player's property bag, or
// one of its well-known fields when Property matches a PlayerWellKnown* ID.
type SetPlayerProperty struct {
	Property PlayerPropertyID
	Value    StateValue
}

// SetGlobal overwrites one entry in the global key/value store.
type SetGlobal struct {
	Global GlobalID
	Value  StateValue
}

// SetGlobalCodable overwrites one entry in the global store with an opaque blob.
type SetGlobalCodable struct {
	Global GlobalID
	Blob   []byte
}

// RunDaemon transitions a daemon from inactive to active.
type RunDaemon struct {
	Daemon DaemonID
}

// StopDaemon transitions a daemon to inactive.
type StopDaemon struct {
	Daemon DaemonID
}

// ScheduleFuse arms a one-shot daemon to fire after the given number of turns.
type ScheduleFuse struct {
	Fuse  FuseID
	Turns int
}

func (MoveItem) isStateChange()            {}
func (SetItemProperty) isStateChange()     {}
func (SetLocationProperty) isStateChange() {}
func (SetLocationName) isStateChange()     {}
func (SetPlayerProperty) isStateChange()   {}
func (SetGlobal) isStateChange()           {}
func (SetGlobalCodable) isStateChange()    {}
func (RunDaemon) isStateChange()           {}
func (StopDaemon) isStateChange()          {}
func (ScheduleFuse) isStateChange()        {}

// Well-known player property IDs used by SetPlayerProperty for fields that
// live directly on the Player struct rather than in its property bag.
const (
	PlayerLocation      PlayerPropertyID = ".location"
	PlayerScore         PlayerPropertyID = ".score"
	PlayerHealth        PlayerPropertyID = ".health"
	PlayerConsciousness PlayerPropertyID = ".consciousness"
)

// Well-known location property IDs.
const (
	LocationVisited LocationPropertyID = ".isVisited"
)

// ControlFlow signals how the dispatch pipeline should proceed after a hook
// or the default handler returns an ActionResult (spec §4.5).
type ControlFlow uint8

const (
	// ControlContinue emits this result's message/changes and keeps running
	// the remaining hooks in the pipeline.
	ControlContinue ControlFlow = iota
	// ControlYield means "no action was taken this tick" (daemons, §4.6).
	ControlYield
	// ControlOverride bypasses the default handler and any remaining hooks.
	ControlOverride
)

// ActionResult aggregates a user-visible message, a sequence of changes, and
// a control-flow signal (spec §4.2).
type ActionResult struct {
	Message *string
	Changes []StateChange
	Control ControlFlow
}

// Msg builds an ActionResult carrying only a message (ControlContinue).
func Msg(format string, a ...interface{}) *ActionResult {
	s := format
	if len(a) > 0 {
		s = fmt.Sprintf(format, a...)
	}
	return &ActionResult{Message: &s, Control: ControlContinue}
}

// Override builds an ActionResult with ControlOverride and the given message.
func Override(format string, a ...interface{}) *ActionResult {
	r := Msg(format, a...)
	r.Control = ControlOverride
	return r
}

// WithChanges attaches changes to an ActionResult, returning it for chaining.
func (r *ActionResult) WithChanges(changes ...StateChange) *ActionResult {
	if r == nil {
		r = &ActionResult{}
	}
	r.Changes = append(r.Changes, changes...)
	return r
}

// Prepended composes two results, running `before`'s changes ahead of r's,
// preferring r's message when both are non-empty (spec §4.2).
func (r *ActionResult) Prepended(before *ActionResult) *ActionResult {
	return mergeResults(before, r)
}

// Appending composes two results, running r's changes ahead of `after`'s,
// preferring `after`'s message when both are non-empty (spec §4.2).
func (r *ActionResult) Appending(after *ActionResult) *ActionResult {
	return mergeResults(r, after)
}

func mergeResults(first, second *ActionResult) *ActionResult {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	out := &ActionResult{Control: second.Control}
	out.Changes = append(append(out.Changes, first.Changes...), second.Changes...)
	switch {
	case second.Message != nil && *second.Message != "":
		out.Message = second.Message
	case first.Message != nil:
		out.Message = first.Message
	}
	return out
}
