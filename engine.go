package zorkvm

import (
	"math/rand"

	"go.uber.org/zap"
)

// Engine owns a GameState behind a single goroutine and serializes every
// read and write through request/Ack channels, exactly the teacher's
// WorldThread shape (game.go) generalized from three actors (players, rooms,
// items) to one, because spec §4.1 requires atomic commits across kinds.
type Engine struct {
	log   *zap.SugaredLogger
	rng   *rand.Rand
	state *GameState

	itemQuery     chan itemQueryMsg
	locationQuery chan locationQueryMsg
	playerQuery   chan playerQueryMsg
	globalQuery   chan globalQueryMsg

	applyQuery      chan applyMsg
	applyBatchQuery chan applyBatchMsg
	snapshotQuery   chan snapshotMsg
	mutateQuery     chan mutateMsg
	randQuery       chan randMsg

	shutdown chan struct{}
	done     chan struct{}
}

type itemQueryMsg struct {
	id  ItemID
	ack chan itemQueryReply
}
type itemQueryReply struct {
	item *Item
	ok   bool
}

type locationQueryMsg struct {
	id  LocationID
	ack chan locationQueryReply
}
type locationQueryReply struct {
	loc *Location
	ok  bool
}

type playerQueryMsg struct {
	ack chan *Player
}

type globalQueryMsg struct {
	id  GlobalID
	ack chan StateValue
}

type applyMsg struct {
	change StateChange
	ack    chan applyReply
}
type applyReply struct {
	applied bool
	err     error
}

type applyBatchMsg struct {
	changes []StateChange
	ack     chan applyBatchReply
}
type applyBatchReply struct {
	appliedCount int
	err          error
}

type snapshotMsg struct {
	ack chan *GameState
}

// mutateMsg runs an arbitrary function with exclusive access to the live
// GameState. Used internally by the scheduler and by save/load, which need
// more than the fixed query shapes above but must still serialize on the
// engine's logical thread (spec §5).
type mutateMsg struct {
	fn  func(*GameState)
	ack chan struct{}
}

type randMsg struct {
	max int
	ack chan int
}

// NewEngine constructs an Engine around the given initial state and PRNG seed.
// The goroutine is not started until Run is called.
func NewEngine(state *GameState, seed int64, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	state.RandSeed = seed
	e := &Engine{
		log:             log,
		rng:             rand.New(rand.NewSource(seed)),
		itemQuery:       make(chan itemQueryMsg),
		locationQuery:   make(chan locationQueryMsg),
		playerQuery:     make(chan playerQueryMsg),
		globalQuery:     make(chan globalQueryMsg),
		applyQuery:      make(chan applyMsg),
		applyBatchQuery: make(chan applyBatchMsg),
		snapshotQuery:   make(chan snapshotMsg),
		mutateQuery:     make(chan mutateMsg),
		randQuery:       make(chan randMsg),
		shutdown:        make(chan struct{}),
		done:            make(chan struct{}),
	}
	e.state = state
	return e
}

// Run is the engine's actor loop. It must be started exactly once, typically
// via `go engine.Run()`, mirroring the teacher's `go w.WorldThread()()`.
func (e *Engine) Run() {
	e.log.Info("engine started")
	defer e.log.Info("engine stopped")
	defer close(e.done)
	for {
		select {
		case m := <-e.itemQuery:
			it, ok := e.state.Items[m.id]
			m.ack <- itemQueryReply{item: it, ok: ok}
		case m := <-e.locationQuery:
			loc, ok := e.state.Locations[m.id]
			m.ack <- locationQueryReply{loc: loc, ok: ok}
		case m := <-e.playerQuery:
			m.ack <- e.state.Player
		case m := <-e.globalQuery:
			m.ack <- e.state.Globals[m.id]
		case m := <-e.applyQuery:
			applied, err := e.applyOne(m.change)
			if err == nil && applied {
				e.state.ChangeHistory = append(e.state.ChangeHistory, m.change)
			}
			m.ack <- applyReply{applied: applied, err: err}
		case m := <-e.applyBatchQuery:
			n, err := e.applyBatch(m.changes)
			m.ack <- applyBatchReply{appliedCount: n, err: err}
		case m := <-e.snapshotQuery:
			m.ack <- e.state.Clone()
		case m := <-e.mutateQuery:
			m.fn(e.state)
			close(m.ack)
		case m := <-e.randQuery:
			m.ack <- e.rng.Intn(m.max)
		case <-e.shutdown:
			return
		}
	}
}

// Stop signals the engine goroutine to exit and waits for it to finish.
func (e *Engine) Stop() {
	close(e.shutdown)
	<-e.done
}

// Item looks up an item by ID, failing with UnknownIDError if absent (spec §4.1).
func (e *Engine) Item(id ItemID) (*Item, error) {
	ack := make(chan itemQueryReply)
	e.itemQuery <- itemQueryMsg{id: id, ack: ack}
	r := <-ack
	if !r.ok {
		return nil, &UnknownIDError{Kind: "item", ID: id}
	}
	return r.item, nil
}

// Location looks up a location by ID, failing with UnknownIDError if absent.
func (e *Engine) Location(id LocationID) (*Location, error) {
	ack := make(chan locationQueryReply)
	e.locationQuery <- locationQueryMsg{id: id, ack: ack}
	r := <-ack
	if !r.ok {
		return nil, &UnknownIDError{Kind: "location", ID: id}
	}
	return r.loc, nil
}

// Player returns the player record.
func (e *Engine) Player() *Player {
	ack := make(chan *Player)
	e.playerQuery <- playerQueryMsg{ack: ack}
	return <-ack
}

// AncestorLocation walks an item's containment chain up to the Location it
// ultimately sits in, for collaborators outside this package (daemons,
// combat systems) that need to compare an item's whereabouts against the
// player's without reaching into GameState directly.
func (e *Engine) AncestorLocation(id ItemID) (LocationID, bool) {
	return e.Snapshot().ancestorLocation(id)
}

// Global returns the value stored under a GlobalID, or the zero StateValue.
func (e *Engine) Global(id GlobalID) StateValue {
	ack := make(chan StateValue)
	e.globalQuery <- globalQueryMsg{id: id, ack: ack}
	return <-ack
}

// Apply commits one StateChange atomically. Returns applied=false with a nil
// error for a no-op change (spec §4.1).
func (e *Engine) Apply(change StateChange) (bool, error) {
	ack := make(chan applyReply)
	e.applyQuery <- applyMsg{change: change, ack: ack}
	r := <-ack
	return r.applied, r.err
}

// ApplyAll commits a batch of changes atomically: if any change fails
// validation, the whole batch is rolled back (spec §4.1).
func (e *Engine) ApplyAll(changes []StateChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	ack := make(chan applyBatchReply)
	e.applyBatchQuery <- applyBatchMsg{changes: changes, ack: ack}
	r := <-ack
	return r.appliedCount, r.err
}

// ApplyResult commits an ActionResult's changes atomically.
func (e *Engine) ApplyResult(r *ActionResult) error {
	if r == nil || len(r.Changes) == 0 {
		return nil
	}
	_, err := e.ApplyAll(r.Changes)
	return err
}

// Snapshot returns a read-only structural clone of the current state.
func (e *Engine) Snapshot() *GameState {
	ack := make(chan *GameState)
	e.snapshotQuery <- snapshotMsg{ack: ack}
	return <-ack
}

// Mutate runs fn with exclusive access to the live GameState on the engine's
// goroutine. Used by save/load and world boot; fn must not block.
func (e *Engine) Mutate(fn func(*GameState)) {
	ack := make(chan struct{})
	e.mutateQuery <- mutateMsg{fn: fn, ack: ack}
	<-ack
}

// RandomIntn returns a non-negative pseudo-random number in [0,max), drawn
// from the engine's named PRNG resource (spec §5: "seeded deterministically
// for tests").
func (e *Engine) RandomIntn(max int) int {
	if max <= 0 {
		return 0
	}
	ack := make(chan int)
	e.randQuery <- randMsg{max: max, ack: ack}
	return <-ack
}

// RandomPercentage returns true with the given percent chance (0-100),
// matching spec §5's `engine.randomPercentage` suspension point.
func (e *Engine) RandomPercentage(percent int) bool {
	return e.RandomIntn(100) < percent
}
