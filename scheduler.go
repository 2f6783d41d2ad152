package zorkvm

// DaemonState is the state machine per daemon: {inactive, active, fuse(n)}
// (spec §4.6).
type DaemonState uint8

const (
	DaemonInactive DaemonState = iota
	DaemonActive
	DaemonFuse
)

// DaemonFunc is the callback a daemon or fuse runs each eligible tick. It
// receives the engine (for applying further changes or querying state) and
// a read-only snapshot, and returns an optional ActionResult plus its next
// DaemonState (spec §4.6: "(engine, state) → (Option<ActionResult>, next_state)").
type DaemonFunc func(engine *Engine, state *GameState) (*ActionResult, DaemonState)

// daemonSlot pairs a daemon's registration-order identity with its callback
// and static frequency; the DaemonState/Remaining live in GameState.Daemons
// so they round-trip through a save (spec §6).
type daemonSlot struct {
	id        DaemonID
	frequency int
	run       DaemonFunc
}

// Scheduler runs registered daemons in deterministic (registration) order
// after the action pipeline each turn (spec §4.6, §5 "daemon iteration is
// stable (registration order)").
type Scheduler struct {
	engine *Engine
	slots  []daemonSlot
}

// NewScheduler constructs a Scheduler bound to an engine.
func NewScheduler(engine *Engine) *Scheduler {
	return &Scheduler{engine: engine}
}

// Register adds a daemon in inactive state (unless initiallyActive is true),
// appending it to the registration order. frequency <= 0 defaults to 1 (spec
// §4.6: "frequency defaults to 1").
func (s *Scheduler) Register(id DaemonID, frequency int, initiallyActive bool, run DaemonFunc) {
	if frequency <= 0 {
		frequency = 1
	}
	s.slots = append(s.slots, daemonSlot{id: id, frequency: frequency, run: run})
	state := DaemonInactive
	if initiallyActive {
		state = DaemonActive
	}
	s.engine.Mutate(func(g *GameState) {
		if _, exists := g.Daemons[id]; !exists {
			g.Daemons[id] = &DaemonRecord{ID: id, State: state, Frequency: frequency}
		}
	})
}

// RegisterFuse adds a one-shot daemon that starts inactive until a
// ScheduleFuse change arms it.
func (s *Scheduler) RegisterFuse(id FuseID, run DaemonFunc) {
	s.Register(id, 1, false, run)
}

// Tick runs every eligible daemon for the given turn number, in
// registration order, applying each one's changes transactionally and
// folding its message into the returned ActionResult (spec §4.6).
func (s *Scheduler) Tick(turn int) ActionResult {
	var out ActionResult
	for _, slot := range s.slots {
		var rec DaemonRecord
		found := false
		s.engine.Mutate(func(g *GameState) {
			if r, ok := g.Daemons[slot.id]; ok {
				rec = *r
				found = true
			}
		})
		if !found || rec.State == DaemonInactive {
			continue
		}

		isFuseTick := rec.State == DaemonFuse
		eligible := isFuseTick || turn%slot.frequency == 0
		if !eligible {
			continue
		}

		if isFuseTick {
			rec.Remaining--
			if rec.Remaining > 0 {
				s.engine.Mutate(func(g *GameState) {
					if r, ok := g.Daemons[slot.id]; ok {
						r.Remaining = rec.Remaining
					}
				})
				continue
			}
		}

		result, next := slot.run(s.engine, s.engine.Snapshot())
		if result != nil {
			if err := s.engine.ApplyResult(result); err == nil {
				prev := out.Message
				out = *mergeResults(&out, result)
				if prev != nil && *prev != "" && result.Message != nil && *result.Message != "" {
					joined := *prev + "\n" + *result.Message
					out.Message = &joined
				}
			}
		}
		s.engine.Mutate(func(g *GameState) {
			r, ok := g.Daemons[slot.id]
			if !ok {
				return
			}
			r.State = next
			if next != DaemonFuse {
				r.Remaining = 0
			}
		})
	}
	return out
}
