package zorkvm

// GlowLevel is the sword-glow daemon's global, stored as an int StateValue:
// 0 = no monsters nearby, 1 = a monster is in an adjacent location, 2 = a
// monster is here (spec §4.7's illustrative daemon).
const GlowLevel GlobalID = "swordGlow"

// SwordGlowDaemon polls the player's current location and its immediate
// exits for a hostile character and sets GlowLevel accordingly, emitting a
// message only when the level changes (spec §4.7).
func SwordGlowDaemon(comp *ComputedProperties) DaemonFunc {
	return func(engine *Engine, state *GameState) (*ActionResult, DaemonState) {
		player := PlayerProxyFor(engine, comp)
		here := player.Location()

		level := 0
		if hasHostile(here.VisibleItems()) {
			level = 2
		} else {
			for _, exit := range here.Exits() {
				if exit.Blocked {
					continue
				}
				dest := LocationProxyFor(engine, comp, exit.Destination)
				if hasHostile(dest.VisibleItems()) {
					level = 1
					break
				}
			}
		}

		prev, ok := state.Globals[GlowLevel]
		if ok && prev.Kind() == KindInt && prev.Int() == level {
			return nil, DaemonActive
		}
		if !ok && level == 0 {
			// No level recorded yet counts as 0: nothing has changed.
			return nil, DaemonActive
		}

		result := (&ActionResult{Control: ControlContinue}).WithChanges(
			SetGlobal{Global: GlowLevel, Value: IntValue(level)},
		)
		switch level {
		case 2:
			result.Message = strptr("Your sword is glowing with a bright blue light.")
		case 1:
			result.Message = strptr("Your sword is glowing with a faint blue glow.")
		default:
			if ok && prev.Kind() == KindInt && prev.Int() > 0 {
				result.Message = strptr("Your sword is no longer glowing.")
			}
		}
		return result, DaemonActive
	}
}

func hasHostile(items []ItemProxy) bool {
	for _, it := range items {
		if it.IsHostileEnemy() {
			return true
		}
	}
	return false
}

func strptr(s string) *string { return &s }
