package zorkvm

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// TurnLoop drives one player's session against an engine: parse, dispatch,
// commit, tick the scheduler, render (spec §4.8).
type TurnLoop struct {
	Engine     *Engine
	Comp       *ComputedProperties
	Parser     *Parser
	Dispatcher *Dispatcher
	Scheduler  *Scheduler
	IO         IOHandler
	SaveDir    string
	Log        *zap.SugaredLogger

	turn int
}

// NewTurnLoop constructs a TurnLoop from its collaborators.
func NewTurnLoop(e *Engine, comp *ComputedProperties, parser *Parser, dispatcher *Dispatcher, scheduler *Scheduler, io IOHandler, saveDir string, log *zap.SugaredLogger) *TurnLoop {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TurnLoop{Engine: e, Comp: comp, Parser: parser, Dispatcher: dispatcher, Scheduler: scheduler, IO: io, SaveDir: saveDir, Log: log}
}

// Run executes the loop in spec §4.8's pseudocode: render status line, read
// a line, parse, dispatch, print, commit, tick the scheduler, advance moves.
// ParseError leaves moves uncharged; a handler-originated failure still
// charges the turn; a ValidationError rolls back, logs, and surfaces a
// generic message (spec §7).
func (t *TurnLoop) Run() {
	for {
		t.renderStatus()
		line, ok := t.IO.ReadLine("> ")
		if !ok {
			return
		}
		if line == "" {
			continue
		}

		if handled, shouldExit := t.handleMeta(line); handled {
			if shouldExit {
				return
			}
			continue
		}

		cmd, err := t.Parser.Resolve(line)
		if err != nil {
			t.IO.Print(parseErrorText(err))
			continue
		}

		result := t.Dispatcher.Dispatch(cmd)
		if result.Message != nil {
			t.IO.Print(*result.Message)
		}

		if _, err := t.Engine.ApplyAll(result.Changes); err != nil {
			t.handleValidationError(err)
			t.chargeMove()
			continue
		}

		t.turn++
		tickResult := t.Scheduler.Tick(t.turn)
		if tickResult.Message != nil {
			t.IO.Print(*tickResult.Message)
		}

		t.chargeMove()
	}
}

func (t *TurnLoop) chargeMove() {
	t.Engine.Mutate(func(g *GameState) {
		g.Player.Moves++
	})
}

func (t *TurnLoop) renderStatus() {
	player := PlayerProxyFor(t.Engine, t.Comp)
	loc := player.Location()
	t.IO.Printf("%s | Score: %d | Moves: %d\n", loc.Name(), player.Score(), player.Moves())
}

// handleMeta intercepts save/restore/quit before parsing reaches the
// dispatcher, per spec §4.8 ("the turn loop handles meta verbs, not the
// dispatcher").
func (t *TurnLoop) handleMeta(line string) (handled bool, shouldExit bool) {
	switch line {
	case "save":
		if err := SaveGame(t.Engine, t.SaveDir, t.Log); err != nil {
			t.IO.Print("Save failed.")
		} else {
			t.IO.Print("Saved.")
		}
		return true, false
	case "restore":
		state, err := LoadGame(t.SaveDir, t.Log)
		if err != nil {
			t.IO.Print("Restore failed.")
			return true, false
		}
		t.Engine.Mutate(func(g *GameState) {
			*g = *state
		})
		t.IO.Print("Restored.")
		return true, false
	case "quit":
		t.IO.Print("Goodbye.")
		return true, true
	}
	return false, false
}

func (t *TurnLoop) handleValidationError(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Log.Errorw("validation error applying turn changes", "error", verr.Err)
	} else {
		t.Log.Errorw("error applying turn changes", "error", err)
	}
	t.IO.Print("Something went wrong.")
}

func parseErrorText(err error) string {
	var perr *ParseError
	if errors.As(err, &perr) {
		switch perr.Kind {
		case AmbiguousReference:
			return fmt.Sprintf("Which do you mean? %s", describeCandidates(perr.Candidates))
		case UnknownVerb:
			return fmt.Sprintf("I don't know the word \"%s\".", perr.Raw)
		default:
			return "I don't understand that."
		}
	}
	return "I don't understand that."
}

func describeCandidates(candidates []EntityReference) string {
	out := ""
	for i, c := range candidates {
		if i > 0 {
			out += ", "
		}
		switch c.Kind {
		case RefItem:
			out += c.Item.String()
		case RefLocation:
			out += c.Location.String()
		default:
			out += c.Universal
		}
	}
	return out
}
