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

package zorkvm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedIO feeds a fixed list of input lines and records everything printed,
// standing in for a real terminal connection (spec's IOHandler seam).
type scriptedIO struct {
	lines   []string
	pos     int
	printed []string
}

func (s *scriptedIO) ReadLine(prompt string) (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

func (s *scriptedIO) Print(msg string) { s.printed = append(s.printed, msg) }
func (s *scriptedIO) Printf(format string, a ...interface{}) {
	s.printed = append(s.printed, fmt.Sprintf(format, a...))
}

func newTurnLoopFixture(t *testing.T, lines []string) (*TurnLoop, *scriptedIO, *Engine) {
	t.Helper()
	state := NewGameState()
	state.Locations[1] = NewLocation(1, "Room")
	state.Locations[1].Flags.InherentlyLit = true
	state.Items[1] = NewItem(1, "lamp")
	state.Items[1].Parent = InLocation(1)
	state.Items[1].Flags.Takable = true
	state.Items[1].Size = 1
	state.Player = NewPlayer(1)
	state.Player.CarryingCapacity = 10

	e := NewEngine(state, 1, nil)
	go e.Run()
	t.Cleanup(e.Stop)

	comp := NewComputedProperties()
	hooks := NewHookRegistry()
	parser := NewParser(e, comp)
	dispatcher := NewDispatcher(e, comp, hooks, DefaultHandlers)
	scheduler := NewScheduler(e)
	io := &scriptedIO{lines: lines}
	loop := NewTurnLoop(e, comp, parser, dispatcher, scheduler, io, t.TempDir(), nil)
	return loop, io, e
}

func TestTurnLoopTakeChargesAMoveAndAppliesChange(t *testing.T) {
	loop, io, e := newTurnLoopFixture(t, []string{"take lamp", "quit"})
	loop.Run()

	lamp, err := e.Item(1)
	require.NoError(t, err)
	assert.Equal(t, WithPlayer, lamp.Parent)
	assert.Equal(t, 1, e.Player().Moves)
	assert.Contains(t, io.printed, "Taken.")
	assert.Contains(t, io.printed, "Goodbye.")
}

func TestTurnLoopParseErrorDoesNotChargeAMove(t *testing.T) {
	loop, io, e := newTurnLoopFixture(t, []string{"xyzzyplugh", "quit"})
	loop.Run()

	assert.Equal(t, 0, e.Player().Moves, "an unrecognized verb must not charge a move")
	assert.Contains(t, io.printed, "I don't know the word \"xyzzyplugh\".")
}

func TestTurnLoopBlankLineIsIgnored(t *testing.T) {
	loop, _, e := newTurnLoopFixture(t, []string{"", "quit"})
	loop.Run()
	assert.Equal(t, 0, e.Player().Moves)
}

func TestTurnLoopSaveThenRestoreRoundTrips(t *testing.T) {
	loop, io, e := newTurnLoopFixture(t, []string{"take lamp", "save", "drop lamp", "restore", "quit"})
	loop.Run()
	assert.Contains(t, io.printed, "Saved.")
	assert.Contains(t, io.printed, "Restored.")

	lamp, err := e.Item(1)
	require.NoError(t, err)
	assert.Equal(t, WithPlayer, lamp.Parent, "restoring must bring back the saved snapshot, undoing the drop")
}

func TestTurnLoopReadFailureEndsLoop(t *testing.T) {
	loop, io, _ := newTurnLoopFixture(t, nil)
	loop.Run()
	assert.Len(t, io.printed, 1, "with no input at all the loop should print only the initial status line before returning")
}
