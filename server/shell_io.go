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

package server

import "github.com/abiosoft/ishell"

// ShellIOHandler implements zorkvm.IOHandler over an *ishell.Shell, the
// concrete front end the teacher's createShell wired to a raw connection.
type ShellIOHandler struct {
	shell *ishell.Shell
}

// NewShellIOHandler wraps shell as an IOHandler.
func NewShellIOHandler(shell *ishell.Shell) *ShellIOHandler {
	return &ShellIOHandler{shell: shell}
}

// ReadLine prints prompt and blocks for one line of input. The underlying
// readline line discipline panics on a closed connection (EOF/interrupt)
// rather than returning an error, so a dropped connection is reported back
// as ok=false via recover instead of a second return value from ishell.
func (s *ShellIOHandler) ReadLine(prompt string) (line string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			line, ok = "", false
		}
	}()
	s.shell.SetPrompt(prompt)
	return s.shell.ReadLine(), true
}

// Print writes a line to the connection.
func (s *ShellIOHandler) Print(line string) {
	s.shell.Println(line)
}

// Printf writes a formatted line to the connection.
func (s *ShellIOHandler) Printf(format string, a ...interface{}) {
	s.shell.Printf(format, a...)
}
