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

import (
	"io"

	"go.uber.org/zap"
)

// TelnetInterceptor strips telnet IAC escape sequences from a raw connection
// stream before ishell/readline ever sees them, kept from the teacher's
// net.go/telnet.go almost unchanged in mechanism.
type TelnetInterceptor struct {
	in  io.Reader
	out io.Writer
	log *zap.SugaredLogger
}

// NewTelnetInterceptor wraps a connection's reader/writer pair.
func NewTelnetInterceptor(in io.Reader, out io.Writer, log *zap.SugaredLogger) TelnetInterceptor {
	return TelnetInterceptor{in: in, out: out, log: log}
}

const (
	escapeSe   byte = 240
	escapeSb   byte = 250
	escapeIac  byte = 255
)

func (t TelnetInterceptor) Read(p []byte) (n int, err error) {
	buf := make([]byte, len(p), cap(p))
	n, err = t.in.Read(buf)
	if err != nil {
		return n, err
	}
	inSeq := false
	var option byte
	var setting byte
	p = p[0:0]
	for i, b := range buf {
		if i >= n {
			break
		}

		if option != 0 && setting != 0 {
			option = 0
			setting = 0
		}

		if inSeq {
			switch {
			case option != 0:
				setting = b
			case b == escapeIac:
				// A second IAC closes an escaped literal 0xFF data byte
				// rather than opening a new sequence; append it and move on.
				inSeq = false
				option = 0
				p = append(p, b)
				continue
			case b >= escapeSb:
				option = b
				continue
			case b >= escapeSe:
				inSeq = false
				continue
			}
		}

		if option != 0 && setting != 0 {
			inSeq = false
			continue
		}

		if !inSeq {
			if b == escapeIac {
				inSeq = true
				continue
			}
			p = append(p, b)
		}
	}
	return len(p), nil
}
