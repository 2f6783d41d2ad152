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
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopIO struct{ printed []string }

func (n *nopIO) ReadLine(prompt string) (string, bool) { return "", false }
func (n *nopIO) Print(s string)                        { n.printed = append(n.printed, s) }
func (n *nopIO) Printf(format string, a ...interface{}) {
	n.printed = append(n.printed, format)
}

// newTestConnection builds a Connection backed by an in-memory net.Pipe and
// wired to a throwaway *Server wrapping m, since Connection.Close (invoked by
// ConnectionManager.Shutdown) reaches back through c.Server.cm.
func newTestConnection(t *testing.T, m *ConnectionManager) (*Connection, *nopIO) {
	t.Helper()
	client, srv := net.Pipe()
	t.Cleanup(func() { client.Close() })
	io := &nopIO{}
	fakeServer := &Server{cm: m, log: zap.NewNop().Sugar()}
	return &Connection{C: srv, IO: io, Server: fakeServer}, io
}

func TestConnectionManagerOpenAssignsIDsAndTracksConnections(t *testing.T) {
	m := NewConnectionManager(nil)
	go m.Run()
	t.Cleanup(m.Shutdown)

	a, _ := newTestConnection(t, m)
	b, _ := newTestConnection(t, m)
	m.Open(a)
	m.Open(b)

	conns := m.Connections()
	require.Len(t, conns, 2)
	assert.NotEqual(t, a.ID, b.ID, "the manager must assign each connection a distinct ID")
}

func TestConnectionManagerCloseRemovesConnection(t *testing.T) {
	m := NewConnectionManager(nil)
	go m.Run()
	t.Cleanup(m.Shutdown)

	a, _ := newTestConnection(t, m)
	m.Open(a)
	require.Len(t, m.Connections(), 1)

	m.Close(a)
	assert.Empty(t, m.Connections())
}

func TestConnectionManagerWallBroadcastsToEveryConnection(t *testing.T) {
	m := NewConnectionManager(nil)
	go m.Run()
	t.Cleanup(m.Shutdown)

	a, aIO := newTestConnection(t, m)
	b, bIO := newTestConnection(t, m)
	m.Open(a)
	m.Open(b)

	m.Wall("a message arrives")

	assert.Contains(t, aIO.printed, "a message arrives")
	assert.Contains(t, bIO.printed, "a message arrives")
}

func TestConnectionManagerShutdownClosesOpenConnections(t *testing.T) {
	m := NewConnectionManager(nil)
	go m.Run()

	a, _ := newTestConnection(t, m)
	m.Open(a)

	m.Shutdown()

	done := make(chan struct{})
	go func() {
		buf := make([]byte, 1)
		a.C.Read(buf)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not closed by Shutdown")
	}
}
