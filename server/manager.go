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
	"sync"

	"go.uber.org/zap"
)

// connectionStateChange is an event fired when a connection opens or closes,
// kept from the teacher's cm.go ConnectionStateChange.
type connectionStateChange struct {
	c   *Connection
	ack chan bool
}

// ConnectionManager tracks every live connection to the server, the same
// actor-goroutine shape as the teacher's cm.go: a slice behind a mutex for
// reads, two channels for the single goroutine that mutates it.
type ConnectionManager struct {
	connections []*Connection
	mu          sync.RWMutex
	nextID      int

	opened   chan connectionStateChange
	closed   chan connectionStateChange
	shutdown chan bool

	log *zap.SugaredLogger
}

// NewConnectionManager constructs a ConnectionManager.
func NewConnectionManager(log *zap.SugaredLogger) *ConnectionManager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ConnectionManager{
		nextID:   1,
		opened:   make(chan connectionStateChange),
		closed:   make(chan connectionStateChange),
		shutdown: make(chan bool),
		log:      log,
	}
}

// Connections returns a snapshot of the currently open connections.
func (m *ConnectionManager) Connections() []*Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Connection, len(m.connections))
	copy(out, m.connections)
	return out
}

func (m *ConnectionManager) findConnection(id int) int {
	for i, c := range m.connections {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (m *ConnectionManager) addConnection(c *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findConnection(c.ID) > -1 {
		return
	}
	c.ID = m.nextID
	m.nextID++
	m.connections = append(m.connections, c)
	m.log.Infow("connection opened", "connections", len(m.connections))
}

func (m *ConnectionManager) removeConnection(c *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.findConnection(c.ID)
	if i < 0 {
		return
	}
	copy(m.connections[i:], m.connections[i+1:])
	m.connections[len(m.connections)-1] = nil
	m.connections = m.connections[:len(m.connections)-1]
	m.log.Infow("connection closed", "connections", len(m.connections))
}

// Run is the manager's actor goroutine; must be running for Open/Close/Wall
// to function. Mirrors the teacher's ConnectionManagerThread.
func (m *ConnectionManager) Run() {
	m.log.Info("connection manager started")
	defer m.log.Info("connection manager stopped")
	for {
		select {
		case e := <-m.opened:
			m.addConnection(e.c)
			e.ack <- true
		case e := <-m.closed:
			m.removeConnection(e.c)
			e.ack <- true
		case <-m.shutdown:
			// Connection.Close deregisters through m.closed, which only this
			// goroutine receives, so close connections concurrently and serve
			// their deregistrations here before returning.
			for _, c := range m.Connections() {
				go c.Close()
			}
			for len(m.Connections()) > 0 {
				e := <-m.closed
				m.removeConnection(e.c)
				e.ack <- true
			}
			return
		}
	}
}

// Open registers c with the manager and blocks until it is visible to Connections().
func (m *ConnectionManager) Open(c *Connection) {
	ack := make(chan bool)
	m.opened <- connectionStateChange{c: c, ack: ack}
	<-ack
}

// Close deregisters c from the manager.
func (m *ConnectionManager) Close(c *Connection) {
	ack := make(chan bool)
	m.closed <- connectionStateChange{c: c, ack: ack}
	<-ack
}

// Shutdown stops the manager goroutine, closing every open connection first.
func (m *ConnectionManager) Shutdown() {
	m.shutdown <- true
}

// Wall writes a line to every open connection.
func (m *ConnectionManager) Wall(format string, a ...interface{}) {
	for _, c := range m.Connections() {
		c.IO.Printf(format, a...)
	}
}
