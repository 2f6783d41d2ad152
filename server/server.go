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

// Package server hosts the TCP/telnet/ishell front end, adapted from the
// teacher's net.go/cm.go. Where the teacher's server owned one shared World
// for every connection, this one builds each accepted connection its own
// Engine/GameState from a shared world template (spec Non-goals exclude
// multiplayer): "single-threaded cooperative" holds at the connection level
// instead of the server level.
package server

import (
	"fmt"
	"net"
	"time"

	"github.com/abiosoft/ishell"
	"go.uber.org/zap"
	"gopkg.in/readline.v1"

	"github.com/vaelen/zorkvm"
)

// VersionString identifies the running server in the connection banner.
const VersionString = "Vaelen/ZorkVM Server v0.1.0"

// Connection represents one accepted TCP connection and everything bound to
// it: its own Engine, its own TurnLoop, its own shell.
type Connection struct {
	ID        int
	Session   zorkvm.SessionID
	C         net.Conn
	Shell     *ishell.Shell
	IO        zorkvm.IOHandler
	Engine    *zorkvm.Engine
	Loop      *zorkvm.TurnLoop
	Server    *Server
	Connected time.Time
}

// Server accepts connections and wires each one to a fresh game.
type Server struct {
	cm          *ConnectionManager
	cfg         zorkvm.Config
	newState    func() *zorkvm.GameState
	comp        *zorkvm.ComputedProperties
	hooks       *zorkvm.HookRegistry
	handlers    map[zorkvm.Intent]zorkvm.HandlerFunc
	newScheduler func(*zorkvm.Engine, *zorkvm.ComputedProperties) *zorkvm.Scheduler
	log         *zap.SugaredLogger
	shutdown    chan bool
}

// NewServer constructs a Server. newState must return a fresh GameState
// loaded from the shared world template on every call, one per connection.
// newScheduler builds and registers that connection's daemons against its
// own Engine; pass zorkvm.NewScheduler wrapped with nothing registered if a
// caller wants no daemons running.
func NewServer(cfg zorkvm.Config, newState func() *zorkvm.GameState, comp *zorkvm.ComputedProperties, hooks *zorkvm.HookRegistry, handlers map[zorkvm.Intent]zorkvm.HandlerFunc, newScheduler func(*zorkvm.Engine, *zorkvm.ComputedProperties) *zorkvm.Scheduler, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		cm:           NewConnectionManager(log),
		cfg:          cfg,
		newState:     newState,
		comp:         comp,
		hooks:        hooks,
		handlers:     handlers,
		newScheduler: newScheduler,
		log:          log,
		shutdown:     make(chan bool),
	}
}

// Connections returns the open connections.
func (s *Server) Connections() []*Connection {
	return s.cm.Connections()
}

// Wall broadcasts a line to every open connection.
func (s *Server) Wall(format string, a ...interface{}) {
	s.cm.Wall(format, a...)
}

// Shutdown stops Start's accept loop and closes every connection.
func (s *Server) Shutdown() {
	s.shutdown <- true
}

// Start listens on addr and serves connections until Shutdown is called.
func (s *Server) Start(addr string) error {
	go s.cm.Run()
	s.log.Infow("starting server", "version", VersionString, "address", addr)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer l.Close()
	for {
		select {
		case <-s.shutdown:
			s.log.Info("shutting down server")
			s.cm.Shutdown()
			return nil
		default:
			tcpL, ok := l.(*net.TCPListener)
			if ok {
				tcpL.SetDeadline(time.Now().Add(time.Second))
			}
			conn, err := l.Accept()
			if err != nil {
				if opErr, ok := err.(*net.OpError); ok && opErr.Timeout() {
					continue
				}
				return err
			}
			go s.serve(conn)
		}
	}
}

func (s *Server) serve(conn net.Conn) {
	c := s.newConnection(conn)
	defer c.Close()
	s.log.Infow("connection opened", "session", c.Session.String(), "remote", conn.RemoteAddr().String())

	fmt.Fprintf(conn, "Connected to %s\n\n", VersionString)

	state := s.newState()
	engine := zorkvm.NewEngine(state, s.cfg.RandSeed, s.log)
	go engine.Run()
	c.Engine = engine

	parser := zorkvm.NewParser(engine, s.comp)
	dispatcher := zorkvm.NewDispatcher(engine, s.comp, s.hooks, s.handlers)
	scheduler := s.newScheduler(engine, s.comp)

	c.Shell = createShell(c)
	c.IO = NewShellIOHandler(c.Shell)
	c.Loop = zorkvm.NewTurnLoop(engine, s.comp, parser, dispatcher, scheduler, c.IO, s.cfg.SaveDirectory, s.log)

	c.Shell.Println("Welcome to ZorkVM.")
	c.Loop.Run()
}

func (s *Server) newConnection(conn net.Conn) *Connection {
	c := &Connection{
		Session:   zorkvm.NewSessionID(),
		C:         conn,
		Server:    s,
		Connected: time.Now(),
	}
	s.cm.Open(c)
	return c
}

// Close tears down the connection and its engine.
func (c *Connection) Close() {
	defer c.C.Close()
	if c.Engine != nil {
		c.Engine.Stop()
	}
	c.Server.cm.Close(c)
	c.Server.log.Infow("connection closed", "session", c.Session.String())
}

func createShell(c *Connection) *ishell.Shell {
	return ishell.NewWithConfig(&readline.Config{
		Prompt:              "> ",
		Stdin:               NewTelnetInterceptor(c.C, c.C, c.Server.log),
		Stdout:              c.C,
		Stderr:              c.C,
		ForceUseInteractive: true,
		UniqueEditLine:      true,
		FuncIsTerminal:      func() bool { return true },
		FuncMakeRaw:         func() error { return nil },
		FuncExitRaw:         func() error { return nil },
		FuncGetWidth:        func() int { return 80 },
	})
}
