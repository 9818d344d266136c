package server

import (
	"bufio"
	"net"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/cardroom/holdem/config"
)

// Server exposes the coordinator over the line-oriented TCP protocol
// and, optionally, WebSocket. Both transports share one registry.
type Server struct {
	cfg   config.Config
	coord *Coordinator
}

// New creates a server with a fresh coordinator.
func New(cfg config.Config) *Server {
	return &Server{
		cfg:   cfg,
		coord: NewCoordinator(cfg),
	}
}

// Coordinator returns the shared coordinator, mainly for tests and
// for wiring additional transports.
func (s *Server) Coordinator() *Coordinator {
	return s.coord
}

// ListenAndServe accepts TCP connections and runs one reader
// goroutine per client until the listener fails.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.cfg.ListenAddr)
	}
	defer ln.Close()

	serverLogger.Info().Str("addr", s.cfg.ListenAddr).Msg("tcp server listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			return errors.Wrap(err, "accepting connection")
		}
		go s.handleConn(conn)
	}
}

// handleConn runs one client: a writer goroutine drains the session's
// outbound channel while this goroutine reads lines and dispatches
// them. Nothing in the read path ever sends on the network while the
// registry lock is held.
func (s *Server) handleConn(conn net.Conn) {
	sess := &session{
		connID: uuid.NewString(),
		out:    make(chan string, 256),
	}

	serverLogger.Info().
		Str("conn", sess.connID).
		Str("remote", conn.RemoteAddr().String()).
		Msg("client connected")

	done := make(chan struct{})
	go func() {
		for {
			select {
			case msg := <-sess.out:
				if _, err := conn.Write([]byte(msg)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		conn.Close()
		if sess.userID != "" {
			s.coord.registry.removeWriter(sess.userID)
		}
		serverLogger.Info().Str("conn", sess.connID).Msg("client disconnected")
	}()

	sess.out <- "Welcome to Poker Server!\n"
	sess.out <- commandsHint + "\n"

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if !s.coord.Dispatch(sess, scanner.Text()) {
			return
		}
	}
}
