package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var wsLogger = log.With().Str("logger_name", "server::websocket").Logger()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// ListenAndServeWS exposes the same command protocol over WebSocket
// text frames at /ws. Each frame carries one command line; responses
// arrive as individual frames.
func (s *Server) ListenAndServeWS() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	wsLogger.Info().Str("addr", s.cfg.WSListenAddr).Msg("websocket server listening")
	return errors.Wrapf(http.ListenAndServe(s.cfg.WSListenAddr, mux),
		"websocket server on %s", s.cfg.WSListenAddr)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		wsLogger.Error().Err(err).Msg("error upgrading to websocket")
		return
	}

	sess := &session{
		connID: uuid.NewString(),
		out:    make(chan string, 256),
	}

	wsLogger.Info().
		Str("conn", sess.connID).
		Str("remote", r.RemoteAddr).
		Msg("websocket client connected")

	done := make(chan struct{})
	go s.wsReadPump(conn, sess, done)
	go s.wsWritePump(conn, sess, done)

	sess.out <- "Welcome to Poker Server!\n"
	sess.out <- commandsHint + "\n"
}

// wsReadPump reads command frames and dispatches them until the
// client goes away or quits.
func (s *Server) wsReadPump(conn *websocket.Conn, sess *session, done chan struct{}) {
	defer func() {
		close(done)
		conn.Close()
		if sess.userID != "" {
			s.coord.registry.removeWriter(sess.userID)
		}
		wsLogger.Info().Str("conn", sess.connID).Msg("websocket client disconnected")
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				wsLogger.Error().Err(err).Str("conn", sess.connID).Msg("websocket read error")
			}
			return
		}

		if !s.coord.Dispatch(sess, string(message)) {
			return
		}
	}
}

// wsWritePump forwards outbound messages to the client as text
// frames.
func (s *Server) wsWritePump(conn *websocket.Conn, sess *session, done chan struct{}) {
	defer conn.Close()

	for {
		select {
		case msg := <-sess.out:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-done:
			conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
