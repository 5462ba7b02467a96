// File: server/server.go

// Package server exposes a match over websockets: clients claim seats,
// stream actions, and receive every published snapshot.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/lguibr/striker/game"
	"github.com/lguibr/striker/utils"
)

// SpectatorSeat is the assignment sent to clients who connect after every
// remote seat is taken. They keep receiving snapshots.
var SpectatorSeat = game.PlayerID{Team: -1, Index: -1}

// Server bridges websocket clients and a running match. It hands out the
// remote seats first come first served, feeds incoming actions to the
// matching NetworkAgent, and broadcasts snapshots to every connection as a
// game.Observer.
type Server struct {
	cfg   utils.Config
	seats []*NetworkAgent

	mu          sync.Mutex
	connections map[*websocket.Conn]*NetworkAgent // nil value marks a spectator
}

// New builds a server over the lineup's remote seats.
func New(cfg utils.Config, seats []*NetworkAgent) *Server {
	return &Server{
		cfg:         cfg,
		seats:       seats,
		connections: make(map[*websocket.Conn]*NetworkAgent),
	}
}

// Handler returns the websocket endpoint.
func (s *Server) Handler() websocket.Handler {
	return websocket.Handler(s.handleSubscribe)
}

// Mux returns an http mux with the websocket endpoint on /subscribe.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/subscribe", s.Handler())
	return mux
}

func (s *Server) handleSubscribe(ws *websocket.Conn) {
	addr := ws.RemoteAddr().String()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("WARN: Server: panic in handler for %s: %v\n", addr, r)
		}
		s.dropConnection(ws)
	}()

	seat := s.claimSeat(ws)
	seatID := SpectatorSeat
	if seat != nil {
		seatID = seat.ID()
	}
	fmt.Printf("Server: %s connected as %v\n", addr, seatID)

	hello, err := game.EncodeConfig(s.cfg)
	if err != nil {
		fmt.Printf("WARN: Server: encode config: %v\n", err)
		return
	}
	assign, err := game.EncodeAssign(seatID)
	if err != nil {
		fmt.Printf("WARN: Server: encode assignment: %v\n", err)
		return
	}
	if _, err := ws.Write(hello); err != nil {
		return
	}
	if _, err := ws.Write(assign); err != nil {
		return
	}

	s.readLoop(ws, seat)
}

// readLoop consumes envelopes until the connection dies. Spectator action
// messages are answered with an error frame and otherwise ignored.
func (s *Server) readLoop(ws *websocket.Conn, seat *NetworkAgent) {
	for {
		var raw json.RawMessage
		if err := websocket.JSON.Receive(ws, &raw); err != nil {
			if err != io.EOF {
				fmt.Printf("WARN: Server: read from %s: %v\n", ws.RemoteAddr(), err)
			}
			return
		}
		env, err := game.DecodeEnvelope(raw)
		if err != nil {
			s.sendError(ws, err.Error())
			continue
		}
		switch env.Type {
		case game.MsgAction:
			if seat == nil {
				s.sendError(ws, "spectators cannot act")
				continue
			}
			action, err := game.DecodeAction(env.Data)
			if err != nil {
				s.sendError(ws, err.Error())
				continue
			}
			seat.Set(action)
		default:
			s.sendError(ws, fmt.Sprintf("unexpected message type %q", env.Type))
		}
	}
}

// Observe broadcasts a snapshot to every connection. Connections that fail
// to take the write are dropped; a broadcast never blocks the tick loop on
// a retry.
func (s *Server) Observe(state game.MatchState) {
	raw, err := game.EncodeState(state)
	if err != nil {
		fmt.Printf("WARN: Server: encode state: %v\n", err)
		return
	}
	s.broadcast(raw)
}

// BroadcastResult tells every client the match is over.
func (s *Server) BroadcastResult(result game.Result) {
	raw, err := game.EncodeGameOver(result)
	if err != nil {
		fmt.Printf("WARN: Server: encode result: %v\n", err)
		return
	}
	s.broadcast(raw)
}

func (s *Server) broadcast(raw []byte) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.connections))
	for ws := range s.connections {
		conns = append(conns, ws)
	}
	s.mu.Unlock()

	for _, ws := range conns {
		if _, err := ws.Write(raw); err != nil {
			fmt.Printf("WARN: Server: dropping %s: %v\n", ws.RemoteAddr(), err)
			s.dropConnection(ws)
		}
	}
}

// ConnectionCount reports how many clients are attached.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

// claimSeat hands the connection the first free remote seat, or registers it
// as a spectator when none is left.
func (s *Server) claimSeat(ws *websocket.Conn) *NetworkAgent {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seat := range s.seats {
		if seat.attach() {
			s.connections[ws] = seat
			return seat
		}
	}
	s.connections[ws] = nil
	return nil
}

func (s *Server) dropConnection(ws *websocket.Conn) {
	s.mu.Lock()
	seat, known := s.connections[ws]
	delete(s.connections, ws)
	s.mu.Unlock()
	if !known {
		return
	}
	if seat != nil {
		seat.detach()
		fmt.Printf("Server: seat %v released by %s\n", seat.ID(), ws.RemoteAddr())
	}
	_ = ws.Close()
}

func (s *Server) sendError(ws *websocket.Conn, message string) {
	raw, err := game.EncodeError(message)
	if err != nil {
		return
	}
	_, _ = ws.Write(raw)
}
