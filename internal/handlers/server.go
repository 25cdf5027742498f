// internal/handlers/server.go
package handlers

import (
	"context"
	"sync"
	"time"

	"encoding/json"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/CagriGunes46/OKEYgame/internal/game"
	"github.com/CagriGunes46/OKEYgame/internal/room"
)

// Server composes the room directory with per-room connection hubs.
// The engine knows nothing about connections; the hub is how events
// fan out after a command resolves. Games is a secondary index by game
// ID for read-only state lookups.
type Server struct {
	Rooms  *room.Directory
	Games  *game.GameStore
	Logger *logrus.Logger

	mu   sync.Mutex
	hubs map[uuid.UUID]*roomHub
}

func NewServer(logger *logrus.Logger) *Server {
	return &Server{
		Rooms:  room.NewDirectory(),
		Games:  game.NewGameStore(),
		Logger: logger,
		hubs:   make(map[uuid.UUID]*roomHub),
	}
}

// hub returns (creating if needed) the connection hub for a room.
func (s *Server) hub(roomID uuid.UUID) *roomHub {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hubs[roomID]
	if !ok {
		h = newRoomHub()
		s.hubs[roomID] = h
	}
	return h
}

// dropHub forgets a room's hub, used when the room itself is deleted.
func (s *Server) dropHub(roomID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hubs, roomID)
}

// roomHub tracks the live WebSocket connections of one room. It has
// its own mutex so broadcasts never need the game lock: the engine
// fires events while holding its lock, and writing to sockets from
// under that lock must not re-enter it.
type roomHub struct {
	mu    sync.Mutex
	conns map[uuid.UUID]*websocket.Conn
}

func newRoomHub() *roomHub {
	return &roomHub{conns: make(map[uuid.UUID]*websocket.Conn)}
}

func (h *roomHub) add(playerID uuid.UUID, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[playerID] = c
}

func (h *roomHub) remove(playerID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, playerID)
	return len(h.conns)
}

func (h *roomHub) get(playerID uuid.UUID) (*websocket.Conn, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[playerID]
	return c, ok
}

func (h *roomHub) all() map[uuid.UUID]*websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[uuid.UUID]*websocket.Conn, len(h.conns))
	for k, v := range h.conns {
		out[k] = v
	}
	return out
}

// broadcast marshals once and writes to every connection
// asynchronously with a write timeout.
func (h *roomHub) broadcast(logger *logrus.Logger, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("failed to marshal broadcast message: %v", err)
		return
	}
	for playerID, c := range h.all() {
		go writeWithTimeout(logger, playerID, c, data)
	}
}

// sendTo writes to one player's connection asynchronously.
func (h *roomHub) sendTo(logger *logrus.Logger, playerID uuid.UUID, v interface{}) {
	c, ok := h.get(playerID)
	if !ok {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("failed to marshal message for player %s: %v", playerID, err)
		return
	}
	go writeWithTimeout(logger, playerID, c, data)
}

func writeWithTimeout(logger *logrus.Logger, playerID uuid.UUID, c *websocket.Conn, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Write(ctx, websocket.MessageText, data); err != nil {
		logger.Warnf("failed to write message to player %s: %v", playerID, err)
	}
}
