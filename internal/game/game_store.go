package game

import (
	"sync"

	"github.com/google/uuid"
)

// GameStore tracks live games in memory, keyed by game ID.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*OkeyGame
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*OkeyGame),
	}
}

func (s *GameStore) AddGame(g *OkeyGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *GameStore) GetGame(id uuid.UUID) (*OkeyGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// GetGameByRoomID returns the game bound to a room, or nil.
func (s *GameStore) GetGameByRoomID(roomID uuid.UUID) *OkeyGame {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.games {
		if g.RoomID == roomID {
			return g
		}
	}
	return nil
}
