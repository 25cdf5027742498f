// internal/room/room.go
package room

import (
	"time"

	"github.com/google/uuid"

	"github.com/CagriGunes46/OKEYgame/internal/game"
)

// Room binds one table to its host and creation time. The room owns
// its game for the game's whole life; a finished game is discarded
// together with the room, never reused.
type Room struct {
	ID        uuid.UUID      `json:"id"`
	HostID    uuid.UUID      `json:"hostId"`
	Game      *game.OkeyGame `json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Summary is the public listing entry for a room.
type Summary struct {
	ID          uuid.UUID  `json:"id"`
	PlayerCount int        `json:"playerCount"`
	Phase       game.Phase `json:"phase"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewRoom creates a room with a fresh empty game bound to it.
func NewRoom(hostID uuid.UUID) *Room {
	id, _ := uuid.NewRandom()
	g := game.NewOkeyGame()
	g.RoomID = id
	return &Room{
		ID:        id,
		HostID:    hostID,
		Game:      g,
		CreatedAt: time.Now(),
	}
}
