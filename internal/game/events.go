// internal/game/events.go
package game

import (
	"github.com/google/uuid"

	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// GameEventType tags events fanned out to clients after a command
// resolves. Fan-out is a separate explicit step, never interleaved
// with command processing.
type GameEventType string

const (
	EventPlayerJoined   GameEventType = "player_joined"
	EventPlayerLeft     GameEventType = "player_left"
	EventPlayerReady    GameEventType = "player_ready"
	EventGameStarted    GameEventType = "game_started"
	EventPlayerDrew     GameEventType = "player_drew"     // public: source only, no tile identity
	EventTileDiscarded  GameEventType = "tile_discarded"  // public: discarded tile is face up
	EventGameFinished   GameEventType = "game_finished"   // normal win
	EventGameEndedDraw  GameEventType = "game_ended_draw" // stock exhausted
	EventPlayerDeparted GameEventType = "game_ended_player_left"
	EventStateSync      GameEventType = "state_sync"
)

// EventUser identifies the acting player inside an event payload.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
	Seat int       `json:"seat"`
}

// GameEvent is one notification to clients. Tile is set only on events
// whose tile is public information (a discard); private tile details
// travel in per-player events.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Tile    *models.Tile           `json:"tile,omitempty"`
	Result  *models.GameResult     `json:"result,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *StateView             `json:"state,omitempty"`
}
