package models

import (
	"github.com/google/uuid"
)

// Player is one seated participant. Seat is the fixed turn-order index
// (0..3). Hand order is a display preference only; it never affects
// validity or scoring.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Seat      int       `json:"seat"`
	Hand      []Tile    `json:"hand"`
	Ready     bool      `json:"ready"`
	Connected bool      `json:"connected"`
}

// HoldsTile reports whether the player's hand contains the tile with
// the given deck-local ID, and at which index.
func (p *Player) HoldsTile(tileID int) (int, bool) {
	for i, t := range p.Hand {
		if t.ID == tileID {
			return i, true
		}
	}
	return -1, false
}
