// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

// Rejected-command errors. None of these mutate game state; the caller
// reports the reason and the game continues.
var (
	ErrTableFull      = errors.New("table already has four players")
	ErrAlreadySeated  = errors.New("player is already seated")
	ErrNotSeated      = errors.New("player is not seated at this table")
	ErrWrongPhase     = errors.New("operation not allowed in current phase")
	ErrNeedFourSeats  = errors.New("exactly four seated players required")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrMustDiscard    = errors.New("you must discard a tile")
	ErrMustDraw       = errors.New("you must draw a tile first")
	ErrEmptyStock     = errors.New("stock is empty")
	ErrEmptyDiscard   = errors.New("discard pile is empty")
	ErrTileNotInHand  = errors.New("tile is not in your hand")
	ErrWrongHandSize  = errors.New("hand must have exactly 14 tiles to finish")
)

// InvalidHandError is returned by Finish when the meld engine rejects
// the hand. The game continues; the player keeps playing.
type InvalidHandError struct {
	Reason string
}

func (e *InvalidHandError) Error() string {
	return fmt.Sprintf("invalid hand: %s", e.Reason)
}
