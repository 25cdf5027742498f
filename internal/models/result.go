// internal/models/result.go
package models

import "github.com/google/uuid"

// WinType distinguishes the two accepted hand decompositions.
type WinType string

const (
	WinSetsAndRuns WinType = "sets_and_runs"
	WinSevenPairs  WinType = "seven_pairs"
)

// EndReason records what terminated a game.
type EndReason string

const (
	EndReasonWin        EndReason = "win"
	EndReasonExhaustion EndReason = "stock_exhausted"
	EndReasonDeparture  EndReason = "player_left"
)

// SeatPenalty is one seat's penalty in a draw-by-exhaustion result.
type SeatPenalty struct {
	PlayerID uuid.UUID `json:"playerId"`
	Seat     int       `json:"seat"`
	Penalty  int       `json:"penalty"`
}

// GameResult is the terminal record of a finished game. Winner is nil
// for a draw or a departure-triggered termination.
type GameResult struct {
	Reason     EndReason     `json:"reason"`
	WinnerID   *uuid.UUID    `json:"winnerId,omitempty"`
	WinnerName string        `json:"winnerName,omitempty"`
	WinType    WinType       `json:"winType,omitempty"`
	Score      int           `json:"score,omitempty"`
	Penalties  []SeatPenalty `json:"penalties,omitempty"`
	LeftID     *uuid.UUID    `json:"leftPlayerId,omitempty"`
	LeftName   string        `json:"leftPlayerName,omitempty"`
}
