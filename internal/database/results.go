// internal/database/results.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// Seat identifies one participant row to record.
type Seat struct {
	PlayerID uuid.UUID
	Seat     int
}

// RecordGameResult persists the terminal outcome of one game: the game
// row plus one row per seat. This is result history, not game-state
// persistence; a restarted server starts with no live games either
// way.
func RecordGameResult(ctx context.Context, gameID, roomID uuid.UUID, seats []Seat, result models.GameResult) error {
	if DB == nil {
		return nil
	}

	detail, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	penaltyBySeat := make(map[uuid.UUID]int, len(result.Penalties))
	for _, p := range result.Penalties {
		penaltyBySeat[p.PlayerID] = p.Penalty
	}

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertGame := `
			INSERT INTO games (id, room_id, end_reason, detail)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET end_reason = $3, detail = $4
		`
		if _, e := tx.Exec(ctx, upsertGame, gameID, roomID, string(result.Reason), detail); e != nil {
			return e
		}

		for _, pl := range seats {
			didWin := result.WinnerID != nil && *result.WinnerID == pl.PlayerID
			score := 0
			if didWin {
				score = result.Score
			}
			q := `
				INSERT INTO game_results (game_id, player_id, seat, score, penalty, did_win)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (game_id, player_id)
				DO UPDATE SET score = $4, penalty = $5, did_win = $6
			`
			if _, e := tx.Exec(ctx, q, gameID, pl.PlayerID, pl.Seat, score, penaltyBySeat[pl.PlayerID], didWin); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx upsert game or results: %w", err)
	}
	return nil
}
