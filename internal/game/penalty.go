// internal/game/penalty.go
package game

import "github.com/CagriGunes46/OKEYgame/internal/models"

// PenaltyPolicy computes one seat's penalty when a game ends as a draw
// by stock exhaustion. The metric is pluggable: the engine ranks seats
// with whatever policy the room was configured with.
type PenaltyPolicy func(hand []models.Tile, okey models.OkeyTile) int

// IsolatedTilePenalty is the default policy: the sum of the numbers of
// all isolated tiles. A tile is isolated when it is not a joker and no
// other tile in the hand could ever meld with it, meaning no tile of
// the same number in a different color and no same-color tile within
// two ranks. Jokers are never isolated.
func IsolatedTilePenalty(hand []models.Tile, okey models.OkeyTile) int {
	penalty := 0
	for i, t := range hand {
		if models.IsJoker(t, okey) {
			continue
		}
		isolated := true
		for j, u := range hand {
			if i == j || models.IsJoker(u, okey) {
				continue
			}
			if u.Number == t.Number && u.Color != t.Color {
				isolated = false
				break
			}
			if u.Color == t.Color && abs(u.Number-t.Number) <= 2 {
				isolated = false
				break
			}
		}
		if isolated {
			penalty += t.Number
		}
	}
	return penalty
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
