// internal/game/score.go
package game

import "github.com/CagriGunes46/OKEYgame/internal/models"

// Win scoring. Base 100, bonuses additive and independent:
// +50 winning with a fake joker while holding no real okey tile,
// +100 holding exactly two real okey tiles,
// +50 for a seven-pairs win.
const (
	baseWinScore     = 100
	hiddenJokerBonus = 50
	doubleOkeyBonus  = 100
	sevenPairsBonus  = 50
)

// ScoreWin computes the winner's score from hand composition and win
// type. Called only after EvaluateHand accepted the hand.
func ScoreWin(hand []models.Tile, okey models.OkeyTile, winType models.WinType) int {
	score := baseWinScore

	realOkeys := 0
	fakeJokers := 0
	for _, t := range hand {
		switch {
		case t.IsFakeJoker():
			fakeJokers++
		case okey.Matches(t):
			realOkeys++
		}
	}

	if fakeJokers > 0 && realOkeys == 0 {
		score += hiddenJokerBonus
	}
	if realOkeys == 2 {
		score += doubleOkeyBonus
	}
	if winType == models.WinSevenPairs {
		score += sevenPairsBonus
	}
	return score
}
