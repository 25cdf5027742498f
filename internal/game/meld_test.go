// internal/game/meld_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// buildHand assigns sequential IDs so hands read as plain color/number
// pairs in the test cases.
func buildHand(tiles ...models.Tile) []models.Tile {
	hand := make([]models.Tile, len(tiles))
	for i, t := range tiles {
		t.ID = i
		hand[i] = t
	}
	return hand
}

func tl(color models.Color, number int) models.Tile {
	return models.Tile{Color: color, Number: number}
}

func fake() models.Tile {
	return models.Tile{Color: models.ColorFake}
}

// testOkey keeps red-13 out of the concrete hands below, so red-13
// tiles appear only where a joker is intended.
var testOkey = models.OkeyTile{Color: models.ColorRed, Number: 13}

func TestEvaluateHandSetsAndRuns(t *testing.T) {
	hand := buildHand(
		// run yellow 1-5
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 2), tl(models.ColorYellow, 3),
		tl(models.ColorYellow, 4), tl(models.ColorYellow, 5),
		// run blue 7-9
		tl(models.ColorBlue, 7), tl(models.ColorBlue, 8), tl(models.ColorBlue, 9),
		// set of 10s
		tl(models.ColorYellow, 10), tl(models.ColorBlue, 10), tl(models.ColorBlack, 10),
		// set of 1s
		tl(models.ColorRed, 1), tl(models.ColorBlue, 1), tl(models.ColorBlack, 1),
	)
	res := EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSetsAndRuns, res.Type)
}

func TestEvaluateHandRequiresFullConsumption(t *testing.T) {
	// Two clean runs plus eight tiles that meld with nothing. The melds
	// alone never make the hand valid.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 2), tl(models.ColorYellow, 3),
		tl(models.ColorBlue, 5), tl(models.ColorBlue, 6), tl(models.ColorBlue, 7),
		tl(models.ColorBlack, 1), tl(models.ColorBlack, 4), tl(models.ColorBlack, 9),
		tl(models.ColorRed, 2), tl(models.ColorRed, 5), tl(models.ColorRed, 8),
		tl(models.ColorYellow, 11), tl(models.ColorBlue, 13),
	)
	res := EvaluateHand(hand, testOkey)
	assert.False(t, res.Valid)
}

func TestEvaluateHandNeedsBacktracking(t *testing.T) {
	// Taking the longest run yellow 1-4 strands blue-4 and black-4. The
	// only partition is yellow 1-3 plus the set of 4s, so a greedy
	// longest-first pass without backtracking would reject this hand.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 2), tl(models.ColorYellow, 3), tl(models.ColorYellow, 4),
		tl(models.ColorBlue, 4), tl(models.ColorBlack, 4),
		tl(models.ColorRed, 6), tl(models.ColorRed, 7), tl(models.ColorRed, 8), tl(models.ColorRed, 9),
		tl(models.ColorYellow, 10), tl(models.ColorBlue, 10), tl(models.ColorBlack, 10), tl(models.ColorRed, 10),
	)
	res := EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSetsAndRuns, res.Type)
}

func TestEvaluateHandNoWrapAroundRun(t *testing.T) {
	// yellow 12-13-1 is not a run; with no joker to rescue them the hand
	// must be rejected.
	hand := buildHand(
		tl(models.ColorYellow, 12), tl(models.ColorYellow, 13), tl(models.ColorYellow, 1),
		tl(models.ColorYellow, 5), tl(models.ColorBlue, 5), tl(models.ColorBlack, 5), tl(models.ColorRed, 5),
		tl(models.ColorBlue, 1), tl(models.ColorBlue, 2), tl(models.ColorBlue, 3), tl(models.ColorBlue, 4),
		tl(models.ColorBlue, 9), tl(models.ColorBlack, 9), tl(models.ColorRed, 9),
	)
	res := EvaluateHand(hand, testOkey)
	assert.False(t, res.Valid)
}

func TestEvaluateHandFakeJokerSubstitutes(t *testing.T) {
	// The fake joker completes yellow 1-2-3.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 2), fake(),
		tl(models.ColorBlue, 5), tl(models.ColorBlue, 6), tl(models.ColorBlue, 7),
		tl(models.ColorYellow, 8), tl(models.ColorBlue, 8), tl(models.ColorBlack, 8), tl(models.ColorRed, 8),
		tl(models.ColorYellow, 12), tl(models.ColorBlue, 12), tl(models.ColorBlack, 12), tl(models.ColorYellow, 13),
	)
	// yellow 12-13 need the run yellow 12-13 + ... that is too short;
	// instead the set of 12s takes yellow/blue/black and yellow 13 has
	// no meld, so this variant must fail.
	res := EvaluateHand(hand, testOkey)
	assert.False(t, res.Valid)

	// Swap yellow 13 for red 12 and the hand closes: run yellow 1-2-J,
	// run blue 5-7, set of 8s, set of 12s in all four colors.
	hand[13] = models.Tile{ID: 13, Color: models.ColorRed, Number: 12}
	res = EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSetsAndRuns, res.Type)
}

func TestEvaluateHandRealOkeyIsJoker(t *testing.T) {
	// red-13 is the active okey here and stands in for black 6.
	hand := buildHand(
		tl(models.ColorBlack, 4), tl(models.ColorBlack, 5), tl(models.ColorRed, 13),
		tl(models.ColorYellow, 2), tl(models.ColorBlue, 2), tl(models.ColorRed, 2),
		tl(models.ColorYellow, 9), tl(models.ColorYellow, 10), tl(models.ColorYellow, 11), tl(models.ColorYellow, 12),
		tl(models.ColorBlue, 10), tl(models.ColorBlack, 10), tl(models.ColorRed, 10), tl(models.ColorYellow, 10),
	)
	res := EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSetsAndRuns, res.Type)
}

func TestEvaluateHandThreeLeftoverJokersFormTheirOwnMeld(t *testing.T) {
	// Eleven concrete tiles partition cleanly; both fake jokers plus a
	// real okey are left over and stand as a meld of three substitutes.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 2), tl(models.ColorYellow, 3),
		tl(models.ColorBlue, 5), tl(models.ColorBlue, 6), tl(models.ColorBlue, 7), tl(models.ColorBlue, 8),
		tl(models.ColorBlack, 9), tl(models.ColorBlack, 10), tl(models.ColorBlack, 11), tl(models.ColorBlack, 12),
		fake(), fake(), tl(models.ColorRed, 13),
	)
	res := EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSetsAndRuns, res.Type)
}

func TestEvaluateHandSevenPairs(t *testing.T) {
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 1),
		tl(models.ColorBlue, 2), tl(models.ColorBlue, 2),
		tl(models.ColorBlack, 3), tl(models.ColorBlack, 3),
		tl(models.ColorRed, 4), tl(models.ColorRed, 4),
		tl(models.ColorYellow, 5), tl(models.ColorYellow, 5),
		tl(models.ColorBlue, 6), tl(models.ColorBlue, 6),
		tl(models.ColorBlack, 7), tl(models.ColorBlack, 7),
	)
	res := EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSevenPairs, res.Type)
}

func TestEvaluateHandSevenPairsWithJoker(t *testing.T) {
	// Six doubles plus a single that absorbs the fake joker.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 1),
		tl(models.ColorBlue, 2), tl(models.ColorBlue, 2),
		tl(models.ColorBlack, 3), tl(models.ColorBlack, 3),
		tl(models.ColorRed, 4), tl(models.ColorRed, 4),
		tl(models.ColorYellow, 5), tl(models.ColorYellow, 5),
		tl(models.ColorBlue, 6), tl(models.ColorBlue, 6),
		tl(models.ColorBlack, 7), fake(),
	)
	res := EvaluateHand(hand, testOkey)
	require.True(t, res.Valid, res.Reason)
	assert.Equal(t, models.WinSevenPairs, res.Type)
}

func TestEvaluateHandSevenPairsJokersCannotPairTogether(t *testing.T) {
	// Four doubles, four unpairable singles and two jokers. Each joker
	// must pair with a concrete tile, never with the other joker, so
	// only six pairs are reachable.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 1),
		tl(models.ColorBlue, 2), tl(models.ColorBlue, 2),
		tl(models.ColorBlack, 3), tl(models.ColorBlack, 3),
		tl(models.ColorRed, 4), tl(models.ColorRed, 4),
		tl(models.ColorYellow, 6), tl(models.ColorBlue, 8),
		tl(models.ColorBlack, 10), tl(models.ColorRed, 12),
		fake(), fake(),
	)
	st := newHandState(hand, testOkey)
	assert.False(t, st.sevenPairs())
}

func TestEvaluateHandWrongSize(t *testing.T) {
	hand := buildHand(tl(models.ColorYellow, 1), tl(models.ColorYellow, 2))
	res := EvaluateHand(hand, testOkey)
	assert.False(t, res.Valid)
	assert.Equal(t, "hand must have 14 tiles", res.Reason)
}

func TestEvaluateHandNoJokersNoLuck(t *testing.T) {
	// Fourteen scattered singles.
	hand := buildHand(
		tl(models.ColorYellow, 1), tl(models.ColorYellow, 4), tl(models.ColorYellow, 7), tl(models.ColorYellow, 10),
		tl(models.ColorBlue, 2), tl(models.ColorBlue, 5), tl(models.ColorBlue, 8), tl(models.ColorBlue, 11),
		tl(models.ColorBlack, 3), tl(models.ColorBlack, 6), tl(models.ColorBlack, 9),
		tl(models.ColorRed, 1), tl(models.ColorRed, 5), tl(models.ColorRed, 9),
	)
	res := EvaluateHand(hand, testOkey)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Reason)
}
