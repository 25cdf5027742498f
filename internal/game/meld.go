// internal/game/meld.go
package game

import (
	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// HandResult is the outcome of evaluating a 14-tile hand.
type HandResult struct {
	Valid  bool           `json:"valid"`
	Type   models.WinType `json:"type,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

// EvaluateHand decides whether the hand is a legal winning hand under
// the given active okey. Two independent acceptance paths: seven pairs,
// or a full partition into sets and runs. Seven pairs is checked first
// because it is cheap; either path accepting makes the hand valid.
func EvaluateHand(hand []models.Tile, okey models.OkeyTile) HandResult {
	if len(hand) != 14 {
		return HandResult{Valid: false, Reason: "hand must have 14 tiles"}
	}

	st := newHandState(hand, okey)

	if st.sevenPairs() {
		return HandResult{Valid: true, Type: models.WinSevenPairs}
	}
	if st.solve() {
		return HandResult{Valid: true, Type: models.WinSetsAndRuns}
	}
	return HandResult{Valid: false, Reason: "no valid combination found"}
}

// handState holds the mutable search state: concrete tile counts per
// color and number, plus the shared joker pool. Jokers are consumed
// across melds during the search, never pre-assigned. Every mutation
// made while exploring a branch is undone on backtrack, so the state
// at each recursion level is exact.
type handState struct {
	counts [4][14]int // [color][number], number 1..13
	jokers int
}

var colorIndex = map[models.Color]int{
	models.ColorYellow: 0,
	models.ColorBlue:   1,
	models.ColorBlack:  2,
	models.ColorRed:    3,
}

func newHandState(hand []models.Tile, okey models.OkeyTile) *handState {
	st := &handState{}
	for _, t := range hand {
		if models.IsJoker(t, okey) {
			st.jokers++
			continue
		}
		st.counts[colorIndex[t.Color]][t.Number]++
	}
	return st
}

// sevenPairs checks the pairs path without mutating state. A pair is
// two identical tiles or one concrete tile plus a joker; a pair may
// never be two jokers, so with j jokers exactly 7-j pairs must come
// from concrete doubles and the remaining j concrete singles each
// absorb one joker. That leaves a single arithmetic condition on the
// number of doubles available.
func (st *handState) sevenPairs() bool {
	doubles := 0
	for c := 0; c < 4; c++ {
		for n := 1; n <= 13; n++ {
			doubles += st.counts[c][n] / 2
		}
	}
	need := 7 - st.jokers
	return need >= 0 && doubles >= need
}

// solve is the sets-and-runs exact-cover search. It picks the first
// remaining concrete tile and tries every meld that could contain it:
// all run windows covering its number and all color combinations for a
// set of its number. The anchor tile must be consumed by some meld, so
// failing every candidate fails the branch. Greedy longest-first
// ordering is a heuristic only; the search backtracks through every
// partition choice, and succeeds only when nothing is left over.
func (st *handState) solve() bool {
	c, n := st.firstTile()
	if c < 0 {
		// All concrete tiles consumed. Leftover jokers must form a
		// meld of pure substitutes on their own; one or two cannot.
		return st.jokers == 0 || st.jokers >= 3
	}

	// Runs: every window [start,end] of length >= 3 that covers n,
	// same color, strictly consecutive, no wrap past 13. Longer
	// windows first to bound branching.
	for start := 1; start <= n; start++ {
		for end := 13; end >= n; end-- {
			if end-start+1 < 3 {
				continue
			}
			if st.fillRun(c, n, start, end, start) {
				return true
			}
		}
	}

	// Sets: 3 or 4 tiles of number n, all distinct colors, anchored at
	// color c. Larger sets first.
	others := [3]int{}
	oi := 0
	for col := 0; col < 4; col++ {
		if col != c {
			others[oi] = col
			oi++
		}
	}
	setCombos := [4][]int{
		{others[0], others[1], others[2]},
		{others[0], others[1]},
		{others[0], others[2]},
		{others[1], others[2]},
	}
	for _, combo := range setCombos {
		if st.fillSet(c, n, combo) {
			return true
		}
	}
	return false
}

// firstTile returns the lowest-numbered remaining concrete tile in
// color order, or (-1, -1) when none remain.
func (st *handState) firstTile() (int, int) {
	for c := 0; c < 4; c++ {
		for n := 1; n <= 13; n++ {
			if st.counts[c][n] > 0 {
				return c, n
			}
		}
	}
	return -1, -1
}

// fillRun assigns tiles to run positions start..end one at a time. The
// anchor position always consumes a concrete copy; every other
// position branches between a concrete copy and a joker, because
// spending a joker on a held number can free the concrete copy for a
// different meld. State is restored on every return path.
func (st *handState) fillRun(color, anchor, start, end, pos int) bool {
	if pos > end {
		return st.solve()
	}
	if pos == anchor {
		st.counts[color][pos]--
		ok := st.fillRun(color, anchor, start, end, pos+1)
		st.counts[color][pos]++
		return ok
	}
	if st.counts[color][pos] > 0 {
		st.counts[color][pos]--
		ok := st.fillRun(color, anchor, start, end, pos+1)
		st.counts[color][pos]++
		if ok {
			return true
		}
	}
	if st.jokers > 0 {
		st.jokers--
		ok := st.fillRun(color, anchor, start, end, pos+1)
		st.jokers++
		if ok {
			return true
		}
	}
	return false
}

// fillSet consumes the anchor tile plus one tile per partner color,
// branching concrete-or-joker per partner exactly like fillRun.
func (st *handState) fillSet(anchor, n int, partners []int) bool {
	st.counts[anchor][n]--
	ok := st.fillSetPartners(n, partners, 0)
	st.counts[anchor][n]++
	return ok
}

func (st *handState) fillSetPartners(n int, partners []int, idx int) bool {
	if idx == len(partners) {
		return st.solve()
	}
	col := partners[idx]
	if st.counts[col][n] > 0 {
		st.counts[col][n]--
		ok := st.fillSetPartners(n, partners, idx+1)
		st.counts[col][n]++
		if ok {
			return true
		}
	}
	if st.jokers > 0 {
		st.jokers--
		ok := st.fillSetPartners(n, partners, idx+1)
		st.jokers++
		if ok {
			return true
		}
	}
	return false
}
