// internal/game/deck.go
package game

import (
	"errors"
	"math/rand"

	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// DeckSize is the full okey deck: two copies of 4 colors x 13 numbers
// plus two fake jokers.
const DeckSize = 106

// ErrNoIndicator is returned if no non-fake tile is available for the
// indicator. With a legal 106-tile deck this cannot happen.
var ErrNoIndicator = errors.New("game: no valid indicator tile in deck")

// BuildDeck returns all 106 tiles in deterministic construction order.
// Callers shuffle before use.
func BuildDeck() []models.Tile {
	deck := make([]models.Tile, 0, DeckSize)
	id := 0
	for set := 0; set < 2; set++ {
		for _, color := range models.Colors {
			for number := 1; number <= 13; number++ {
				deck = append(deck, models.Tile{ID: id, Color: color, Number: number})
				id++
			}
		}
	}
	deck = append(deck, models.Tile{ID: id, Color: models.ColorFake})
	id++
	deck = append(deck, models.Tile{ID: id, Color: models.ColorFake})
	return deck
}

// Shuffle permutes the deck in place with Fisher-Yates. Every
// permutation is equally likely; this matters for fairness, it is not
// cosmetic. The rng is injected so tests can deal deterministically.
func Shuffle(deck []models.Tile, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// SelectIndicator removes one uniformly random non-fake tile from the
// deck and derives the active okey from it: same color, one number up,
// wrapping 13 to 1. The indicator is set aside and takes no further
// part in the game.
func SelectIndicator(deck []models.Tile, rng *rand.Rand) (indicator models.Tile, okey models.OkeyTile, rest []models.Tile, err error) {
	candidates := make([]int, 0, len(deck))
	for i, t := range deck {
		if !t.IsFakeJoker() {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return models.Tile{}, models.OkeyTile{}, deck, ErrNoIndicator
	}

	idx := candidates[rng.Intn(len(candidates))]
	indicator = deck[idx]

	okeyNumber := indicator.Number + 1
	if okeyNumber == 14 {
		okeyNumber = 1
	}
	okey = models.OkeyTile{Color: indicator.Color, Number: okeyNumber}

	rest = append(deck[:idx:idx], deck[idx+1:]...)
	return indicator, okey, rest, nil
}
