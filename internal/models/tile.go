// internal/models/tile.go
package models

import "fmt"

// Color identifies one of the four tile colors, or the dedicated
// fake-joker marker.
type Color string

const (
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorBlack  Color = "black"
	ColorRed    Color = "red"
	ColorFake   Color = "fake" // fake-joker tiles carry no real color
)

// Colors lists the four playable colors in deck construction order.
var Colors = []Color{ColorYellow, ColorBlue, ColorBlack, ColorRed}

// Tile is a single okey tile. ID is unique within one deck instance.
// Number is 1..13 for colored tiles and 0 for fake jokers. Tiles are
// immutable once created; ownership (stock, hand, discard, indicator)
// is tracked by the game, never on the tile itself.
type Tile struct {
	ID     int   `json:"id"`
	Color  Color `json:"color"`
	Number int   `json:"number"`
}

// IsFakeJoker reports whether the tile is one of the two dedicated
// joker tiles that act as a joker regardless of the indicator.
func (t Tile) IsFakeJoker() bool {
	return t.Color == ColorFake
}

func (t Tile) String() string {
	if t.IsFakeJoker() {
		return fmt.Sprintf("fake-joker#%d", t.ID)
	}
	return fmt.Sprintf("%s-%d#%d", t.Color, t.Number, t.ID)
}

// OkeyTile is the color+number identity of the active joker for one
// game, derived from the indicator. It is a value, not a physical tile:
// both physical copies of that color+number act as jokers.
type OkeyTile struct {
	Color  Color `json:"color"`
	Number int   `json:"number"`
}

// Matches reports whether a physical tile is a real-okey tile, i.e.
// matches the active joker's color and number. Fake jokers do not
// match; they are jokers in their own right.
func (o OkeyTile) Matches(t Tile) bool {
	return !t.IsFakeJoker() && t.Color == o.Color && t.Number == o.Number
}

// IsJoker reports whether a tile substitutes as a joker under the
// given active okey: either a fake joker or a real-okey tile.
func IsJoker(t Tile, okey OkeyTile) bool {
	return t.IsFakeJoker() || okey.Matches(t)
}
