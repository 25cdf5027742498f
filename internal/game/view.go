// internal/game/view.go
package game

import (
	"github.com/google/uuid"

	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// PlayerView is one seat as everyone may see it: tile count, never
// tile contents.
type PlayerView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Seat          int       `json:"seat"`
	TileCount     int       `json:"tileCount"`
	Ready         bool      `json:"ready"`
	Connected     bool      `json:"connected"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
}

// StateView is a value snapshot of the game. The public part is the
// same for every recipient; Hand and YourSeat are filled only when the
// view is generated for a specific seat, and only with that seat's own
// tiles. Another seat's hand contents never appear in any view.
type StateView struct {
	GameID      uuid.UUID          `json:"gameId"`
	RoomID      uuid.UUID          `json:"roomId"`
	Phase       Phase              `json:"phase"`
	CurrentSeat int                `json:"currentSeat"`
	Turn        TurnState          `json:"turn"`
	Indicator   *models.Tile       `json:"indicator,omitempty"`
	Okey        *models.OkeyTile   `json:"okey,omitempty"`
	StockCount  int                `json:"stockCount"`
	DiscardTop  *models.Tile       `json:"discardTop,omitempty"`
	Players     []PlayerView       `json:"players"`
	Result      *models.GameResult `json:"result,omitempty"`

	Hand     []models.Tile `json:"hand,omitempty"`
	YourSeat *int          `json:"yourSeat,omitempty"`
}

// StateView builds a snapshot. Pass uuid.Nil for a purely public view.
func (g *OkeyGame) StateView(forPlayer uuid.UUID) StateView {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.stateViewLocked(forPlayer)
}

// stateViewLocked assumes the lock is held; used when a snapshot is
// taken inside a command.
func (g *OkeyGame) stateViewLocked(forPlayer uuid.UUID) StateView {
	view := StateView{
		GameID:      g.ID,
		RoomID:      g.RoomID,
		Phase:       g.Phase,
		CurrentSeat: g.CurrentSeat,
		Turn:        g.Turn,
		StockCount:  len(g.Stock),
		Result:      g.Result,
	}
	if g.Phase == PhasePlaying || g.Phase == PhaseFinished {
		ind := g.Indicator
		okey := g.Okey
		view.Indicator = &ind
		view.Okey = &okey
	}
	if n := len(g.DiscardPile); n > 0 {
		top := g.DiscardPile[n-1]
		view.DiscardTop = &top
	}
	for i, p := range g.Players {
		view.Players = append(view.Players, PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			Seat:          p.Seat,
			TileCount:     len(p.Hand),
			Ready:         p.Ready,
			Connected:     p.Connected,
			IsCurrentTurn: g.Phase == PhasePlaying && i == g.CurrentSeat,
		})
		if p.ID == forPlayer {
			view.Hand = append([]models.Tile(nil), p.Hand...)
			seat := p.Seat
			view.YourSeat = &seat
		}
	}
	return view
}

// SendStateSync pushes a private snapshot to one player, used after
// connect and reconnect.
func (g *OkeyGame) SendStateSync(playerID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	state := g.stateViewLocked(playerID)
	g.fireEventToPlayer(playerID, GameEvent{Type: EventStateSync, State: &state})
}
