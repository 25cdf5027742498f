// internal/game/game.go
package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CagriGunes46/OKEYgame/internal/models"
)

// Phase is the lifecycle of one game. Dealing exists only inside
// Start: shuffle, indicator, deal is one logical step with no
// partial-failure state observable from outside.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseDealing  Phase = "dealing"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// TurnState is what the current seat must do next.
type TurnState string

const (
	AwaitingDraw    TurnState = "awaiting_draw"
	AwaitingDiscard TurnState = "awaiting_discard"
)

// OnGameEndFunc handles a terminal result (persistence, room cleanup).
type OnGameEndFunc func(gameID uuid.UUID, result models.GameResult)

// OkeyGame holds the entire state for a single table in memory. One
// game instance is mutated by exactly one command at a time: every
// public operation takes Mu, which gives single-writer serialization
// per room. Different games are fully independent.
type OkeyGame struct {
	ID     uuid.UUID
	RoomID uuid.UUID

	Players     []*models.Player // seat order, at most 4
	Stock       []models.Tile    // draw from front
	DiscardPile []models.Tile    // stack, most recent last
	Indicator   models.Tile
	Okey        models.OkeyTile

	CurrentSeat int
	Turn        TurnState
	Phase       Phase
	Result      *models.GameResult

	// Penalty ranks seats on a draw by exhaustion. Defaults to
	// IsolatedTilePenalty; rooms may plug in another policy.
	Penalty PenaltyPolicy

	rng *rand.Rand
	Mu  sync.Mutex

	// BroadcastFn sends an event to all players. Nil means no fan-out.
	BroadcastFn func(ev GameEvent)
	// BroadcastToPlayerFn sends an event to a single player.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)
	// OnGameEnd is invoked once on any transition to PhaseFinished.
	OnGameEnd OnGameEndFunc
}

// NewOkeyGame builds an empty table in the waiting phase.
func NewOkeyGame() *OkeyGame {
	id, _ := uuid.NewRandom()
	return &OkeyGame{
		ID:      id,
		Phase:   PhaseWaiting,
		Turn:    AwaitingDiscard,
		Penalty: IsolatedTilePenalty,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource replaces the game's randomness, used by tests to make
// dealing deterministic.
func (g *OkeyGame) SetRandSource(src rand.Source) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.rng = rand.New(src)
}

// AddPlayer seats a player at the next free seat. Seating is only
// possible while waiting; afterwards the table is closed.
func (g *OkeyGame) AddPlayer(id uuid.UUID, name string) (*models.Player, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhaseWaiting {
		return nil, ErrWrongPhase
	}
	if len(g.Players) >= 4 {
		return nil, ErrTableFull
	}
	for _, p := range g.Players {
		if p.ID == id {
			return nil, ErrAlreadySeated
		}
	}

	p := &models.Player{
		ID:        id,
		Name:      name,
		Seat:      len(g.Players),
		Connected: true,
	}
	g.Players = append(g.Players, p)
	g.fireEvent(GameEvent{Type: EventPlayerJoined, User: eventUser(p)})
	return p, nil
}

// SetReady flips a seated player's ready flag.
func (g *OkeyGame) SetReady(id uuid.UUID, ready bool) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.playerByID(id)
	if p == nil {
		return ErrNotSeated
	}
	p.Ready = ready
	g.fireEvent(GameEvent{Type: EventPlayerReady, User: eventUser(p), Payload: map[string]interface{}{"ready": ready}})
	return nil
}

// RemovePlayer takes a player off the table. Before the game starts
// the seat is freed and remaining players are reseated in join order.
// During play this is a departure and force-terminates the game.
func (g *OkeyGame) RemovePlayer(id uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase == PhasePlaying {
		g.terminateByDeparture(id)
		return
	}

	for i, p := range g.Players {
		if p.ID == id {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			for j := range g.Players {
				g.Players[j].Seat = j
			}
			g.fireEvent(GameEvent{Type: EventPlayerLeft, User: &EventUser{ID: id, Name: p.Name, Seat: i}})
			return
		}
	}
}

// Start deals a new game: build, shuffle, pick the indicator, deal
// 15/14/14/14, seat 0 opens in the discard state. The whole sequence
// runs under the lock as one step; there is no observable partial
// state. Rejected unless exactly four players are seated and the game
// is still waiting.
func (g *OkeyGame) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	if len(g.Players) != 4 {
		return ErrNeedFourSeats
	}

	g.Phase = PhaseDealing

	deck := BuildDeck()
	Shuffle(deck, g.rng)

	indicator, okey, rest, err := SelectIndicator(deck, g.rng)
	if err != nil {
		// Cannot happen with a legal deck; treat as fatal for this table.
		g.Phase = PhaseWaiting
		return err
	}
	g.Indicator = indicator
	g.Okey = okey

	for i, p := range g.Players {
		count := 14
		if i == 0 {
			count = 15
		}
		p.Hand = append([]models.Tile(nil), rest[:count]...)
		rest = rest[count:]
	}
	g.Stock = rest
	g.DiscardPile = nil
	g.Result = nil
	g.CurrentSeat = 0
	g.Turn = AwaitingDiscard // seat 0 holds the pre-drawn 15th tile
	g.Phase = PhasePlaying

	log.Printf("Game %s started: indicator %s, okey %s-%d, stock %d", g.ID, g.Indicator, g.Okey.Color, g.Okey.Number, len(g.Stock))
	g.fireEvent(GameEvent{Type: EventGameStarted, Payload: map[string]interface{}{
		"indicator":  g.Indicator,
		"okey":       g.Okey,
		"stockCount": len(g.Stock),
	}})
	return nil
}

// DrawFromStock moves the front stock tile into the acting seat's
// hand. Legal only for the current seat in the draw state with a
// non-empty stock. Drawing the last tile force-terminates the game as
// a draw: exhaustion is checked right after the draw and supersedes a
// coincident winnable hand.
func (g *OkeyGame) DrawFromStock(id uuid.UUID) (models.Tile, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p, err := g.checkTurn(id, AwaitingDraw)
	if err != nil {
		return models.Tile{}, err
	}
	if len(g.Stock) == 0 {
		return models.Tile{}, ErrEmptyStock
	}

	tile := g.Stock[0]
	g.Stock = g.Stock[1:]
	p.Hand = append(p.Hand, tile)
	g.Turn = AwaitingDiscard

	g.fireEvent(GameEvent{Type: EventPlayerDrew, User: eventUser(p), Payload: map[string]interface{}{
		"from":       "stock",
		"stockCount": len(g.Stock),
	}})

	if len(g.Stock) == 0 {
		g.terminateByExhaustion()
	}
	return tile, nil
}

// DrawFromDiscard moves the top of the discard pile into the acting
// seat's hand. Legal only for the current seat in the draw state with
// a non-empty pile.
func (g *OkeyGame) DrawFromDiscard(id uuid.UUID) (models.Tile, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p, err := g.checkTurn(id, AwaitingDraw)
	if err != nil {
		return models.Tile{}, err
	}
	if len(g.DiscardPile) == 0 {
		return models.Tile{}, ErrEmptyDiscard
	}

	tile := g.DiscardPile[len(g.DiscardPile)-1]
	g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]
	p.Hand = append(p.Hand, tile)
	g.Turn = AwaitingDiscard

	g.fireEvent(GameEvent{Type: EventPlayerDrew, User: eventUser(p), Payload: map[string]interface{}{
		"from": "discard",
	}})
	return tile, nil
}

// DiscardTile moves the named tile from the acting seat's hand onto
// the discard pile and passes the turn to the next seat.
func (g *OkeyGame) DiscardTile(id uuid.UUID, tileID int) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p, err := g.checkTurn(id, AwaitingDiscard)
	if err != nil {
		return err
	}
	idx, ok := p.HoldsTile(tileID)
	if !ok {
		return ErrTileNotInHand
	}

	tile := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	g.DiscardPile = append(g.DiscardPile, tile)

	g.CurrentSeat = (g.CurrentSeat + 1) % 4
	g.Turn = AwaitingDraw

	g.fireEvent(GameEvent{Type: EventTileDiscarded, User: eventUser(p), Tile: &tile, Payload: map[string]interface{}{
		"nextSeat": g.CurrentSeat,
	}})
	return nil
}

// Finish evaluates the acting seat's hand as a win claim. Legal only
// on the claimant's turn with exactly 14 tiles. An invalid hand is a
// rejection, not a termination: state is unchanged and the game goes
// on.
func (g *OkeyGame) Finish(id uuid.UUID) (*models.GameResult, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	p := g.playerByID(id)
	if p == nil {
		return nil, ErrNotSeated
	}
	if p.Seat != g.CurrentSeat {
		return nil, ErrNotYourTurn
	}
	if len(p.Hand) != 14 {
		return nil, ErrWrongHandSize
	}

	res := EvaluateHand(p.Hand, g.Okey)
	if !res.Valid {
		return nil, &InvalidHandError{Reason: res.Reason}
	}

	winnerID := p.ID
	result := models.GameResult{
		Reason:     models.EndReasonWin,
		WinnerID:   &winnerID,
		WinnerName: p.Name,
		WinType:    res.Type,
		Score:      ScoreWin(p.Hand, g.Okey, res.Type),
	}
	g.finishWith(result, EventGameFinished, eventUser(p))
	return g.Result, nil
}

// HandleDeparture force-terminates a playing game because a seat left
// or disconnected. Idempotent: once the game is finished, further
// departure events are ignored and cannot double-terminate or corrupt
// the recorded result.
func (g *OkeyGame) HandleDeparture(id uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.terminateByDeparture(id)
}

// terminateByDeparture assumes the lock is held.
func (g *OkeyGame) terminateByDeparture(id uuid.UUID) {
	if g.Phase != PhasePlaying {
		return
	}
	p := g.playerByID(id)
	if p == nil {
		return
	}
	p.Connected = false

	leftID := p.ID
	result := models.GameResult{
		Reason:   models.EndReasonDeparture,
		LeftID:   &leftID,
		LeftName: p.Name,
	}
	log.Printf("Game %s ended: player %s (%s) left during play", g.ID, p.Name, p.ID)
	g.finishWith(result, EventPlayerDeparted, eventUser(p))
}

// terminateByExhaustion ends the game as a draw and computes one
// penalty per seat with the configured policy. Assumes the lock is
// held and the stock has just gone empty.
func (g *OkeyGame) terminateByExhaustion() {
	policy := g.Penalty
	if policy == nil {
		policy = IsolatedTilePenalty
	}
	penalties := make([]models.SeatPenalty, 0, len(g.Players))
	for _, p := range g.Players {
		penalties = append(penalties, models.SeatPenalty{
			PlayerID: p.ID,
			Seat:     p.Seat,
			Penalty:  policy(p.Hand, g.Okey),
		})
	}
	result := models.GameResult{
		Reason:    models.EndReasonExhaustion,
		Penalties: penalties,
	}
	log.Printf("Game %s ended in a draw: stock exhausted", g.ID)
	g.finishWith(result, EventGameEndedDraw, nil)
}

// finishWith performs the single irreversible transition to
// PhaseFinished. Assumes the lock is held.
func (g *OkeyGame) finishWith(result models.GameResult, evType GameEventType, user *EventUser) {
	g.Phase = PhaseFinished
	g.Result = &result
	g.fireEvent(GameEvent{Type: evType, User: user, Result: g.Result})
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, result)
	}
}

// checkTurn validates phase, seat and turn state for a draw or
// discard command. Assumes the lock is held.
func (g *OkeyGame) checkTurn(id uuid.UUID, want TurnState) (*models.Player, error) {
	if g.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	p := g.playerByID(id)
	if p == nil {
		return nil, ErrNotSeated
	}
	if p.Seat != g.CurrentSeat {
		return nil, ErrNotYourTurn
	}
	if g.Turn != want {
		if want == AwaitingDraw {
			return nil, ErrMustDiscard
		}
		return nil, ErrMustDraw
	}
	return p, nil
}

func (g *OkeyGame) playerByID(id uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func eventUser(p *models.Player) *EventUser {
	return &EventUser{ID: p.ID, Name: p.Name, Seat: p.Seat}
}

// fireEvent broadcasts to all players. Assumes the lock is held; the
// registered broadcast function must not re-enter the game.
func (g *OkeyGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends a private event to one player.
func (g *OkeyGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn != nil {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}

// MarkConnected flips a seat's connection flag on reconnect and
// returns whether the player is seated.
func (g *OkeyGame) MarkConnected(id uuid.UUID, connected bool) bool {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	p := g.playerByID(id)
	if p == nil {
		return false
	}
	p.Connected = connected
	return true
}
