// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/CagriGunes46/OKEYgame/internal/auth"
	"github.com/CagriGunes46/OKEYgame/internal/cache"
	"github.com/CagriGunes46/OKEYgame/internal/database"
	"github.com/CagriGunes46/OKEYgame/internal/game"
	"github.com/CagriGunes46/OKEYgame/internal/middleware"
	"github.com/CagriGunes46/OKEYgame/internal/models"
	"github.com/CagriGunes46/OKEYgame/internal/room"
)

// ClientMessage is one inbound command over the room WebSocket.
type ClientMessage struct {
	Type   string `json:"type"`
	TileID *int   `json:"tileId,omitempty"`
	Ready  *bool  `json:"ready,omitempty"`
}

// CommandResult is the synchronous reply to the acting player. Events
// for the other seats fan out separately after the command resolves.
type CommandResult struct {
	Type   string             `json:"type"`
	Op     string             `json:"op"`
	OK     bool               `json:"ok"`
	Error  string             `json:"error,omitempty"`
	Tile   *models.Tile       `json:"tile,omitempty"`
	Result *models.GameResult `json:"result,omitempty"`
	State  *game.StateView    `json:"state,omitempty"`
}

// RoomWSHandler upgrades the connection for one room, seats (or
// re-seats) the authenticated player, and processes commands until the
// socket closes. A disconnect during play is a departure and
// terminates the game.
func RoomWSHandler(logger *logrus.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"okey"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "internal error")

		if c.Subprotocol() != "okey" {
			c.Close(websocket.StatusCode(BadSubprotocolError), "client must use the 'okey' subprotocol")
			return
		}

		roomIDStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/rooms/ws/"), "/")
		roomID, err := uuid.Parse(roomIDStr)
		if err != nil {
			c.Close(websocket.StatusCode(InvalidRoomIDError), "invalid room id (/rooms/ws/{room_id})")
			return
		}
		rm, ok := s.Rooms.Get(roomID)
		if !ok {
			c.Close(websocket.StatusCode(InvalidRoomIDError), "room not found")
			return
		}

		sess, err := sessionFromRequest(r)
		if err != nil {
			c.Close(websocket.StatusCode(InvalidAuthTokenError), "missing or invalid auth token")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, r.URL.Path)

		g := rm.Game
		hub := s.hub(roomID)
		s.wireGame(rm, hub)

		// Seat the player, or mark an existing seat reconnected.
		if _, err := g.AddPlayer(sess.PlayerID, sess.Name); err != nil {
			switch {
			case errors.Is(err, game.ErrAlreadySeated):
				g.MarkConnected(sess.PlayerID, true)
			case errors.Is(err, game.ErrTableFull):
				c.Close(websocket.StatusCode(RoomFullError), "room is full")
				return
			default:
				// Game already started and this player has no seat.
				c.Close(websocket.StatusPolicyViolation, "game already started")
				return
			}
		}

		hub.add(sess.PlayerID, c)
		g.SendStateSync(sess.PlayerID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		readErr := readRoomMessages(ctx, c, rm, sess, logger)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, r.URL.Path, readErr)

		s.handleLeave(rm, hub, sess.PlayerID)
	}
}

// wireGame registers the fan-out callbacks for a room's game exactly
// once. The callbacks run while the game lock is held, so they only
// hand the payload to the hub, which writes asynchronously.
func (s *Server) wireGame(rm *room.Room, hub *roomHub) {
	g := rm.Game
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.BroadcastFn != nil {
		return
	}
	g.BroadcastFn = func(ev game.GameEvent) {
		hub.broadcast(s.Logger, ev)
	}
	g.BroadcastToPlayerFn = func(playerID uuid.UUID, ev game.GameEvent) {
		hub.sendTo(s.Logger, playerID, ev)
	}
	g.OnGameEnd = func(gameID uuid.UUID, result models.GameResult) {
		seats := make([]database.Seat, 0, len(g.Players))
		for _, p := range g.Players {
			seats = append(seats, database.Seat{PlayerID: p.ID, Seat: p.Seat})
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := database.RecordGameResult(ctx, gameID, rm.ID, seats, result); err != nil {
				s.Logger.Warnf("failed to record result for game %s: %v", gameID, err)
			}
		}()
	}
}

// handleLeave cleans up after a socket closes: the seat is freed (or
// the game terminated if it was mid-play), and an empty room is
// discarded together with its finished game.
func (s *Server) handleLeave(rm *room.Room, hub *roomHub, playerID uuid.UUID) {
	g := rm.Game
	remaining := hub.remove(playerID)

	view := g.StateView(uuid.Nil)
	switch view.Phase {
	case game.PhasePlaying:
		g.HandleDeparture(playerID)
	case game.PhaseWaiting:
		g.RemovePlayer(playerID)
	default:
		g.MarkConnected(playerID, false)
	}

	if remaining == 0 {
		s.Rooms.Delete(rm.ID)
		s.Games.DeleteGame(g.ID)
		s.dropHub(rm.ID)
	}
}

// readRoomMessages runs the per-connection command loop. Commands are
// serialized by the game's own lock; the reply to the actor is
// synchronous, fan-out to other seats happens via the game's events.
func readRoomMessages(ctx context.Context, c *websocket.Conn, rm *room.Room, sess auth.Session, logger *logrus.Logger) error {
	g := rm.Game
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			return err
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sendJSON(ctx, c, CommandResult{Type: "command_result", Op: "parse", Error: "invalid JSON"})
			continue
		}

		logger.Debugf("room %s: player %s -> %s", rm.ID, sess.PlayerID, msg.Type)
		res := dispatchCommand(g, rm, sess, msg)
		sendJSON(ctx, c, res)
		logAction(rm, g, sess.PlayerID, msg, res)
	}
}

// dispatchCommand maps one client message onto the engine's command
// surface and shapes the synchronous reply.
func dispatchCommand(g *game.OkeyGame, rm *room.Room, sess auth.Session, msg ClientMessage) CommandResult {
	res := CommandResult{Type: "command_result", Op: msg.Type, OK: true}

	switch msg.Type {
	case "ping":
		res.Op = "pong"

	case "state":
		state := g.StateView(sess.PlayerID)
		res.State = &state

	case "ready":
		ready := true
		if msg.Ready != nil {
			ready = *msg.Ready
		}
		if err := g.SetReady(sess.PlayerID, ready); err != nil {
			return rejected(res, err)
		}

	case "start":
		if sess.PlayerID != rm.HostID {
			return rejected(res, errors.New("only the host can start the game"))
		}
		if err := g.Start(); err != nil {
			return rejected(res, err)
		}

	case "draw_stock":
		tile, err := g.DrawFromStock(sess.PlayerID)
		if err != nil {
			return rejected(res, err)
		}
		res.Tile = &tile

	case "draw_discard":
		tile, err := g.DrawFromDiscard(sess.PlayerID)
		if err != nil {
			return rejected(res, err)
		}
		res.Tile = &tile

	case "discard":
		if msg.TileID == nil {
			return rejected(res, errors.New("discard requires tileId"))
		}
		if err := g.DiscardTile(sess.PlayerID, *msg.TileID); err != nil {
			return rejected(res, err)
		}

	case "finish":
		result, err := g.Finish(sess.PlayerID)
		if err != nil {
			return rejected(res, err)
		}
		res.Result = result

	default:
		return rejected(res, errors.New("unknown command type: "+msg.Type))
	}
	return res
}

func rejected(res CommandResult, err error) CommandResult {
	res.OK = false
	res.Error = err.Error()
	return res
}

// logAction streams the action to the historian queue, best effort.
func logAction(rm *room.Room, g *game.OkeyGame, actorID uuid.UUID, msg ClientMessage, res CommandResult) {
	if cache.Rdb == nil || msg.Type == "ping" || msg.Type == "state" {
		return
	}
	payload := map[string]interface{}{"ok": res.OK}
	if msg.TileID != nil {
		payload["tileId"] = *msg.TileID
	}
	if res.Error != "" {
		payload["error"] = res.Error
	}
	record := cache.GameActionRecord{
		GameID:        g.ID,
		RoomID:        rm.ID,
		ActorID:       actorID,
		ActionType:    msg.Type,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := cache.PublishGameAction(ctx, record); err != nil {
			// Dropped action records are tolerable; the game is the
			// source of truth while it lives.
			logrus.Warnf("failed to publish action record: %v", err)
		}
	}()
}

func sendJSON(ctx context.Context, c *websocket.Conn, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = c.Write(writeCtx, websocket.MessageText, data)
}
