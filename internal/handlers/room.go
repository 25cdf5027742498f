// internal/handlers/room.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// CreateRoomHandler opens a new room hosted by the authenticated
// player. The caller still joins by connecting to the room WebSocket;
// creating only registers the table.
func CreateRoomHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sess, err := sessionFromRequest(r)
		if err != nil {
			http.Error(w, "missing or invalid auth token", http.StatusUnauthorized)
			return
		}

		rm := s.Rooms.Create(sess.PlayerID)
		s.Games.AddGame(rm.Game)
		s.Logger.WithField("room", rm.ID).WithField("host", sess.PlayerID).Info("room created")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rm)
	}
}

// ListRoomsHandler returns summaries of all active rooms.
func ListRoomsHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.Rooms.List())
	}
}

// MyRoomHandler returns the room the authenticated player is seated
// in, so a reloading client can find its way back.
func MyRoomHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			http.Error(w, "missing or invalid auth token", http.StatusUnauthorized)
			return
		}
		rm := s.Rooms.FindByPlayer(sess.PlayerID)
		if rm == nil {
			http.Error(w, "not seated in any room", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rm)
	}
}

// GameStateHandler returns a state snapshot for one game by game ID.
// Authenticated callers get their private view, anyone else the public
// one.
func GameStateHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, err := uuid.Parse(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, "missing or malformed game id", http.StatusBadRequest)
			return
		}
		g, ok := s.Games.GetGame(gameID)
		if !ok {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		forPlayer := uuid.Nil
		if sess, err := sessionFromRequest(r); err == nil {
			forPlayer = sess.PlayerID
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(g.StateView(forPlayer))
	}
}
