// internal/handlers/session.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/CagriGunes46/OKEYgame/internal/auth"
)

// GuestSessionHandler mints an ephemeral player identity and sets it
// as an auth cookie. Bodies are optional: {"name": "..."}.
func GuestSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err.Error() != "EOF" {
			http.Error(w, "bad session request payload", http.StatusBadRequest)
			return
		}

		sess, token, err := auth.NewGuestSession(body.Name)
		if err != nil {
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			HttpOnly: true,
			Path:     "/",
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"playerId": sess.PlayerID,
			"name":     sess.Name,
			"token":    token,
		})
	}
}

// sessionFromRequest authenticates a request via the auth_token cookie
// or an Authorization bearer header.
func sessionFromRequest(r *http.Request) (auth.Session, error) {
	if c, err := r.Cookie("auth_token"); err == nil && c.Value != "" {
		return auth.AuthenticateJWT(c.Value)
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return auth.AuthenticateJWT(strings.TrimPrefix(h, "Bearer "))
	}
	return auth.Session{}, http.ErrNoCookie
}
