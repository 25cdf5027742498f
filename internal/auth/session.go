// internal/auth/session.go
package auth

import (
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// privateKey and publicKey sign and verify session tokens. Sessions
// are as ephemeral as the games themselves: keys are generated at
// startup and tokens do not survive a restart, which matches a server
// whose games do not either.
var (
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey

	// TOKEN_EXPIRE_TIME_SEC indicates how many seconds until JWT expiration (0 => never).
	TOKEN_EXPIRE_TIME_SEC int
)

// parseTokenExpireTime reads the TOKEN_EXPIRE_TIME env var and sets TOKEN_EXPIRE_TIME_SEC accordingly.
func parseTokenExpireTime() {
	duration := os.Getenv("TOKEN_EXPIRE_TIME")
	if duration == "never" || duration == "0" || duration == "" {
		TOKEN_EXPIRE_TIME_SEC = 0
	} else {
		d, err := time.ParseDuration(duration)
		if err != nil {
			fmt.Printf("failed to parse token expire time: %v\n", err)
			os.Exit(1)
		}
		TOKEN_EXPIRE_TIME_SEC = int(d.Seconds())
	}
}

// Init generates a fresh ed25519 key pair at runtime and sets the token expiration.
func Init() {
	var err error
	publicKey, privateKey, err = ed25519.GenerateKey(nil)
	if err != nil {
		fmt.Printf("failed to generate ed25519 key pair: %v\n", err)
		os.Exit(1)
	}
	parseTokenExpireTime()
}

// Session is the player identity carried by a token: an opaque ID plus
// a display name. The engine never sees the token, only the ID.
type Session struct {
	PlayerID uuid.UUID
	Name     string
}

// NewGuestSession mints an identity for a player who has no token yet.
func NewGuestSession(name string) (Session, string, error) {
	if name == "" {
		name = "Guest"
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return Session{}, "", err
	}
	s := Session{PlayerID: id, Name: name}
	token, err := CreateJWT(s)
	if err != nil {
		return Session{}, "", err
	}
	return s, token, nil
}

// CreateJWT signs a token with "sub" = player ID and "name" = display
// name, expiring per TOKEN_EXPIRE_TIME (no exp claim when unset).
func CreateJWT(s Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  s.PlayerID.String(),
		"name": s.Name,
	}
	if TOKEN_EXPIRE_TIME_SEC > 0 {
		claims["exp"] = time.Now().Add(time.Duration(TOKEN_EXPIRE_TIME_SEC) * time.Second).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return token.SignedString(privateKey)
}

// AuthenticateJWT verifies a token string and returns the session it
// carries.
func AuthenticateJWT(tokenString string) (Session, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("jwt parse error: %w", err)
	}
	if !t.Valid {
		return Session{}, fmt.Errorf("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, fmt.Errorf("invalid jwt claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return Session{}, fmt.Errorf("missing sub in jwt")
	}
	playerID, err := uuid.Parse(sub)
	if err != nil {
		return Session{}, fmt.Errorf("malformed sub in jwt: %w", err)
	}
	name, _ := claims["name"].(string)
	return Session{PlayerID: playerID, Name: name}, nil
}
