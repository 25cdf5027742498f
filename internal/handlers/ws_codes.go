// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the room handlers. These give
// clients more specific reasons for closure than the standard codes.
const (
	BadSubprotocolError   = 3000 // Client connected with an unsupported subprotocol.
	InvalidAuthTokenError = 3001 // Provided auth token was invalid or expired.
	InvalidRoomIDError    = 3002 // Target room ID in the WS URL is malformed or unknown.
	RoomFullError         = 3003 // Room already seats four players.
)
