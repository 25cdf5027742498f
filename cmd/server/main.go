// cmd/server/main.go
package main

import (
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/CagriGunes46/OKEYgame/internal/auth"
	"github.com/CagriGunes46/OKEYgame/internal/cache"
	"github.com/CagriGunes46/OKEYgame/internal/database"
	"github.com/CagriGunes46/OKEYgame/internal/handlers"
	"github.com/CagriGunes46/OKEYgame/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	auth.Init()
	database.ConnectDB()
	if err := cache.ConnectRedis(); err != nil {
		// Redis only feeds the action log; the server runs without it.
		logger.Warnf("Redis unavailable, action log disabled: %v", err)
		cache.Rdb = nil
	}

	srv := handlers.NewServer(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/session/guest", handlers.GuestSessionHandler())
	mux.HandleFunc("/rooms/create", handlers.CreateRoomHandler(srv))
	mux.HandleFunc("/rooms/list", handlers.ListRoomsHandler(srv))
	mux.HandleFunc("/rooms/mine", handlers.MyRoomHandler(srv))
	mux.HandleFunc("/games/state", handlers.GameStateHandler(srv))
	mux.HandleFunc("/rooms/ws/", handlers.RoomWSHandler(logger, srv))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("Server starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, middleware.LogMiddleware(logger)(mux)); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
