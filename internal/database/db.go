// internal/database/db.go
package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the global connection pool. When DATABASE_URL is unset the
// pool stays nil and result history is disabled; live games never
// depend on the database.
var DB *pgxpool.Pool

// ConnectDB opens the pool from DATABASE_URL and pings it. Fatal on a
// configured-but-unreachable database; silently off when unconfigured.
func ConnectDB() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Printf("DATABASE_URL not set; result history disabled")
		return
	}

	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatalf("unable to parse pgx config: %v", err)
	}

	DB, err = pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalf("unable to create pgx pool: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := DB.Ping(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}

	log.Printf("Connected to database")
}
