package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ryanly/mirum-notify/config"
	"github.com/ryanly/mirum-notify/pkg/helpers"
)

// Seeds a demo household plus a trigger token for exercising the endpoints
// locally.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	members := []struct {
		Name  string
		Email string
	}{
		{"Ryan", "ryan@ryanly.ca"},
		{"Demo Roommate", "roommate@example.com"},
	}

	for _, m := range members {
		// Stable id per address keeps reruns idempotent.
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+m.Email)).String()
		var got string
		err := db.QueryRow(`
			INSERT INTO profiles (id, name, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, id, m.Name, m.Email).Scan(&got)
		if err != nil {
			log.Fatalf("failed to seed profile %s: %v", m.Email, err)
		}
		fmt.Printf("seeded profile: id=%s name=%s email=%s\n", got, m.Name, m.Email)
	}

	tokens := helpers.NewTriggerTokenManager(cfg.TriggerSecret, cfg.TriggerTTL)
	token, err := tokens.Generate("seed")
	if err != nil {
		log.Fatalf("failed to mint trigger token: %v", err)
	}
	fmt.Printf("trigger token (valid %s): %s\n", cfg.TriggerTTL, token)
}
