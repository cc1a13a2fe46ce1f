package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/user-account-service/config"
	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

func main() {
	email := flag.String("email", "demo@example.com", "seed user email")
	phone := flag.String("phone", "081200000000", "seed user phone")
	password := flag.String("password", "password123", "seed user password")
	name := flag.String("name", "Demo User", "seed user name")
	address := flag.String("address", "Jl. Sudirman 1, Jakarta", "seed user address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	normalized := entity.NormalizeEmail(*email)
	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, name, phone, address, password)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT users_email_key
		DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone, address = EXCLUDED.address, password = EXCLUDED.password
		RETURNING id
	`, normalized, *name, *phone, *address, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s phone=%s password=%s\n", id, normalized, *phone, *password)
}
