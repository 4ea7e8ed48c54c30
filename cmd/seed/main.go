package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ramah83/ST-System-Bank/config"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
)

// Seeds the base account types and a bank administrator. Staff users never
// get a bank account, so the admin is just a user row with flags set.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	types := []struct {
		name      string
		maxAmount string
		rate      string
		frequency int
	}{
		{"Savings", "1500", "2.5", 12},
		{"Current", "5000", "0", 1},
		{"Fixed Deposit", "500", "6.0", 4},
	}
	for _, t := range types {
		var id string
		err := db.QueryRow(`
			INSERT INTO account_types (name, maximum_withdrawal_amount, annual_interest_rate, interest_calculation_per_year)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET
				maximum_withdrawal_amount = EXCLUDED.maximum_withdrawal_amount,
				annual_interest_rate = EXCLUDED.annual_interest_rate,
				interest_calculation_per_year = EXCLUDED.interest_calculation_per_year
			RETURNING id
		`, t.name, t.maxAmount, t.rate, t.frequency).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed account type %s: %v", t.name, err)
		}
		fmt.Printf("account type ensured: %s id=%s\n", t.name, id)
	}

	email := "admin@stsystembank.local"
	password := "admin-pass-change-me"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, is_staff, is_superuser, is_active)
		VALUES ($1, $2, 'Bank', 'Admin', TRUE, TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_staff = TRUE, is_superuser = TRUE
		RETURNING id
	`, email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("admin ensured: id=%s email=%s password=%s\n", adminID, email, password)
}
