package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"dashdeck/internal/config"
	"dashdeck/internal/db"
	"dashdeck/internal/logger"
	"dashdeck/internal/model"
	"dashdeck/internal/password"
	"dashdeck/internal/repository"
	"dashdeck/internal/seed"
)

// SEED_ACCOUNTS may hold a JSON array of {"email","password"} objects to
// seed instead of the built-in demo accounts.
func accountsFromEnv() ([]seed.Account, error) {
	raw := os.Getenv("SEED_ACCOUNTS")
	if raw == "" {
		return seed.DefaultAccounts(), nil
	}
	var accounts []seed.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	accounts, err := accountsFromEnv()
	if err != nil {
		log.Fatalf("Failed to parse SEED_ACCOUNTS: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB, cfg.QueryTimeout)
	hasher := password.NewHasher()
	slogger := logger.New(cfg.LogLevel)

	written, err := seed.Run(context.Background(), userRepo, hasher, slogger, accounts)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Accounts written: %d", written)
}
