package main

import (
	"os"

	"server/cmd/migration/initialize"
	"server/cmd/migration/seed"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
)

func main() {
	log := logger.New("migration")

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	if err := initialize.InitializeTables(db, cfg, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if cfg.Environment == "development" {
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			log.Er("failed to seed development data", err)
			os.Exit(1)
		}
	}
}
