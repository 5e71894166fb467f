package main

import (
	"roulette_server/internal/config" // Custom import path (Config)
	"roulette_server/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Connect to the configured database
	gormDB, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	db.Migrate(gormDB) // Run schema migration
}
