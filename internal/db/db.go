package db

import (
	"roulette_server/internal/config" // Application configuration
	"roulette_server/internal/domain" // Importing domain models

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to the configured database (SQLite file by default, MySQL when configured)
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "mysql" {
		// Data Source Name (DSN) for MySQL connection
		dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
	// Default: file-based SQLite, schema created next to the binary
	return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) {
	// AutoMigrate will create the users table, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
