package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: sqlite or mysql
	DBPath     string // SQLite database file path
	DBUser     string // Database user (MySQL)
	DBPassword string // Database password (MySQL)
	DBHost     string // Database host (MySQL)
	DBPort     string // Database port (MySQL)
	DBName     string // Database name (MySQL)
	JWTSecret  string // JWT secret key
	AdminUser  string // Administrator username (out-of-band, not a stored row)
	AdminPass  string // Administrator password (plaintext env config, demo-grade)
	RedisAddr  string // Redis server address (cache disabled when empty)
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v // Use the configured value
	}
	return fallback // Fall back to the default
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "4000"),                                    // Application port
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),                                 // Database driver
		DBPath:     getEnv("DB_PATH", "database.sqlite3"),                         // SQLite file path
		DBUser:     os.Getenv("DB_USER"),                                          // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                                      // Database password
		DBHost:     os.Getenv("DB_HOST"),                                          // Database host
		DBPort:     os.Getenv("DB_PORT"),                                          // Database port
		DBName:     os.Getenv("DB_NAME"),                                          // Database name
		JWTSecret:  getEnv("JWT_SECRET", "change_this_secret_in_production"),      // JWT secret key
		AdminUser:  getEnv("ADMIN_USER", "admin"),                                 // Administrator username
		AdminPass:  getEnv("ADMIN_PASS", "ChangeMe123!"),                          // Administrator password
		RedisAddr:  os.Getenv("REDIS_ADDR"),                                       // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                                       // Redis password
		RedisDB:    redisDB,                                                       // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true",                                // Is production environment
	}
}
