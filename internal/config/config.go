package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth. A budgetbook install belongs to one household: access is a
	// shared bcrypt-hashed password plus an email allowlist.
	JWTSecret        string
	JWTExpirationDur time.Duration
	HouseholdEmails  []string
	PasswordHash     string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budgetbook"),
		DBPassword: getEnv("DB_PASSWORD", "budgetbook"),
		DBName:     getEnv("DB_NAME", "budgetbook"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Auth
		JWTSecret:    getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		PasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
	}

	for _, email := range strings.Split(getEnv("HOUSEHOLD_EMAILS", ""), ",") {
		email = strings.TrimSpace(strings.ToLower(email))
		if email != "" {
			config.HouseholdEmails = append(config.HouseholdEmails, email)
		}
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// EmailAllowed reports whether the given email is on the household allowlist.
func (c *Config) EmailAllowed(email string) bool {
	email = strings.ToLower(email)
	for _, allowed := range c.HouseholdEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
