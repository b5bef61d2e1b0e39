package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// MongoDB Configuration
	MongoURI    string
	MongoDBName string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	AdminEmail    string // Recipient for admin notifications
	// Redis Configuration (optional, enables the queue-backed dispatcher)
	RedisURL      string
	RedisPassword string
	// Notification Dispatch Configuration
	EmailWorkers   int
	EmailQueueSize int
	// CORS
	FrontendURL string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGODB_DB", "vastorn-ots"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", getEnv("EMAIL_USER", "")),
		SMTPPassword:  getEnv("SMTP_PASSWORD", getEnv("EMAIL_PASSWORD", "")),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", getEnv("EMAIL_USER", "")),
		AdminEmail:    getEnv("ADMIN_EMAIL", "support@vastorn.com"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Notification Dispatch Configuration
		EmailWorkers:   getEnvInt("EMAIL_WORKERS", 2),
		EmailQueueSize: getEnvInt("EMAIL_QUEUE_SIZE", 64),
		// CORS
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8000"),
	}

	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Println("WARNING: SMTP credentials missing. Outbound email will be logged instead of sent.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Notifications will use the in-process dispatcher.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
