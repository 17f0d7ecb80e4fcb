package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUrl         string
	Port          string
	SessionSecret string
	SessionTTL    time.Duration
	AdminUserID   int

	// SMTP settings for the contact form. When SMTPAddr is empty the
	// application falls back to a log-only mailer.
	SMTPAddr string
	SMTPFrom string
	SMTPTo   string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sessionTTL := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			sessionTTL = d
		} else {
			log.Printf("invalid SESSION_TTL %q, using default", raw)
		}
	}

	adminUserID := 1
	if raw := os.Getenv("ADMIN_USER_ID"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			adminUserID = id
		} else {
			log.Printf("invalid ADMIN_USER_ID %q, using default", raw)
		}
	}

	return Config{
		DBUrl:         os.Getenv("DB_URL"),
		Port:          port,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    sessionTTL,
		AdminUserID:   adminUserID,
		SMTPAddr:      os.Getenv("SMTP_ADDR"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		SMTPTo:        os.Getenv("SMTP_TO"),
	}
}
