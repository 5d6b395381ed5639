package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AMQPConfig struct {
	User     string
	Password string
	Host     string
	Port     string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	OpsEmail string
}

// Config is built once at startup and passed down explicitly; no other
// package reads the environment.
type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	AMQP           AMQPConfig
	SMTP           SMTPConfig
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Addr:           getenv("ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       time.Duration(getenvInt("TOKEN_TTL_MIN", 60)) * time.Minute,
		AllowedOrigins: strings.Split(getenv("ALLOWED_ORIGINS", "*"), ","),
		AMQP: AMQPConfig{
			User:     getenv("AMQP_USER", "guest"),
			Password: getenv("AMQP_PASS", "guest"),
			Host:     getenv("AMQP_HOST", "localhost"),
			Port:     getenv("AMQP_PORT", "5672"),
		},
		SMTP: SMTPConfig{
			Host:     getenv("MAIL_HOST", "localhost"),
			Port:     getenvInt("MAIL_PORT", 587),
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			From:     getenv("MAIL_FROM", "no-reply@propline.io"),
			OpsEmail: getenv("MAIL_OPS", "sales-ops@propline.io"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
