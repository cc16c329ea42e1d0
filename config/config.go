package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseDSN string

	SMTPHost     string
	SMTPPort     string
	EmailUser    string
	EmailPass    string
	MailFromName string

	StaticDir   string
	TemplateDir string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Config{
		ServerPort:    getEnv("SERVER_PORT", ":3000"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
		MailFromName:  getEnv("MAIL_FROM_NAME", "StarK team"),
		StaticDir:     getEnv("STATIC_DIR", "./web/static"),
		TemplateDir:   getEnv("TEMPLATE_DIR", "./web/templates"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
	}
}

// Validate rejects configurations that would only fail on the first
// request. Missing SMTP credentials are a startup error, not a
// first-registration error.
func (c Config) Validate() error {
	if c.EmailUser == "" || c.EmailPass == "" {
		return errors.New("EMAIL_USER and EMAIL_PASS must be set")
	}
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
