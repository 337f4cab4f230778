package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries all environment-derived settings. It is built once at
// startup and passed to components explicitly.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	BaseURL        string
	InvoiceDir     string
	ResetURLBase   string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	MailFrom       string
	MQTTBroker     string
	MQTTClientID   string
	AllowedOrigins []string
}

// Load builds a Config from the process environment.
func Load() *Config {
	origins := []string{"http://localhost:5173"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		MongoURI:       getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnvOrDefault("MONGO_DB", "rental"),
		JWTSecret:      getEnvOrDefault("SECRET_KEY", "default-secret-key-change-in-production"),
		BaseURL:        getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		InvoiceDir:     getEnvOrDefault("INVOICE_DIR", "invoices"),
		ResetURLBase:   getEnvOrDefault("RESET_URL_BASE", "http://localhost:5173/reset-password"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("EMAIL_USER"),
		SMTPPass:       os.Getenv("EMAIL_PASS"),
		MailFrom:       getEnvOrDefault("MAIL_FROM", os.Getenv("EMAIL_USER")),
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTClientID:   getEnvOrDefault("MQTT_CLIENT_ID", "rental-backend"),
		AllowedOrigins: origins,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
