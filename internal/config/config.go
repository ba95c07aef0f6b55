package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	ClientURL   string
	JWTSecret   string

	PlaidClientID     string
	PlaidSecret       string
	PlaidEnv          string
	PlaidProducts     string
	PlaidCountryCodes string
	PlaidWebhookURL   string

	OllamaURL   string
	OllamaModel string
}

func Load() (*Config, error) {
	// .env необязателен: в проде переменные приходят из окружения
	_ = godotenv.Load()

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnvOrDefault("PORT", "4000"),
		ClientURL:   getEnvOrDefault("CLIENT_URL", "http://localhost:5173"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		PlaidClientID:     os.Getenv("PLAID_CLIENT_ID"),
		PlaidSecret:       os.Getenv("PLAID_SECRET"),
		PlaidEnv:          getEnvOrDefault("PLAID_ENV", "sandbox"),
		PlaidProducts:     getEnvOrDefault("PLAID_PRODUCTS", "transactions"),
		PlaidCountryCodes: getEnvOrDefault("PLAID_COUNTRY_CODES", "US"),
		PlaidWebhookURL:   os.Getenv("PLAID_WEBHOOK_URL"),

		OllamaURL:   getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: getEnvOrDefault("OLLAMA_MODEL", "llama3.2"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
