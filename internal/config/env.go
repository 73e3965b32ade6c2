package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/gcanale/agendabot/internal/timeutil"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	TelegramToken string

	// LLM provider: "claude" or "openai"
	LLMProvider     string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	LLMModel        string
	LLMTemperature  float64

	// Google OAuth (calendar + gmail send)
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Notification email
	NotifyEmailTo   string
	NotifyEmailFrom string
	ResendAPIKey    string

	// Optional with defaults
	DBPath            string
	HealthPort        int
	HealthEnabled     bool
	Timezone          string
	ReconcileInterval int // minutes, 0 disables the reconcile worker
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		LLMProvider:     getEnvOrDefault("AGENDA_LLM_PROVIDER", "claude"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		LLMModel:        os.Getenv("AGENDA_LLM_MODEL"),
		LLMTemperature:  getEnvAsFloatOrDefault("AGENDA_LLM_TEMPERATURE", 0.1),

		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials/credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./credentials/token.json"),

		NotifyEmailTo:   os.Getenv("AGENDA_NOTIFY_EMAIL_TO"),
		NotifyEmailFrom: os.Getenv("AGENDA_NOTIFY_EMAIL_FROM"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),

		// Optional with defaults
		DBPath:            getEnvOrDefault("AGENDA_DB_PATH", "./agenda.db"),
		HealthPort:        getEnvAsIntOrDefault("AGENDA_HEALTH_PORT", 10000),
		HealthEnabled:     getEnvAsBoolOrDefault("AGENDA_HEALTH_ENABLED", os.Getenv("ENV") == "prod"),
		Timezone:          getEnvOrDefault("AGENDA_TIMEZONE", timeutil.DefaultTimezone),
		ReconcileInterval: getEnvAsIntOrDefault("AGENDA_RECONCILE_INTERVAL_MINUTES", 0),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
