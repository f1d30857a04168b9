package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type ChatConfig struct {
	// EncryptionKey secures message bodies at rest. Empty means pass-through
	// mode (bodies stored as plaintext, flagged unencrypted).
	EncryptionKey string

	// BotReplyDelaySeconds paces automated replies to feel less instant.
	BotReplyDelaySeconds int

	HoursCacheTTLMinutes      int
	SessionIdleTimeoutMinutes int

	// EscalationEmail receives the live-agent escalation notifications.
	EscalationEmail string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Support Chat"),
		},
		Chat: ChatConfig{
			EncryptionKey:             getEnv("CHAT_ENCRYPTION_KEY", ""),
			BotReplyDelaySeconds:      getEnvAsInt("BOT_REPLY_DELAY_SECONDS", 2),
			HoursCacheTTLMinutes:      getEnvAsInt("HOURS_CACHE_TTL_MINUTES", 5),
			SessionIdleTimeoutMinutes: getEnvAsInt("SESSION_IDLE_TIMEOUT_MINUTES", 30),
			EscalationEmail:           getEnv("ESCALATION_EMAIL", ""),
		},
	}
}

// Warnings surfaces degraded-mode configuration instead of letting it pass
// silently. Running production without an encryption key stores chat bodies
// in plaintext.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Chat.EncryptionKey == "" {
		msg := "CHAT_ENCRYPTION_KEY not set: message bodies will be stored unencrypted"
		if c.App.Environment == "production" {
			msg += " (NOT recommended in production)"
		}
		warnings = append(warnings, msg)
	}
	if c.SMTP.Host == "" {
		warnings = append(warnings, "SMTP_HOST not set: escalation emails disabled")
	}
	return warnings
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
