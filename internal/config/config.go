package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type BotConfig struct {
	Token   string
	Mode    string // polling | webhook
	Workers int
}

type LogConfig struct {
	Level  string // trace|debug|info|warn|error
	Format string // json|console
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type TelegramChannelsConfig struct {
	ChannelID string // main content channel, e.g. "@mychannel" or "-100..."
	GroupID   string // discussion group
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
}

type HTTPConfig struct {
	Port    int
	BaseURL string // externally reachable, used for checkout redirects
}

type Config struct {
	Bot      BotConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Channels TelegramChannelsConfig
	Stripe   StripeConfig
	HTTP     HTTPConfig
}

// Load reads configuration from the environment, after merging an optional
// .env file. Missing required values fail fast with a named error so a
// misconfigured deploy dies at startup rather than mid-flow.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bot: BotConfig{
			Token:   os.Getenv("TELEGRAM_BOT_TOKEN"),
			Mode:    strings.ToLower(envOr("BOT_MODE", "polling")),
			Workers: envIntOr("BOT_WORKERS", 8),
		},
		Log: LogConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envIntOr("REDIS_DB", 0),
		},
		Channels: TelegramChannelsConfig{
			ChannelID: os.Getenv("CHANNEL_ID"),
			GroupID:   os.Getenv("GROUP_ID"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			PriceID:       os.Getenv("STRIPE_PRICE_ID"),
		},
		HTTP: HTTPConfig{
			Port:    envIntOr("HTTP_PORT", 8080),
			BaseURL: strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		},
	}

	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Mode != "polling" && cfg.Bot.Mode != "webhook" {
		return nil, fmt.Errorf("BOT_MODE must be polling or webhook, got %q", cfg.Bot.Mode)
	}

	required := []struct {
		name  string
		value string
	}{
		{"TELEGRAM_BOT_TOKEN", cfg.Bot.Token},
		{"DATABASE_URL", cfg.Database.URL},
		{"REDIS_URL", cfg.Redis.URL},
		{"CHANNEL_ID", cfg.Channels.ChannelID},
		{"GROUP_ID", cfg.Channels.GroupID},
		{"BASE_URL", cfg.HTTP.BaseURL},
		{"STRIPE_SECRET_KEY", cfg.Stripe.SecretKey},
		{"STRIPE_WEBHOOK_SECRET", cfg.Stripe.WebhookSecret},
		{"STRIPE_PRICE_ID", cfg.Stripe.PriceID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%s is required", r.name)
		}
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
