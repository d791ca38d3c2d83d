package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Stripe      StripeConfig
	Fulfillment FulfillmentConfig
	Scheduling  SchedulingConfig
	Email       EmailConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type CORSConfig struct {
	AllowedOrigin string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type NATSConfig struct {
	URL string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type FulfillmentConfig struct {
	RelayURL string
	Timeout  time.Duration
}

type SchedulingConfig struct {
	HoldTTL         time.Duration
	MinLeadDays     int
	SlotGranularity time.Duration
	Rooms           []string
	RoomCalendars   map[string]string
	Engineers       []string
}

type EmailConfig struct {
	MailerSendKey string
	FromName      string
	FromEmail     string
	DevMode       bool // print emails to logs instead of sending
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			SuccessURL:    getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:5173/thank-you"),
			CancelURL:     getEnv("CHECKOUT_CANCEL_URL", "http://localhost:5173/booking"),
		},
		Fulfillment: FulfillmentConfig{
			RelayURL: getEnv("FULFILLMENT_RELAY_URL", ""),
			Timeout:  getDuration("FULFILLMENT_TIMEOUT", 10*time.Second),
		},
		Scheduling: SchedulingConfig{
			HoldTTL:         getDuration("HOLD_TTL", 15*time.Minute),
			MinLeadDays:     getInt("MIN_LEAD_DAYS", 2),
			SlotGranularity: getDuration("SLOT_GRANULARITY", time.Hour),
			Rooms:           getList("ROOMS", "Studio A"),
			RoomCalendars:   getPairs("ROOM_CALENDARS"),
			Engineers:       getList("ENGINEERS", ""),
		},
		Email: EmailConfig{
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			FromName:      getEnv("MAILER_FROM_NAME", "Brightroom Studio"),
			FromEmail:     getEnv("MAILER_FROM_EMAIL", ""),
			DevMode:       getBool("EMAIL_DEV_MODE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getList parses a comma-separated env value into trimmed entries.
func getList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getPairs parses "name=value;name=value" env values, e.g. per-room calendar IDs.
func getPairs(key string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(getEnv(key, ""), ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			name := strings.TrimSpace(kv[0])
			val := strings.TrimSpace(kv[1])
			if name != "" && val != "" {
				out[name] = val
			}
		}
	}
	return out
}
