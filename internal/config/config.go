package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime settings read from the environment
type Config struct {
	Port                    string
	FirebaseCredentialsPath string
	FirebaseProjectID       string
	SessionSecret           string
	SessionTTL              time.Duration
	SuperAdminEmails        []string
	Location                *time.Location
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	AuctionCacheTTL         time.Duration
	RabbitMQURL             string
	CORSAllowedOrigins      []string
}

// Load reads configuration from environment variables, applying defaults
// for everything optional.
func Load() Config {
	loc, err := time.LoadLocation(getenv("APP_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		loc = time.UTC
	}

	return Config{
		Port:                    getenv("PORT", "8080"),
		FirebaseCredentialsPath: getenv("FIREBASE_CREDENTIALS_PATH", "./serviceAccountKey.json"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		SessionSecret:           os.Getenv("SESSION_SECRET"),
		SessionTTL:              parseDur(getenv("SESSION_TTL", "720h"), 720*time.Hour),
		SuperAdminEmails:        splitList(os.Getenv("SUPERADMIN_EMAILS")),
		Location:                loc,
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 atoi(getenv("REDIS_DB", "0")),
		AuctionCacheTTL:         parseDur(getenv("AUCTION_CACHE_TTL", "60s"), time.Minute),
		RabbitMQURL:             os.Getenv("RABBITMQ_URL"),
		CORSAllowedOrigins:      splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
