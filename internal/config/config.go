package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIKey is the webhook shared secret used when OMNARA_API_KEY is not set.
const DefaultAPIKey = "B7hVKeNKPcVIL0lk"

var defaultOrigins = []string{"https://omnara.com", "http://localhost:3000"}

// Config holds all server settings. Load builds it once at startup and it is
// never mutated afterwards; handlers receive it explicitly instead of reading
// env vars at call sites.
type Config struct {
	APIKey         string
	Port           int
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	LogLevel       string
}

// Load reads the .env file specified by OMNARA_ENV (or .env by default),
// then loads the corresponding .secret file if it exists, and builds the
// Config from the resulting environment.
func Load() (*Config, error) {
	envFile := os.Getenv("OMNARA_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return &Config{
		APIKey:         apiKey(),
		Port:           port(),
		AllowedOrigins: allowedOrigins(),
		RateLimitRPS:   rateLimitRPS(),
		RateLimitBurst: rateLimitBurst(),
		LogLevel:       logLevel(),
	}, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func apiKey() string {
	key := os.Getenv("OMNARA_API_KEY")
	if key == "" {
		return DefaultAPIKey
	}
	return key
}

func port() int {
	p, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		return 8080
	}
	return p
}

// allowedOrigins parses CORS_ALLOWED_ORIGINS as a comma-separated list.
// Defaults to the production and local dev origins if not set.
func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return defaultOrigins
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}

// rateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func rateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// rateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func rateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// logLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func logLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
