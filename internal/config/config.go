package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	// Motion
	TickRate    int
	Sensitivity float64
	Friction    float64

	// Sessions
	MaxSessions       int
	PermissionTimeout time.Duration
}

// Load reads the configuration from the environment. Values in a .env file
// are used for keys not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnvInt("PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		TickRate:    getEnvIntInRange("TICK_RATE", 60, 1, 1000),
		Sensitivity: getEnvFloat("SENSITIVITY", 0.5),
		Friction:    getEnvFloat("FRICTION", 0.98),

		MaxSessions:       getEnvInt("MAX_SESSIONS", 1000),
		PermissionTimeout: getEnvDuration("PERMISSION_TIMEOUT", 0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvIntInRange(key string, fallback, lo, hi int) int {
	v := getEnvInt(key, fallback)
	if v < lo || v > hi {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
