package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/driftline/infinite-library/internal/domain"
	"github.com/joho/godotenv"
)

// Load reads the .env file specified by LIBRARY_ENV (or .env by default),
// then loads the corresponding .secret sidecar if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("LIBRARY_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DataDir is where the settings slot lives. Defaults to the working
// directory.
func DataDir() string {
	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		return "."
	}
	return dir
}

// SessionTTL is how long an idle browsing surface keeps its view state.
// Defaults to an hour.
func SessionTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		return time.Hour
	}
	return time.Duration(minutes) * time.Minute
}

// DefaultModelSlug is the model preset a fresh settings blob starts from.
func DefaultModelSlug() string {
	slug := os.Getenv("DEFAULT_MODEL_SLUG")
	if slug == "" {
		return domain.DefaultModelSlug
	}
	return slug
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// LogFilePath returns the rolling log file location. Empty means console
// only.
func LogFilePath() string {
	return os.Getenv("LOG_FILE_PATH")
}
