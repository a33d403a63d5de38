package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath              string
	LogLevel            string
	DailyXPCap          int
	MasteryAttemptFloor int
	DefaultBatchSize    int
	HistoryWriteWorkers int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		DBPath:              envOr("DB_PATH", "file:practicekit.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		DailyXPCap:          envIntOr("DAILY_XP_CAP", 500),
		MasteryAttemptFloor: envIntOr("MASTERY_ATTEMPT_FLOOR", 3),
		DefaultBatchSize:    envIntOr("DEFAULT_BATCH_SIZE", 10),
		HistoryWriteWorkers: envIntOr("HISTORY_WRITE_WORKERS", 4),
	}
}

// Validate reports every invalid field at once so a bad deploy fails
// with the full picture instead of one error per restart.
func (c Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.DailyXPCap <= 0 {
		problems = append(problems, fmt.Sprintf("DAILY_XP_CAP must be positive (got %d)", c.DailyXPCap))
	}
	if c.MasteryAttemptFloor < 0 {
		problems = append(problems, fmt.Sprintf("MASTERY_ATTEMPT_FLOOR cannot be negative (got %d)", c.MasteryAttemptFloor))
	}
	if c.DefaultBatchSize <= 0 {
		problems = append(problems, fmt.Sprintf("DEFAULT_BATCH_SIZE must be positive (got %d)", c.DefaultBatchSize))
	}
	if c.HistoryWriteWorkers <= 0 {
		problems = append(problems, fmt.Sprintf("HISTORY_WRITE_WORKERS must be positive (got %d)", c.HistoryWriteWorkers))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
