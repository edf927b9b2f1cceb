package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/flashdeck/internal/logger"
)

const (
	IDStrategySequence = "sequence"
	IDStrategyUUID     = "uuid"
)

type Config struct {
	Addr            string
	DeckPath        string
	SampleDeckPath  string
	ArchivePath     string
	DefaultDeckName string
	LogLevel        string
	IDStrategy      string
	JSONIndent      int
	// AutosaveInterval of zero disables autosaving in the HTTP server.
	AutosaveInterval time.Duration
	AutosaveArchive  bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DeckPath:        envOr("DECK_PATH", "./data/deck.json"),
		SampleDeckPath:  envOr("SAMPLE_DECK_PATH", "./data/sampleDeck.json"),
		ArchivePath:     envOr("ARCHIVE_PATH", "file:flashdeck.db"),
		DefaultDeckName: envOr("DEFAULT_DECK_NAME", "User deck"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		IDStrategy:      strings.ToLower(envOr("ID_STRATEGY", IDStrategySequence)),
		JSONIndent:      envIntOr("JSON_INDENT", 4),

		AutosaveInterval: envDurationOr("AUTOSAVE_INTERVAL", 0),
		AutosaveArchive:  envBoolOr("AUTOSAVE_ARCHIVE", false),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DeckPath == "" {
		problems = append(problems, "DECK_PATH cannot be empty")
	}
	if c.ArchivePath == "" {
		problems = append(problems, "ARCHIVE_PATH cannot be empty")
	}
	if c.DefaultDeckName == "" {
		problems = append(problems, "DEFAULT_DECK_NAME cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	switch c.IDStrategy {
	case IDStrategySequence, IDStrategyUUID:
	default:
		problems = append(problems, fmt.Sprintf("ID_STRATEGY %q must be %q or %q", c.IDStrategy, IDStrategySequence, IDStrategyUUID))
	}
	if c.JSONIndent < 0 || c.JSONIndent > 16 {
		problems = append(problems, fmt.Sprintf("JSON_INDENT must be between 0 and 16, got %d", c.JSONIndent))
	}
	if c.AutosaveInterval < 0 {
		problems = append(problems, fmt.Sprintf("AUTOSAVE_INTERVAL cannot be negative, got %v", c.AutosaveInterval))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
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

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
