package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":8080",
		DeckPath:        "./data/deck.json",
		SampleDeckPath:  "./data/sampleDeck.json",
		ArchivePath:     "file:test.db",
		DefaultDeckName: "User deck",
		LogLevel:        "INFO",
		IDStrategy:      config.IDStrategySequence,
		JSONIndent:      4,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyValues(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "empty addr",
			mutate:        func(c *config.Config) { c.Addr = "" },
			expectedError: "ADDR cannot be empty",
		},
		{
			name:          "empty deck path",
			mutate:        func(c *config.Config) { c.DeckPath = "" },
			expectedError: "DECK_PATH cannot be empty",
		},
		{
			name:          "empty archive path",
			mutate:        func(c *config.Config) { c.ArchivePath = "" },
			expectedError: "ARCHIVE_PATH cannot be empty",
		},
		{
			name:          "empty default deck name",
			mutate:        func(c *config.Config) { c.DefaultDeckName = "" },
			expectedError: "DEFAULT_DECK_NAME cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_EmptySampleDeckPathAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.SampleDeckPath = ""

	assert.NoError(t, cfg.Validate())
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{level: "DEBUG", valid: true},
		{level: "INFO", valid: true},
		{level: "WARN", valid: true},
		{level: "ERROR", valid: true},
		{level: "debug", valid: true},
		{level: "INVALID", valid: false},
		{level: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_IDStrategy(t *testing.T) {
	for _, strategy := range []string{config.IDStrategySequence, config.IDStrategyUUID} {
		cfg := validConfig()
		cfg.IDStrategy = strategy
		assert.NoError(t, cfg.Validate(), strategy)
	}

	cfg := validConfig()
	cfg.IDStrategy = "random"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID_STRATEGY")
}

func TestValidate_JSONIndent(t *testing.T) {
	for _, indent := range []int{-1, 17} {
		cfg := validConfig()
		cfg.JSONIndent = indent
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JSON_INDENT")
	}

	cfg := validConfig()
	cfg.JSONIndent = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AutosaveInterval(t *testing.T) {
	cfg := validConfig()
	cfg.AutosaveInterval = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTOSAVE_INTERVAL")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel:   "INVALID",
		IDStrategy: "random",
		JSONIndent: -2,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DECK_PATH cannot be empty")
	assert.Contains(t, errStr, "ARCHIVE_PATH cannot be empty")
	assert.Contains(t, errStr, "DEFAULT_DECK_NAME cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "ID_STRATEGY")
	assert.Contains(t, errStr, "JSON_INDENT")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DECK_PATH", "custom.json")
	t.Setenv("ID_STRATEGY", "UUID")
	t.Setenv("JSON_INDENT", "2")
	t.Setenv("AUTOSAVE_INTERVAL", "30s")
	t.Setenv("AUTOSAVE_ARCHIVE", "true")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.json", cfg.DeckPath)
	assert.Equal(t, config.IDStrategyUUID, cfg.IDStrategy)
	assert.Equal(t, 2, cfg.JSONIndent)
	assert.Equal(t, 30*time.Second, cfg.AutosaveInterval)
	assert.True(t, cfg.AutosaveArchive)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("JSON_INDENT", "wide")
	t.Setenv("AUTOSAVE_INTERVAL", "soon")
	t.Setenv("AUTOSAVE_ARCHIVE", "perhaps")

	cfg := config.Load()

	assert.Equal(t, 4, cfg.JSONIndent)
	assert.Zero(t, cfg.AutosaveInterval)
	assert.False(t, cfg.AutosaveArchive)
}
