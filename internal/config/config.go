// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all game and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// GAME CONFIGURATION
// =============================================================================

// GameConfig holds the simulation parameters. Direction is carried as its
// wire name; cmd/server parses it into the engine's enum.
type GameConfig struct {
	Rows             int    // Board rows
	Cols             int    // Board columns
	StartLength      int    // Initial snake length
	PointsPerFood    int    // Score awarded per food
	InitialDirection string // "up", "down", "left" or "right"
	TickRate         int    // Simulation ticks per second
}

// DefaultGame returns the default game configuration.
func DefaultGame() GameConfig {
	return GameConfig{
		Rows:             20,
		Cols:             20,
		StartLength:      3,
		PointsPerFood:    10,
		InitialDirection: "right",
		TickRate:         10,
	}
}

// GameFromEnv returns game configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if v := getEnvInt("SNAKE_ROWS", 0); v > 0 {
		cfg.Rows = v
	}
	if v := getEnvInt("SNAKE_COLS", 0); v > 0 {
		cfg.Cols = v
	}
	if v := getEnvInt("SNAKE_START_LENGTH", 0); v > 0 {
		cfg.StartLength = v
	}
	if v := getEnvInt("SNAKE_POINTS_PER_FOOD", 0); v > 0 {
		cfg.PointsPerFood = v
	}
	if v := os.Getenv("SNAKE_DIRECTION"); v != "" {
		cfg.InitialDirection = v
	}
	if v := getEnvInt("SNAKE_TICK_RATE", 0); v > 0 {
		cfg.TickRate = v
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	EventLogPath string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		EventLogPath: "events.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if path := os.Getenv("EVENT_LOG_PATH"); path != "" {
		cfg.EventLogPath = path
	}

	return cfg
}

// =============================================================================
// RENDER CONFIGURATION
// =============================================================================

// RenderConfig holds frame rendering settings for /api/frame.png.
type RenderConfig struct {
	CellSize int // Pixels per board cell
	Margin   int // Outer margin in pixels
}

// DefaultRender returns the default render configuration.
func DefaultRender() RenderConfig {
	return RenderConfig{
		CellSize: 24,
		Margin:   16,
	}
}

// RenderFromEnv returns render configuration with environment variable overrides.
func RenderFromEnv() RenderConfig {
	cfg := DefaultRender()

	if v := getEnvInt("RENDER_CELL_SIZE", 0); v > 0 {
		cfg.CellSize = v
	}
	if v := getEnvInt("RENDER_MARGIN", -1); v >= 0 {
		cfg.Margin = v
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Game   GameConfig
	Server ServerConfig
	Render RenderConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Game:   GameFromEnv(),
		Server: ServerFromEnv(),
		Render: RenderFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
