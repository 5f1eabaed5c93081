package common

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the engine's on-disk configuration, loaded once at startup from
// an inkwell.toml file (or the path given on the command line).
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	Cache       CacheConfig       `toml:"cache"`
	Interpreter InterpreterConfig `toml:"interpreter"`
	DOM         DOMConfig         `toml:"dom"`
}

// ServerConfig holds the host and port shown as the service URL in the
// startup banner. Nothing listens on them: the MCP server speaks over stdio.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoggingConfig configures arbor's writer set.
type LoggingConfig struct {
	Output     []string `toml:"output"`
	Level      string   `toml:"level"`
	TimeFormat string   `toml:"time_format"`
}

// CacheConfig bounds the compiled-render cache.
type CacheConfig struct {
	MaxEntries      int64  `toml:"max_entries"`
	TTLSeconds      int64  `toml:"ttl_seconds"`
	JanitorSchedule string `toml:"janitor_schedule"`
}

// InterpreterConfig selects and configures the prompt-resolution backend.
type InterpreterConfig struct {
	Provider     string `toml:"provider"` // "claude" | "gemini" | "" (disabled)
	Model        string `toml:"model"`
	ClaudeAPIKey string `toml:"claude_api_key"`
	GeminiAPIKey string `toml:"gemini_api_key"`
	MaxRetries   int    `toml:"max_retries"`
	RateLimit    int    `toml:"rate_limit"` // requests per second, 0 = default
}

// DOMConfig names the adapter that backs interfaces.DOMHandle. The CLI
// attaches a DOM handle only for "static" (goquery over the -html file); any
// other value, "chromedp" included, leaves the page without a DOM handle.
type DOMConfig struct {
	Backend string `toml:"backend"` // "static" (goquery) | "chromedp"
}

// DefaultConfig returns the configuration a fresh install runs with: no
// interpreter wired (prompt expressions resolve to empty), a modestly
// bounded cache, and the static goquery DOM backend.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8420},
		Logging: LoggingConfig{
			Output:     []string{"stdout"},
			Level:      "info",
			TimeFormat: "15:04:05.000",
		},
		Cache: CacheConfig{
			MaxEntries:      10000,
			TTLSeconds:      3600,
			JanitorSchedule: "*/10 * * * *",
		},
		Interpreter: InterpreterConfig{
			Provider:   "",
			MaxRetries: 5,
			RateLimit:  2,
		},
		DOM: DOMConfig{Backend: "static"},
	}
}

// LoadConfig reads and parses a TOML config file, applying it on top of
// DefaultConfig so an omitted section keeps its default.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
