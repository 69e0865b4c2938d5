// Package config reads process configuration from the environment, after
// an optional .env file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Addr            string        `env:"VITRINE_ADDR" envDefault:":4002"`
	ShutdownTimeout time.Duration `env:"VITRINE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	// Content resource: a file under Root, or a URL (which wins).
	Root       string `env:"VITRINE_ROOT" envDefault:"."`
	Content    string `env:"VITRINE_CONTENT" envDefault:"admin/content.json"`
	ContentURL string `env:"VITRINE_CONTENT_URL"`

	// Journal is the SQLite edit journal; ":memory:" keeps it in process.
	Journal string `env:"VITRINE_JOURNAL" envDefault:"vitrine.db"`

	// Edit mode is offered at /?edit=1 only when enabled.
	Edit         bool     `env:"VITRINE_EDIT" envDefault:"false"`
	ScaffoldKeys []string `env:"VITRINE_SCAFFOLD_KEYS" envDefault:"_newContentDefaults" envSeparator:","`
	SiteTitle    string   `env:"VITRINE_SITE_TITLE" envDefault:"Vitrine"`
}

// Load reads dotenv (if present; missing files are ignored) and then the
// environment. Variables already set in the environment win over dotenv.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		// godotenv.Load never overrides variables that are already set.
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Level maps LogLevel to a slog level; unknown names mean info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Logger builds the process logger: text on w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
