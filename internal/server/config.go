package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the HTTP listener and its guardrails.
//
// Values are read once at startup. The --addr flag takes precedence over
// FIZZLAB_ADDR when both are set; everything else is environment-only.
type Config struct {
	Addr            string        `env:"FIZZLAB_ADDR"             envDefault:":8080"`
	ReadTimeout     time.Duration `env:"FIZZLAB_READ_TIMEOUT"     envDefault:"5s"`
	WriteTimeout    time.Duration `env:"FIZZLAB_WRITE_TIMEOUT"    envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"FIZZLAB_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxSpan         int           `env:"FIZZLAB_MAX_SPAN"         envDefault:"1000000"`
	EnableCORS      bool          `env:"FIZZLAB_ENABLE_CORS"      envDefault:"true"`
	AllowedOrigins  []string      `env:"FIZZLAB_ALLOWED_ORIGINS"  envSeparator:"," envDefault:"*"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse server env: %w", err)
	}
	return cfg, nil
}

// SecurityConfig derives the middleware policy from the loaded
// configuration, falling back to the hardened defaults for anything unset.
func (c Config) SecurityConfig() SecurityConfig {
	sec := DefaultSecurityConfig()
	sec.EnableCORS = c.EnableCORS
	if len(c.AllowedOrigins) > 0 {
		sec.AllowedOrigins = c.AllowedOrigins
	}
	if c.MaxSpan > 0 {
		sec.MaxSpan = c.MaxSpan
	}
	return sec
}
