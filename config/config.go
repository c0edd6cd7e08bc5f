package config

import (
	"github.com/caarlos0/env"
)

// Config holds everything read from the environment at process start.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" envDocs:"MySQL DSN, e.g. user:pass@tcp(localhost:3306)/matchup?parseTime=true"`
	Port        string `env:"PORT"                  envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL"             envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
