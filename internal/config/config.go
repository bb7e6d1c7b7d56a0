package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains bot configuration parameters.
type Config struct {
	Token      string `env:"DISCORD_TOKEN"`
	DataFile   string `env:"DATA_FILE" envDefault:"bot_data.json"`
	HealthPort string `env:"HEALTH_PORT" envDefault:"5000"`
	LogLevel   int    `env:"LOG_LEVEL" envDefault:"0"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
