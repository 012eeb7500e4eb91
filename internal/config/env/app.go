package env

import (
	"fmt"

	"issue_tracker/internal/config"

	"github.com/caarlos0/env/v11"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
}

func NewAppConfig() (config.AppConfig, error) {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse app config: %w", err)
	}

	switch cfg.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return nil, fmt.Errorf("unknown APP_ENV %q", cfg.Environment)
	}

	return &cfg, nil
}

func (cfg *appConfig) Env() string {
	return cfg.Environment
}

func (cfg *appConfig) IsProduction() bool {
	return cfg.Environment == EnvProduction
}

func (cfg *appConfig) LogLevel() string {
	return cfg.Level
}
