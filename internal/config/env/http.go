package env

import (
	"fmt"

	"issue_tracker/internal/config"

	"github.com/caarlos0/env/v11"
)

type httpConfig struct {
	Addr       string   `env:"HTTP_ADDRESS" envDefault:":8080"`
	Origins    []string `env:"HTTP_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	SignInPage string   `env:"SIGNIN_PATH" envDefault:"/signin"`
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	var cfg httpConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse http config: %w", err)
	}

	return &cfg, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.Addr
}

func (cfg *httpConfig) AllowedOrigins() []string {
	return cfg.Origins
}

func (cfg *httpConfig) SignInPath() string {
	return cfg.SignInPage
}
