package env

import (
	"fmt"
	"time"

	"issue_tracker/internal/config"

	"github.com/caarlos0/env/v11"
)

// minSecretLength - минимальная длина секрета подписи токенов
const minSecretLength = 32

type sessionConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	Lifetime  time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	Threshold time.Duration `env:"SESSION_REFRESH_THRESHOLD" envDefault:"24h"`

	secure bool
}

// NewSessionConfig - читает секрет и времена жизни сессии.
// Флаг Secure у cookie берется из окружения приложения.
func NewSessionConfig(app config.AppConfig) (config.SessionConfig, error) {
	var cfg sessionConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse session config: %w", err)
	}

	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if cfg.Lifetime <= 0 {
		return nil, fmt.Errorf("invalid session ttl: %s", cfg.Lifetime)
	}
	if cfg.Threshold < 0 || cfg.Threshold >= cfg.Lifetime {
		return nil, fmt.Errorf("invalid refresh threshold %s for ttl %s", cfg.Threshold, cfg.Lifetime)
	}

	cfg.secure = app.IsProduction()

	return &cfg, nil
}

func (cfg *sessionConfig) SecretKey() []byte {
	return []byte(cfg.Secret)
}

func (cfg *sessionConfig) TTL() time.Duration {
	return cfg.Lifetime
}

func (cfg *sessionConfig) RefreshThreshold() time.Duration {
	return cfg.Threshold
}

func (cfg *sessionConfig) SecureCookie() bool {
	return cfg.secure
}
