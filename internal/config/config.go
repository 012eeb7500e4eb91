package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type AppConfig interface {
	Env() string
	IsProduction() bool
	LogLevel() string
}

type HTTPConfig interface {
	Address() string
	AllowedOrigins() []string
	SignInPath() string
}

type PGConfig interface {
	DSN() string
}

type SessionConfig interface {
	SecretKey() []byte
	TTL() time.Duration
	RefreshThreshold() time.Duration
	SecureCookie() bool
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SeedIssue struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	Owner       string `yaml:"owner"`
}

type SeedConfig interface {
	Users() []SeedUser
	Issues() []SeedIssue
}
