package env

import (
	"fmt"
	"os"

	"issue_tracker/internal/config"

	"gopkg.in/yaml.v3"
)

type seedConfig struct {
	SeedUsers  []config.SeedUser  `yaml:"users"`
	SeedIssues []config.SeedIssue `yaml:"issues"`
}

// NewSeedConfigFromYAML - читает демо-данные для заполнения базы
func NewSeedConfigFromYAML(path string) (config.SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var cfg seedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	owners := make(map[string]struct{}, len(cfg.SeedUsers))
	for _, u := range cfg.SeedUsers {
		owners[u.Email] = struct{}{}
	}
	for _, issue := range cfg.SeedIssues {
		if _, ok := owners[issue.Owner]; !ok {
			return nil, fmt.Errorf("issue %q: unknown owner %q", issue.Title, issue.Owner)
		}
	}

	return &cfg, nil
}

func (cfg *seedConfig) Users() []config.SeedUser {
	return cfg.SeedUsers
}

func (cfg *seedConfig) Issues() []config.SeedIssue {
	return cfg.SeedIssues
}
