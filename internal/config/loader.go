package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load resolves the full configuration once at startup and validates it.
// Environment variables win over the YAML file, which wins over
// env-default tags. See read for how the file is located.
func Load() (*Config, error) {
	var cfg Config

	if err := read(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// LoadAuth reads only the auth section from the same sources as Load.
// Tools that sign tokens use it so they do not need database settings.
func LoadAuth() (*AuthConfig, error) {
	var cfg struct {
		Auth AuthConfig `yaml:"auth"`
	}

	if err := read(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Auth.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg.Auth, nil
}

// defaultPath is tried when CONFIG_PATH is unset. A missing default file
// is not an error; a missing CONFIG_PATH file is.
const defaultPath = "./config.yaml"

func read(dst any) error {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path, explicit = defaultPath, false
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, dst); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(dst); err != nil {
			return fmt.Errorf("config: read env: %w", err)
		}
	}
	return nil
}
