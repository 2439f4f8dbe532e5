package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	defaultConfigPath = "./config.yaml"
	defaultEnvFile    = ".env"
)

// Load reads the configuration file named by CONFIG_PATH (default
// ./config.yaml) and the environment. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom reads configuration with priority ENV > YAML > env-default tags.
//
// The dotenv file (ENV_FILE, default .env) is loaded into the process
// environment first and never overrides variables already set. An empty path
// falls back to ./config.yaml and tolerates its absence; an explicit path must
// exist.
func LoadFrom(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	var cfg Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv() error {
	file, explicit := os.LookupEnv("ENV_FILE")
	if !explicit || file == "" {
		file = defaultEnvFile
	}
	err := godotenv.Load(file)
	if err == nil || (errors.Is(err, fs.ErrNotExist) && file == defaultEnvFile) {
		return nil
	}
	return fmt.Errorf("config: load %s: %w", file, err)
}
