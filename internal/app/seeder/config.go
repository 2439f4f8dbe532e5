package seeder

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds catalog import settings.
type Config struct {
	CatalogPath string `yaml:"catalog_path" env:"SEEDER_CATALOG_PATH"`
	DryRun      bool   `yaml:"dry_run"      env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads the catalog import settings. With a path, the YAML file is
// read and SEEDER_* variables override it; a relative catalog_path from the
// file resolves against the file's directory. Without a path only the
// environment is read. An empty catalog_path is left for the --file flag.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("catalog import config from env: %w", err)
		}
		return cfg.validated()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog import config %s does not exist", path)
		}
		return nil, fmt.Errorf("catalog import config %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse catalog import config %s: %w", path, err)
	}

	_, fromEnv := os.LookupEnv("SEEDER_CATALOG_PATH")
	if cfg.CatalogPath != "" && !fromEnv && !filepath.IsAbs(cfg.CatalogPath) {
		cfg.CatalogPath = filepath.Join(filepath.Dir(path), cfg.CatalogPath)
	}
	return cfg.validated()
}

func (c Config) validated() (*Config, error) {
	if c.CatalogPath == "" {
		return &c, nil
	}
	switch strings.ToLower(filepath.Ext(c.CatalogPath)) {
	case ".yaml", ".yml", ".json":
		return &c, nil
	default:
		return nil, fmt.Errorf("catalog_path %q: catalog must be a .yaml, .yml or .json file", c.CatalogPath)
	}
}
