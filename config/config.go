package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend names a persistence adapter.
type Backend string

const (
	BackendBolt     Backend = "bolt"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// Config is read from SHOPSMART_* environment variables.
type Config struct {
	Backend     Backend `env:"SHOPSMART_BACKEND" envDefault:"bolt"`
	DBPath      string  `env:"SHOPSMART_DB_PATH" envDefault:"data/shopsmart.db"`
	DatabaseURL string  `env:"SHOPSMART_DATABASE_URL"`
	Addr        string  `env:"SHOPSMART_ADDR" envDefault:"127.0.0.1:8082"`
	BcryptCost  int     `env:"SHOPSMART_BCRYPT_COST" envDefault:"10"`
	Dev         bool    `env:"SHOPSMART_DEV" envDefault:"false"`
}

// Load reads optional dotenv files into the process environment, then
// parses it. Missing files are skipped; variables already set win.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// Parse reads configuration from environment instead of the process env.
func Parse(environment map[string]string) (Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendBolt, BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("SHOPSMART_DB_PATH is required for backend %q", c.Backend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("SHOPSMART_DATABASE_URL is required for backend \"postgres\"")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("SHOPSMART_BCRYPT_COST %d out of range 4..31", c.BcryptCost)
	}
	return nil
}
