package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Auth     Auth
	Catalog  Catalog
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"storefront"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}

// LoadPostgres parses only the database section of the environment, for
// tooling that touches nothing else.
func LoadPostgres() (Postgres, error) {
	_ = godotenv.Load()

	var config Postgres

	if err := env.Parse(&config); err != nil {
		return Postgres{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
