package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration, loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	// BaseURL is the externally visible portal address, used to build
	// registration links handed out with invitation tokens.
	BaseURL   string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	JWTSecret string `env:"JWT_SECRET_KEY"`
	// TokenExpiryDays is the default invitation lifetime when the issuing
	// admin does not supply one. An explicit request value always wins.
	TokenExpiryDays int `env:"REGISTRATION_TOKEN_EXPIRY_DAYS" envDefault:"7"`

	// Bootstrap admin created on first start if the email is not taken.
	InitialAdminEmail    string `env:"INITIAL_ADMIN_EMAIL"`
	InitialAdminPassword string `env:"INITIAL_ADMIN_PASSWORD"`

	DB DBConfig `envPrefix:"DB_"`
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
}

// DSN assembles the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}
	return cfg, nil
}
