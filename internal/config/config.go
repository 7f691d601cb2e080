// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// validate is shared; creating a validator per call rebuilds its struct cache.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Logging is shared by both binaries.
type Logging struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
}

// Server configures cmd/server.
type Server struct {
	Port      int           `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	DBPath    string        `env:"DB_PATH" envDefault:"./data/authgate.db" validate:"required"`
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty" validate:"min=32"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h" validate:"min=1m"`
	Logging
}

// Client configures cmd/authflow.
type Client struct {
	ServerURL string        `env:"AUTHGATE_URL" envDefault:"http://localhost:8080" validate:"required,http_url"`
	Timeout   time.Duration `env:"AUTHFLOW_TIMEOUT" envDefault:"10s" validate:"min=1s"`

	// Token is an already issued bearer token to resume.
	Token string `env:"AUTHGATE_TOKEN"`
	Logging
}

// LoadServer reads the server configuration from the process environment.
func LoadServer() (Server, error) {
	return load[Server](env.Options{})
}

// LoadServerFrom reads the server configuration from environ.
func LoadServerFrom(environ map[string]string) (Server, error) {
	return load[Server](env.Options{Environment: environ})
}

// LoadClient reads the client configuration from the process environment.
func LoadClient() (Client, error) {
	return load[Client](env.Options{})
}

// LoadClientFrom reads the client configuration from environ.
func LoadClientFrom(environ map[string]string) (Client, error) {
	return load[Client](env.Options{Environment: environ})
}

func load[T any](opts env.Options) (T, error) {
	var cfg T
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
