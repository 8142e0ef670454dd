package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

//Config holds the server settings
type Config struct {
	Addr            string        `env:"SPORTIVA_ADDR" envDefault:"0.0.0.0" validate:"required"`
	Port            int           `env:"SPORTIVA_PORT" envDefault:"8080" validate:"gt=0,lte=65535"`
	Backend         string        `env:"SPORTIVA_BACKEND" envDefault:"bolt" validate:"oneof=bolt sqlite memory"`
	Path            string        `env:"SPORTIVA_PATH" envDefault:"sportiva.db" validate:"required_unless=Backend memory"`
	SessionDuration time.Duration `env:"SPORTIVA_SESSION_DURATION" envDefault:"8h" validate:"gt=0"`
	AdminPassword   string        `env:"SPORTIVA_ADMIN_PASSWORD" envDefault:"admin123" validate:"required"`
}

//ListenAddr returns the host:port the server listens on
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Addr, c.Port)
}

//Load reads the Config from the environment, after loading a .env file in the working directory if one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Unable to load .env file:", err)
	}

	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

//Validate checks c for missing or invalid settings
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value: %v)", e.Field(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
