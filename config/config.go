package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/eunsoo8606/texaspapa/crypto"
)

type Config struct {
	Server
	Postgres
	Auth
	Mail
}

type Server struct {
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	CompanyID       int           `env:"COMPANY_ID" env-default:"2"`
}

type Postgres struct {
	Host         string        `env:"DB_HOST" env-default:"localhost"`
	Port         string        `env:"DB_PORT" env-default:"5432"`
	User         string        `env:"DB_USER" env-default:"postgres"`
	Password     string        `env:"DB_PASSWORD"`
	Name         string        `env:"DB_NAME" env-default:"texaspapa"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" env-default:"5s"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
	// EncryptionKey is 64 hex characters (32 bytes decoded).
	EncryptionKey string `env:"ENCRYPTION_KEY"`
}

type Mail struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" env-default:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	AdminTo  string `env:"MAIL_ADMIN_TO"`
}

// Load reads .env (when present) and the process environment, then
// validates the secrets the core cannot run without.
func Load() (*Config, error) {
	// Non-fatal in production: the environment is usually injected there.
	_ = godotenv.Load()

	conf := &Config{}
	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	if conf.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if _, err := conf.DecodeEncryptionKey(); err != nil {
		return nil, err
	}

	return conf, nil
}

// DecodeEncryptionKey decodes and length-checks the AES key. A malformed
// key fails startup, not the first request.
func (c *Config) DecodeEncryptionKey() ([]byte, error) {
	key, err := hex.DecodeString(c.Auth.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex encoded: %w", err)
	}
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to %d bytes, got %d", crypto.KeySize, len(key))
	}
	return key, nil
}

func (p Postgres) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name)
}
