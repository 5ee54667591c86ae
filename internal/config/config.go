package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-driven setting of the server.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   int    `envconfig:"PORT" default:"8080"`

	PGHost     string `envconfig:"PG_HOST" default:"localhost"`
	PGPort     string `envconfig:"PG_PORT" default:"5432"`
	PGUser     string `envconfig:"PG_USER" default:"postgres"`
	PGPassword string `envconfig:"PG_PASSWORD"`
	PGDatabase string `envconfig:"PG_DB" default:"junta_vecinos"`

	AccessTokenSecret  string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	RefreshTokenSecret string        `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`
	AccessTokenTTL     time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"1h"`
	RefreshTokenTTL    time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	MailHost    string `envconfig:"MAIL_HOST"`
	MailPort    int    `envconfig:"MAIL_PORT" default:"587"`
	MailUser    string `envconfig:"MAIL_USER"`
	MailPass    string `envconfig:"MAIL_PASS"`
	MailFrom    string `envconfig:"MAIL_FROM_ADDRESS"`
	MailReplyTo string `envconfig:"MAIL_REPLY_TO_ADDRESS"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// PostgresDSN assembles the connection string for both sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// MailConfigured reports whether the SMTP transport has everything it needs.
func (c *Config) MailConfigured() bool {
	return c.MailHost != "" && c.MailPort != 0 && c.MailUser != "" && c.MailPass != ""
}
