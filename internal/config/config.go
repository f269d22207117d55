package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/salesdesk/internal/contract"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"SalesDesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"salesdesk"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret        string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
		RefreshWindow time.Duration `envconfig:"REFRESH_WINDOW" default:"1h"`

		// Bootstrap creates this manager account on startup when it does not exist yet.
		BootstrapEmail    string `envconfig:"BOOTSTRAP_MANAGER_EMAIL"`
		BootstrapPassword string `envconfig:"BOOTSTRAP_MANAGER_PASSWORD"`
	}

	Storage struct {
		AttachmentDir  string `envconfig:"ATTACHMENT_DIR" default:"./data/attachments"`
		MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	}

	// Redis is optional: an empty address disables the contract cache.
	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		DB       int           `envconfig:"REDIS_DB" default:"0"`
		TTL      time.Duration `envconfig:"REDIS_TTL" default:"30s"`
	}

	Policy struct {
		AllowOverLimitOverride bool                      `envconfig:"ALLOW_OVER_LIMIT_OVERRIDE" default:"true"`
		Completion             contract.CompletionPolicy `envconfig:"COMPLETION_POLICY" default:"warn"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) validate() error {
	switch c.Policy.Completion {
	case contract.CompletionWarn, contract.CompletionBlock:
	default:
		return fmt.Errorf("COMPLETION_POLICY must be warn or block, got %q", c.Policy.Completion)
	}

	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}

	if c.Auth.RefreshWindow < 0 {
		return errors.New("REFRESH_WINDOW must not be negative")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
