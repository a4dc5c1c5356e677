package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type DatabaseConfig struct {
	Driver          string        `envconfig:"DRIVER" default:"postgres"`
	URL             string        `envconfig:"URL" required:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
}

type JWTConfig struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
}

type SESConfig struct {
	Region          string `envconfig:"REGION" default:"eu-central-1"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
}

type MailConfig struct {
	Provider     string    `envconfig:"PROVIDER" default:"noop"` // resend, ses, noop
	FromAddress  string    `envconfig:"FROM_ADDRESS" default:"no-reply@eventsphere.app"`
	FromName     string    `envconfig:"FROM_NAME" default:"EventSphere"`
	ResendAPIKey string    `envconfig:"RESEND_API_KEY"`
	SES          SESConfig `envconfig:"SES"`
}

// S3 uyumlu depolama. Endpoint boşsa AWS S3, doluysa (ör. R2) o adres kullanılır.
type StorageConfig struct {
	Bucket          string `envconfig:"BUCKET"`
	Region          string `envconfig:"REGION" default:"auto"`
	Endpoint        string `envconfig:"ENDPOINT"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
}

func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

type StripeConfig struct {
	SecretKey     string `envconfig:"SECRET_KEY"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
	Currency      string `envconfig:"CURRENCY" default:"usd"`
	SuccessURL    string `envconfig:"SUCCESS_URL" default:"http://localhost:5173/tickets/success?session_id={CHECKOUT_SESSION_ID}"`
	CancelURL     string `envconfig:"CANCEL_URL" default:"http://localhost:5173/tickets/cancel"`
}

func (s StripeConfig) Enabled() bool {
	return s.SecretKey != ""
}

type Config struct {
	Env         string         `envconfig:"APP_ENV" default:"development"`
	Port        string         `envconfig:"PORT" default:"8080"`
	CORSOrigins string         `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	RateLimit   int            `envconfig:"RATE_LIMIT" default:"100"`
	SentryDSN   string         `envconfig:"SENTRY_DSN"`
	Database    DatabaseConfig `envconfig:"DB"`
	JWT         JWTConfig      `envconfig:"JWT"`
	Mail        MailConfig     `envconfig:"MAIL"`
	Storage     StorageConfig  `envconfig:"STORAGE"`
	Stripe      StripeConfig   `envconfig:"STRIPE"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig reads .env (outside production) and decodes the environment.
func LoadConfig() (*Config, error) {
	// .env dosyası opsiyonel, production'da ortam değişkenleri kullanılır
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	switch cfg.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return &cfg, nil
}
