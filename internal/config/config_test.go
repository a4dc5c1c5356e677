package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/eventsphere")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 168*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "noop", cfg.Mail.Provider)
	assert.False(t, cfg.Storage.Enabled())
	assert.False(t, cfg.Stripe.Enabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigNested(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MAIL_PROVIDER", "ses")
	t.Setenv("MAIL_SES_REGION", "us-east-1")
	t.Setenv("STORAGE_BUCKET", "event-images")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "ses", cfg.Mail.Provider)
	assert.Equal(t, "us-east-1", cfg.Mail.SES.Region)
	assert.True(t, cfg.Storage.Enabled())
	assert.True(t, cfg.Stripe.Enabled())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DB_URL", "")
		os.Unsetenv("DB_URL")
		t.Setenv("JWT_SECRET", "secret")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_URL", "x")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_DRIVER", "oracle")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
