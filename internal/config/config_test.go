package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.Broker.Enabled)
	assert.Equal(t, "booking.confirmed", cfg.Broker.Queue)
	assert.True(t, cfg.Cache.Methods["GET"])
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestFromEnvRequiresSecretInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestFromEnvRejectsBadBcryptCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestBrokerEnabledByURL(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "amqp://u:p@broker:5672/")
	t.Setenv("BROKER_ENABLED", "")
	b := LoadBrokerConfig()
	assert.True(t, b.Enabled)
	assert.Equal(t, "amqp://u:p@broker:5672/", b.URL)
}

func TestRateLimitClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	rl := LoadRateLimitConfig()
	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 10*time.Second, rl.TTL)
}

func TestEnvBoolParsing(t *testing.T) {
	t.Setenv("X_FLAG", "off")
	assert.False(t, envBool("X_FLAG", true))
	t.Setenv("X_FLAG", "garbage")
	assert.True(t, envBool("X_FLAG", true))
}
