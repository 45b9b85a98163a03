package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofocinho-backend/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AIML_API_KEY", "test-aiml-key")
	t.Setenv("SUPABASE_URL", "https://test.supabase.co")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "test-publishable-key")
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "test-mp-token")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://api.aimlapi.com/v1", cfg.AIMLAPIBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.PixChargeExpiry)
	assert.False(t, cfg.PaymentGatewayMock)
	assert.True(t, cfg.SimulationAllowed())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MercadoPagoTokenOptionalWithMock(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.PaymentGatewayMock)
}

func TestLoad_InvalidChargeExpiry(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PIX_CHARGE_EXPIRY_MINUTES", "zero")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PIX_CHARGE_EXPIRY_MINUTES")
}

func TestSimulationAllowed_NeverInProduction(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.SimulationAllowed())
}
