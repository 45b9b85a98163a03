package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// AIML image generation API
	AIMLAPIKey     string
	AIMLAPIBaseURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string

	// Mercado Pago
	MercadoPagoAccessToken string
	PaymentGatewayMock     bool

	// PIX charges expire this long after creation.
	PixChargeExpiry time.Duration

	// Auth
	JWTSecret string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	expiryMinutes, err := strconv.Atoi(getEnv("PIX_CHARGE_EXPIRY_MINUTES", "30"))
	if err != nil || expiryMinutes <= 0 {
		return nil, fmt.Errorf("invalid PIX_CHARGE_EXPIRY_MINUTES: %q", os.Getenv("PIX_CHARGE_EXPIRY_MINUTES"))
	}

	cfg := &Config{
		AIMLAPIKey:     getEnv("AIML_API_KEY", ""),
		AIMLAPIBaseURL: getEnv("AIML_API_BASE_URL", "https://api.aimlapi.com/v1"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),

		MercadoPagoAccessToken: getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
		PaymentGatewayMock:     getEnvBool("PAYMENT_GATEWAY_MOCK", false),

		PixChargeExpiry: time.Duration(expiryMinutes) * time.Minute,

		JWTSecret: getEnv("JWT_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.AIMLAPIKey == "" {
		return fmt.Errorf("AIML_API_KEY is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !c.PaymentGatewayMock && c.MercadoPagoAccessToken == "" {
		return fmt.Errorf("MERCADOPAGO_ACCESS_TOKEN is required unless PAYMENT_GATEWAY_MOCK is set")
	}
	return nil
}

// SimulationAllowed reports whether the simulate-payment short-circuit may be
// used. Never allowed in production.
func (c *Config) SimulationAllowed() bool {
	return c.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "yes", "on":
		return true
	case "":
		return defaultValue
	}
	return false
}
