package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultJWTIssuer identifies tokens minted by this service.
const DefaultJWTIssuer = "company-research"

// JWTConfig holds configuration for API bearer tokens.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER and JWT_EXPIRATION_HOURS (default: 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24"
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = DefaultJWTIssuer
	}

	config := &JWTConfig{
		Secret:          secret,
		Issuer:          issuer,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// OptionalJWTConfig returns nil when JWT_SECRET is unset, which leaves the
// research endpoints open.
func OptionalJWTConfig() (*JWTConfig, error) {
	if os.Getenv("JWT_SECRET") == "" {
		return nil, nil
	}
	return NewJWTConfig()
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
