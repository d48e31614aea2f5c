package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrJWTDisabled is returned by LoadJWTConfig when JWT_SECRET is not set.
var ErrJWTDisabled = errors.New("JWT_SECRET is not set")

// DefaultJWTIssuer is the issuer claim used when JWT_ISSUER is not set.
const DefaultJWTIssuer = "advert-generator"

// JWTConfig holds configuration for signing and verifying API tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default: 24) and
// JWT_ISSUER (default: advert-generator).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTDisabled
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
		ExpirationHours: expirationHours,
		Issuer:          issuer,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadJWTConfig is NewJWTConfig for optional auth: it returns nil and no
// error when JWT_SECRET is unset, leaving the API open.
func LoadJWTConfig() (*JWTConfig, error) {
	cfg, err := NewJWTConfig()
	if errors.Is(err, ErrJWTDisabled) {
		return nil, nil
	}
	return cfg, err
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
