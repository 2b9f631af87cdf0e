package config

import (
	"fmt"
	"os"
	"strconv"
)

// MinSessionKeyLength is the shortest accepted SESSION_KEY, in bytes.
const MinSessionKeyLength = 32

// JWTConfig holds configuration for validating identity tokens issued by
// the login service.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewJWTConfig creates a new JWT configuration from environment variables.
// It reads JWT_SECRET (required), JWT_ISSUER (optional) and
// JWT_EXPIRATION_HOURS (default: 24, used when minting development tokens).
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

	cfg := &JWTConfig{
		Secret:          secret,
		Issuer:          os.Getenv("JWT_ISSUER"),
		ExpirationHours: expirationHours,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// SessionConfig holds the cookie session settings used to hand the
// selected record over to the matching page.
type SessionConfig struct {
	Key    []byte
	Secure bool
	MaxAge int
}

// NewSessionConfig reads SESSION_KEY (required, at least 32 bytes),
// SESSION_SECURE (default: true) and SESSION_MAX_AGE seconds (default: 86400).
func NewSessionConfig() (*SessionConfig, error) {
	key := os.Getenv("SESSION_KEY")
	if len(key) < MinSessionKeyLength {
		return nil, fmt.Errorf("SESSION_KEY must be at least %d bytes, got %d", MinSessionKeyLength, len(key))
	}

	cfg := &SessionConfig{Key: []byte(key), Secure: true, MaxAge: 86400}

	if v := os.Getenv("SESSION_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_SECURE: %v", err)
		}
		cfg.Secure = secure
	}

	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		maxAge, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_MAX_AGE: %v", err)
		}
		if maxAge < 0 {
			return nil, fmt.Errorf("SESSION_MAX_AGE must be non-negative, got: %d", maxAge)
		}
		cfg.MaxAge = maxAge
	}

	return cfg, nil
}
