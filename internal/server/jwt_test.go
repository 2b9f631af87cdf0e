package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fastlabor/internal/config"
)

func newJWTService(issuer string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", Issuer: issuer, ExpirationHours: 1})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newJWTService("fastlabor-login")

	token, err := svc.GenerateToken("me@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", claims.GetEmail())
	assert.Equal(t, "fastlabor-login", claims.Issuer)
}

func TestJWTService_GenerateRequiresEmail(t *testing.T) {
	_, err := newJWTService("").GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newJWTService("fastlabor-login")
	valid, err := svc.GenerateToken("me@example.com")
	require.NoError(t, err)

	otherSecret := NewJWTService(&config.JWTConfig{Secret: "other", Issuer: "fastlabor-login", ExpirationHours: 1})
	forged, err := otherSecret.GenerateToken("me@example.com")
	require.NoError(t, err)

	otherIssuer, err := newJWTService("someone-else").GenerateToken("me@example.com")
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "fastlabor-login"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "me@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "abc.def"},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: otherIssuer},
		{name: "no email", token: noEmail},
		{name: "alg none", token: none},
		{name: "truncated", token: valid[:len(valid)-4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := newJWTService("")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateToken("me@example.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	svc := newJWTService("")
	token, err := svc.GenerateToken("me@example.com")
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", getter.GetEmail())

	_, err = svc.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
