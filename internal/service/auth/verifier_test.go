package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayumu838/kotoba-api/internal/config"
)

const testSecret = "test-jwt-secret-that-is-long-enough-to-pass"

func signToken(t *testing.T, secret string, userID uuid.UUID, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := jwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewTokenVerifierRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenVerifier(config.AuthConfig{JWTSecret: "too-short"})
	assert.Error(t, err)
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	newVerifier := func() *hmacVerifier {
		return &hmacVerifier{
			signingKey: []byte(testSecret),
			timeFunc:   func() time.Time { return now },
			clockSkew:  2 * time.Minute,
		}
	}

	t.Run("valid token", func(t *testing.T) {
		v := newVerifier()
		token := signToken(t, testSecret, userID, now, now.Add(time.Hour))

		claims, err := v.VerifyToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("expired token", func(t *testing.T) {
		v := newVerifier()
		token := signToken(t, testSecret, userID, now.Add(-2*time.Hour), now.Add(-time.Hour))

		_, err := v.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("expiry within clock skew accepted", func(t *testing.T) {
		v := newVerifier()
		token := signToken(t, testSecret, userID, now.Add(-time.Hour), now.Add(-time.Minute))

		_, err := v.VerifyToken(context.Background(), token)
		assert.NoError(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		v := newVerifier()
		token := signToken(
			t,
			"another-secret-that-is-also-long-enough-here",
			userID,
			now,
			now.Add(time.Hour),
		)

		_, err := v.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		v := newVerifier()

		_, err := v.VerifyToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user ID claim", func(t *testing.T) {
		v := newVerifier()
		token := signToken(t, testSecret, uuid.Nil, now, now.Add(time.Hour))

		_, err := v.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
