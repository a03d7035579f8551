package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenIssuer(t *testing.T) {
	_, err := NewTokenIssuer(TokenIssuerConfig{})
	assert.ErrorIs(t, err, ErrMissingSigningSecret)

	issuer, err := NewTokenIssuer(TokenIssuerConfig{SigningSecret: []byte("secret")})
	require.NoError(t, err)
	assert.Equal(t, defaultTokenTTL, issuer.ttl)
}

func TestTokenIssuer_IssueAndValidate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer(TokenIssuerConfig{
		SigningSecret: []byte("secret"),
		Issuer:        "agroapi",
		TokenTTL:      30 * time.Minute,
		Clock:         fixedClock(now),
	})
	require.NoError(t, err)

	token, expiresIn, err := issuer.Issue(42, "ana@example.com", "PRODUCER")
	require.NoError(t, err)
	assert.Equal(t, int64(1800), expiresIn)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "PRODUCER", claims.Role)
}

func TestTokenIssuer_IssueRequiresSubject(t *testing.T) {
	issuer, err := NewTokenIssuer(TokenIssuerConfig{SigningSecret: []byte("secret")})
	require.NoError(t, err)

	_, _, err = issuer.Issue(1, "  ", "USER")
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestTokenIssuer_ValidateRejects(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer(TokenIssuerConfig{
		SigningSecret: []byte("secret"),
		Issuer:        "agroapi",
		TokenTTL:      time.Minute,
		Clock:         fixedClock(now),
	})
	require.NoError(t, err)

	token, _, err := issuer.Issue(1, "ana@example.com", "USER")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := issuer.Validate("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later, err := NewTokenIssuer(TokenIssuerConfig{
			SigningSecret: []byte("secret"),
			Issuer:        "agroapi",
			Clock:         fixedClock(now.Add(2 * time.Minute)),
		})
		require.NoError(t, err)

		_, err = later.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer(TokenIssuerConfig{
			SigningSecret: []byte("other"),
			Issuer:        "agroapi",
			Clock:         fixedClock(now),
		})
		require.NoError(t, err)

		_, err = other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewTokenIssuer(TokenIssuerConfig{
			SigningSecret: []byte("secret"),
			Issuer:        "someone-else",
			Clock:         fixedClock(now),
		})
		require.NoError(t, err)

		_, err = other.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "ana@example.com", Issuer: "agroapi"},
		})
		unsigned, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
