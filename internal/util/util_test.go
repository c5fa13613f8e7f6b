package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatrade/internal/config"
	"seatrade/internal/domain"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(config.AuthConfig{
		SecretKey:          "0123456789abcdef0123456789abcdef",
		TokenExpiryMinutes: 30,
	})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := testIssuer()
	user := &domain.User{Username: "harbour", IsStaff: true}

	token, issued, err := issuer.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "harbour", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestTokenIssuer_UniqueIDs(t *testing.T) {
	issuer := testIssuer()
	user := &domain.User{Username: "harbour"}

	_, a, err := issuer.GenerateToken(user)
	require.NoError(t, err)
	_, b, err := issuer.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := testIssuer()
	token, _, err := issuer.GenerateToken(&domain.User{Username: "harbour"})
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, _, err := testIssuer().GenerateToken(&domain.User{Username: "harbour"})
	require.NoError(t, err)

	other := NewTokenIssuer(config.AuthConfig{SecretKey: "another-secret-another-secret-xx", TokenExpiryMinutes: 30})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("tide-pool")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("tide-pool", hash))
	assert.False(t, CheckPasswordHash("low-tide", hash))
}

func TestRequireRoles(t *testing.T) {
	assert.NoError(t, RequireAdmin(&domain.User{IsAdmin: true}))
	assert.Error(t, RequireAdmin(&domain.User{IsStaff: true}))
	assert.NoError(t, RequireStaff(&domain.User{IsStaff: true}))
	assert.NoError(t, RequireStaff(&domain.User{IsAdmin: true}))
	assert.Error(t, RequireStaff(&domain.User{}))
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	require.NoError(t, l.Allow("10.0.0.1"))
	require.NoError(t, l.Allow("10.0.0.1"))
	require.NoError(t, l.Allow("10.0.0.2"))

	err := l.Allow("10.0.0.1")
	var rle *RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, 2, rle.Limit)
	assert.Equal(t, time.Minute, rle.RetryAfter)

	now = now.Add(61 * time.Second)
	assert.NoError(t, l.Allow("10.0.0.1"))

	now = now.Add(2 * time.Minute)
	l.Cleanup()
	assert.Empty(t, l.requests)
}

func TestRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Allow("same"))
	}

	var nilLimiter *RateLimiter
	assert.NoError(t, nilLimiter.Allow("x"))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Frozen Vannamei Shrimp":       "frozen-vannamei-shrimp",
		"  Pêche Fraîche!  ":           "peche-fraiche",
		"Cold-chain 101: What & Why?":  "cold-chain-101-what-why",
		"Black Tiger (HOSO) 16/20":     "black-tiger-hoso-16-20",
		"":                             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
