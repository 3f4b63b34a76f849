package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, h.Check(hash, "s3cret-pass"))
	assert.False(t, h.Check(hash, "wrong"))
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
}

func TestGenerateTokenKey(t *testing.T) {
	a, err := GenerateTokenKey()
	require.NoError(t, err)
	b, err := GenerateTokenKey()
	require.NoError(t, err)

	assert.Len(t, a, TokenKeyLength)
	assert.NotEqual(t, a, b)
}

func TestExtractAuthorizationToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Token abc123", "abc123", true},
		{"Bearer abc123", "abc123", true},
		{"bearer   abc123 ", "abc123", true},
		{"", "", false},
		{"abc123", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Token ", "", false},
	}
	for _, tt := range tests {
		got, err := ExtractAuthorizationToken(tt.header)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrNoToken, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}

func TestSessionSigner_RoundTrip(t *testing.T) {
	s := NewSessionSigner(SessionConfig{SecretKey: "k", TTL: time.Hour, Issuer: "gradnexus"})

	cookie, err := s.Sign("sess-1", 42, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := s.Verify(cookie)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestSessionSigner_Rejects(t *testing.T) {
	s := NewSessionSigner(SessionConfig{SecretKey: "k", TTL: time.Hour, Issuer: "gradnexus"})
	other := NewSessionSigner(SessionConfig{SecretKey: "other", TTL: time.Hour, Issuer: "gradnexus"})

	expired, err := s.Sign("sess-1", 42, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = s.Verify(expired)
	assert.ErrorIs(t, err, ErrExpiredSession)

	forged, err := other.Sign("sess-1", 42, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = s.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
