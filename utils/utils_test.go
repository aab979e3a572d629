package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, CheckPassword(hash, "secret1"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("alice", "citizen", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "citizen", claims.Role)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("alice", "citizen", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, "test-secret")
	assert.Error(t, err)
}

func TestTokenTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "")
	assert.Equal(t, 24*time.Hour, TokenTTL())

	t.Setenv("TOKEN_TTL_HOURS", "6")
	assert.Equal(t, 6*time.Hour, TokenTTL())

	t.Setenv("TOKEN_TTL_HOURS", "garbage")
	assert.Equal(t, 24*time.Hour, TokenTTL())
}

func TestNormalizeUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"  Alice  ", "alice"},
		{"Aliçe", "alice"},
		{"JOSÉ", "jose"},
		{"bob!@# smith", "bobsmith"},
		{"under_score.dash-ok", "under_score.dash-ok"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeUsername(tt.in), "input %q", tt.in)
	}
}

func TestIsDuplicateKey_MessageFallback(t *testing.T) {
	err := errors.New(`write exception: E11000 duplicate key error collection: city.citizens index: username_1`)
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsDuplicateKey(errors.New("connection reset")))
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("7", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("x", 1))
}
