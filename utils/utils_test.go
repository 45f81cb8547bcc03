package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"go-splendor/config"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{
		AccessSecret:  "a",
		RefreshSecret: "r",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := testIssuer()

	access, err := issuer.GenerateAccessToken("u1", "Alice")
	require.NoError(t, err)
	claims, err := issuer.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Alice", claims.Name)

	_, err = issuer.ParseRefreshToken(access)
	assert.Error(t, err, "access tokens are not refresh tokens")

	refresh, err := issuer.GenerateRefreshToken("u1", "Alice")
	require.NoError(t, err)
	claims, err = issuer.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestExpiredToken(t *testing.T) {
	issuer := testIssuer()
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	access, err := issuer.GenerateAccessToken("u1", "Alice")
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(access)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("loud", "json")
	assert.Error(t, err)

	_, err = NewLogger("info", "xml")
	assert.Error(t, err)
}
