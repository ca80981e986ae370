package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(7, "janedoe", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "janedoe", claims.Username)
}

func TestParseTokenFailures(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(7, "janedoe", -time.Hour)
		require.NoError(t, err)
		_, err = ParseToken(token)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken("not.a.token")
		require.Error(t, err)
	})
}
