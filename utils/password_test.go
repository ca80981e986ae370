package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("a long enough password")
	require.NoError(t, err)
	require.NotEqual(t, "a long enough password", hash)

	require.True(t, CheckPassword(hash, "a long enough password"))
	require.False(t, CheckPassword(hash, "a wrong password here"))
}
