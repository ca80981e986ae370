package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// newTestRedis points the singleton client at an in-memory server for the
// duration of the test. JWT_SECRET is required before config first loads.
func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	mr := miniredis.RunT(t)
	SetRedisClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func TestSessionLifecycle(t *testing.T) {
	mr := newTestRedis(t)
	user := SessionUser{ID: 7, Username: "janedoe", Avatar: "https://gravatar.com/avatar/x?s=128"}

	token, err := CreateSession(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("token resolves to the stored summary", func(t *testing.T) {
		got, ok := ResolveSession(token)
		require.True(t, ok)
		require.Equal(t, user, *got)
	})

	t.Run("two sessions get distinct tokens", func(t *testing.T) {
		other, err := CreateSession(user)
		require.NoError(t, err)
		require.NotEqual(t, token, other)
	})

	t.Run("expired session no longer resolves", func(t *testing.T) {
		mr.FastForward(25 * time.Hour)
		_, ok := ResolveSession(token)
		require.False(t, ok)
	})
}

func TestResolveSessionRejectsGarbage(t *testing.T) {
	newTestRedis(t)

	_, ok := ResolveSession("")
	require.False(t, ok)

	_, ok = ResolveSession("not-a-real-token")
	require.False(t, ok)
}

func TestDestroySession(t *testing.T) {
	newTestRedis(t)

	token, err := CreateSession(SessionUser{ID: 1, Username: "janedoe"})
	require.NoError(t, err)

	DestroySession(token)
	_, ok := ResolveSession(token)
	require.False(t, ok)
}

func TestSessionFromRequest(t *testing.T) {
	newTestRedis(t)

	token, err := CreateSession(SessionUser{ID: 3, Username: "janedoe"})
	require.NoError(t, err)

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ws/chat", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
		user, ok := SessionFromRequest(req)
		require.True(t, ok)
		require.Equal(t, "janedoe", user.Username)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ws/chat", nil)
		_, ok := SessionFromRequest(req)
		require.False(t, ok)
	})

	t.Run("stale cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ws/chat", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
		_, ok := SessionFromRequest(req)
		require.False(t, ok)
	})
}
