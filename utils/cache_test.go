package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheBytesRoundTrip(t *testing.T) {
	newTestRedis(t)

	_, ok := CacheGetBytes("cache:post:detail:1")
	require.False(t, ok)

	CacheSetBytes("cache:post:detail:1", []byte(`{"hello":"world"}`), time.Minute)
	b, ok := CacheGetBytes("cache:post:detail:1")
	require.True(t, ok)
	require.JSONEq(t, `{"hello":"world"}`, string(b))
}

func TestCacheSetJSON(t *testing.T) {
	newTestRedis(t)

	CacheSetJSON("cache:profile:janedoe:posts", JSONResponse{Code: 0, Message: "success"}, 0)

	b, ok := CacheGetBytes("cache:profile:janedoe:posts")
	require.True(t, ok)

	var resp JSONResponse
	require.NoError(t, json.Unmarshal(b, &resp))
	require.Equal(t, "success", resp.Message)
}

func TestCacheExpiry(t *testing.T) {
	mr := newTestRedis(t)

	CacheSetBytes("cache:post:detail:2", []byte("x"), time.Minute)
	mr.FastForward(2 * time.Minute)

	_, ok := CacheGetBytes("cache:post:detail:2")
	require.False(t, ok)
}

func TestInvalidateByPrefix(t *testing.T) {
	newTestRedis(t)

	CacheSetBytes("cache:profile:janedoe:posts", []byte("a"), time.Minute)
	CacheSetBytes("cache:profile:janedoe:posts:page2", []byte("b"), time.Minute)
	CacheSetBytes("cache:profile:johndoe:posts", []byte("c"), time.Minute)

	InvalidateByPrefix("cache:profile:janedoe:")

	_, ok := CacheGetBytes("cache:profile:janedoe:posts")
	require.False(t, ok)
	_, ok = CacheGetBytes("cache:profile:janedoe:posts:page2")
	require.False(t, ok)
	_, ok = CacheGetBytes("cache:profile:johndoe:posts")
	require.True(t, ok, "other prefixes must survive the sweep")
}
