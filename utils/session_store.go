package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"plume/config"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "plume_session"

const sessionKeyPrefix = "session:"

// SessionUser is the public summary of the authenticated account held in a
// session. It is the only identity shape the request path and the chat channel
// ever see.
type SessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// CreateSession stores the user summary under a fresh opaque token with the
// configured TTL and returns the token.
func CreateSession(user SessionUser) (string, error) {
	b, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	ttl := time.Duration(config.Get().SessionTTLHours) * time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := GetRedis().Set(ctx, sessionKeyPrefix+token, b, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession maps an opaque token to the session user, or reports none.
func ResolveSession(token string) (*SessionUser, bool) {
	if token == "" {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, err := GetRedis().Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		return nil, false
	}
	var user SessionUser
	if err := json.Unmarshal(b, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// DestroySession removes the token so the cookie can no longer authenticate.
func DestroySession(token string) {
	if token == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = GetRedis().Del(ctx, sessionKeyPrefix+token).Err()
}

// SessionFromRequest resolves the session cookie on any HTTP request. The page
// path and the websocket handshake both authenticate through this one function,
// so a connection's identity always matches what the browser session holds.
func SessionFromRequest(r *http.Request) (*SessionUser, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, false
	}
	return ResolveSession(cookie.Value)
}

// SessionCookieMaxAge returns the cookie lifetime in seconds, matching the
// server-side session TTL.
func SessionCookieMaxAge() int {
	return config.Get().SessionTTLHours * 3600
}
