package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"plume/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
	// ContextSessionUserKey stores the full session summary.
	ContextSessionUserKey = "session_user"
)

// SessionResolver resolves the session cookie into the request identity. It
// never rejects: guests simply carry no identity and a visitor id of 0.
func SessionResolver() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := utils.SessionFromRequest(ctx.Request); ok {
			ctx.Set(ContextUserIDKey, user.ID)
			ctx.Set(ContextUsernameKey, user.Username)
			ctx.Set(ContextSessionUserKey, user)
		}
		ctx.Next()
	}
}

// LoginRequired rejects guests. It must run after SessionResolver or an
// equivalent identity middleware.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(ContextUserIDKey); !exists {
			utils.Error(ctx, http.StatusUnauthorized, 40100, "you must be logged in to perform that action")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the session summary of the authenticated user, if any.
func CurrentUser(ctx *gin.Context) (*utils.SessionUser, bool) {
	value, exists := ctx.Get(ContextSessionUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*utils.SessionUser)
	return user, ok
}

// VisitorID returns the viewer id for ownership checks: the authenticated
// user's id, or 0 for guests.
func VisitorID(ctx *gin.Context) uint {
	value, exists := ctx.Get(ContextUserIDKey)
	if !exists {
		return 0
	}
	switch v := value.(type) {
	case uint:
		return v
	case int:
		return uint(v)
	case int64:
		return uint(v)
	case float64:
		return uint(v)
	default:
		return 0
	}
}
