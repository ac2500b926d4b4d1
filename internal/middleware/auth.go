// Package middleware provides HTTP middleware for the auth service.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandeep-atiya/Ameyo-crm/internal/respond"
	"github.com/sandeep-atiya/Ameyo-crm/internal/service"
)

// Context keys under which the authenticated identity is stored.
const (
	ContextUserIDKey     = "auth_user_id"
	ContextUsernameKey   = "auth_username"
	ContextUserTypeIDKey = "auth_user_type_id"
)

// Token failure messages. Missing, invalid and expired are deliberately
// distinct; the distinction carries no enumeration risk and helps clients
// decide whether to re-login or re-send.
const (
	MsgNoToken      = "no token provided"
	MsgInvalidToken = "invalid token"
	MsgTokenExpired = "token expired"
)

// RequireAuth validates the bearer token and aborts with 401 when it is
// missing, invalid or expired. On success the decoded claims become the
// request identity for downstream handlers.
func RequireAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, MsgNoToken)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			message := MsgInvalidToken
			if errors.Is(err, service.ErrTokenExpired) {
				message = MsgTokenExpired
			}
			respond.Error(c, http.StatusUnauthorized, message)
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth populates the request identity when a valid unexpired token
// is present but never rejects the request. For endpoints with mixed
// public/authenticated behavior.
func OptionalAuth(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := jwtService.ValidateToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id from the request context.
func UserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// Username returns the authenticated username, or "anonymous".
func Username(c *gin.Context) string {
	if value, exists := c.Get(ContextUsernameKey); exists {
		if name, ok := value.(string); ok && name != "" {
			return name
		}
	}
	return "anonymous"
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(ContextUserIDKey, claims.UserID)
	c.Set(ContextUsernameKey, claims.Username)
	if claims.UserTypeID != nil {
		c.Set(ContextUserTypeIDKey, *claims.UserTypeID)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}
