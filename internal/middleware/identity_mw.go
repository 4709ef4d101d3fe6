package middleware

import (
	"strconv"

	"authportal/internal/model"

	"github.com/gin-gonic/gin"
)

const identityKey = "authIdentity"

// Forwarded identity headers set by the reverse proxy after it has verified
// the auth cookie. Handlers trust these without re-checking signatures;
// deployments without the proxy in front are insecure by design.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// IdentityMiddleware extracts the forwarded identity headers into an explicit
// model.Identity value on the request context. Requests without a complete
// identity proceed with none; endpoints that require one reject later.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.GetHeader(HeaderUserID)
		email := c.GetHeader(HeaderUserEmail)
		role := c.GetHeader(HeaderUserRole)

		if idStr != "" && email != "" && role != "" {
			if id, err := strconv.Atoi(idStr); err == nil {
				c.Set(identityKey, &model.Identity{ID: id, Email: email, Role: role})
			}
		}

		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity for the request,
// or nil if the proxy forwarded none.
func IdentityFromContext(c *gin.Context) *model.Identity {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*model.Identity)
	if !ok {
		return nil
	}
	return identity
}
