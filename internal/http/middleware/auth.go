package middleware

import (
	"net/http"
	"strings"

	"dpxcruise/internal/domain"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenParser verifies a bearer token and returns the identity it carries.
type TokenParser interface {
	Parse(raw string) (domain.Identity, error)
}

func abortUnauthorized(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      msg,
		"code":       code,
		"message":    msg,
		"request_id": GetRequestID(c),
	})
}

// AuthRequired rejects requests without a valid "Authorization: Bearer"
// token and stores the verified identity on the context.
func AuthRequired(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			abortUnauthorized(c, http.StatusUnauthorized, "unauthorized", "authorization token is missing")
			return
		}
		id, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRoles lets the request through only for the given roles. It must
// run after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			abortUnauthorized(c, http.StatusUnauthorized, "unauthorized", "authorization token is missing")
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		abortUnauthorized(c, http.StatusForbidden, "forbidden", "insufficient role")
	}
}

// GetIdentity returns the identity set by AuthRequired.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
