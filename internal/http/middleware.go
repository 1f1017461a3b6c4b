package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
)

const claimsContextKey = "authClaims"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth guards protected routes. It expects "Bearer <token>" in the
// Authorization header and puts the verified claims into the gin context.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			h.abortUnauthorized(c, "no credentials supplied")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || strings.TrimSpace(token) == "" {
			h.abortUnauthorized(c, "invalid token")
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			h.abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func (h *Handler) abortUnauthorized(c *gin.Context, message string) {
	h.fail(c, apperr.Unauthorized(message))
	c.Abort()
}

func claimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
