package auth

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextBinding is the key used to store the decoded binding in the Gin context.
	ContextBinding = "binding"

	// tokenQueryParam carries the token on websocket upgrades, where browsers cannot set headers.
	tokenQueryParam = "token"
)

// Authorize rejects requests without a valid binding token and stores the decoded binding
// in the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		binding, err := ts.Decode(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextBinding, binding)
		c.Next()
	}
}

// BindingFrom returns the binding stored by Authorize.
func BindingFrom(c *gin.Context) (i.Binding, bool) {
	v, ok := c.Get(ContextBinding)
	if !ok {
		return i.Binding{}, false
	}
	b, ok := v.(i.Binding)
	return b, ok
}

func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(tokenQueryParam)
		return token, token != ""
	}

	// Split the "Bearer" prefix from the token.
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
