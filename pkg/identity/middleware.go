package identity

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GinMiddleware copies the request's proof material into the request context
// so authenticators can see it. It never rejects on its own; operations that
// need identity fail later through RequireIdentity.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := Credential{
			Key: c.GetHeader("X-Identity-Key"),
		}
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			cred.Token = strings.TrimPrefix(auth, "Bearer ")
		}

		ctx := WithCredential(c.Request.Context(), cred)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
