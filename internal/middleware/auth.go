package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/guard"
	"github.com/aircooling/backoffice/internal/httperr"
)

// RequireRole short-circuits the chain unless the guard accepts the caller.
// Handlers read the result with guard.FromContext.
func RequireRole(g *guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := g.Require(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(guard.ContextIdentity, id)
		c.Next()
	}
}
