package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/httperr"
)

// Recovery turns a panic into the internal error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		httperr.Abort(c, httperr.Wrap(
			httperr.KindInternal,
			"internal_error",
			"Erreur interne.",
			fmt.Errorf("panic: %v", recovered),
		))
	})
}
