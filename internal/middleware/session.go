package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/backend"
)

// sessionSkip matches static assets and images; they never carry a page
// navigation worth refreshing the session for.
var sessionSkip = regexp.MustCompile(
	`^/(_next/static|_next/image|favicon\.ico)|^/(static|assets)/|\.(svg|png|jpg|jpeg|gif|webp|ico)$`,
)

func SkipSessionRefresh(path string) bool {
	return sessionSkip.MatchString(path)
}

// SessionRefresh rotates an expired session cookie on the way through. The
// introspection result is ignored; the request always continues.
func SessionRefresh(factory *backend.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		if SkipSessionRefresh(c.Request.URL.Path) {
			c.Next()
			return
		}

		client := factory.Middleware(c.Writer, c.Request)
		_, _ = client.GetUser(c.Request.Context())

		c.Next()
	}
}
