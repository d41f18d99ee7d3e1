package guard

import "github.com/gin-gonic/gin"

const ContextIdentity = "identity"

// FromContext returns the identity stored by the auth middleware.
func FromContext(c *gin.Context) *Identity {
	if v, ok := c.Get(ContextIdentity); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}
