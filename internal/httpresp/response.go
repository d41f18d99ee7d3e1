package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a success envelope: the payload fields plus "ok": true.
func OK(c *gin.Context, payload gin.H) {
	write(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	write(c, http.StatusCreated, payload)
}

func write(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		if k == "ok" {
			continue
		}
		body[k] = v
	}
	c.JSON(status, body)
}
