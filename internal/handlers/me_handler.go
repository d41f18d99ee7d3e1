package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/httpresp"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe echoes the identity the guard resolved; it never touches the
// database.
func (h *MeHandler) GetMe(c *gin.Context) {
	id := identity(c)

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":       id.UserID(),
			"email":    id.User.Email,
			"role":     id.Role,
			"fullName": id.User.MetadataString("full_name"),
		},
	})
}
