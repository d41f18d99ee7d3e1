package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/httpresp"
	usecase "github.com/aircooling/backoffice/internal/usecase/crm"
)

type CRMHandler struct {
	deps Deps
}

func NewCRMHandler(deps Deps) *CRMHandler {
	return &CRMHandler{deps: deps}
}

type MoveStageRequest struct {
	Stage string `json:"stage"`
}

func (h *CRMHandler) Board(c *gin.Context) {
	id := identity(c)

	columns, err := usecase.NewGetBoard(h.deps.Repos.CRM(id.Client)).Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"columns": columns})
}

func (h *CRMHandler) Move(c *gin.Context) {
	id := identity(c)

	recID, err := parseID(c.Param("id"), "de fiche")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var req MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corps de requête invalide.")
		return
	}

	rec, err := usecase.NewMoveRecord(h.deps.Repos.CRM(id.Client)).
		Execute(c.Request.Context(), recID, req.Stage, id.UserID())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"record": rec})
}
