package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/aircooling/backoffice/internal/domain/payment"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/httpresp"
	usecase "github.com/aircooling/backoffice/internal/usecase/payment"
)

type PaymentHandler struct {
	deps Deps
}

func NewPaymentHandler(deps Deps) *PaymentHandler {
	return &PaymentHandler{deps: deps}
}

func (h *PaymentHandler) List(c *gin.Context) {
	id := identity(c)

	from, err := parseBound(c.Query("from"), "from", false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, err := parseBound(c.Query("to"), "to", true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	payments, err := usecase.NewListPayments(h.deps.Repos.Payments(id.Client)).
		Execute(c.Request.Context(), domain.ListFilter{From: from, To: to, Limit: limit})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"payments": payments})
}
