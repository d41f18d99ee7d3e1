package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/httpresp"
	"github.com/aircooling/backoffice/internal/infra/storage"
	"github.com/aircooling/backoffice/internal/logging"
	"github.com/aircooling/backoffice/internal/reviews"
	"github.com/aircooling/backoffice/internal/usecase/lead"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the lead-capture forms. Writes go through the
// service handle since visitors have no session.
type PublicHandler struct {
	deps Deps
}

func NewPublicHandler(deps Deps) *PublicHandler {
	return &PublicHandler{deps: deps}
}

// ======================================================
// QUOTE REQUEST
// ======================================================

func (h *PublicHandler) Quote(c *gin.Context) {
	var in lead.QuoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Corps de requête invalide.")
		return
	}
	in.RequestID = logging.RequestID(c)

	q, err := lead.NewRequestQuote(
		h.deps.Repos.Leads(h.deps.Factory.Service()),
		h.deps.Events,
		h.deps.Metrics,
		logging.FromContext(c),
	).Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"quoteRequest": q})
}

// ======================================================
// PLAN UPLOAD
// ======================================================

func (h *PublicHandler) Plan(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	var in lead.PlanInput
	if err := c.ShouldBind(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Formulaire invalide.")
		return
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Execute reports the missing image after validating the contact.
	case err != nil:
		httperr.BadRequest(c, "invalid_request", "Formulaire invalide.")
		return
	default:
		f, err := fh.Open()
		if err != nil {
			httperr.BadRequest(c, "invalid_image", "Image illisible.")
			return
		}
		defer f.Close()
		in.Image = f
	}
	in.RequestID = logging.RequestID(c)

	p, err := lead.NewUploadPlan(
		h.deps.Repos.Leads(h.deps.Factory.Service()),
		h.deps.Uploader,
		h.deps.Events,
		h.deps.Metrics,
		logging.FromContext(c),
	).Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"plan": p})
}

// ======================================================
// GOOGLE REVIEWS
// ======================================================

func (h *PublicHandler) GoogleReviews(c *gin.Context) {
	s := reviews.Fallback()

	httpresp.OK(c, gin.H{
		"source":        s.Source,
		"averageRating": s.AverageRating,
		"totalRatings":  s.TotalRatings,
		"reviews":       s.Reviews,
	})
}
