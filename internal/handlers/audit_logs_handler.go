package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/httpresp"
	"github.com/aircooling/backoffice/internal/models"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	deps Deps
}

func NewAuditLogsHandler(deps Deps) *AuditLogsHandler {
	return &AuditLogsHandler{deps: deps}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	id := identity(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if limit == 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}

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

	action := strings.TrimSpace(c.Query("action"))
	entity := strings.TrimSpace(c.Query("entity"))

	var (
		total int64
		logs  []models.AuditLog
	)

	err = id.Client.Transaction(c.Request.Context(), func(tx *gorm.DB) error {
		q := tx.Model(&models.AuditLog{})

		// --------------------------------------------------
		// Optional filters
		// --------------------------------------------------
		if action != "" {
			q = q.Where("action = ?", action)
		}
		if entity != "" {
			q = q.Where("entity = ?", entity)
		}
		if from != nil {
			q = q.Where("created_at >= ?", *from)
		}
		if to != nil {
			q = q.Where("created_at < ?", *to)
		}

		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.
			Order("created_at DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&logs).Error
	})
	if err != nil {
		httperr.Respond(c, httperr.Backend("audit_list_failed", err))
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
