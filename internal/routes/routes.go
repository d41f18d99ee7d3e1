package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/guard"
	"github.com/aircooling/backoffice/internal/handlers"
	"github.com/aircooling/backoffice/internal/middleware"
)

const rateLimitWindow = time.Minute

type Options struct {
	Deps handlers.Deps

	// Profiles backs the technician guard's role lookup.
	Profiles guard.ProfileReader

	AllowedOrigins []string

	// A nil Counter disables lead-capture rate limiting.
	Counter            middleware.Counter
	RateLimitPerMinute int

	Log *zap.Logger
}

func RegisterRoutes(r *gin.Engine, opts Options) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Observability(opts.Log, opts.Deps.Metrics)...)
	r.Use(
		middleware.CORSMiddleware(opts.AllowedOrigins),
		middleware.SessionRefresh(opts.Deps.Factory),
	)

	// ======================================================
	// GUARDS
	// ======================================================
	adminOnly := middleware.RequireRole(guard.NewAdmin(opts.Deps.Factory))
	techOnly := middleware.RequireRole(guard.NewTech(opts.Deps.Factory, opts.Profiles))
	limited := middleware.RateLimit(opts.Counter, opts.RateLimitPerMinute, rateLimitWindow)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(opts.Deps)
	paymentHandler := handlers.NewPaymentHandler(opts.Deps)
	crmHandler := handlers.NewCRMHandler(opts.Deps)
	emailHandler := handlers.NewEmailHandler(opts.Deps)
	publicHandler := handlers.NewPublicHandler(opts.Deps)
	auditLogsHandler := handlers.NewAuditLogsHandler(opts.Deps)
	meHandler := handlers.NewMeHandler()

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Deps.Metrics.Handler()))
	}

	api := r.Group("/api")

	// ======================================================
	// PUBLIC
	// ======================================================
	api.GET("/google-reviews", publicHandler.GoogleReviews)
	api.GET("/bookings/slots", appointmentHandler.Availability)

	api.POST("/bookings", limited, appointmentHandler.Book)
	api.POST("/quote-requests", limited, publicHandler.Quote)
	api.POST("/plans", limited, publicHandler.Plan)

	// ======================================================
	// ADMIN
	// ======================================================
	api.GET("/appointments", adminOnly, appointmentHandler.List)

	admin := api.Group("/admin", adminOnly)
	{
		admin.GET("/payments", paymentHandler.List)
		admin.POST("/emails/booking-confirmation", emailHandler.BookingConfirmation)

		admin.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

		admin.GET("/crm", crmHandler.Board)
		admin.PATCH("/crm/:id", crmHandler.Move)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}

	// ======================================================
	// TECH
	// ======================================================
	tech := api.Group("/tech", techOnly)
	{
		tech.GET("/appointments", appointmentHandler.ListByDate)
		tech.POST("/vouchers", appointmentHandler.Complete)
	}

	api.GET("/me", techOnly, meHandler.GetMe)
}
