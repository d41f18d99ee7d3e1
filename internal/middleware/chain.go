package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/monitoring"
)

// Observability is the outer chain of both binaries. Recovery must stay
// innermost: the layers above it report the 500 it writes.
func Observability(log *zap.Logger, m *monitoring.Metrics) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		RequestLogger(log),
		SentryMiddleware(),
		Metrics(m),
		Recovery(),
	}
}
