package logging

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aircooling/backoffice/internal/config"
)

const (
	ContextLogger    = "logger"
	ContextRequestID = "requestID"
)

// New builds the process logger: JSON in production, console in dev.
func New(cfg *config.Config, service string) *zap.Logger {
	var zc zap.Config
	if cfg.IsDev() {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.LogLevel))

	logger, err := zc.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.With(
		zap.String("service", service),
		zap.String("env", cfg.Env),
	)
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// FromContext returns the request-scoped logger, or a no-op logger outside a
// request.
func FromContext(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(ContextLogger); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

func RequestID(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}
