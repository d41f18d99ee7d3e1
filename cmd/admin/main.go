package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/config"
	"github.com/aircooling/backoffice/internal/logging"
	"github.com/aircooling/backoffice/internal/middleware"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/proxy"
)

const service = "aircooling-admin"

var release = "dev"

// The admin dashboard owns no data access: every /api request is forwarded
// to the public API.
func main() {

	cfg := config.Load()
	log := logging.New(cfg, service)
	defer func() { _ = log.Sync() }()

	flush, err := monitoring.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		log.Warn("sentry_init_failed", zap.Error(err))
	}
	defer flush()

	p, err := proxy.New(proxy.DefaultRules(cfg.WebAPIURL), log)
	if err != nil {
		log.Fatal("invalid_proxy_rules", zap.Error(err))
	}

	metrics := monitoring.New(service)

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Observability(log, metrics)...)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Any("/api/*path", p.Handle)

	srv := &http.Server{
		Addr:    cfg.AdminAddr(),
		Handler: r,
	}

	go func() {
		log.Info("server_started", zap.String("addr", cfg.AdminAddr()), zap.String("upstream", cfg.WebAPIURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
	}
}
