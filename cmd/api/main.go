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
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/config"
	dbpkg "github.com/aircooling/backoffice/internal/db"
	"github.com/aircooling/backoffice/internal/handlers"
	"github.com/aircooling/backoffice/internal/infra/events"
	"github.com/aircooling/backoffice/internal/infra/repository"
	"github.com/aircooling/backoffice/internal/infra/storage"
	"github.com/aircooling/backoffice/internal/logging"
	"github.com/aircooling/backoffice/internal/mailer"
	"github.com/aircooling/backoffice/internal/middleware"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/routes"
)

const service = "aircooling-api"

var release = "dev"

func main() {

	cfg := config.Load()
	log := logging.New(cfg, service)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid_config", zap.Error(err))
	}

	flush, err := monitoring.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		log.Warn("sentry_init_failed", zap.Error(err))
	}
	defer flush()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("db_connect_failed", zap.Error(err))
	}

	// ======================================================
	// INFRA
	// ======================================================
	factory := backend.NewFactory(backend.Options{
		DB:             db,
		Auth:           backend.NewGoTrue(cfg.SupabaseURL, cfg.SupabaseAnonKey, &http.Client{Timeout: 10 * time.Second}),
		ProjectURL:     cfg.SupabaseURL,
		AnonKey:        cfg.SupabaseAnonKey,
		ServiceRoleKey: cfg.SupabaseServiceRoleKey,
	})

	var counter middleware.Counter
	if cfg.RedisURL != "" {
		ropts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid_redis_url", zap.Error(err))
		}
		rdb := redis.NewClient(ropts)
		defer rdb.Close()
		counter = middleware.NewRedisCounter(rdb)
	} else {
		log.Info("rate_limit_disabled")
	}

	var publisher events.Publisher = events.Discard{}
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	}
	defer publisher.Close()

	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.ResendAPIKey, &http.Client{Timeout: 15 * time.Second})
	}

	metrics := monitoring.New(service)

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Options{
		Deps: handlers.Deps{
			Factory:   factory,
			Repos:     handlers.GormRepositories(),
			Events:    publisher,
			Mailer:    sender,
			Uploader:  storage.NewS3Uploader(cfg),
			Metrics:   metrics,
			EmailFrom: cfg.EmailFrom,
		},
		Profiles:           repository.NewProfileGormRepository(factory),
		AllowedOrigins:     cfg.AllowedOrigins,
		Counter:            counter,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Log:                log,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("server_started", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server_stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server_shutdown_failed", zap.Error(err))
	}
}
