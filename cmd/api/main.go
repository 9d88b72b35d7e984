package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/ihdim5/healthrecord-api/internal/config"
	"github.com/ihdim5/healthrecord-api/internal/email"
	authHandler "github.com/ihdim5/healthrecord-api/internal/handler/auth"
	doctorHandler "github.com/ihdim5/healthrecord-api/internal/handler/doctor"
	healthHandler "github.com/ihdim5/healthrecord-api/internal/handler/health"
	patientHandler "github.com/ihdim5/healthrecord-api/internal/handler/patient"
	reportHandler "github.com/ihdim5/healthrecord-api/internal/handler/report"
	"github.com/ihdim5/healthrecord-api/internal/middleware"
	"github.com/ihdim5/healthrecord-api/internal/repository/memory"
	"github.com/ihdim5/healthrecord-api/internal/router"
	auditService "github.com/ihdim5/healthrecord-api/internal/service/audit"
	authService "github.com/ihdim5/healthrecord-api/internal/service/auth"
	doctorService "github.com/ihdim5/healthrecord-api/internal/service/doctor"
	patientService "github.com/ihdim5/healthrecord-api/internal/service/patient"
	reportService "github.com/ihdim5/healthrecord-api/internal/service/report"
	summaryService "github.com/ihdim5/healthrecord-api/internal/service/summary"
	"github.com/ihdim5/healthrecord-api/pkg/auth"
	"github.com/ihdim5/healthrecord-api/pkg/logger"
	"github.com/ihdim5/healthrecord-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logLevel, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Log.Level).Msg("invalid log level")
	}
	logger.Setup(&logger.Config{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	// Initialize the record store: constructed once, passed by reference to
	// every repository. The admin and government singletons are seeded here.
	store := memory.NewStore(memory.Options{SeedDemoData: cfg.Store.SeedDemoData})

	// Initialize repositories
	patientRepo := memory.NewPatientRepository(store)
	doctorRepo := memory.NewDoctorRepository(store)
	accountRepo := memory.NewAccountRepository(store)
	auditRepo := memory.NewAuditRepository(store)

	// Initialize services
	auditSvc := auditService.NewService(auditRepo)

	var notifier doctorService.Notifier = email.NoopService{}
	if cfg.SMTP.Enabled {
		notifier = email.NewService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour, cfg.JWT.Issuer)
	authSvc := authService.NewService(accountRepo, jwtSvc, auditSvc)
	patientSvc := patientService.NewService(patientRepo, accountRepo, auditSvc)
	doctorSvc := doctorService.NewService(doctorRepo, accountRepo, auditSvc, notifier)
	reportSvc := reportService.NewService(patientRepo)
	summarySvc := summaryService.NewService(patientSvc, summaryService.Config{
		Endpoint: cfg.Summary.Endpoint,
		APIKey:   cfg.Summary.APIKey,
		Model:    cfg.Summary.Model,
		Timeout:  time.Duration(cfg.Summary.TimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(cfg.Summary.CacheTTLSeconds) * time.Second,
	})

	// Initialize middleware and handlers
	authMW := middleware.NewAuthMiddleware(authSvc, doctorSvc)

	r := router.NewRouter(
		router.Config{
			RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst: cfg.RateLimit.Burst,
			Metrics:   metrics.NewMetrics("healthrecord", "api"),
		},
		authMW,
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc, summarySvc),
		doctorHandler.NewHandler(doctorSvc),
		reportHandler.NewHandler(reportSvc),
		healthHandler.NewHandler(),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
