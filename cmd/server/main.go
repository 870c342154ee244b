package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/auth"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/config"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/handler"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/idempotency"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/port"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/repository/postgres"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/router"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/service"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/settlement"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l := logger.New(cfg.Log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.Pinger{"database": db}

	// Idempotency keys are honoured only when Redis is configured
	var guard port.IdempotencyGuard
	if cfg.Redis.Enabled() {
		rdb, err := idempotency.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		guard = idempotency.NewRedisGuard(rdb, cfg.Redis.IdempotencyTTL, cfg.Redis.LockTTL, l)
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		l.Warn("redis not configured; Idempotency-Key headers will be ignored")
	}

	// Initialize services
	tx := postgres.NewTransactor(db)
	seqSvc := service.NewSequenceService(tx, cfg.Numbering, l)
	docSvc := service.NewDocumentService(tx, seqSvc, l)
	paymentSvc := service.NewPaymentService(tx, seqSvc, settlement.NewEngine(), guard, l)
	reportSvc := service.NewReportService(tx, l)

	// Initialize handlers
	docH := handler.NewDocumentHandler(docSvc, reportSvc, l)
	paymentH := handler.NewPaymentHandler(paymentSvc, l)
	seqH := handler.NewSequenceHandler(seqSvc, l)
	taxH := handler.NewTaxHandler()
	healthH := handler.NewHealthHandler(checks)

	r := router.Setup(l, auth.NewVerifier(cfg.JWT), cfg.CORS.AllowedOrigins, docH, paymentH, seqH, taxH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.WithFields(logrus.Fields{"addr": cfg.Server.Port, "environment": cfg.Server.Environment}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
