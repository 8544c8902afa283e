package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AngelCh415/leadcalc/internal/capture"
	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/costtable"
	"github.com/AngelCh415/leadcalc/internal/httpx"
	"github.com/AngelCh415/leadcalc/internal/metrics"
	"github.com/AngelCh415/leadcalc/internal/store"
	"github.com/AngelCh415/leadcalc/internal/telemetry"
)

func main() {
	envErr := config.LoadDotEnv()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Error("config", slog.String("err", envErr.Error()))
		os.Exit(1)
	}

	costs, err := costtable.Load(cfg.CostTablePath)
	if err != nil {
		logger.Error("cost table", slog.String("err", err.Error()))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tm := telemetry.New(reg)

	est, err := metrics.NewService(costs, cfg.Estimation, tm)
	if err != nil {
		logger.Error("estimation params", slog.String("err", err.Error()))
		os.Exit(1)
	}

	st := store.NewMemoryStore(cfg.SubmissionCapacity)
	wh := capture.NewWebhook(capture.NewHTTPClient(cfg.HTTPTimeout), cfg.Webhook, logger)
	if !wh.Configured() {
		logger.Warn("WEBHOOK_URL not set; captured contacts will be marked failed")
	}
	deliveryTimeout := cfg.HTTPTimeout * time.Duration(cfg.Webhook.Retries+2)
	disp := capture.NewDispatcher(wh, st, logger, tm, cfg.Webhook.Workers, cfg.Webhook.Queue, deliveryTimeout)

	r := httpx.NewRouter(httpx.Deps{
		Log:            logger,
		Estimator:      est,
		Gate:           capture.NewGate(st, disp, tm, logger),
		Telemetry:      tm,
		Gatherer:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
		RevealDelay:    cfg.RevealDelay,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", slog.String("port", cfg.Port), slog.Int("cost_locations", costs.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.String("err", err.Error()))
	}
	if err := disp.Close(shutdownCtx); err != nil {
		logger.Warn("pending deliveries abandoned", slog.String("err", err.Error()))
	}
}
