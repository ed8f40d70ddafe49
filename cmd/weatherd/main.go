// Command weatherd runs the weather analytics service: a cron-scheduled
// fetch → analyze → store → notify pipeline with an HTTP surface for ops
// probes, metrics, and the latest run's results.
//
// Usage:
//
//	weatherd            # scheduled service
//	weatherd -once      # single pipeline run, then exit
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/RSangDev/weather-analytics-dashboard/internal/adapter/http"
	kafkaadapter "github.com/RSangDev/weather-analytics-dashboard/internal/adapter/kafka"
	"github.com/RSangDev/weather-analytics-dashboard/internal/adapter/openmeteo"
	"github.com/RSangDev/weather-analytics-dashboard/internal/analysis"
	"github.com/RSangDev/weather-analytics-dashboard/internal/config"
	"github.com/RSangDev/weather-analytics-dashboard/internal/observability"
	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
	"github.com/RSangDev/weather-analytics-dashboard/internal/scheduler"
	"github.com/RSangDev/weather-analytics-dashboard/internal/store"
)

// runTimeout bounds one scheduled pipeline run end to end.
const runTimeout = 10 * time.Minute

func main() {
	once := flag.Bool("once", false, "run a single pipeline pass and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fetcher := openmeteo.NewClient(cfg, logger, metrics)

	enricher, err := analysis.NewEnricher(cfg.Processing.MovingAverageWindow, cfg.Processing.AnomalyThreshold)
	if err != nil {
		logger.Error("invalid processing configuration", "error", err)
		os.Exit(1)
	}
	thresholds := analysis.AlertThresholds{
		TempHigh:   cfg.Alerts.Temperature.HighThreshold,
		TempLow:    cfg.Alerts.Temperature.LowThreshold,
		WindHigh:   cfg.Alerts.WindSpeed.HighThreshold,
		PrecipHigh: cfg.Alerts.Precipitation.HighThreshold,
	}

	runStore, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize stores", "error", err)
		os.Exit(1)
	}

	var notifier pipeline.Notifier
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		notifier = kafkaWriter
		logger.Info("kafka notifications enabled", "topic", cfg.KafkaAlertTopic)
	} else {
		logger.Info("kafka notifications disabled")
	}

	p := pipeline.New(fetcher, enricher, thresholds, runStore, notifier, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		if _, err := p.RunOnce(ctx); err != nil {
			logger.Error("pipeline run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	sched, err := scheduler.New(cfg.CronSchedule, func(ctx context.Context) error {
		_, err := p.RunOnce(ctx)
		return err
	}, runTimeout, logger)
	if err != nil {
		logger.Error("failed to build scheduler", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Prime the first run immediately; the cron schedule takes over from there.
	go func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		if _, err := p.RunOnce(runCtx); err != nil {
			logger.Error("initial pipeline run failed", "error", err)
		}
	}()

	sched.Start()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	<-sched.Stop().Done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// buildStore wires the sqlite history store and the CSV exporter together.
func buildStore(cfg *config.Config, logger *slog.Logger) (pipeline.Store, error) {
	sqliteStore, err := store.NewSQLite(cfg.SQLitePath, logger)
	if err != nil {
		return nil, err
	}
	exporter, err := store.NewCSVExporter(cfg.CSVExportDir, logger)
	if err != nil {
		return nil, err
	}
	return store.Multi{sqliteStore, exporter}, nil
}
