package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RSangDev/weather-analytics-dashboard/internal/analysis"
	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
	"github.com/RSangDev/weather-analytics-dashboard/internal/observability"
)

// Fetcher produces one raw payload per city that could be fetched. Cities
// whose fetch failed upstream are simply absent from the batch.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.CityPayload, error)
}

// Store persists a completed run's outputs.
type Store interface {
	SaveRun(ctx context.Context, run *RunResult) error
}

// Notifier publishes a completed run's alerts and summary.
type Notifier interface {
	NotifyRun(ctx context.Context, run *RunResult) error
}

// RunResult bundles every output of one pipeline run. All structures are
// freshly built per run; nothing is carried across runs.
type RunResult struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	Observations []domain.Observation      `json:"observations"`
	Alerts       []domain.Alert            `json:"alerts"`
	Daily        []domain.DailyAggregate   `json:"daily"`
	Patterns     domain.Patterns           `json:"patterns"`
	Summary      domain.Summary            `json:"summary"`
	Regional     map[string]domain.Summary `json:"regional"`
	Rankings     domain.Rankings           `json:"rankings"`
}

// ID is the run's timestamp identifier, used for stored rows and export
// file names.
func (r *RunResult) ID() string {
	return r.StartedAt.UTC().Format("20060102_150405")
}

// Pipeline orchestrates one fetch → analyze → store → notify cycle per
// invocation. The analysis stages are pure; all I/O lives in the injected
// collaborators, any of which may be nil to disable that step.
type Pipeline struct {
	fetcher    Fetcher
	enricher   *analysis.Enricher
	thresholds analysis.AlertThresholds
	store      Store
	notifier   Notifier
	logger     *slog.Logger
	metrics    *observability.Metrics

	ready  atomic.Bool
	mu     sync.RWMutex
	latest *RunResult
}

// New assembles a Pipeline from its stages and observability.
func New(fetcher Fetcher, enricher *analysis.Enricher, thresholds analysis.AlertThresholds,
	store Store, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		enricher:   enricher,
		thresholds: thresholds,
		store:      store,
		notifier:   notifier,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness returns nil once at least one run has completed
// successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Latest returns the most recent completed run, or nil before the first one.
func (p *Pipeline) Latest() *RunResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// RunOnce executes a single pipeline run. A fetch or analysis failure aborts
// the run. A store failure is returned after the snapshot is published, so
// the HTTP surface still serves the freshly analyzed data. A notify failure
// is logged and counted but does not fail the run.
func (p *Pipeline) RunOnce(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	p.metrics.RunsTotal.Inc()

	run, err := p.analyze(ctx)
	if err != nil {
		p.metrics.RunFailures.Inc()
		return nil, err
	}

	p.publish(run)

	p.logger.Info("pipeline run completed",
		"run_id", run.ID(),
		"cities", run.Summary.TotalCities,
		"observations", run.Summary.TotalRecords,
		"alerts", len(run.Alerts),
		"anomalies", run.Summary.AnomaliesDetected,
	)
	p.metrics.ObservationsPerRun.Observe(float64(run.Summary.TotalRecords))
	p.metrics.LastRunAnomalies.Set(float64(run.Summary.AnomaliesDetected))
	for _, a := range run.Alerts {
		p.metrics.AlertsGenerated.WithLabelValues(string(a.Type)).Inc()
	}

	p.notify(ctx, run)

	var storeErr error
	if p.store != nil {
		if storeErr = p.store.SaveRun(ctx, run); storeErr != nil {
			p.logger.Error("store run failed", "run_id", run.ID(), "error", storeErr)
			p.metrics.RunFailures.Inc()
			storeErr = fmt.Errorf("store run: %w", storeErr)
		}
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	return run, storeErr
}

// analyze runs the fetch collaborator and the pure analysis core.
func (p *Pipeline) analyze(ctx context.Context) (*RunResult, error) {
	run := &RunResult{StartedAt: domain.Now()}

	payloads, err := p.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch forecasts: %w", err)
	}
	p.metrics.CitiesFetched.Add(float64(len(payloads)))

	observations, err := analysis.Normalize(payloads)
	if err != nil {
		return nil, fmt.Errorf("normalize payloads: %w", err)
	}
	observations = p.enricher.Enrich(observations)

	run.Observations = observations
	run.Alerts = analysis.GenerateAlerts(observations, p.thresholds)
	run.Daily = analysis.AggregateDaily(observations)
	run.Patterns = analysis.DetectPatterns(observations)
	run.Summary = analysis.Summarize(observations)
	run.Regional = analysis.SummarizeByRegion(observations)
	run.Rankings = analysis.RankCities(run.Daily)
	run.CompletedAt = domain.Now()
	return run, nil
}

func (p *Pipeline) publish(run *RunResult) {
	p.mu.Lock()
	p.latest = run
	p.mu.Unlock()
	p.ready.Store(true)
	p.metrics.PipelineReady.Set(1)
}

func (p *Pipeline) notify(ctx context.Context, run *RunResult) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyRun(ctx, run); err != nil {
		p.logger.Warn("notify run failed", "run_id", run.ID(), "error", err)
		p.metrics.NotifyErrors.Inc()
	}
}
