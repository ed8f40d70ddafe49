package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

// csvTimeLayout matches the hourly granularity of the source data.
const csvTimeLayout = "2006-01-02T15:04"

// CSVExporter writes each run's processed observations and alerts to
// timestamped CSV files. It implements pipeline.Store.
type CSVExporter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVExporter creates an exporter rooted at dir, creating it if needed.
func NewCSVExporter(dir string, logger *slog.Logger) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &CSVExporter{dir: dir, logger: logger}, nil
}

// SaveRun writes weather_data_<run-id>.csv and, when the run produced
// alerts, alerts_<run-id>.csv.
func (e *CSVExporter) SaveRun(_ context.Context, run *pipeline.RunResult) error {
	dataPath := filepath.Join(e.dir, fmt.Sprintf("weather_data_%s.csv", run.ID()))
	if err := e.writeObservations(dataPath, run); err != nil {
		return err
	}

	if len(run.Alerts) > 0 {
		alertsPath := filepath.Join(e.dir, fmt.Sprintf("alerts_%s.csv", run.ID()))
		if err := e.writeAlerts(alertsPath, run); err != nil {
			return err
		}
	}

	e.logger.Info("run exported", "run_id", run.ID(), "dir", e.dir)
	return nil
}

func (e *CSVExporter) writeObservations(path string, run *pipeline.RunResult) error {
	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"time", "city", "latitude", "longitude", "state", "region",
			"temperature_2m", "relative_humidity_2m", "precipitation",
			"wind_speed_10m", "cloud_cover", "temp_ma", "temp_anomaly",
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, o := range run.Observations {
			record := []string{
				o.Time.UTC().Format(csvTimeLayout),
				o.City,
				formatFloat(o.Latitude),
				formatFloat(o.Longitude),
				o.State,
				o.Region,
				formatFloat(o.Temperature2M),
				formatFloat(o.RelativeHumidity2M),
				formatFloat(o.Precipitation),
				formatFloat(o.WindSpeed10M),
				formatFloat(o.CloudCover),
				formatFloat(o.TempMA),
				strconv.FormatBool(o.TempAnomaly),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *CSVExporter) writeAlerts(path string, run *pipeline.RunResult) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"type", "city", "time", "value", "message"}); err != nil {
			return err
		}
		for _, a := range run.Alerts {
			record := []string{
				string(a.Type),
				a.City,
				a.Time.UTC().Format(time.RFC3339),
				formatFloat(a.Value),
				a.Message,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
