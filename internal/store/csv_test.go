package store

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRun() *pipeline.RunResult {
	started := time.Date(2025, 7, 14, 6, 0, 0, 0, time.UTC)
	return &pipeline.RunResult{
		StartedAt:   started,
		CompletedAt: started.Add(20 * time.Second),
		Observations: []domain.Observation{
			{
				Time:               time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC),
				City:               "Austin",
				Latitude:           30.27,
				Longitude:          -97.74,
				State:              "TX",
				Region:             "South",
				Temperature2M:      38.5,
				RelativeHumidity2M: 45,
				Precipitation:      0,
				WindSpeed10M:       15.5,
				CloudCover:         10,
				TempMA:             36.2,
				TempAnomaly:        true,
			},
			{
				Time:          time.Date(2025, 7, 14, 13, 0, 0, 0, time.UTC),
				City:          "Austin",
				Temperature2M: 37.0,
			},
		},
		Alerts: []domain.Alert{
			{
				Type:    domain.AlertHighTemperature,
				City:    "Austin",
				Time:    time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC),
				Value:   38.5,
				Message: "High temperature alert: 38.5°C",
			},
		},
		Daily: []domain.DailyAggregate{
			{
				City:     "Austin",
				Date:     time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
				TempMean: 37.75,
				TempMin:  37.0,
				TempMax:  38.5,
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVExporter(t *testing.T) {
	t.Run("writes observation and alert files", func(t *testing.T) {
		dir := t.TempDir()
		e, err := NewCSVExporter(dir, testLogger())
		require.NoError(t, err)

		run := testRun()
		require.NoError(t, e.SaveRun(context.Background(), run))

		records := readCSV(t, filepath.Join(dir, "weather_data_20250714_060000.csv"))
		require.Len(t, records, 3)
		assert.Equal(t, "time", records[0][0])
		assert.Equal(t, "temp_anomaly", records[0][12])
		assert.Equal(t, "2025-07-14T12:00", records[1][0])
		assert.Equal(t, "Austin", records[1][1])
		assert.Equal(t, "38.5", records[1][6])
		assert.Equal(t, "36.2", records[1][11])
		assert.Equal(t, "true", records[1][12])
		assert.Equal(t, "false", records[2][12])

		alerts := readCSV(t, filepath.Join(dir, "alerts_20250714_060000.csv"))
		require.Len(t, alerts, 2)
		assert.Equal(t, []string{"type", "city", "time", "value", "message"}, alerts[0])
		assert.Equal(t, "high_temperature", alerts[1][0])
		assert.Equal(t, "High temperature alert: 38.5°C", alerts[1][4])
	})

	t.Run("no alerts file when the run produced none", func(t *testing.T) {
		dir := t.TempDir()
		e, err := NewCSVExporter(dir, testLogger())
		require.NoError(t, err)

		run := testRun()
		run.Alerts = nil
		require.NoError(t, e.SaveRun(context.Background(), run))

		_, err = os.Stat(filepath.Join(dir, "alerts_20250714_060000.csv"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("creates the export directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "exports")
		_, err := NewCSVExporter(dir, testLogger())
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestSQLiteStore(t *testing.T) {
	t.Run("round-trips a run", func(t *testing.T) {
		s, err := NewSQLite(filepath.Join(t.TempDir(), "weather.db"), testLogger())
		require.NoError(t, err)

		run := testRun()
		require.NoError(t, s.SaveRun(context.Background(), run))

		var observations []observationRow
		require.NoError(t, s.db.Where("run_id = ?", run.ID()).Find(&observations).Error)
		require.Len(t, observations, 2)
		assert.Equal(t, "Austin", observations[0].City)
		assert.Equal(t, 38.5, observations[0].Temperature2M)
		assert.True(t, observations[0].TempAnomaly)

		var alerts []alertRow
		require.NoError(t, s.db.Find(&alerts).Error)
		require.Len(t, alerts, 1)
		assert.Equal(t, "high_temperature", alerts[0].Type)

		var daily []dailyAggregateRow
		require.NoError(t, s.db.Find(&daily).Error)
		require.Len(t, daily, 1)
		assert.Equal(t, 38.5, daily[0].TempMax)
	})

	t.Run("empty run persists nothing but succeeds", func(t *testing.T) {
		s, err := NewSQLite(filepath.Join(t.TempDir(), "weather.db"), testLogger())
		require.NoError(t, err)

		run := &pipeline.RunResult{StartedAt: time.Date(2025, 7, 14, 6, 0, 0, 0, time.UTC)}
		require.NoError(t, s.SaveRun(context.Background(), run))

		var count int64
		require.NoError(t, s.db.Model(&observationRow{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestMultiStore(t *testing.T) {
	dir := t.TempDir()
	sqlite, err := NewSQLite(filepath.Join(dir, "weather.db"), testLogger())
	require.NoError(t, err)
	exporter, err := NewCSVExporter(filepath.Join(dir, "exports"), testLogger())
	require.NoError(t, err)

	m := Multi{sqlite, exporter}
	require.NoError(t, m.SaveRun(context.Background(), testRun()))

	_, err = os.Stat(filepath.Join(dir, "exports", "weather_data_20250714_060000.csv"))
	assert.NoError(t, err)

	var count int64
	require.NoError(t, sqlite.db.Model(&observationRow{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
