// Package store persists pipeline run outputs: a sqlite database for
// queryable history and timestamped CSV exports for downstream tooling.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

// insertBatchSize bounds the row count per INSERT to keep statements inside
// sqlite's variable limit.
const insertBatchSize = 500

type observationRow struct {
	ID                 uint      `gorm:"primaryKey"`
	RunID              string    `gorm:"column:run_id;index"`
	Time               time.Time `gorm:"column:time"`
	City               string    `gorm:"column:city;index"`
	Latitude           float64   `gorm:"column:latitude"`
	Longitude          float64   `gorm:"column:longitude"`
	State              string    `gorm:"column:state"`
	Region             string    `gorm:"column:region"`
	Temperature2M      float64   `gorm:"column:temperature_2m"`
	RelativeHumidity2M float64   `gorm:"column:relative_humidity_2m"`
	Precipitation      float64   `gorm:"column:precipitation"`
	WindSpeed10M       float64   `gorm:"column:wind_speed_10m"`
	CloudCover         float64   `gorm:"column:cloud_cover"`
	TempMA             float64   `gorm:"column:temp_ma"`
	TempAnomaly        bool      `gorm:"column:temp_anomaly"`
}

func (observationRow) TableName() string { return "observations" }

type alertRow struct {
	ID      uint      `gorm:"primaryKey"`
	RunID   string    `gorm:"column:run_id;index"`
	Type    string    `gorm:"column:type;index"`
	City    string    `gorm:"column:city;index"`
	Time    time.Time `gorm:"column:time"`
	Value   float64   `gorm:"column:value"`
	Message string    `gorm:"column:message"`
}

func (alertRow) TableName() string { return "alerts" }

type dailyAggregateRow struct {
	ID                 uint      `gorm:"primaryKey"`
	RunID              string    `gorm:"column:run_id;index"`
	City               string    `gorm:"column:city;index"`
	Date               time.Time `gorm:"column:date"`
	TempMean           float64   `gorm:"column:temp_mean"`
	TempMin            float64   `gorm:"column:temp_min"`
	TempMax            float64   `gorm:"column:temp_max"`
	HumidityMean       float64   `gorm:"column:humidity_mean"`
	PrecipitationTotal float64   `gorm:"column:precipitation_total"`
	WindMax            float64   `gorm:"column:wind_max"`
	CloudCoverMean     float64   `gorm:"column:cloud_cover_mean"`
	Latitude           float64   `gorm:"column:latitude"`
	Longitude          float64   `gorm:"column:longitude"`
	State              string    `gorm:"column:state"`
	Region             string    `gorm:"column:region"`
}

func (dailyAggregateRow) TableName() string { return "daily_aggregates" }

// SQLiteStore persists run outputs to a sqlite database.
// It implements pipeline.Store.
type SQLiteStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewSQLite opens (or creates) the database at path and migrates the schema.
func NewSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&observationRow{}, &alertRow{}, &dailyAggregateRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// SaveRun bulk-inserts the run's observations, alerts, and daily aggregates
// in one transaction, tagged with the run ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *pipeline.RunResult) error {
	runID := run.ID()

	observations := make([]observationRow, 0, len(run.Observations))
	for _, o := range run.Observations {
		observations = append(observations, observationRow{
			RunID:              runID,
			Time:               o.Time,
			City:               o.City,
			Latitude:           o.Latitude,
			Longitude:          o.Longitude,
			State:              o.State,
			Region:             o.Region,
			Temperature2M:      o.Temperature2M,
			RelativeHumidity2M: o.RelativeHumidity2M,
			Precipitation:      o.Precipitation,
			WindSpeed10M:       o.WindSpeed10M,
			CloudCover:         o.CloudCover,
			TempMA:             o.TempMA,
			TempAnomaly:        o.TempAnomaly,
		})
	}

	alerts := make([]alertRow, 0, len(run.Alerts))
	for _, a := range run.Alerts {
		alerts = append(alerts, alertRow{
			RunID:   runID,
			Type:    string(a.Type),
			City:    a.City,
			Time:    a.Time,
			Value:   a.Value,
			Message: a.Message,
		})
	}

	daily := make([]dailyAggregateRow, 0, len(run.Daily))
	for _, d := range run.Daily {
		daily = append(daily, dailyAggregateRow{
			RunID:              runID,
			City:               d.City,
			Date:               d.Date,
			TempMean:           d.TempMean,
			TempMin:            d.TempMin,
			TempMax:            d.TempMax,
			HumidityMean:       d.HumidityMean,
			PrecipitationTotal: d.PrecipitationTotal,
			WindMax:            d.WindMax,
			CloudCoverMean:     d.CloudCoverMean,
			Latitude:           d.Latitude,
			Longitude:          d.Longitude,
			State:              d.State,
			Region:             d.Region,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(observations) > 0 {
			if err := tx.CreateInBatches(observations, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert observations: %w", err)
			}
		}
		if len(alerts) > 0 {
			if err := tx.CreateInBatches(alerts, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert alerts: %w", err)
			}
		}
		if len(daily) > 0 {
			if err := tx.CreateInBatches(daily, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert daily aggregates: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("run persisted",
		"run_id", runID,
		"observations", len(observations),
		"alerts", len(alerts),
		"daily_rows", len(daily),
	)
	return nil
}
