package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

var testThresholds = AlertThresholds{
	TempHigh:   35.0,
	TempLow:    -10.0,
	WindHigh:   50.0,
	PrecipHigh: 25.0,
}

func TestGenerateAlerts(t *testing.T) {
	t.Run("single high temperature violation", func(t *testing.T) {
		obs := []domain.Observation{obsAt("Austin", 0, 40.0)}

		alerts := GenerateAlerts(obs, testThresholds)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertHighTemperature, alerts[0].Type)
		assert.Equal(t, "Austin", alerts[0].City)
		assert.Equal(t, 40.0, alerts[0].Value)
		assert.Equal(t, "High temperature alert: 40.0°C", alerts[0].Message)
	})

	t.Run("thresholds are exclusive", func(t *testing.T) {
		o := obsAt("Austin", 0, 35.0)
		o.WindSpeed10M = 50.0
		o.Precipitation = 25.0

		assert.Empty(t, GenerateAlerts([]domain.Observation{o}, testThresholds))
	})

	t.Run("one row can violate several predicates", func(t *testing.T) {
		o := obsAt("Austin", 0, 40.0)
		o.WindSpeed10M = 80.0
		o.Precipitation = 30.0

		alerts := GenerateAlerts([]domain.Observation{o}, testThresholds)
		require.Len(t, alerts, 3)
		assert.Equal(t, domain.AlertHighTemperature, alerts[0].Type)
		assert.Equal(t, domain.AlertHighWind, alerts[1].Type)
		assert.Equal(t, domain.AlertHeavyPrecipitation, alerts[2].Type)
	})

	t.Run("output grouped by type, not chronological", func(t *testing.T) {
		windy := obsAt("Denver", 0, 20.0)
		windy.WindSpeed10M = 90.0
		hot := obsAt("Austin", 5, 41.0)

		alerts := GenerateAlerts([]domain.Observation{windy, hot}, testThresholds)
		require.Len(t, alerts, 2)
		// The wind violation is earlier in time but high temperature
		// alerts come first.
		assert.Equal(t, domain.AlertHighTemperature, alerts[0].Type)
		assert.Equal(t, domain.AlertHighWind, alerts[1].Type)
	})

	t.Run("low temperature fires on strictly smaller", func(t *testing.T) {
		atLimit := obsAt("Fargo", 0, -10.0)
		below := obsAt("Fargo", 1, -10.5)

		alerts := GenerateAlerts([]domain.Observation{atLimit, below}, testThresholds)
		require.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertLowTemperature, alerts[0].Type)
		assert.Equal(t, "Low temperature alert: -10.5°C", alerts[0].Message)
	})

	t.Run("wind and precipitation messages", func(t *testing.T) {
		o := obsAt("Miami", 0, 30.0)
		o.WindSpeed10M = 62.5
		o.Precipitation = 31.2

		alerts := GenerateAlerts([]domain.Observation{o}, testThresholds)
		require.Len(t, alerts, 2)
		assert.Equal(t, "High wind alert: 62.5 km/h", alerts[0].Message)
		assert.Equal(t, "Heavy precipitation alert: 31.2 mm", alerts[1].Message)
	})

	t.Run("no observations, no alerts", func(t *testing.T) {
		assert.Empty(t, GenerateAlerts(nil, testThresholds))
	})
}
