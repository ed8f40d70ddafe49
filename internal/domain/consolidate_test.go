package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertAt(typ AlertType, city string, day, hour int, value float64, msg string) Alert {
	return Alert{
		Type:    typ,
		City:    city,
		Time:    time.Date(2025, 7, 14+day, hour, 0, 0, 0, time.UTC),
		Value:   value,
		Message: msg,
	}
}

func TestConsolidate(t *testing.T) {
	t.Run("magnitude group keeps the peak", func(t *testing.T) {
		alerts := []Alert{
			alertAt(AlertHighTemperature, "Austin", 0, 12, 36.5, "High temperature alert: 36.5°C"),
			alertAt(AlertHighTemperature, "Austin", 0, 14, 39.0, "High temperature alert: 39.0°C"),
			alertAt(AlertHighTemperature, "Austin", 0, 16, 37.2, "High temperature alert: 37.2°C"),
		}

		out := Consolidate(alerts)
		require.Len(t, out, 1)
		c := out[0]
		assert.Equal(t, 3, c.Count)
		assert.Equal(t, 39.0, c.Value)
		assert.Equal(t, alerts[1].Time, c.Time)
		assert.Equal(t, "High temperature alert: 36.5°C (peak: 39.0, 3x)", c.Message)
	})

	t.Run("single alert keeps its original message", func(t *testing.T) {
		out := Consolidate([]Alert{
			alertAt(AlertHighWind, "Denver", 0, 3, 55.0, "High wind alert: 55.0 km/h"),
		})
		require.Len(t, out, 1)
		assert.Equal(t, 1, out[0].Count)
		assert.Equal(t, "High wind alert: 55.0 km/h", out[0].Message)
	})

	t.Run("low temperature group keeps the first entry", func(t *testing.T) {
		alerts := []Alert{
			alertAt(AlertLowTemperature, "Fargo", 0, 2, -12.0, "Low temperature alert: -12.0°C"),
			alertAt(AlertLowTemperature, "Fargo", 0, 4, -18.0, "Low temperature alert: -18.0°C"),
		}

		out := Consolidate(alerts)
		require.Len(t, out, 1)
		assert.Equal(t, 2, out[0].Count)
		assert.Equal(t, -12.0, out[0].Value)
		assert.Equal(t, alerts[0].Time, out[0].Time)
		assert.Equal(t, "Low temperature alert: -12.0°C", out[0].Message)
	})

	t.Run("groups split by city, type, and date", func(t *testing.T) {
		alerts := []Alert{
			alertAt(AlertHighTemperature, "Austin", 0, 12, 36.0, "a"),
			alertAt(AlertHighTemperature, "Austin", 1, 12, 37.0, "b"),
			alertAt(AlertHighTemperature, "Denver", 0, 12, 38.0, "c"),
			alertAt(AlertHighWind, "Austin", 0, 12, 60.0, "d"),
		}

		out := Consolidate(alerts)
		assert.Len(t, out, 4)
	})

	t.Run("ordered by date descending then severity", func(t *testing.T) {
		alerts := []Alert{
			alertAt(AlertLowTemperature, "Fargo", 0, 2, -12.0, "low"),
			alertAt(AlertHighWind, "Denver", 1, 3, 55.0, "wind"),
			alertAt(AlertHighTemperature, "Austin", 0, 12, 36.0, "hot"),
			alertAt(AlertHeavyPrecipitation, "Miami", 1, 8, 28.0, "rain"),
		}

		out := Consolidate(alerts)
		require.Len(t, out, 4)
		assert.Equal(t, AlertHighWind, out[0].Type)           // newest day, higher severity
		assert.Equal(t, AlertHeavyPrecipitation, out[1].Type) // newest day
		assert.Equal(t, AlertHighTemperature, out[2].Type)    // older day, highest severity
		assert.Equal(t, AlertLowTemperature, out[3].Type)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, Consolidate(nil))
	})
}

func TestAlertType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		for _, typ := range []AlertType{AlertHighTemperature, AlertLowTemperature, AlertHighWind, AlertHeavyPrecipitation} {
			assert.True(t, typ.Valid(), string(typ))
		}
		assert.False(t, AlertType("tsunami").Valid())
	})

	t.Run("critical types", func(t *testing.T) {
		assert.True(t, AlertHighTemperature.Critical())
		assert.True(t, AlertHighWind.Critical())
		assert.False(t, AlertLowTemperature.Critical())
		assert.False(t, AlertHeavyPrecipitation.Critical())
	})
}
