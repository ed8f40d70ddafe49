package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

func TestDetectHeatWave(t *testing.T) {
	t.Run("three consecutive hours qualifies", func(t *testing.T) {
		obs := tempSeries("Austin", 30, 36, 37, 38, 30)

		patterns := DetectPatterns(obs)
		require.Len(t, patterns.HeatWaves, 1)
		assert.Equal(t, "Austin", patterns.HeatWaves[0].City)
		assert.Equal(t, 3, patterns.HeatWaves[0].DurationHours)
		assert.Equal(t, 38.0, patterns.HeatWaves[0].MaxTemp)
	})

	t.Run("two hours is not enough", func(t *testing.T) {
		obs := tempSeries("Austin", 30, 36, 37, 30, 36, 37, 30)
		assert.Empty(t, DetectPatterns(obs).HeatWaves)
	})

	t.Run("exactly 35 does not count", func(t *testing.T) {
		obs := tempSeries("Austin", 35, 35, 35, 35)
		assert.Empty(t, DetectPatterns(obs).HeatWaves)
	})

	t.Run("longest run and global max temperature", func(t *testing.T) {
		// A short hot spike of 40 outside the longest run still sets MaxTemp.
		obs := tempSeries("Austin", 40, 30, 36, 36, 36, 37, 30)

		patterns := DetectPatterns(obs)
		require.Len(t, patterns.HeatWaves, 1)
		assert.Equal(t, 4, patterns.HeatWaves[0].DurationHours)
		assert.Equal(t, 40.0, patterns.HeatWaves[0].MaxTemp)
	})
}

func TestDetectColdFront(t *testing.T) {
	series := func(drop float64) []domain.Observation {
		temps := make([]float64, 26)
		for i := range temps {
			temps[i] = 20
		}
		temps[24] = 20 + drop
		temps[25] = 20 + drop
		return tempSeries("Denver", temps...)
	}

	t.Run("12 degree drop over 24 rows", func(t *testing.T) {
		patterns := DetectPatterns(series(-12))
		require.Len(t, patterns.ColdFronts, 1)
		cf := patterns.ColdFronts[0]
		assert.Equal(t, "Denver", cf.City)
		assert.InDelta(t, -12.0, cf.TempDrop, 1e-9)
		assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), cf.Time)
	})

	t.Run("exactly minus 10 does not qualify", func(t *testing.T) {
		assert.Empty(t, DetectPatterns(series(-10)).ColdFronts)
	})

	t.Run("warming never qualifies", func(t *testing.T) {
		assert.Empty(t, DetectPatterns(series(8)).ColdFronts)
	})

	t.Run("series shorter than the lag", func(t *testing.T) {
		assert.Empty(t, DetectPatterns(tempSeries("Denver", 20, 5)).ColdFronts)
	})
}

func TestDetectHeavyRain(t *testing.T) {
	rainSeries := func(precip ...float64) []domain.Observation {
		obs := tempSeries("Miami", make([]float64, len(precip))...)
		for i, p := range precip {
			obs[i].Precipitation = p
		}
		return obs
	}

	t.Run("three samples summing past 30", func(t *testing.T) {
		patterns := DetectPatterns(rainSeries(0, 12, 12, 12, 0))
		require.Len(t, patterns.HeavyRainEvents, 1)
		hr := patterns.HeavyRainEvents[0]
		assert.Equal(t, "Miami", hr.City)
		assert.InDelta(t, 36.0, hr.Precipitation3H, 1e-9)
		// First qualifying hour is index 3 (the sum 12+12+12).
		assert.Equal(t, time.Date(2025, 7, 14, 3, 0, 0, 0, time.UTC), hr.Time)
	})

	t.Run("sum of exactly 30 does not qualify", func(t *testing.T) {
		assert.Empty(t, DetectPatterns(rainSeries(10, 10, 10)).HeavyRainEvents)
	})

	t.Run("keeps the maximum trailing sum", func(t *testing.T) {
		patterns := DetectPatterns(rainSeries(11, 11, 11, 20, 20, 0))
		require.Len(t, patterns.HeavyRainEvents, 1)
		assert.InDelta(t, 51.0, patterns.HeavyRainEvents[0].Precipitation3H, 1e-9)
	})

	t.Run("heavy total spread wider than the window", func(t *testing.T) {
		assert.Empty(t, DetectPatterns(rainSeries(15, 0, 0, 15, 0, 0, 15)).HeavyRainEvents)
	})
}

func TestDetectPatterns(t *testing.T) {
	t.Run("unsorted input is sorted per city", func(t *testing.T) {
		obs := []domain.Observation{
			obsAt("Austin", 3, 38),
			obsAt("Austin", 1, 36),
			obsAt("Austin", 2, 37),
			obsAt("Austin", 0, 30),
		}

		patterns := DetectPatterns(obs)
		require.Len(t, patterns.HeatWaves, 1)
		assert.Equal(t, 3, patterns.HeatWaves[0].DurationHours)
	})

	t.Run("findings follow city first-appearance order", func(t *testing.T) {
		obs := append(tempSeries("Denver", 36, 37, 38), tempSeries("Austin", 37, 38, 39)...)

		patterns := DetectPatterns(obs)
		require.Len(t, patterns.HeatWaves, 2)
		assert.Equal(t, "Denver", patterns.HeatWaves[0].City)
		assert.Equal(t, "Austin", patterns.HeatWaves[1].City)
	})

	t.Run("at most one finding per detector per city", func(t *testing.T) {
		// Two separate qualifying heat runs still yield one finding.
		obs := tempSeries("Austin", 36, 37, 38, 20, 36, 37, 38, 39)

		patterns := DetectPatterns(obs)
		assert.Len(t, patterns.HeatWaves, 1)
		assert.Equal(t, 4, patterns.HeatWaves[0].DurationHours)
	})

	t.Run("empty input", func(t *testing.T) {
		patterns := DetectPatterns(nil)
		assert.Empty(t, patterns.HeatWaves)
		assert.Empty(t, patterns.ColdFronts)
		assert.Empty(t, patterns.HeavyRainEvents)
	})
}
