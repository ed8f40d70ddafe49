package domain

import "time"

// HeatWave records a sustained run of hours above the heat-wave threshold for
// one city. DurationHours is the longest qualifying run; MaxTemp is the
// hottest reading across all above-threshold hours for the city, not just the
// qualifying run.
type HeatWave struct {
	City          string  `json:"city"`
	DurationHours int     `json:"duration_hours"`
	MaxTemp       float64 `json:"max_temp"`
}

// ColdFront records a rapid temperature drop over a 24-observation lookback.
// TempDrop is the most negative drop observed; Time is the first hour that
// qualified.
type ColdFront struct {
	City     string    `json:"city"`
	TempDrop float64   `json:"temp_drop"`
	Time     time.Time `json:"time"`
}

// HeavyRainEvent records a short-window precipitation burst. Precipitation3H
// is the largest trailing 3-hour sum; Time is the first hour that qualified.
type HeavyRainEvent struct {
	City            string    `json:"city"`
	Precipitation3H float64   `json:"precipitation_3h"`
	Time            time.Time `json:"time"`
}

// Patterns bundles the per-city findings of one detection pass. Each detector
// contributes at most one finding per city; cities with no qualifying hours
// are absent.
type Patterns struct {
	HeatWaves       []HeatWave       `json:"heat_waves"`
	ColdFronts      []ColdFront      `json:"cold_fronts"`
	HeavyRainEvents []HeavyRainEvent `json:"heavy_rain_events"`
}
