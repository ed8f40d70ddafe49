package analysis

import (
	"fmt"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

// AlertThresholds are the four independent predicate limits. High-side
// predicates fire on strictly greater values, the low-temperature predicate
// on strictly smaller ones.
type AlertThresholds struct {
	TempHigh   float64
	TempLow    float64
	WindHigh   float64
	PrecipHigh float64
}

// GenerateAlerts scans every observation against the four threshold
// predicates and emits one alert per violated predicate. A single row can
// therefore yield several alerts. Output is grouped by type — all high
// temperature alerts in row order, then low temperature, high wind, and
// heavy precipitation — not interleaved chronologically; a consumer that
// needs time order across types must re-sort.
func GenerateAlerts(obs []domain.Observation, t AlertThresholds) []domain.Alert {
	var alerts []domain.Alert

	for _, o := range obs {
		if o.Temperature2M > t.TempHigh {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertHighTemperature,
				City:    o.City,
				Time:    o.Time,
				Value:   o.Temperature2M,
				Message: fmt.Sprintf("High temperature alert: %.1f°C", o.Temperature2M),
			})
		}
	}
	for _, o := range obs {
		if o.Temperature2M < t.TempLow {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertLowTemperature,
				City:    o.City,
				Time:    o.Time,
				Value:   o.Temperature2M,
				Message: fmt.Sprintf("Low temperature alert: %.1f°C", o.Temperature2M),
			})
		}
	}
	for _, o := range obs {
		if o.WindSpeed10M > t.WindHigh {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertHighWind,
				City:    o.City,
				Time:    o.Time,
				Value:   o.WindSpeed10M,
				Message: fmt.Sprintf("High wind alert: %.1f km/h", o.WindSpeed10M),
			})
		}
	}
	for _, o := range obs {
		if o.Precipitation > t.PrecipHigh {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertHeavyPrecipitation,
				City:    o.City,
				Time:    o.Time,
				Value:   o.Precipitation,
				Message: fmt.Sprintf("Heavy precipitation alert: %.1f mm", o.Precipitation),
			})
		}
	}

	return alerts
}
