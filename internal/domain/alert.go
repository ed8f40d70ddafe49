package domain

import "time"

// AlertType identifies which threshold predicate an alert came from.
type AlertType string

const (
	AlertHighTemperature    AlertType = "high_temperature"
	AlertLowTemperature     AlertType = "low_temperature"
	AlertHighWind           AlertType = "high_wind"
	AlertHeavyPrecipitation AlertType = "heavy_precipitation"
)

// Valid returns true when the alert type is one of the four known kinds.
func (t AlertType) Valid() bool {
	switch t {
	case AlertHighTemperature, AlertLowTemperature, AlertHighWind, AlertHeavyPrecipitation:
		return true
	default:
		return false
	}
}

// Critical reports whether alerts of this type warrant immediate
// notification (high temperature and high wind, matching the notifier's
// escalation rules).
func (t AlertType) Critical() bool {
	return t == AlertHighTemperature || t == AlertHighWind
}

// Alert is a point-in-time threshold violation for one observation row.
// Alerts are independent events; the generator does not deduplicate them.
type Alert struct {
	Type    AlertType `json:"type"`
	City    string    `json:"city"`
	Time    time.Time `json:"time"`
	Value   float64   `json:"value"`
	Message string    `json:"message"`
}

// ConsolidatedAlert is the presentation-side view of a group of same-city,
// same-type, same-day alerts: the extreme (or first) entry plus how many
// raw alerts the group contained.
type ConsolidatedAlert struct {
	Type    AlertType `json:"type"`
	City    string    `json:"city"`
	Date    time.Time `json:"date"`
	Time    time.Time `json:"time"`
	Value   float64   `json:"value"`
	Count   int       `json:"count"`
	Message string    `json:"message"`
}
