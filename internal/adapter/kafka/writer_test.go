package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

func TestSerializeAlert(t *testing.T) {
	alert := domain.Alert{
		Type:    domain.AlertHighWind,
		City:    "Denver",
		Time:    time.Date(2025, 7, 14, 15, 0, 0, 0, time.UTC),
		Value:   62.5,
		Message: "High wind alert: 62.5 km/h",
	}

	msg, err := serializeAlert("20250714_060000", alert)
	require.NoError(t, err)

	assert.Equal(t, []byte("Denver"), msg.Key)

	var decoded domain.Alert
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, alert.Type, decoded.Type)
	assert.Equal(t, alert.Value, decoded.Value)
	assert.Equal(t, alert.Message, decoded.Message)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "alert", headers["kind"])
	assert.Equal(t, "high_wind", headers["alert_type"])
	assert.Equal(t, "true", headers["critical"])
	assert.Equal(t, "20250714_060000", headers["run_id"])
}

func TestSerializeAlertCriticality(t *testing.T) {
	tests := []struct {
		typ      domain.AlertType
		critical string
	}{
		{domain.AlertHighTemperature, "true"},
		{domain.AlertHighWind, "true"},
		{domain.AlertLowTemperature, "false"},
		{domain.AlertHeavyPrecipitation, "false"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			msg, err := serializeAlert("run", domain.Alert{Type: tt.typ, City: "Austin"})
			require.NoError(t, err)
			for _, h := range msg.Headers {
				if h.Key == "critical" {
					assert.Equal(t, tt.critical, string(h.Value))
					return
				}
			}
			t.Fatal("critical header missing")
		})
	}
}

func TestSerializeSummary(t *testing.T) {
	run := &pipeline.RunResult{
		StartedAt:   time.Date(2025, 7, 14, 6, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2025, 7, 14, 6, 0, 30, 0, time.UTC),
		Alerts:      []domain.Alert{{Type: domain.AlertHighTemperature}},
		Summary:     domain.Summary{TotalCities: 3, TotalRecords: 72, AnomaliesDetected: 2},
	}

	msg, err := serializeSummary(run)
	require.NoError(t, err)

	assert.Equal(t, []byte("20250714_060000"), msg.Key)

	var decoded struct {
		RunID      string         `json:"run_id"`
		Summary    domain.Summary `json:"summary"`
		AlertCount int            `json:"alert_count"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "20250714_060000", decoded.RunID)
	assert.Equal(t, 3, decoded.Summary.TotalCities)
	assert.Equal(t, 1, decoded.AlertCount)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "run_summary", headers["kind"])
	assert.Equal(t, "20250714_060000", headers["run_id"])
}
