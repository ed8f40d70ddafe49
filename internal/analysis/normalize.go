package analysis

import (
	"fmt"
	"time"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

// hourlyTimeLayout is the zone-less wall-clock format Open-Meteo uses for
// hourly timestamps. Parsed as UTC so calendar grouping is deterministic.
const hourlyTimeLayout = "2006-01-02T15:04"

// Normalize converts per-city raw payloads into a single unified table of
// hourly observations. Row order is the concatenation of each city's series
// in payload order. An empty payload batch yields an empty table.
//
// A payload with a missing hourly block, parallel arrays of unequal length,
// or an unparseable timestamp is rejected with a *domain.DataShapeError;
// nothing is silently truncated.
func Normalize(payloads []domain.CityPayload) ([]domain.Observation, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	var table []domain.Observation
	for _, p := range payloads {
		rows, err := normalizeCity(p)
		if err != nil {
			return nil, err
		}
		table = append(table, rows...)
	}
	return table, nil
}

func normalizeCity(p domain.CityPayload) ([]domain.Observation, error) {
	if p.Hourly == nil {
		return nil, &domain.DataShapeError{City: p.CityName, Reason: "missing hourly series"}
	}

	h := p.Hourly
	n := len(h.Time)
	for _, series := range []struct {
		name   string
		length int
	}{
		{"temperature_2m", len(h.Temperature2M)},
		{"relative_humidity_2m", len(h.RelativeHumidity2M)},
		{"precipitation", len(h.Precipitation)},
		{"wind_speed_10m", len(h.WindSpeed10M)},
		{"cloud_cover", len(h.CloudCover)},
	} {
		if series.length != n {
			return nil, &domain.DataShapeError{
				City:   p.CityName,
				Reason: fmt.Sprintf("series %s has %d values, time has %d", series.name, series.length, n),
			}
		}
	}

	rows := make([]domain.Observation, 0, n)
	for i := 0; i < n; i++ {
		ts, err := parseHourlyTime(h.Time[i])
		if err != nil {
			return nil, &domain.DataShapeError{
				City:   p.CityName,
				Reason: fmt.Sprintf("bad timestamp %q at index %d", h.Time[i], i),
			}
		}
		rows = append(rows, domain.Observation{
			Time:               ts,
			City:               p.CityName,
			Latitude:           p.Lat,
			Longitude:          p.Lon,
			State:              p.State,
			Region:             p.Region,
			Temperature2M:      h.Temperature2M[i],
			RelativeHumidity2M: h.RelativeHumidity2M[i],
			Precipitation:      h.Precipitation[i],
			WindSpeed10M:       h.WindSpeed10M[i],
			CloudCover:         h.CloudCover[i],
		})
	}
	return rows, nil
}

// parseHourlyTime accepts the Open-Meteo zone-less layout and falls back to
// RFC 3339 for payloads produced with an explicit offset.
func parseHourlyTime(s string) (time.Time, error) {
	if ts, err := time.ParseInLocation(hourlyTimeLayout, s, time.UTC); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}
