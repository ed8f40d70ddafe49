package domain

import "time"

// DailyAggregate is one city-day summary reduced from hourly observations.
// Latitude, longitude, state, and region carry the first value seen that day.
type DailyAggregate struct {
	City               string    `json:"city"`
	Date               time.Time `json:"date"`
	TempMean           float64   `json:"temp_mean"`
	TempMin            float64   `json:"temp_min"`
	TempMax            float64   `json:"temp_max"`
	HumidityMean       float64   `json:"humidity_mean"`
	PrecipitationTotal float64   `json:"precipitation_total"`
	WindMax            float64   `json:"wind_max"`
	CloudCoverMean     float64   `json:"cloud_cover_mean"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	State              string    `json:"state,omitempty"`
	Region             string    `json:"region,omitempty"`
}
