package domain

import "time"

// HourlySeries is the parallel-array hourly block of an Open-Meteo forecast
// response. All arrays must have the same length; index i of every array
// describes the same hour.
type HourlySeries struct {
	Time               []string  `json:"time"`
	Temperature2M      []float64 `json:"temperature_2m"`
	RelativeHumidity2M []float64 `json:"relative_humidity_2m"`
	Precipitation      []float64 `json:"precipitation"`
	WindSpeed10M       []float64 `json:"wind_speed_10m"`
	CloudCover         []float64 `json:"cloud_cover"`
}

// CityPayload is the raw forecast for one city as produced by the fetch
// adapter: the API response's hourly block plus the city descriptor the
// request was made for. A city whose fetch failed is simply absent from the
// batch; the pipeline never sees a partial or error-tagged payload.
type CityPayload struct {
	CityName  string        `json:"city_name"`
	Lat       float64       `json:"lat"`
	Lon       float64       `json:"lon"`
	State     string        `json:"state,omitempty"`
	Region    string        `json:"region,omitempty"`
	FetchedAt time.Time     `json:"fetch_timestamp"`
	Hourly    *HourlySeries `json:"hourly"`
}

// Observation is one hourly reading for one city. TempMA and TempAnomaly are
// zero-valued until enrichment runs.
type Observation struct {
	Time               time.Time `json:"time"`
	City               string    `json:"city"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	State              string    `json:"state,omitempty"`
	Region             string    `json:"region,omitempty"`
	Temperature2M      float64   `json:"temperature_2m"`
	RelativeHumidity2M float64   `json:"relative_humidity_2m"`
	Precipitation      float64   `json:"precipitation"`
	WindSpeed10M       float64   `json:"wind_speed_10m"`
	CloudCover         float64   `json:"cloud_cover"`

	// Derived by enrichment.
	TempMA      float64 `json:"temp_ma"`
	TempAnomaly bool    `json:"temp_anomaly"`
}

// Date returns the observation's calendar date (midnight UTC), the grouping
// key used by the daily aggregator.
func (o Observation) Date() time.Time {
	return o.Time.UTC().Truncate(24 * time.Hour)
}
