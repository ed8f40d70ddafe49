package domain

// Summary holds cross-city scalar statistics for one batch of observations.
// An empty batch yields the zero value rather than an error.
type Summary struct {
	TotalCities        int     `json:"total_cities"`
	TotalRecords       int     `json:"total_records"`
	AvgTemperature     float64 `json:"avg_temperature"`
	MaxTemperature     float64 `json:"max_temperature"`
	MinTemperature     float64 `json:"min_temperature"`
	AvgHumidity        float64 `json:"avg_humidity"`
	TotalPrecipitation float64 `json:"total_precipitation"`
	MaxWindSpeed       float64 `json:"max_wind_speed"`
	AnomaliesDetected  int     `json:"anomalies_detected"`
}

// RankingEntry pairs a city with the metric value it ranked on.
type RankingEntry struct {
	City  string  `json:"city"`
	Value float64 `json:"value"`
}

// Rankings holds the five independent top/bottom-10 city lists computed from
// the latest daily aggregate per city.
type Rankings struct {
	Hottest   []RankingEntry `json:"hottest"`
	Coldest   []RankingEntry `json:"coldest"`
	Rainiest  []RankingEntry `json:"rainiest"`
	Windiest  []RankingEntry `json:"windiest"`
	MostHumid []RankingEntry `json:"most_humid"`
}
