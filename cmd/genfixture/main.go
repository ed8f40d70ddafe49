// Command genfixture generates a deterministic JSON fixture of city forecast
// payloads for test suites and local development. The synthetic series uses
// smooth diurnal curves plus per-city offsets, with spikes injected so the
// alert, anomaly, and pattern paths all have something to find.
//
// Usage:
//
//	go run ./cmd/genfixture -out data/fixtures/city_payloads.json -cities 3 -hours 72
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

var baseTime = time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC)

type cityDef struct {
	name   string
	lat    float64
	lon    float64
	state  string
	region string
}

var cityDefs = []cityDef{
	{name: "Austin", lat: 30.27, lon: -97.74, state: "TX", region: "South"},
	{name: "Denver", lat: 39.74, lon: -104.99, state: "CO", region: "West"},
	{name: "Chicago", lat: 41.88, lon: -87.63, state: "IL", region: "Midwest"},
	{name: "Seattle", lat: 47.61, lon: -122.33, state: "WA", region: "West"},
	{name: "Miami", lat: 25.76, lon: -80.19, state: "FL", region: "South"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the JSON fixture")
	cities := flag.Int("cities", 3, "number of cities to include (max 5)")
	hours := flag.Int("hours", 72, "hourly samples per city")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *cities < 1 || *cities > len(cityDefs) {
		return fmt.Errorf("-cities must be between 1 and %d", len(cityDefs))
	}
	if *hours < 1 {
		return fmt.Errorf("-hours must be positive")
	}

	// Fixed clock for reproducible FetchedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.July, 14, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	payloads := make([]domain.CityPayload, 0, *cities)
	for i, def := range cityDefs[:*cities] {
		payloads = append(payloads, buildPayload(def, i, *hours))
	}

	if err := writeJSON(*out, payloads); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d cities x %d hours: %s", *cities, *hours, *out)
	return nil
}

// buildPayload produces one city's hourly series. The third city (index 2)
// gets a 35°C-plus afternoon stretch and a heavy-rain burst so heat wave and
// precipitation detection have material to work with.
func buildPayload(def cityDef, index, hours int) domain.CityPayload {
	series := &domain.HourlySeries{
		Time:               make([]string, hours),
		Temperature2M:      make([]float64, hours),
		RelativeHumidity2M: make([]float64, hours),
		Precipitation:      make([]float64, hours),
		WindSpeed10M:       make([]float64, hours),
		CloudCover:         make([]float64, hours),
	}

	for h := 0; h < hours; h++ {
		t := baseTime.Add(time.Duration(h) * time.Hour)
		series.Time[h] = t.Format("2006-01-02T15:04")

		// Diurnal temperature curve peaking mid-afternoon, shifted per city.
		phase := 2 * math.Pi * float64(h%24) / 24
		temp := 22 + 3*float64(index) + 8*math.Sin(phase-math.Pi/2)
		if index == 2 && h%24 >= 12 && h%24 <= 16 {
			temp = 36.5 + float64(h%24-12)
		}
		series.Temperature2M[h] = round1(temp)

		series.RelativeHumidity2M[h] = round1(55 + 20*math.Cos(phase) + 2*float64(index))
		series.WindSpeed10M[h] = round1(12 + 6*math.Sin(phase+float64(index)))
		series.CloudCover[h] = round1(40 + 30*math.Sin(phase/2))

		if index == 2 && h >= 30 && h < 33 {
			series.Precipitation[h] = 12.5
		} else if h%11 == 0 {
			series.Precipitation[h] = 0.4
		}
	}

	return domain.CityPayload{
		CityName:  def.name,
		Lat:       def.lat,
		Lon:       def.lon,
		State:     def.state,
		Region:    def.region,
		FetchedAt: domain.Now(),
		Hourly:    series,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
