package analysis

import (
	"sort"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

// rankingSize caps each top/bottom list produced by RankCities.
const rankingSize = 10

// Summarize computes cross-city scalar statistics for a batch. An empty
// batch returns the zero-valued Summary rather than failing. Anomaly counts
// come from the enrichment flag and are naturally 0 when enrichment was
// skipped.
func Summarize(obs []domain.Observation) domain.Summary {
	if len(obs) == 0 {
		return domain.Summary{}
	}

	var s domain.Summary
	s.TotalRecords = len(obs)
	s.MaxTemperature = obs[0].Temperature2M
	s.MinTemperature = obs[0].Temperature2M

	seen := make(map[string]struct{})
	var tempSum, humiditySum float64
	for _, o := range obs {
		if _, ok := seen[o.City]; !ok {
			seen[o.City] = struct{}{}
			s.TotalCities++
		}
		tempSum += o.Temperature2M
		humiditySum += o.RelativeHumidity2M
		s.TotalPrecipitation += o.Precipitation
		if o.Temperature2M > s.MaxTemperature {
			s.MaxTemperature = o.Temperature2M
		}
		if o.Temperature2M < s.MinTemperature {
			s.MinTemperature = o.Temperature2M
		}
		if o.WindSpeed10M > s.MaxWindSpeed {
			s.MaxWindSpeed = o.WindSpeed10M
		}
		if o.TempAnomaly {
			s.AnomaliesDetected++
		}
	}
	s.AvgTemperature = tempSum / float64(len(obs))
	s.AvgHumidity = humiditySum / float64(len(obs))
	return s
}

// SummarizeByRegion computes the same scalar set once per distinct region,
// keyed by region name. Rows without a region are skipped; a batch with no
// regional data yields an empty map.
func SummarizeByRegion(obs []domain.Observation) map[string]domain.Summary {
	byRegion := make(map[string][]domain.Observation)
	for _, o := range obs {
		if o.Region == "" {
			continue
		}
		byRegion[o.Region] = append(byRegion[o.Region], o)
	}

	regional := make(map[string]domain.Summary, len(byRegion))
	for region, rows := range byRegion {
		regional[region] = Summarize(rows)
	}
	return regional
}

// RankCities produces the five top/bottom lists from the latest daily
// aggregate per city: hottest by max temperature, coldest by min temperature
// (ascending), rainiest, windiest, and most humid, each truncated to ten
// entries. Sorts are stable, so ties keep the input's city order.
func RankCities(daily []domain.DailyAggregate) domain.Rankings {
	latest := latestPerCity(daily)
	if len(latest) == 0 {
		return domain.Rankings{}
	}

	return domain.Rankings{
		Hottest:   rank(latest, func(d domain.DailyAggregate) float64 { return d.TempMax }, true),
		Coldest:   rank(latest, func(d domain.DailyAggregate) float64 { return d.TempMin }, false),
		Rainiest:  rank(latest, func(d domain.DailyAggregate) float64 { return d.PrecipitationTotal }, true),
		Windiest:  rank(latest, func(d domain.DailyAggregate) float64 { return d.WindMax }, true),
		MostHumid: rank(latest, func(d domain.DailyAggregate) float64 { return d.HumidityMean }, true),
	}
}

// latestPerCity keeps each city's last row. The daily table is ordered by
// (city, date), so the last row per city is that city's most recent day and
// the result stays in city order.
func latestPerCity(daily []domain.DailyAggregate) []domain.DailyAggregate {
	var latest []domain.DailyAggregate
	for i, d := range daily {
		if i+1 < len(daily) && daily[i+1].City == d.City {
			continue
		}
		latest = append(latest, d)
	}
	return latest
}

func rank(latest []domain.DailyAggregate, metric func(domain.DailyAggregate) float64, descending bool) []domain.RankingEntry {
	ordered := make([]domain.DailyAggregate, len(latest))
	copy(ordered, latest)
	sort.SliceStable(ordered, func(i, j int) bool {
		if descending {
			return metric(ordered[i]) > metric(ordered[j])
		}
		return metric(ordered[i]) < metric(ordered[j])
	})

	if len(ordered) > rankingSize {
		ordered = ordered[:rankingSize]
	}
	entries := make([]domain.RankingEntry, len(ordered))
	for i, d := range ordered {
		entries[i] = domain.RankingEntry{City: d.City, Value: metric(d)}
	}
	return entries
}
