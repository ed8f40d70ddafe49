package analysis

import (
	"sort"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

// Pattern detection thresholds. Fixed climatological heuristics, not
// operator-tunable like the alert thresholds.
const (
	heatWaveTempC    = 35.0 // hourly temperature above this counts toward a heat wave
	heatWaveMinHours = 3    // minimum consecutive qualifying hours
	coldFrontDropC   = -10.0 // 24-observation temperature change below this qualifies
	coldFrontLag     = 24    // lookback in rows, not calendar hours
	heavyRainWindow  = 3     // trailing sample count for the precipitation sum
	heavyRainTotalMM = 30.0  // trailing sum above this qualifies
)

// DetectPatterns scans each city's time-ordered series for sustained heat
// waves, rapid cooling, and short-window precipitation bursts. Each detector
// contributes at most one finding per city (the strongest or first qualifying
// occurrence), so output size is bounded by the city count. Findings follow
// the first-appearance order of cities in the input.
//
// Rows are sorted chronologically per city before scanning; callers need not
// pre-sort.
func DetectPatterns(obs []domain.Observation) domain.Patterns {
	var patterns domain.Patterns
	if len(obs) == 0 {
		return patterns
	}

	cities, groups := cityGroups(obs)
	for _, city := range cities {
		series := sortedCitySeries(obs, groups[city])

		if hw, ok := detectHeatWave(city, series); ok {
			patterns.HeatWaves = append(patterns.HeatWaves, hw)
		}
		if cf, ok := detectColdFront(city, series); ok {
			patterns.ColdFronts = append(patterns.ColdFronts, cf)
		}
		if hr, ok := detectHeavyRain(city, series); ok {
			patterns.HeavyRainEvents = append(patterns.HeavyRainEvents, hr)
		}
	}
	return patterns
}

// sortedCitySeries copies one city's rows and sorts them by time ascending.
// The sort is stable so duplicate timestamps keep their input order.
func sortedCitySeries(obs []domain.Observation, idx []int) []domain.Observation {
	series := make([]domain.Observation, len(idx))
	for pos, i := range idx {
		series[pos] = obs[i]
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Time.Before(series[j].Time)
	})
	return series
}

// detectHeatWave partitions the above-threshold flag into maximal runs of
// consecutive hours. Any run of at least heatWaveMinHours constitutes a heat
// wave; the finding carries the longest run length and the maximum
// temperature across all above-threshold hours, not just the longest run.
func detectHeatWave(city string, series []domain.Observation) (domain.HeatWave, bool) {
	var (
		longestRun int
		currentRun int
		maxTemp    float64
		anyHot     bool
	)
	for _, o := range series {
		if o.Temperature2M > heatWaveTempC {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
			if !anyHot || o.Temperature2M > maxTemp {
				maxTemp = o.Temperature2M
				anyHot = true
			}
		} else {
			currentRun = 0
		}
	}

	if longestRun < heatWaveMinHours {
		return domain.HeatWave{}, false
	}
	return domain.HeatWave{City: city, DurationHours: longestRun, MaxTemp: maxTemp}, true
}

// detectColdFront compares each hour with the observation exactly coldFrontLag
// rows earlier in the sorted series — a positional lookback, not a calendar
// one, so gaps in the data shift the comparison window with them.
func detectColdFront(city string, series []domain.Observation) (domain.ColdFront, bool) {
	var (
		found    bool
		minDrop  float64
		firstHit domain.Observation
	)
	for i := coldFrontLag; i < len(series); i++ {
		drop := series[i].Temperature2M - series[i-coldFrontLag].Temperature2M
		if drop >= coldFrontDropC {
			continue
		}
		if !found {
			firstHit = series[i]
			minDrop = drop
			found = true
			continue
		}
		if drop < minDrop {
			minDrop = drop
		}
	}

	if !found {
		return domain.ColdFront{}, false
	}
	return domain.ColdFront{City: city, TempDrop: minDrop, Time: firstHit.Time}, true
}

// detectHeavyRain evaluates the trailing heavyRainWindow-sample precipitation
// sum at each hour; the sum is undefined for the first window-1 rows.
func detectHeavyRain(city string, series []domain.Observation) (domain.HeavyRainEvent, bool) {
	var (
		found    bool
		maxSum   float64
		firstHit domain.Observation
		window   float64
	)
	for i, o := range series {
		window += o.Precipitation
		if i >= heavyRainWindow {
			window -= series[i-heavyRainWindow].Precipitation
		}
		if i < heavyRainWindow-1 || window <= heavyRainTotalMM {
			continue
		}
		if !found {
			firstHit = o
			maxSum = window
			found = true
			continue
		}
		if window > maxSum {
			maxSum = window
		}
	}

	if !found {
		return domain.HeavyRainEvent{}, false
	}
	return domain.HeavyRainEvent{City: city, Precipitation3H: maxSum, Time: firstHit.Time}, true
}
