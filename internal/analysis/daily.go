package analysis

import (
	"sort"
	"time"

	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
)

type dayKey struct {
	city string
	date time.Time
}

// AggregateDaily reduces hourly observations to one row per (city, calendar
// date): mean/min/max temperature, mean humidity, summed precipitation,
// maximum wind speed, mean cloud cover, and the first latitude/longitude and
// state/region seen in the group. Output is ordered by city, then date. An
// empty input yields an empty table.
func AggregateDaily(obs []domain.Observation) []domain.DailyAggregate {
	if len(obs) == 0 {
		return nil
	}

	groups := make(map[dayKey][]int)
	for i, o := range obs {
		key := dayKey{city: o.City, date: o.Date()}
		groups[key] = append(groups[key], i)
	}

	keys := make([]dayKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].city != keys[j].city {
			return keys[i].city < keys[j].city
		}
		return keys[i].date.Before(keys[j].date)
	})

	daily := make([]domain.DailyAggregate, 0, len(keys))
	for _, key := range keys {
		daily = append(daily, reduceDay(key, obs, groups[key]))
	}
	return daily
}

func reduceDay(key dayKey, obs []domain.Observation, idx []int) domain.DailyAggregate {
	first := obs[idx[0]]
	agg := domain.DailyAggregate{
		City:      key.city,
		Date:      key.date,
		TempMin:   first.Temperature2M,
		TempMax:   first.Temperature2M,
		WindMax:   first.WindSpeed10M,
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
		State:     first.State,
		Region:    first.Region,
	}

	var tempSum, humiditySum, cloudSum float64
	for _, i := range idx {
		o := obs[i]
		tempSum += o.Temperature2M
		humiditySum += o.RelativeHumidity2M
		cloudSum += o.CloudCover
		agg.PrecipitationTotal += o.Precipitation
		if o.Temperature2M < agg.TempMin {
			agg.TempMin = o.Temperature2M
		}
		if o.Temperature2M > agg.TempMax {
			agg.TempMax = o.Temperature2M
		}
		if o.WindSpeed10M > agg.WindMax {
			agg.WindMax = o.WindSpeed10M
		}
	}

	n := float64(len(idx))
	agg.TempMean = tempSum / n
	agg.HumidityMean = humiditySum / n
	agg.CloudCoverMean = cloudSum / n
	return agg
}
