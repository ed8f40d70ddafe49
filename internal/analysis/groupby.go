package analysis

import "github.com/RSangDev/weather-analytics-dashboard/internal/domain"

// cityGroups partitions the table by city without re-filtering it once per
// city: one pass collects, for each city, the row indices belonging to it in
// row order. The returned city list preserves first-appearance order, which
// downstream components use as their iteration order over distinct cities.
func cityGroups(obs []domain.Observation) ([]string, map[string][]int) {
	cities := make([]string, 0)
	groups := make(map[string][]int)
	for i, o := range obs {
		if _, seen := groups[o.City]; !seen {
			cities = append(cities, o.City)
		}
		groups[o.City] = append(groups[o.City], i)
	}
	return cities, groups
}
