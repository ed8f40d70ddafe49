package domain

import (
	"fmt"
	"sort"
	"time"
)

// severityRank orders consolidated alerts for display, most urgent first.
var severityRank = map[AlertType]int{
	AlertHighTemperature:    0,
	AlertHighWind:           1,
	AlertHeavyPrecipitation: 2,
	AlertLowTemperature:     3,
}

type consolidationKey struct {
	city string
	typ  AlertType
	date time.Time
}

// Consolidate collapses alerts into one entry per (city, type, calendar date).
// For magnitude-style alerts (high temperature, high wind, heavy
// precipitation) the entry carries the group's maximum value and its
// timestamp; for the remaining types it carries the first alert of the group.
// Count records the group size. Results are ordered by date descending, then
// by severity. This is a presentation concern layered on top of the raw alert
// list, which stays untouched.
func Consolidate(alerts []Alert) []ConsolidatedAlert {
	if len(alerts) == 0 {
		return nil
	}

	groups := make(map[consolidationKey][]Alert)
	order := make([]consolidationKey, 0, len(alerts))
	for _, a := range alerts {
		key := consolidationKey{city: a.City, typ: a.Type, date: a.Time.UTC().Truncate(24 * time.Hour)}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], a)
	}

	consolidated := make([]ConsolidatedAlert, 0, len(order))
	for _, key := range order {
		group := groups[key]
		entry := consolidateGroup(key, group)
		consolidated = append(consolidated, entry)
	}

	sort.SliceStable(consolidated, func(i, j int) bool {
		if !consolidated[i].Date.Equal(consolidated[j].Date) {
			return consolidated[i].Date.After(consolidated[j].Date)
		}
		return severityRank[consolidated[i].Type] < severityRank[consolidated[j].Type]
	})

	return consolidated
}

func consolidateGroup(key consolidationKey, group []Alert) ConsolidatedAlert {
	first := group[0]
	entry := ConsolidatedAlert{
		Type:    key.typ,
		City:    key.city,
		Date:    key.date,
		Time:    first.Time,
		Value:   first.Value,
		Count:   len(group),
		Message: first.Message,
	}

	if !magnitudeType(key.typ) {
		return entry
	}

	max := first
	for _, a := range group[1:] {
		if a.Value > max.Value {
			max = a
		}
	}
	entry.Time = max.Time
	entry.Value = max.Value
	if len(group) > 1 {
		entry.Message = fmt.Sprintf("%s (peak: %.1f, %dx)", first.Message, max.Value, len(group))
	}
	return entry
}

// magnitudeType reports whether "bigger value" means "worse" for this alert
// type, i.e. whether consolidation should keep the maximum rather than the
// first entry.
func magnitudeType(t AlertType) bool {
	switch t {
	case AlertHighTemperature, AlertHighWind, AlertHeavyPrecipitation:
		return true
	default:
		return false
	}
}
