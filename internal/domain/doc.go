// Package domain models hourly weather forecast data for the analytics pipeline.
//
// # Data Source
//
// Forecasts come from the Open-Meteo forecast API
// (https://api.open-meteo.com/v1/forecast). The fetch adapter requests a
// multi-day hourly forecast per configured city and returns one CityPayload
// per city. The API encodes the hourly series as parallel arrays: the time
// array and each measurement array must have the same length, with index i of
// every array describing the same hour.
//
// Timestamps arrive as local wall-clock strings without a zone offset
// ("2006-01-02T15:04"); they are parsed as UTC so that calendar-date grouping
// is deterministic regardless of where the process runs.
//
// # Units
//
//	temperature_2m         °C
//	relative_humidity_2m   %
//	precipitation          mm (per hour, >= 0)
//	wind_speed_10m         km/h (>= 0)
//	cloud_cover            %
//
// # Derived Signals
//
// Enrichment adds two derived fields to each Observation: TempMA, a trailing
// moving average of temperature over a configured window (shorter windows at
// the start of a series), and TempAnomaly, set when the reading deviates from
// its city's whole-series mean by more than a configured multiple of the
// sample standard deviation. A city whose temperatures never vary has zero
// standard deviation and is never flagged.
//
// # Alerts
//
// Alerts are point-in-time threshold violations, one per violated predicate
// per row. The pipeline emits them grouped by type, not interleaved by time.
// [Consolidate] implements the presentation-side contract of collapsing
// same-city, same-type, same-day alerts into a single entry carrying the
// extreme value and the group size.
package domain
