// Package analysis is the data transformation core of the service: it turns
// per-city raw forecast payloads into a unified observation table, derived
// signals, threshold alerts, daily aggregates, pattern findings, and
// cross-city summaries.
//
// Every operation is a pure function of its inputs (plus explicit settings):
// synchronous, free of I/O, and returning fresh structures. Data flows
// strictly forward:
//
//	Normalize → Enricher → {GenerateAlerts, AggregateDaily}
//	                     → {DetectPatterns, Summarize/RankCities}
//
// Per-city operations partition the table by city and treat each city's
// chronological sequence independently. Normalized rows keep fetch order,
// which is chronological per city; the pattern detector re-sorts each city's
// rows explicitly rather than trusting that precondition.
package analysis
