package main

import (
	"sort"
	"time"
)

// sortEntriesDesc returns a copy of history sorted by date descending
// (most recent first). Input order is never trusted — clients backfill
// old measurements.
func sortEntriesDesc(history []weightEntry) []weightEntry {
	sorted := make([]weightEntry, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Time.After(sorted[j].Date.Time)
	})
	return sorted
}

// mostRecentOnOrBefore returns the newest entry dated at or before cutoff,
// or nil if every entry is newer. sorted must be in descending date order.
// Both the weekly estimator and the recalculation trigger read their
// reference point through this helper so "how old is old" has exactly one
// definition.
func mostRecentOnOrBefore(sorted []weightEntry, cutoff time.Time) *weightEntry {
	for i := range sorted {
		if !sorted[i].Date.Time.After(cutoff) {
			return &sorted[i]
		}
	}
	return nil
}

// weeklyWeightChange derives a signed kg-per-7-days rate from an irregular
// entry history. Positive means gain.
//
// With an entry at least a week old the result is a literal 7-day delta
// against the newest such entry. Shorter histories prorate the total change
// over the elapsed days instead, clamped to at least one day so same-day
// pairs don't divide by zero. No smoothing or outlier rejection is applied;
// a single erratic entry moves the result.
func weeklyWeightChange(history []weightEntry, now time.Time) float64 {
	if len(history) < 2 {
		return 0
	}
	sorted := sortEntriesDesc(history)
	latest := sorted[0]

	cutoff := now.AddDate(0, 0, -7)
	if ref := mostRecentOnOrBefore(sorted, cutoff); ref != nil {
		return latest.WeightKG - ref.WeightKG
	}

	oldest := sorted[len(sorted)-1]
	days := int(latest.Date.Time.Sub(oldest.Date.Time).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return (latest.WeightKG - oldest.WeightKG) / float64(days) * 7
}

// latestWeight returns the most recent entry's weight, or fallback when the
// history is empty.
func latestWeight(history []weightEntry, fallback float64) float64 {
	if len(history) == 0 {
		return fallback
	}
	return sortEntriesDesc(history)[0].WeightKG
}
