package main

import (
	"fmt"
	"time"
)

// Plateau-detector suggestions.
type plateauSuggestion string

const (
	suggestNone            plateauSuggestion = "none"
	suggestReduceCalories  plateauSuggestion = "reduce_calories"
	suggestMaintenanceWeek plateauSuggestion = "maintenance_week"
)

// plateauResult is what detectPlateau hands back to the adjustment policy.
type plateauResult struct {
	Suggestion plateauSuggestion `json:"suggestion"`
	Message    string            `json:"message"`
}

// Detector window and sensitivity.
const (
	plateauWindowDays  = 35
	plateauMinSpanDays = 28
	plateauRangeKG     = 1.0 // total min-max spread that still counts as flat
	adaptationDeficit  = 400 // deficit at which a stall suggests metabolic adaptation
)

// detectPlateau inspects the recent weight window and refines what a stall
// means. currentCalorieGoal and estimatedDeficit come from the caller so the
// detector stays a pure function of its inputs.
//
// A plateau is confirmed when the min-max weight spread over the last 35
// days stays under 1 kg across at least 28 days of span. With a large
// presumed deficit already in place, cutting further mostly drives
// adaptation, so the suggestion flips to a maintenance week (a deliberate
// diet break) instead of another reduction.
func detectPlateau(history []weightEntry, currentCalorieGoal, estimatedDeficit int, now time.Time) plateauResult {
	cutoff := now.AddDate(0, 0, -plateauWindowDays)
	var window []weightEntry
	for _, e := range history {
		if !e.Date.Time.Before(cutoff) {
			window = append(window, e)
		}
	}
	if len(window) < 3 {
		return plateauResult{Suggestion: suggestNone, Message: "Not enough recent weigh-ins to analyze a plateau."}
	}

	minW, maxW := window[0].WeightKG, window[0].WeightKG
	oldest, newest := window[0].Date.Time, window[0].Date.Time
	for _, e := range window[1:] {
		if e.WeightKG < minW {
			minW = e.WeightKG
		}
		if e.WeightKG > maxW {
			maxW = e.WeightKG
		}
		if e.Date.Time.Before(oldest) {
			oldest = e.Date.Time
		}
		if e.Date.Time.After(newest) {
			newest = e.Date.Time
		}
	}

	spanDays := int(newest.Sub(oldest).Hours() / 24)
	if spanDays < plateauMinSpanDays || maxW-minW >= plateauRangeKG {
		return plateauResult{Suggestion: suggestNone, Message: "No sustained plateau in the recent data."}
	}

	if estimatedDeficit >= adaptationDeficit {
		return plateauResult{
			Suggestion: suggestMaintenanceWeek,
			Message: fmt.Sprintf("Your weight has held within %.1f kg for %d days on a ~%d kcal deficit. "+
				"A week at maintenance can reset adaptation before resuming the cut.", maxW-minW, spanDays, estimatedDeficit),
		}
	}
	return plateauResult{
		Suggestion: suggestReduceCalories,
		Message: fmt.Sprintf("Your weight has held within %.1f kg for %d days at %d kcal. "+
			"A modest further reduction should restart progress.", maxW-minW, spanDays, currentCalorieGoal),
	}
}
