package main

import (
	"math"
	"time"
)

// Why an adjustment was (or wasn't) suggested. Closed set — callers switch
// on it exhaustively rather than parsing messages.
type adjustmentReason string

const (
	reasonNone            adjustmentReason = "none"
	reasonWeightChanged   adjustmentReason = "weight_changed"
	reasonPlateauDetected adjustmentReason = "plateau_detected"
	reasonFastLoss        adjustmentReason = "fast_loss"
	reasonSlowProgress    adjustmentReason = "slow_progress"
	reasonGoalAchieved    adjustmentReason = "goal_achieved"
)

// How urgently the recommendation should be surfaced.
type adjustmentSeverity string

const (
	severityInfo    adjustmentSeverity = "info"
	severityWarning adjustmentSeverity = "warning"
	severitySuccess adjustmentSeverity = "success"
)

// Policy constants.
const (
	fastLossBumpKcal       = 250 // flat intake bump when losing too fast, no recalc needed
	maintenanceWeekKcal    = 300 // temporary diet-break bump on an adapted plateau
	plateauExtraCutKcal    = 100 // extra cut below the recalculated goal on a plain plateau
	estimatedDeficitFactor = 0.2 // previous goal share assumed to be deficit
)

// calorieAdjustment is the policy's single output. Pure value — the caller
// decides whether to apply it.
type calorieAdjustment struct {
	ShouldAdjust  bool               `json:"should_adjust"`
	Reason        adjustmentReason   `json:"reason"`
	PreviousGoal  int                `json:"previous_goal"`
	SuggestedGoal int                `json:"suggested_goal"`
	Difference    int                `json:"difference"`
	Message       string             `json:"message"`
	Severity      adjustmentSeverity `json:"severity"`
}

// macroTargets is the protein/carb/fat triple that accompanies a new calorie
// goal. The caller persists it; nothing here writes state.
type macroTargets struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// analyzeCalorieAdjustment is the top-level decision tree. It combines the
// velocity classification, the recalculation trigger, and plateau analysis
// into one recommendation. Every branch returns immediately and nothing
// mutates its inputs; now is captured once by the caller so the estimator
// and the trigger read the same clock.
//
// lastCalculatedWeight is the weight the current targets were derived at;
// nil means targets were never derived from a weight, and the current weight
// stands in (so the drift signal stays quiet until a first recalculation).
func analyzeCalorieAdjustment(s userSettings, goal *weightGoal, history []weightEntry, lastCalculatedWeight *float64, now time.Time) calorieAdjustment {
	prev := s.DailyCalorieGoal

	if goal == nil || goal.Status != goalStatusActive {
		return calorieAdjustment{
			Reason:        reasonNone,
			PreviousGoal:  prev,
			SuggestedGoal: prev,
			Message:       "No active weight goal — targets unchanged.",
			Severity:      severityInfo,
		}
	}

	current := latestWeight(history, profileWeight(s))
	alert := classifyWeightChange(history, *goal, current, now)

	if alert.Type == alertGoalAchieved {
		maintenance := computeCalorieTarget(current, s, goalMaintainWeight)
		return calorieAdjustment{
			ShouldAdjust:  true,
			Reason:        reasonGoalAchieved,
			PreviousGoal:  prev,
			SuggestedGoal: maintenance,
			Difference:    maintenance - prev,
			Message:       alert.Message + " Switching you to maintenance calories.",
			Severity:      severitySuccess,
		}
	}

	last := current
	if lastCalculatedWeight != nil {
		last = *lastCalculatedWeight
	}
	check := shouldRecalculate(current, last, history, now)

	if !check.Triggered {
		// Rapid loss warrants an immediate flat bump even when the targets
		// themselves aren't stale yet.
		if alert.Type == alertFastLoss {
			return calorieAdjustment{
				ShouldAdjust:  true,
				Reason:        reasonFastLoss,
				PreviousGoal:  prev,
				SuggestedGoal: prev + fastLossBumpKcal,
				Difference:    fastLossBumpKcal,
				Message:       alert.Recommendation,
				Severity:      severityWarning,
			}
		}
		return calorieAdjustment{
			Reason:        reasonNone,
			PreviousGoal:  prev,
			SuggestedGoal: prev,
			Message:       "Your targets are still current.",
			Severity:      severityInfo,
		}
	}

	adjusted := calculateAdjustedWeight(current, goal.TargetWeightKG, profileHeight(s))
	newGoal := computeCalorieTarget(adjusted, s, "")

	if check.Kind == triggerPlateau {
		deficit := int(math.Round(float64(prev) * estimatedDeficitFactor))
		pd := detectPlateau(history, prev, deficit, now)

		if pd.Suggestion == suggestMaintenanceWeek {
			// A diet break overrides the freshly recalculated goal.
			return calorieAdjustment{
				ShouldAdjust:  true,
				Reason:        reasonPlateauDetected,
				PreviousGoal:  prev,
				SuggestedGoal: prev + maintenanceWeekKcal,
				Difference:    maintenanceWeekKcal,
				Message:       pd.Message,
				Severity:      severityWarning,
			}
		}
		suggested := newGoal - plateauExtraCutKcal
		return calorieAdjustment{
			ShouldAdjust:  true,
			Reason:        reasonPlateauDetected,
			PreviousGoal:  prev,
			SuggestedGoal: suggested,
			Difference:    suggested - prev,
			Message:       pd.Message,
			Severity:      severityWarning,
		}
	}

	return calorieAdjustment{
		ShouldAdjust:  true,
		Reason:        reasonWeightChanged,
		PreviousGoal:  prev,
		SuggestedGoal: newGoal,
		Difference:    newGoal - prev,
		Message:       check.Reason,
		Severity:      severityInfo,
	}
}

// recomputeMacros rederives the protein/carb/fat targets for a new calorie
// goal. currentWeightKG must be the same current weight the policy evaluated
// (latest logged entry, profile fallback) so the two computations never
// diverge for identical inputs. With an active weight goal the protein
// weight is the same obesity-adjusted value the policy uses.
func recomputeMacros(newCalorieGoal int, currentWeightKG float64, s userSettings, goal *weightGoal) macroTargets {
	weight := currentWeightKG
	if goal != nil && goal.Status == goalStatusActive {
		weight = calculateAdjustedWeight(weight, goal.TargetWeightKG, profileHeight(s))
	}

	protein := calculateProtein(weight, resolveGoalType(s), s.ClinicalMode)
	fat := calculateFat(weight)
	carbs := calculateCarbs(newCalorieGoal, protein, fat)
	return macroTargets{ProteinG: protein, CarbsG: carbs, FatG: fat}
}
