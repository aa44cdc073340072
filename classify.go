package main

import (
	"fmt"
	"time"
)

// Velocity alert categories.
type alertType string

const (
	alertFastLoss     alertType = "fast_loss"
	alertFastGain     alertType = "fast_gain"
	alertSlowProgress alertType = "slow_progress"
	alertOnTrack      alertType = "on_track"
	alertGoalAchieved alertType = "goal_achieved"
)

// Weekly-change thresholds for losing goals, in kg/week.
const (
	fastLossThreshold     = -1.0 // losing faster than this risks lean mass
	fastGainThreshold     = 0.5  // gaining this much while cutting means something is off
	slowProgressThreshold = -0.2 // losing slower than this is effectively stalled
)

// weightChangeAlert is the velocity classification consumed by the
// adjustment policy and the trend endpoint.
type weightChangeAlert struct {
	Type           alertType `json:"type"`
	WeeklyChangeKG float64   `json:"weekly_change_kg"`
	Message        string    `json:"message"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// classifyWeightChange maps the weekly rate, goal direction, and
// current-vs-target position to an alert. First match wins.
//
// currentWeight is the caller's resolved current body weight (latest logged
// entry with the profile weight as the empty-history fallback), so the
// achievement check here reads the same value as the rest of the evaluation.
//
// The fast-loss / fast-gain / slow-progress checks apply to losing goals
// only; a gaining goal runs straight to the on-track branch. Gaining users
// are a small minority here and the loss thresholds don't transfer, so the
// asymmetry is deliberate.
func classifyWeightChange(history []weightEntry, goal weightGoal, currentWeight float64, now time.Time) weightChangeAlert {
	weekly := weeklyWeightChange(history, now)

	// Achievement is checked before velocity so a single-entry history can
	// still complete a goal.
	if goal.achievedAt(currentWeight) {
		return weightChangeAlert{
			Type:           alertGoalAchieved,
			WeeklyChangeKG: weekly,
			Message:        fmt.Sprintf("You've reached your goal weight of %.1f kg. Congratulations!", goal.TargetWeightKG),
			Recommendation: "Set a new goal or switch to maintenance to keep the result.",
		}
	}

	if goal.losing() {
		switch {
		case weekly < fastLossThreshold:
			return weightChangeAlert{
				Type:           alertFastLoss,
				WeeklyChangeKG: weekly,
				Message:        fmt.Sprintf("You're losing %.1f kg per week — faster than the safe 1 kg/week.", -weekly),
				Recommendation: "Increase your daily intake by 200-300 kcal. Losing beyond 1 kg/week risks lean-mass loss and rebound.",
			}
		case weekly > fastGainThreshold:
			return weightChangeAlert{
				Type:           alertFastGain,
				WeeklyChangeKG: weekly,
				Message:        fmt.Sprintf("You've gained %.1f kg this week while on a weight-loss goal.", weekly),
				Recommendation: "Review your food logging — this is often water retention or a logging gap.",
			}
		case weekly > slowProgressThreshold && weekly <= 0:
			return weightChangeAlert{
				Type:           alertSlowProgress,
				WeeklyChangeKG: weekly,
				Message:        "Your weight has barely moved this week.",
				Recommendation: "Review your calorie deficit or add activity to restart progress.",
			}
		}
	}

	msg := "You're on track. Keep it up!"
	if !goal.losing() {
		msg = "You're progressing toward your gain goal. Keep it up!"
	}
	return weightChangeAlert{
		Type:           alertOnTrack,
		WeeklyChangeKG: weekly,
		Message:        msg,
	}
}
