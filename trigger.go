package main

import (
	"fmt"
	"math"
	"time"
)

// triggerKind tags why a recalculation fired. The policy branches on this
// value, never on the display string.
type triggerKind string

const (
	triggerNone        triggerKind = "none"
	triggerWeightDrift triggerKind = "weight_drift"
	triggerPlateau     triggerKind = "plateau"
)

// Trigger thresholds.
const (
	driftThresholdKG     = 2.0 // absolute drift that invalidates prior targets, inclusive
	stagnationThreshold  = 0.5 // net change under this across 4 weeks reads as a stall
	stagnationWindowDays = 28
	stagnationMinEntries = 4
)

// recalcCheck is the trigger's result. Reason is human-readable and
// display-only.
type recalcCheck struct {
	Triggered bool        `json:"triggered"`
	Kind      triggerKind `json:"kind"`
	Reason    string      `json:"reason,omitempty"`
}

// shouldRecalculate decides whether the stored calorie targets are stale.
// Two coarse signals, checked in order:
//
//  1. Absolute drift: the current weight is 2 kg or more (inclusive) away
//     from the weight the targets were derived at.
//  2. Long-window stagnation: with at least 4 entries and one at least 28
//     days old, the net change against that reference is under 0.5 kg —
//     four-plus weeks of near-stable weight despite a presumed deficit or
//     surplus.
//
// This is deliberately not a statistical plateau detector; detectPlateau
// refines the message later, after the policy has decided to act.
func shouldRecalculate(currentWeight, lastCalculatedWeight float64, history []weightEntry, now time.Time) recalcCheck {
	drift := math.Abs(currentWeight - lastCalculatedWeight)
	if drift >= driftThresholdKG {
		return recalcCheck{
			Triggered: true,
			Kind:      triggerWeightDrift,
			Reason:    fmt.Sprintf("Weight changed by %.1f kg since your targets were last calculated.", drift),
		}
	}

	if len(history) >= stagnationMinEntries {
		sorted := sortEntriesDesc(history)
		cutoff := now.AddDate(0, 0, -stagnationWindowDays)
		if ref := mostRecentOnOrBefore(sorted, cutoff); ref != nil {
			if math.Abs(currentWeight-ref.WeightKG) < stagnationThreshold {
				return recalcCheck{
					Triggered: true,
					Kind:      triggerPlateau,
					Reason:    "Your weight has been stable for over 4 weeks despite your calorie targets.",
				}
			}
		}
	}

	return recalcCheck{Kind: triggerNone}
}
