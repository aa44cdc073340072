package main

import (
	"math"
	"testing"
	"time"
)

// testNow is a fixed clock shared by the decision-core tests so results
// never depend on when the suite runs.
var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

// entryAt builds a weight entry dated daysAgo days before testNow.
func entryAt(daysAgo int, weightKG float64) weightEntry {
	return weightEntry{
		Date:     DateOnly{testNow.AddDate(0, 0, -daysAgo)},
		WeightKG: weightKG,
	}
}

// approxEqual reports whether two floats agree within 0.01.
func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

/* ─── weeklyWeightChange tests ───────────────────────────────────────── */

// TestWeeklyChange_EmptyAndSingleton verifies that histories too short to
// show a trend report zero change.
func TestWeeklyChange_EmptyAndSingleton(t *testing.T) {
	if got := weeklyWeightChange(nil, testNow); got != 0 {
		t.Errorf("empty history: got %f, want 0", got)
	}
	one := []weightEntry{entryAt(0, 80)}
	if got := weeklyWeightChange(one, testNow); got != 0 {
		t.Errorf("singleton history: got %f, want 0", got)
	}
}

// TestWeeklyChange_ExactSevenDayDelta verifies the literal 7-day delta:
// 80 kg a week ago, 79 kg today ⇒ -1.0 kg/week.
func TestWeeklyChange_ExactSevenDayDelta(t *testing.T) {
	history := []weightEntry{entryAt(0, 79), entryAt(7, 80)}
	if got := weeklyWeightChange(history, testNow); !approxEqual(got, -1.0) {
		t.Errorf("got %f, want -1.0", got)
	}
}

// TestWeeklyChange_ProratedShortHistory verifies proration when no entry is
// a week old: 0.6 kg lost over 3 days ⇒ -1.4 kg/week.
func TestWeeklyChange_ProratedShortHistory(t *testing.T) {
	history := []weightEntry{entryAt(0, 79.4), entryAt(3, 80)}
	if got := weeklyWeightChange(history, testNow); !approxEqual(got, -1.4) {
		t.Errorf("got %f, want -1.4", got)
	}
}

// TestWeeklyChange_SameDayPair verifies the elapsed-days clamp: two entries
// on the same day must not divide by zero.
func TestWeeklyChange_SameDayPair(t *testing.T) {
	history := []weightEntry{entryAt(0, 79.5), entryAt(0, 80)}
	got := weeklyWeightChange(history, testNow)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("got non-finite result %f", got)
	}
}

// TestWeeklyChange_UnsortedInput verifies that input order doesn't matter.
func TestWeeklyChange_UnsortedInput(t *testing.T) {
	history := []weightEntry{entryAt(7, 80), entryAt(0, 79), entryAt(3, 79.6)}
	if got := weeklyWeightChange(history, testNow); !approxEqual(got, -1.0) {
		t.Errorf("got %f, want -1.0", got)
	}
}

// TestWeeklyChange_PicksNewestReferencePastCutoff verifies that with several
// entries older than a week, the newest of them is the reference — not the
// oldest overall.
func TestWeeklyChange_PicksNewestReferencePastCutoff(t *testing.T) {
	history := []weightEntry{
		entryAt(0, 78),
		entryAt(8, 79), // reference: newest at/past the 7-day cutoff
		entryAt(20, 82),
	}
	if got := weeklyWeightChange(history, testNow); !approxEqual(got, -1.0) {
		t.Errorf("got %f, want -1.0 (78 - 79)", got)
	}
}

/* ─── mostRecentOnOrBefore tests ─────────────────────────────────────── */

// TestMostRecentOnOrBefore_CutoffInclusive verifies that an entry dated
// exactly at the cutoff is returned.
func TestMostRecentOnOrBefore_CutoffInclusive(t *testing.T) {
	sorted := sortEntriesDesc([]weightEntry{entryAt(0, 79), entryAt(7, 80)})
	cutoff := testNow.AddDate(0, 0, -7)
	ref := mostRecentOnOrBefore(sorted, cutoff)
	if ref == nil {
		t.Fatal("expected a reference entry at the cutoff, got nil")
	}
	if ref.WeightKG != 80 {
		t.Errorf("got weight %f, want 80", ref.WeightKG)
	}
}

// TestMostRecentOnOrBefore_AllNewer verifies nil when every entry is newer
// than the cutoff.
func TestMostRecentOnOrBefore_AllNewer(t *testing.T) {
	sorted := sortEntriesDesc([]weightEntry{entryAt(0, 79), entryAt(3, 80)})
	cutoff := testNow.AddDate(0, 0, -7)
	if ref := mostRecentOnOrBefore(sorted, cutoff); ref != nil {
		t.Errorf("expected nil, got entry at %v", ref.Date)
	}
}
