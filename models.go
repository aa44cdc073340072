package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL values zero the time and return nil so that
// *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// weightEntry maps to weight_log. One measurement per user per date,
// enforced by UNIQUE(user_id, date). Weights are kilograms.
type weightEntry struct {
	ID         int        `json:"id" db:"id"`
	UserID     int        `json:"user_id" db:"user_id"`
	Date       DateOnly   `json:"date" db:"date"`
	WeightKG   float64    `json:"weight_kg" db:"weight_kg"`
	RecordedAt *time.Time `json:"recorded_at" db:"recorded_at"`
}

// Weight goal statuses. Only active goals participate in adjustment analysis.
const (
	goalStatusActive    = "active"
	goalStatusAchieved  = "achieved"
	goalStatusAbandoned = "abandoned"
)

// weightGoal maps to weight_goals. Direction is derived, not stored:
// start above target means the user is losing.
type weightGoal struct {
	ID             int        `json:"id" db:"id"`
	UserID         int        `json:"user_id" db:"user_id"`
	StartWeightKG  float64    `json:"start_weight_kg" db:"start_weight_kg"`
	TargetWeightKG float64    `json:"target_weight_kg" db:"target_weight_kg"`
	StartDate      DateOnly   `json:"start_date" db:"start_date"`
	Status         string     `json:"status" db:"status"`
	CreatedAt      *time.Time `json:"created_at" db:"created_at"`
}

// losing reports whether this is a weight-loss goal.
func (g weightGoal) losing() bool {
	return g.StartWeightKG > g.TargetWeightKG
}

// achievedAt reports whether currentWeight meets the goal in its direction.
func (g weightGoal) achievedAt(currentWeight float64) bool {
	if g.losing() {
		return currentWeight <= g.TargetWeightKG
	}
	return currentWeight >= g.TargetWeightKG
}

// userSettings maps to user_settings. One row per user with the body
// profile, current daily targets, and the weight at which those targets
// were last derived. Profile fields are nullable; the decision core
// substitutes fixed defaults for missing values.
type userSettings struct {
	UserID           int      `json:"user_id"            db:"user_id"`
	Gender           *string  `json:"gender"             db:"gender"`
	Age              *int     `json:"age"                db:"age"`
	HeightCM         *float64 `json:"height_cm"          db:"height_cm"`
	WeightKG         *float64 `json:"weight_kg"          db:"weight_kg"`
	ActivityLevel    *string  `json:"activity_level"     db:"activity_level"`
	GoalType         *string  `json:"goal_type"          db:"goal_type"`
	ClinicalMode     bool     `json:"clinical_mode"      db:"clinical_mode"`
	DailyCalorieGoal int      `json:"daily_calorie_goal" db:"daily_calorie_goal"`
	ProteinTargetG   int      `json:"protein_target_g"   db:"protein_target_g"`
	CarbsTargetG     int      `json:"carbs_target_g"     db:"carbs_target_g"`
	FatTargetG       int      `json:"fat_target_g"       db:"fat_target_g"`

	// Weight at which daily_calorie_goal was last derived. Nil until the
	// first recalculation; the policy falls back to the current weight.
	LastCalculatedWeightKG *float64 `json:"last_calculated_weight_kg" db:"last_calculated_weight_kg"`

	// Computed fields — populated server-side from the profile; not stored.
	// db:"-" tells RowToStructByName to skip these during scanning.
	ComputedBMR         *int `json:"computed_bmr,omitempty"          db:"-"`
	ComputedTDEE        *int `json:"computed_tdee,omitempty"         db:"-"`
	ComputedCalorieGoal *int `json:"computed_calorie_goal,omitempty" db:"-"`
}

// patchUserSettingsRequest is the request body for PATCH /api/user-settings.
// All fields are pointers — only non-nil fields get written to the database.
type patchUserSettingsRequest struct {
	Gender           *string  `json:"gender"`
	Age              *int     `json:"age"`
	HeightCM         *float64 `json:"height_cm"`
	WeightKG         *float64 `json:"weight_kg"`
	ActivityLevel    *string  `json:"activity_level"`
	GoalType         *string  `json:"goal_type"`
	ClinicalMode     *bool    `json:"clinical_mode"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal"`
	ProteinTargetG   *int     `json:"protein_target_g"`
	CarbsTargetG     *int     `json:"carbs_target_g"`
	FatTargetG       *int     `json:"fat_target_g"`
}

// createWeightGoalRequest is the request body for POST /api/weight-goal.
// StartWeightKG is optional — defaults to the most recent logged weight.
type createWeightGoalRequest struct {
	TargetWeightKG float64  `json:"target_weight_kg"`
	StartWeightKG  *float64 `json:"start_weight_kg"`
	StartDate      *string  `json:"start_date"` // YYYY-MM-DD, defaults to today
}
