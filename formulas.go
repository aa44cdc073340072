package main

import "math"

// Fallback profile values used when a settings row is missing body data.
// Derived targets from defaults are rough but never panic or divide by zero.
const (
	defaultWeightKG  = 70.0
	defaultHeightCM  = 170.0
	defaultAge       = 30
	defaultGender    = "male"
	defaultActivity  = "sedentary"
	defaultGoalType  = goalMaintainWeight
	gramCaloriesProt = 4.0
	gramCaloriesFat  = 9.0
	gramCaloriesCarb = 4.0
)

// Canonical goal types.
const (
	goalLoseWeight     = "lose_weight"
	goalMaintainWeight = "maintain_weight"
	goalGainMuscle     = "gain_muscle"
)

// activityMultipliers maps canonical activity levels to their TDEE multiplier.
// This is the single source of truth for valid levels — also used for input
// validation in patchUserSettings.
var activityMultipliers = map[string]float64{
	"sedentary":    1.2,
	"light":        1.375,
	"moderate":     1.55,
	"intense":      1.725,
	"very_intense": 1.9,
}

// activityAliases maps legacy stored values to their canonical level. Older
// clients wrote "active"/"very_active"; rows with those values must keep
// resolving without a data migration.
var activityAliases = map[string]string{
	"active":      "intense",
	"very_active": "very_intense",
}

// validGoalTypes is the set of canonical goal types.
var validGoalTypes = map[string]bool{
	goalLoseWeight:     true,
	goalMaintainWeight: true,
	goalGainMuscle:     true,
}

/* ─── Profile normalization ──────────────────────────────────────────── */

// resolveActivityLevel maps a stored activity level to its canonical value,
// translating legacy aliases. Unknown or missing values fall back to sedentary
// so a bad row degrades to a conservative calorie estimate instead of failing.
func resolveActivityLevel(s userSettings) string {
	if s.ActivityLevel == nil {
		return defaultActivity
	}
	level := *s.ActivityLevel
	if canonical, ok := activityAliases[level]; ok {
		level = canonical
	}
	if _, ok := activityMultipliers[level]; !ok {
		return defaultActivity
	}
	return level
}

// resolveGoalType returns the canonical goal type, falling back to
// maintain_weight for unknown or missing values.
func resolveGoalType(s userSettings) string {
	if s.GoalType == nil || !validGoalTypes[*s.GoalType] {
		return defaultGoalType
	}
	return *s.GoalType
}

/* ─── Metabolic pipeline ─────────────────────────────────────────────── */

// calculateBMR computes basal metabolic rate via Mifflin-St Jeor.
// The formula defines constants for male (+5) and female (-161) only;
// "other" uses the midpoint of the two offsets, anything else the male
// constant.
func calculateBMR(weightKG, heightCM float64, age int, gender string) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	switch gender {
	case "female":
		return base - 161
	case "other":
		return base - 78
	default:
		return base + 5
	}
}

// calculateTDEE scales BMR by the activity multiplier. activityLevel must
// already be canonical (see resolveActivityLevel).
func calculateTDEE(bmr float64, activityLevel string) float64 {
	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers[defaultActivity]
	}
	return bmr * mult
}

// calculateCalorieGoal offsets TDEE by goal type: a 500 kcal deficit for
// weight loss (≈0.5 kg/week), a 300 kcal surplus for muscle gain.
func calculateCalorieGoal(tdee float64, goalType string) int {
	switch goalType {
	case goalLoseWeight:
		tdee -= 500
	case goalGainMuscle:
		tdee += 300
	}
	return int(math.Round(tdee))
}

// calculateAdjustedWeight substitutes an obesity-adjusted body weight into the
// metabolic formulas when the current weight is far above target. Using raw
// weight there overestimates energy needs (adipose tissue is much less
// metabolically active than lean mass); the standard correction counts a
// quarter of the excess. Below the 20% threshold the raw weight is returned.
func calculateAdjustedWeight(currentWeight, targetWeight, heightCM float64) float64 {
	if targetWeight <= 0 || currentWeight <= targetWeight*1.2 {
		return currentWeight
	}
	if heightCM <= 0 {
		heightCM = defaultHeightCM
	}
	// Never adjust below the BMI-22 reference weight for the user's height,
	// which guards against an unrealistically low target.
	adjusted := targetWeight + 0.25*(currentWeight-targetWeight)
	heightM := heightCM / 100
	floor := 22 * heightM * heightM
	if adjusted < floor {
		adjusted = floor
	}
	return adjusted
}

/* ─── Macro formulas ─────────────────────────────────────────────────── */

// proteinPerKG holds grams of protein per kg of (adjusted) body weight by
// goal type.
var proteinPerKG = map[string]float64{
	goalLoseWeight:     1.8,
	goalMaintainWeight: 1.6,
	goalGainMuscle:     2.0,
}

// calculateProtein returns the daily protein target in grams. Clinical mode
// caps intake at 1.2 g/kg regardless of goal (renal-safe ceiling).
func calculateProtein(weightForCalc float64, goalType string, clinicalMode bool) int {
	perKG, ok := proteinPerKG[goalType]
	if !ok {
		perKG = proteinPerKG[defaultGoalType]
	}
	if clinicalMode && perKG > 1.2 {
		perKG = 1.2
	}
	return int(math.Round(weightForCalc * perKG))
}

// calculateFat returns the daily fat target in grams at 0.8 g/kg.
func calculateFat(weightForCalc float64) int {
	return int(math.Round(weightForCalc * 0.8))
}

// calculateCarbs fills the remaining calorie budget with carbohydrates after
// protein and fat. Floored at zero — a very low calorie goal with high
// protein must not produce a negative target.
func calculateCarbs(calorieGoal, proteinG, fatG int) int {
	remaining := float64(calorieGoal) - float64(proteinG)*gramCaloriesProt - float64(fatG)*gramCaloriesFat
	if remaining <= 0 {
		return 0
	}
	return int(math.Round(remaining / gramCaloriesCarb))
}

/* ─── Profile-level helpers ──────────────────────────────────────────── */

// profileWeight returns the stored weight or the documented default.
func profileWeight(s userSettings) float64 {
	if s.WeightKG != nil && *s.WeightKG > 0 {
		return *s.WeightKG
	}
	return defaultWeightKG
}

// profileHeight returns the stored height or the documented default.
func profileHeight(s userSettings) float64 {
	if s.HeightCM != nil && *s.HeightCM > 0 {
		return *s.HeightCM
	}
	return defaultHeightCM
}

// profileAge returns the stored age or the documented default.
func profileAge(s userSettings) int {
	if s.Age != nil && *s.Age > 0 {
		return *s.Age
	}
	return defaultAge
}

// profileGender returns the stored gender or the documented default.
func profileGender(s userSettings) string {
	if s.Gender != nil && *s.Gender != "" {
		return *s.Gender
	}
	return defaultGender
}

// computeCalorieTarget runs the full BMR → TDEE → calorie-goal pipeline for
// the given weight and the profile's resolved activity level and goal type.
// goalType overrides the profile's resolved goal type when non-empty, which
// the policy uses to force maintenance calories on goal completion.
func computeCalorieTarget(weightKG float64, s userSettings, goalType string) int {
	if goalType == "" {
		goalType = resolveGoalType(s)
	}
	bmr := calculateBMR(weightKG, profileHeight(s), profileAge(s), profileGender(s))
	tdee := calculateTDEE(bmr, resolveActivityLevel(s))
	return calculateCalorieGoal(tdee, goalType)
}

// populateComputedTargets fills the computed-only fields on s from the
// profile, mirroring what a fresh recalculation would produce.
func populateComputedTargets(s *userSettings) {
	bmr := calculateBMR(profileWeight(*s), profileHeight(*s), profileAge(*s), profileGender(*s))
	tdee := calculateTDEE(bmr, resolveActivityLevel(*s))
	goal := calculateCalorieGoal(tdee, resolveGoalType(*s))

	bmrI := int(math.Round(bmr))
	tdeeI := int(math.Round(tdee))
	s.ComputedBMR = &bmrI
	s.ComputedTDEE = &tdeeI
	s.ComputedCalorieGoal = &goal
}
