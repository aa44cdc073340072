package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getUserSettings returns the profile and current targets for the
// authenticated user. Computed fields (BMR, TDEE, suggested calorie goal)
// are derived from the profile on every read.
// GET /api/user-settings.
func (h *Handler) getUserSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	s, err := queryOne[userSettings](h.db, c,
		"SELECT * FROM user_settings WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "settings not found")
		return
	}

	populateComputedTargets(&s)

	c.JSON(http.StatusOK, s)
}

// patchUserSettings updates only the provided profile/target fields.
// PATCH /api/user-settings. Pointer fields in the request body distinguish
// "not provided" from zero — only non-nil fields get updated.
func (h *Handler) patchUserSettings(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchUserSettingsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate enum-like fields up front — a bad value stored silently skews
	// every later target calculation via the sedentary/maintain fallbacks.
	if body.ActivityLevel != nil {
		level := *body.ActivityLevel
		if canonical, ok := activityAliases[level]; ok {
			level = canonical
			body.ActivityLevel = &level
		}
		if _, ok := activityMultipliers[level]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, intense, very_intense")
			return
		}
	}
	if body.GoalType != nil && !validGoalTypes[*body.GoalType] {
		apiError(c, http.StatusBadRequest, "goal_type must be one of: lose_weight, maintain_weight, gain_muscle")
		return
	}
	if body.Gender != nil && *body.Gender != "male" && *body.Gender != "female" && *body.Gender != "other" {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female, other")
		return
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.Age != nil {
		setClauses = append(setClauses, "age = @age")
		args["age"] = *body.Age
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightKG != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.WeightKG
	}
	if body.ActivityLevel != nil {
		setClauses = append(setClauses, "activity_level = @activityLevel")
		args["activityLevel"] = *body.ActivityLevel
	}
	if body.GoalType != nil {
		setClauses = append(setClauses, "goal_type = @goalType")
		args["goalType"] = *body.GoalType
	}
	if body.ClinicalMode != nil {
		setClauses = append(setClauses, "clinical_mode = @clinicalMode")
		args["clinicalMode"] = *body.ClinicalMode
	}
	if body.DailyCalorieGoal != nil {
		setClauses = append(setClauses, "daily_calorie_goal = @dailyCalorieGoal")
		args["dailyCalorieGoal"] = *body.DailyCalorieGoal
	}
	if body.ProteinTargetG != nil {
		setClauses = append(setClauses, "protein_target_g = @proteinTargetG")
		args["proteinTargetG"] = *body.ProteinTargetG
	}
	if body.CarbsTargetG != nil {
		setClauses = append(setClauses, "carbs_target_g = @carbsTargetG")
		args["carbsTargetG"] = *body.CarbsTargetG
	}
	if body.FatTargetG != nil {
		setClauses = append(setClauses, "fat_target_g = @fatTargetG")
		args["fatTargetG"] = *body.FatTargetG
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE user_settings SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	s, err := queryOne[userSettings](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	populateComputedTargets(&s)

	c.JSON(http.StatusOK, s)
}
