package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// adjustmentResponse pairs the policy's recommendation with the macro
// targets that would accompany it. Macros are only present when the policy
// suggests a change.
type adjustmentResponse struct {
	Adjustment calorieAdjustment `json:"adjustment"`
	Macros     *macroTargets     `json:"macros,omitempty"`
	Applied    bool              `json:"applied"`
}

// analysisInput is everything the decision core was evaluated against,
// kept so applyAdjustment persists numbers consistent with the analysis.
type analysisInput struct {
	settings userSettings
	goal     *weightGoal
	// currentWeight is the weight the policy evaluated against (latest
	// logged entry, profile fallback). Macro recalculation and persistence
	// both read it so every number in one response derives from one weight.
	currentWeight float64
}

// runAnalysis loads the profile, active goal, and recent history, then
// evaluates the policy. now is captured once so the estimator and the
// trigger share one clock. On failure the HTTP error is already written.
func (h *Handler) runAnalysis(c *gin.Context, userID int) (analysisInput, calorieAdjustment, bool) {
	now := time.Now()

	settings, err := queryOne[userSettings](h.db, c,
		"SELECT * FROM user_settings WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "settings not found")
		return analysisInput{}, calorieAdjustment{}, false
	}

	goal, err := h.loadActiveGoal(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight goal")
		return analysisInput{}, calorieAdjustment{}, false
	}

	history, err := h.loadRecentHistory(c, userID, now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return analysisInput{}, calorieAdjustment{}, false
	}

	adj := analyzeCalorieAdjustment(settings, goal, history, settings.LastCalculatedWeightKG, now)
	in := analysisInput{
		settings:      settings,
		goal:          goal,
		currentWeight: latestWeight(history, profileWeight(settings)),
	}
	return in, adj, true
}

// getAdjustment evaluates the adjustment policy for the authenticated user
// without persisting anything.
// GET /api/adjustment.
func (h *Handler) getAdjustment(c *gin.Context) {
	userID := c.GetInt("user_id")

	in, adj, ok := h.runAnalysis(c, userID)
	if !ok {
		return
	}

	resp := adjustmentResponse{Adjustment: adj}
	if adj.ShouldAdjust {
		macros := recomputeMacros(adj.SuggestedGoal, in.currentWeight, in.settings, in.goal)
		resp.Macros = &macros
	}

	c.JSON(http.StatusOK, resp)
}

// applyAdjustment re-runs the policy and, when it suggests a change, persists
// the new calorie goal, the recomputed macros, and the weight the targets
// were derived at. Re-running server-side (rather than trusting a client-sent
// goal) keeps the applied numbers consistent with the analysis.
// POST /api/adjustment/apply.
func (h *Handler) applyAdjustment(c *gin.Context) {
	userID := c.GetInt("user_id")

	in, adj, ok := h.runAnalysis(c, userID)
	if !ok {
		return
	}

	if !adj.ShouldAdjust {
		c.JSON(http.StatusOK, adjustmentResponse{Adjustment: adj})
		return
	}

	macros := recomputeMacros(adj.SuggestedGoal, in.currentWeight, in.settings, in.goal)

	_, err := h.db.Exec(c,
		`UPDATE user_settings SET
			daily_calorie_goal        = @calorieGoal,
			protein_target_g          = @proteinG,
			carbs_target_g            = @carbsG,
			fat_target_g              = @fatG,
			last_calculated_weight_kg = @currentWeight
		 WHERE user_id = @userID`,
		pgx.NamedArgs{
			"userID": userID, "calorieGoal": adj.SuggestedGoal,
			"proteinG": macros.ProteinG, "carbsG": macros.CarbsG, "fatG": macros.FatG,
			"currentWeight": in.currentWeight,
		})
	if err != nil {
		log.Printf("[applyAdjustment] persist failed for user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to apply adjustment")
		return
	}

	// Goal completion also closes out the goal row.
	if adj.Reason == reasonGoalAchieved && in.goal != nil {
		if _, err := h.db.Exec(c,
			"UPDATE weight_goals SET status = 'achieved' WHERE id = @id AND user_id = @userID",
			pgx.NamedArgs{"id": in.goal.ID, "userID": userID}); err != nil {
			log.Printf("[applyAdjustment] goal close failed for user %d: %v", userID, err)
		}
	}

	c.JSON(http.StatusOK, adjustmentResponse{Adjustment: adj, Macros: &macros, Applied: true})
}
