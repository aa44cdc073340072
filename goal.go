package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// loadActiveGoal returns the user's active weight goal, or nil if none
// exists. Shared by the goal, trend, and adjustment handlers.
func (h *Handler) loadActiveGoal(c *gin.Context, userID int) (*weightGoal, error) {
	goal, err := queryOne[weightGoal](h.db, c,
		`SELECT * FROM weight_goals
		 WHERE user_id = @userID AND status = 'active'
		 ORDER BY created_at DESC LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

// getActiveWeightGoal returns the user's active goal, 404 if none.
// GET /api/weight-goal.
func (h *Handler) getActiveWeightGoal(c *gin.Context) {
	userID := c.GetInt("user_id")

	goal, err := h.loadActiveGoal(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight goal")
		return
	}
	if goal == nil {
		apiError(c, http.StatusNotFound, "no active weight goal")
		return
	}

	c.JSON(http.StatusOK, goal)
}

// createWeightGoal creates a new active goal, abandoning any previous active
// one — a user has at most one goal in play. Start weight defaults to the
// most recent logged weight, then the profile weight.
// POST /api/weight-goal.
func (h *Handler) createWeightGoal(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createWeightGoalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.TargetWeightKG <= 0 || body.TargetWeightKG > 500 {
		apiError(c, http.StatusBadRequest, "target_weight_kg must be between 0 and 500")
		return
	}

	startDate := time.Now().Format("2006-01-02")
	if body.StartDate != nil {
		if _, err := time.Parse("2006-01-02", *body.StartDate); err != nil {
			apiError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		startDate = *body.StartDate
	}

	var startWeight float64
	switch {
	case body.StartWeightKG != nil:
		if *body.StartWeightKG <= 0 || *body.StartWeightKG > 500 {
			apiError(c, http.StatusBadRequest, "start_weight_kg must be between 0 and 500")
			return
		}
		startWeight = *body.StartWeightKG
	default:
		entry, err := queryOne[weightEntry](h.db, c,
			"SELECT * FROM weight_log WHERE user_id = @userID ORDER BY date DESC LIMIT 1",
			pgx.NamedArgs{"userID": userID})
		if err == nil {
			startWeight = entry.WeightKG
			break
		}
		settings, err := queryOne[userSettings](h.db, c,
			"SELECT * FROM user_settings WHERE user_id = @userID",
			pgx.NamedArgs{"userID": userID})
		if err != nil || settings.WeightKG == nil {
			apiError(c, http.StatusBadRequest, "start_weight_kg is required when no weight has been logged")
			return
		}
		startWeight = *settings.WeightKG
	}

	if startWeight == body.TargetWeightKG {
		apiError(c, http.StatusBadRequest, "target_weight_kg must differ from start weight")
		return
	}

	// Retire the previous active goal first; two actives would make the
	// adjustment analysis ambiguous.
	if _, err := h.db.Exec(c,
		"UPDATE weight_goals SET status = 'abandoned' WHERE user_id = @userID AND status = 'active'",
		pgx.NamedArgs{"userID": userID}); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to retire previous goal")
		return
	}

	goal, err := queryOne[weightGoal](h.db, c,
		`INSERT INTO weight_goals (user_id, start_weight_kg, target_weight_kg, start_date, status)
		 VALUES (@userID, @startWeight, @targetWeight, @startDate, 'active')
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "startWeight": startWeight,
			"targetWeight": body.TargetWeightKG, "startDate": startDate,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create weight goal")
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// patchWeightGoalStatus transitions a goal to achieved or abandoned.
// PATCH /api/weight-goal/:id. Body: { "status": "achieved" | "abandoned" }.
// Reactivating a finished goal is not supported — create a new one instead.
func (h *Handler) patchWeightGoalStatus(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Status != goalStatusAchieved && body.Status != goalStatusAbandoned {
		apiError(c, http.StatusBadRequest, "status must be achieved or abandoned")
		return
	}

	goal, err := queryOne[weightGoal](h.db, c,
		`UPDATE weight_goals SET status = @status
		 WHERE id = @id AND user_id = @userID AND status = 'active'
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID, "status": body.Status})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "active weight goal not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update weight goal")
		}
		return
	}

	c.JSON(http.StatusOK, goal)
}
