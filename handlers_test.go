package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupTestRouter creates a Gin engine with all routes registered behind a
// stub auth middleware that sets a dummy user_id. The handler has no DB —
// these tests only exercise validation paths that return before any query.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handler{}
	router := gin.New()
	api := router.Group("/api", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	})
	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.PUT("/weight-log/:id", h.updateWeightEntry)
	api.POST("/weight-goal", h.createWeightGoal)
	api.PATCH("/weight-goal/:id", h.patchWeightGoalStatus)
	api.PATCH("/user-settings", h.patchUserSettings)
	return router
}

// doJSON sends a request with a JSON body and returns the recorder.
func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// errorMessage extracts the "error" field from an apiError response.
func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return resp["error"]
}

/* ─── Weight log validation ──────────────────────────────────────────── */

func TestGetWeightLog_MissingParams(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "GET", "/api/weight-log", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetWeightLog_StartAfterEnd(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "GET", "/api/weight-log?start=2026-08-20&end=2026-08-01", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); !strings.Contains(msg, "start") {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestUpsertWeightEntry_Validation(t *testing.T) {
	router := setupTestRouter()

	cases := []struct {
		name string
		body string
	}{
		{"missing date", `{"weight_kg": 80}`},
		{"bad date", `{"date": "20-08-2026", "weight_kg": 80}`},
		{"zero weight", `{"date": "2026-08-20", "weight_kg": 0}`},
		{"absurd weight", `{"date": "2026-08-20", "weight_kg": 900}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/api/weight-log", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateWeightEntry_BadWeight(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "PUT", "/api/weight-log/1", `{"weight_kg": -4}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

/* ─── Weight goal validation ─────────────────────────────────────────── */

func TestCreateWeightGoal_BadTarget(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "POST", "/api/weight-goal", `{"target_weight_kg": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPatchWeightGoal_BadStatus(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "PATCH", "/api/weight-goal/1", `{"status": "active"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); !strings.Contains(msg, "achieved or abandoned") {
		t.Errorf("unexpected error message: %s", msg)
	}
}

/* ─── User settings validation ───────────────────────────────────────── */

func TestPatchUserSettings_BadActivityLevel(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "PATCH", "/api/user-settings", `{"activity_level": "couch"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); !strings.Contains(msg, "activity_level") {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestPatchUserSettings_BadGoalType(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "PATCH", "/api/user-settings", `{"goal_type": "get_swole"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPatchUserSettings_EmptyBody(t *testing.T) {
	router := setupTestRouter()
	w := doJSON(router, "PATCH", "/api/user-settings", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := errorMessage(t, w); msg != "no fields to update" {
		t.Errorf("unexpected error message: %s", msg)
	}
}
