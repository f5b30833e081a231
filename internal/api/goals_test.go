package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/service"
)

func setupGoalRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *service.GoalService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	goals := service.NewGoalService(setupTestDB(t))
	handler := NewGoalHandler(goals)

	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(fakeAuth(userID))
	handler.RegisterRoutes(group)
	return router, goals
}

func putGoals(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/goals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGoalHandler_SetGoals(t *testing.T) {
	userID := uuid.New()

	t.Run("valid macro split summing to 100 is accepted", func(t *testing.T) {
		router, goals := setupGoalRouter(t, userID)

		w := putGoals(router, `{
			"dailyCalorieIntake": 2000,
			"macronutrients": {"carbs": 40, "proteins": 30, "fats": 30},
			"dietaryPreferences": "vegetarian"
		}`)

		assert.Equal(t, http.StatusOK, w.Code)

		goal, err := goals.GetGoals(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, goal.DailyCalorieIntake)
	})

	t.Run("split summing to 90 is rejected before any write", func(t *testing.T) {
		router, goals := setupGoalRouter(t, userID)

		w := putGoals(router, `{
			"dailyCalorieIntake": 2000,
			"macronutrients": {"carbs": 40, "proteins": 40, "fats": 10}
		}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		_, err := goals.GetGoals(context.Background(), userID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("split summing to 110 is rejected before any write", func(t *testing.T) {
		router, goals := setupGoalRouter(t, userID)

		w := putGoals(router, `{
			"dailyCalorieIntake": 2000,
			"macronutrients": {"carbs": 50, "proteins": 30, "fats": 30}
		}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		_, err := goals.GetGoals(context.Background(), userID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestGoalHandler_GetGoals(t *testing.T) {
	userID := uuid.New()

	t.Run("404 when no goal has been set", func(t *testing.T) {
		router, _ := setupGoalRouter(t, userID)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
