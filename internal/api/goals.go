package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/service"
)

// GoalHandler serves dietary goal reads and writes.
type GoalHandler struct {
	goals *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// RegisterRoutes registers the goal routes behind auth
func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.GetGoals)
		goals.PUT("", h.SetGoals)
	}
}

type SetGoalsRequest struct {
	DailyCalorieIntake float64            `json:"dailyCalorieIntake" binding:"required"`
	Macronutrients     service.MacroSplit `json:"macronutrients" binding:"required"`
	DietaryPreferences string             `json:"dietaryPreferences"`
}

// SetGoals validates the submission at the boundary and overwrites the
// user's goal wholesale. An invalid macro split writes nothing.
func (h *GoalHandler) SetGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req SetGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := service.ValidateGoalInput(req.DailyCalorieIntake, req.Macronutrients); err != nil {
		respondError(c, err)
		return
	}

	goal, err := h.goals.SetGoals(c.Request.Context(), userID, req.DailyCalorieIntake, req.Macronutrients, req.DietaryPreferences)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	goal, err := h.goals.GetGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}
