package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/service"
)

// adviceWindow bounds how much history feeds the advice prompt.
const adviceWindow = 30 * 24 * time.Hour

// AdviceHandler serves AI-generated dietary advice built from the
// user's goals and recent trends.
type AdviceHandler struct {
	advice service.AdviceGenerator
	goals  *service.GoalService
	trends *service.TrendService
}

// NewAdviceHandler creates a new AdviceHandler
func NewAdviceHandler(advice service.AdviceGenerator, goals *service.GoalService, trends *service.TrendService) *AdviceHandler {
	return &AdviceHandler{advice: advice, goals: goals, trends: trends}
}

// RegisterRoutes registers the advice route behind auth and the AI
// rate limit gate.
func (h *AdviceHandler) RegisterRoutes(router *gin.RouterGroup, aiGate gin.HandlerFunc) {
	if aiGate != nil {
		router.GET("/advice", aiGate, h.GetAdvice)
	} else {
		router.GET("/advice", h.GetAdvice)
	}
}

// GetAdvice reads the user's goal and summarized trends, then asks the
// advice client for a recommendation rendered as sanitized HTML.
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
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

	now := time.Now()
	trends, err := h.trends.Summarize(c.Request.Context(), userID, now.Add(-adviceWindow), now)
	if err != nil {
		respondError(c, err)
		return
	}

	advice, err := h.advice.GenerateAdvice(c.Request.Context(), goal, trends)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
