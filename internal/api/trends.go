package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/backend/internal/service"
)

// TrendHandler serves the calorie trend aggregations.
type TrendHandler struct {
	trends *service.TrendService
}

// NewTrendHandler creates a new TrendHandler
func NewTrendHandler(trends *service.TrendService) *TrendHandler {
	return &TrendHandler{trends: trends}
}

// RegisterRoutes registers the trend routes behind auth
func (h *TrendHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/trends", h.GetTrends)
}

// TrendsResponse carries the per-day series plus parallel label/data
// arrays shaped for charting clients.
type TrendsResponse struct {
	Timeframe string                  `json:"timeframe"`
	Trends    []service.DailyCalories `json:"trends"`
	Labels    []string                `json:"labels"`
	Data      []float64               `json:"data"`
}

// GetTrends returns per-day calorie totals for the requested
// timeframe (daily, weekly or monthly; weekly by default).
func (h *TrendHandler) GetTrends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	timeframe := service.Timeframe(c.DefaultQuery("timeframe", string(service.TimeframeWeekly)))

	trends, err := h.trends.ComputeTrends(c.Request.Context(), userID, timeframe)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := TrendsResponse{
		Timeframe: string(timeframe),
		Trends:    trends,
		Labels:    make([]string, 0, len(trends)),
		Data:      make([]float64, 0, len(trends)),
	}
	for _, t := range trends {
		resp.Labels = append(resp.Labels, t.Date)
		resp.Data = append(resp.Data, t.TotalCalories)
	}

	c.JSON(http.StatusOK, resp)
}
