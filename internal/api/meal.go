package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/service"
)

// MealHandler owns the meal-analysis ingestion pipeline: uploaded
// image -> vision call -> response parse -> persisted meal.
type MealHandler struct {
	vision service.VisionAnalyzer
	meals  *service.MealService

	// photos and cache are optional: nil when S3 or Redis is not
	// configured.
	photos service.PhotoStore
	cache  *service.AnalysisCache

	tmpDir   string
	maxBytes int64
}

// NewMealHandler creates a new MealHandler
func NewMealHandler(vision service.VisionAnalyzer, meals *service.MealService, photos service.PhotoStore, cache *service.AnalysisCache, tmpDir string, maxBytes int64) *MealHandler {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &MealHandler{
		vision:   vision,
		meals:    meals,
		photos:   photos,
		cache:    cache,
		tmpDir:   tmpDir,
		maxBytes: maxBytes,
	}
}

// RegisterRoutes registers the meal routes behind auth
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup, aiGate gin.HandlerFunc) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.GET("/latest-analysis", h.LatestAnalysis)
		if aiGate != nil {
			meals.POST("", aiGate, h.UploadMeal)
		} else {
			meals.POST("", h.UploadMeal)
		}
	}
}

// UploadMeal accepts a multipart meal photo, runs the analysis
// pipeline and persists the result. The transient upload file is
// removed on every exit path, success or failure.
func (h *MealHandler) UploadMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("mealImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	if fileHeader.Size > h.maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	tmpPath := filepath.Join(h.tmpDir, "meal-"+uuid.NewString())
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("failed to remove upload %s: %v", tmpPath, err)
		}
	}()

	image, err := os.ReadFile(tmpPath)
	if err != nil {
		respondError(c, err)
		return
	}

	raw, err := h.vision.AnalyzeMealImage(c.Request.Context(), image)
	if err != nil {
		respondError(c, err)
		return
	}

	estimate, err := service.ParseNutritionResponse(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	// The photo is a nice-to-have; losing it must not lose the meal.
	var photoURL string
	if h.photos != nil {
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}
		photoURL, err = h.photos.Store(c.Request.Context(), userID, image, contentType)
		if err != nil {
			log.Printf("photo upload failed for user %s: %v", userID, err)
			photoURL = ""
		}
	}

	meal, err := h.meals.SaveMeal(c.Request.Context(), userID, time.Now(), estimate, photoURL)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.SaveLatest(c.Request.Context(), userID, estimate); err != nil {
			log.Printf("failed to cache analysis for user %s: %v", userID, err)
		}
	}

	c.JSON(http.StatusCreated, meal)
}

// ListMeals returns the user's meals newest-first for the dashboard.
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	meals, err := h.meals.ListByUser(c.Request.Context(), userID, nil, service.SortDescending)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// LatestAnalysis returns the most recent cached nutrition estimate.
func (h *MealHandler) LatestAnalysis(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	if h.cache == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	estimate, err := h.cache.GetLatest(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}
