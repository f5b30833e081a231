package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
)

// Deps carries the optional collaborators SetupAPI wires in. Redis and
// the photo store may be nil; the affected features degrade quietly.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Photos service.PhotoStore
}

// SetupAPI constructs the services and registers all /api/v1 routes.
func SetupAPI(router *gin.Engine, cfg *config.Config, deps Deps) {
	authService := service.NewAuthService(deps.DB, cfg.JWTSecret)
	visionService := service.NewVisionService(cfg)
	adviceService := service.NewAdviceService(cfg)
	mealService := service.NewMealService(deps.DB)
	trendService := service.NewTrendService(mealService)
	goalService := service.NewGoalService(deps.DB)

	var cache *service.AnalysisCache
	var aiGate gin.HandlerFunc
	if deps.Redis != nil {
		cache = service.NewAnalysisCache(deps.Redis)
		limiter := middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
			Window:    time.Hour,
			Limit:     30,
			KeyPrefix: "ratelimit:ai",
		})
		aiGate = limiter.Middleware()
	}

	authHandler := NewAuthHandler(authService)
	mealHandler := NewMealHandler(visionService, mealService, deps.Photos, cache, cfg.UploadDir, cfg.MaxUploadBytes)
	trendHandler := NewTrendHandler(trendService)
	adviceHandler := NewAdviceHandler(adviceService, goalService, trendService)
	goalHandler := NewGoalHandler(goalService)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		mealHandler.RegisterRoutes(protected, aiGate)
		trendHandler.RegisterRoutes(protected)
		adviceHandler.RegisterRoutes(protected, aiGate)
		goalHandler.RegisterRoutes(protected)
	}
}
