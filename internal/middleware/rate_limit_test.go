package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterIsAllowed(t *testing.T) {
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("Skipping Redis-dependent test - REDIS_HOST not set")
	}

	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), port),
	})

	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Hour,
		Limit:     3,
		KeyPrefix: "ratelimit:test:" + uuid.NewString(),
	})
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("remaining counts down to zero inside the limit", func(t *testing.T) {
		for want := 2; want >= 0; want-- {
			allowed, remaining, _, err := limiter.IsAllowed(ctx, userID)
			require.NoError(t, err)
			assert.True(t, allowed)
			assert.Equal(t, want, remaining)
		}
	})

	t.Run("blocks past the limit and reports the window reset", func(t *testing.T) {
		allowed, remaining, resetTime, err := limiter.IsAllowed(ctx, userID)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)

		windowStart := time.Now().Truncate(time.Hour)
		assert.Equal(t, windowStart.Add(time.Hour), resetTime)
	})

	t.Run("other users have their own window", func(t *testing.T) {
		allowed, remaining, _, err := limiter.IsAllowed(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
	})

	keys, err := client.Keys(ctx, limiter.config.KeyPrefix+":*").Result()
	require.NoError(t, err)
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func TestRateLimiterMiddlewareFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Unreachable Redis: the limiter must flag the failure and let the
	// request through rather than block AI calls.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: time.Second,
		MaxRetries:  -1,
	})
	limiter := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Minute,
		Limit:     1,
		KeyPrefix: "ratelimit:test",
	})

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", uuid.New()) })
	router.Use(limiter.Middleware())
	router.GET("/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiterMiddlewareRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), RateLimitConfig{
		Window:    time.Minute,
		Limit:     1,
		KeyPrefix: "ratelimit:test",
	})

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/analyze", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/analyze", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
