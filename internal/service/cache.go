package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const analysisTTL = 24 * time.Hour

// AnalysisCache keeps each user's most recent nutrition estimate in
// Redis so the dashboard can show the last analysis without re-running
// the vision pipeline. Cache writes are best-effort.
type AnalysisCache struct {
	redis *redis.Client
}

// NewAnalysisCache creates a new AnalysisCache instance
func NewAnalysisCache(redisClient *redis.Client) *AnalysisCache {
	return &AnalysisCache{redis: redisClient}
}

func analysisKey(userID uuid.UUID) string {
	return fmt.Sprintf("meal:analysis:%s", userID)
}

// SaveLatest stores the user's latest estimate with a 24h TTL.
func (c *AnalysisCache) SaveLatest(ctx context.Context, userID uuid.UUID, estimate *NutritionEstimate) error {
	data, err := json.Marshal(estimate)
	if err != nil {
		return fmt.Errorf("failed to marshal estimate: %w", err)
	}
	if err := c.redis.Set(ctx, analysisKey(userID), data, analysisTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache estimate: %w", err)
	}
	return nil
}

// GetLatest returns the user's latest cached estimate, or ErrNotFound
// when none exists or it has expired.
func (c *AnalysisCache) GetLatest(ctx context.Context, userID uuid.UUID) (*NutritionEstimate, error) {
	data, err := c.redis.Get(ctx, analysisKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: no cached analysis", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached estimate: %w", err)
	}

	var estimate NutritionEstimate
	if err := json.Unmarshal(data, &estimate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached estimate: %w", err)
	}
	return &estimate, nil
}
