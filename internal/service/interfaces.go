package service

import (
	"context"
	"html/template"

	"github.com/google/uuid"

	"github.com/platewise/backend/internal/models"
)

// VisionAnalyzer is the handler-facing surface of the vision client.
type VisionAnalyzer interface {
	AnalyzeMealImage(ctx context.Context, image []byte) (string, error)
}

// AdviceGenerator is the handler-facing surface of the advice client.
type AdviceGenerator interface {
	GenerateAdvice(ctx context.Context, goal *models.DietaryGoal, trends map[string]DaySummary) (template.HTML, error)
}

// PhotoStore uploads a meal photo and returns its public URL.
type PhotoStore interface {
	Store(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error)
}

var (
	_ VisionAnalyzer  = (*VisionService)(nil)
	_ AdviceGenerator = (*AdviceService)(nil)
	_ PhotoStore      = (*PhotoStorage)(nil)
)
