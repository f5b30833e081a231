package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// SortOrder selects the listing order for meals. Trends consume meals
// oldest-first; the dashboard shows newest-first.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// MealService persists analyzed meals and retrieves them per user.
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// SaveMeal persists a new meal from a parsed nutrition estimate. The
// id and timestamps are server-assigned; existing rows are never
// overwritten. A zero takenAt defaults to the current time.
func (s *MealService) SaveMeal(ctx context.Context, userID uuid.UUID, takenAt time.Time, estimate *NutritionEstimate, photoURL string) (*models.Meal, error) {
	if takenAt.IsZero() {
		takenAt = time.Now()
	}

	meal := &models.Meal{
		UserID:        userID,
		Date:          takenAt,
		TotalCalories: estimate.TotalCalories,
		PhotoURL:      photoURL,
		Items:         make([]models.MealItem, 0, len(estimate.Items)),
	}
	for i, it := range estimate.Items {
		meal.Items = append(meal.Items, models.MealItem{
			Position: i,
			Name:     it.Name,
			Carbs:    it.Carbs,
			Protein:  it.Protein,
			Fats:     it.Fats,
			Calories: it.Calories,
		})
	}

	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to save meal: %v", ErrStore, err)
	}
	return meal, nil
}

// ListByUser returns a user's meals with their items, optionally
// restricted to meals on or after since.
func (s *MealService) ListByUser(ctx context.Context, userID uuid.UUID, since *time.Time, order SortOrder) ([]models.Meal, error) {
	orderClause := "date ASC"
	if order == SortDescending {
		orderClause = "date DESC"
	}

	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(orderClause)
	if since != nil {
		query = query.Where("date >= ?", *since)
	}

	var meals []models.Meal
	if err := query.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to list meals: %v", ErrStore, err)
	}
	return meals, nil
}
