package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// MacroSplit is a percentage distribution over the three
// macronutrients. The three values must sum to exactly 100.
type MacroSplit struct {
	Carbs    float64 `json:"carbs"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
}

// ValidateGoalInput is the boundary gate for goal submissions. It runs
// before any write; a failure means nothing is persisted.
func ValidateGoalInput(dailyCalories float64, macros MacroSplit) error {
	if dailyCalories <= 0 {
		return fmt.Errorf("%w: daily calorie intake must be positive", ErrValidation)
	}
	if macros.Carbs+macros.Proteins+macros.Fats != 100 {
		return fmt.Errorf("%w: macronutrient distribution must sum to 100%%", ErrValidation)
	}
	return nil
}

// GoalService persists each user's dietary goal.
type GoalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalService instance
func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// SetGoals overwrites the user's goal wholesale. Callers validate
// input with ValidateGoalInput first; no partial update exists.
func (s *GoalService) SetGoals(ctx context.Context, userID uuid.UUID, dailyCalories float64, macros MacroSplit, preferences string) (*models.DietaryGoal, error) {
	var goal models.DietaryGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: failed to load goal: %v", ErrStore, err)
	}

	goal.UserID = userID
	goal.DailyCalorieIntake = dailyCalories
	goal.CarbsPct = macros.Carbs
	goal.ProteinsPct = macros.Proteins
	goal.FatsPct = macros.Fats
	goal.DietaryPreferences = preferences

	if err := s.db.WithContext(ctx).Save(&goal).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to save goal: %v", ErrStore, err)
	}
	return &goal, nil
}

// GetGoals returns the user's goal, or ErrNotFound if none was set.
func (s *GoalService) GetGoals(ctx context.Context, userID uuid.UUID) (*models.DietaryGoal, error) {
	var goal models.DietaryGoal
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no dietary goal set", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to load goal: %v", ErrStore, err)
	}
	return &goal, nil
}
