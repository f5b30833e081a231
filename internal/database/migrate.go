package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// Migrate runs the schema migrations for all application models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.DietaryGoal{},
		&models.Meal{},
		&models.MealItem{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
