package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietaryGoal is a user's nutrition target. Each user has at most one;
// goal-setting overwrites the row wholesale, no history is kept.
type DietaryGoal struct {
	ID                 uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DailyCalorieIntake float64   `gorm:"not null" json:"dailyCalorieIntake"`
	CarbsPct           float64   `gorm:"not null" json:"carbs"`
	ProteinsPct        float64   `gorm:"not null" json:"proteins"`
	FatsPct            float64   `gorm:"not null" json:"fats"`
	DietaryPreferences string    `gorm:"type:text" json:"dietaryPreferences"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (DietaryGoal) TableName() string {
	return "dietary_goals"
}

func (g *DietaryGoal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
