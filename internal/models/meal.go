package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is one analyzed eating event. Rows are created once per
// successful upload and never updated.
type Meal struct {
	ID            uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Date          time.Time  `gorm:"not null;index" json:"date"`
	Items         []MealItem `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items"`
	TotalCalories float64    `gorm:"not null" json:"totalCalories"`
	PhotoURL      string     `gorm:"size:512" json:"photo_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealItem is one food item within a meal. Position preserves the
// order the vision model reported the items in.
type MealItem struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	MealID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Position int       `gorm:"not null" json:"-"`
	Name     string    `gorm:"size:255" json:"name"`
	Carbs    float64   `gorm:"not null" json:"carbs"`
	Protein  float64   `gorm:"not null" json:"protein"`
	Fats     float64   `gorm:"not null" json:"fats"`
	Calories float64   `gorm:"not null" json:"calories"`
}

func (i *MealItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
