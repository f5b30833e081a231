package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/backend/internal/models"
)

// Timeframe selects the trend window. The window always ends now.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// DailyCalories is one calendar day's calorie total within a trend
// window. Days with no meals are absent, not zero-filled.
type DailyCalories struct {
	Date          string  `json:"date"`
	TotalCalories float64 `json:"totalCalories"`
}

// DaySummary is the richer per-day aggregate used to build advice
// prompts: the calorie total plus every item eaten that day in
// chronological order.
type DaySummary struct {
	TotalCalories float64           `json:"totalCalories"`
	Items         []models.MealItem `json:"items"`
}

// TrendService computes time-windowed aggregations over stored meals.
type TrendService struct {
	meals *MealService
	now   func() time.Time
}

// NewTrendService creates a new TrendService instance
func NewTrendService(meals *MealService) *TrendService {
	return &TrendService{
		meals: meals,
		now:   time.Now,
	}
}

// ComputeTrends returns per-day calorie totals for the user's meals
// inside the timeframe's window, oldest day first.
func (s *TrendService) ComputeTrends(ctx context.Context, userID uuid.UUID, timeframe Timeframe) ([]DailyCalories, error) {
	start, err := s.WindowStart(timeframe)
	if err != nil {
		return nil, err
	}

	meals, err := s.meals.ListByUser(ctx, userID, &start, SortAscending)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	var order []string
	for _, meal := range meals {
		day := isoDay(meal.Date)
		if _, seen := totals[day]; !seen {
			order = append(order, day)
		}
		totals[day] += meal.TotalCalories
	}

	trends := make([]DailyCalories, 0, len(order))
	for _, day := range order {
		trends = append(trends, DailyCalories{Date: day, TotalCalories: totals[day]})
	}
	return trends, nil
}

// Summarize aggregates meals between start and end into a per-day map
// of totals and itemized intake, for the advice path.
func (s *TrendService) Summarize(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[string]DaySummary, error) {
	meals, err := s.meals.ListByUser(ctx, userID, &start, SortAscending)
	if err != nil {
		return nil, err
	}

	summary := make(map[string]DaySummary)
	for _, meal := range meals {
		if meal.Date.After(end) {
			continue
		}
		day := isoDay(meal.Date)
		entry := summary[day]
		entry.TotalCalories += meal.TotalCalories
		entry.Items = append(entry.Items, meal.Items...)
		summary[day] = entry
	}
	return summary, nil
}

// WindowStart resolves a timeframe to its window start. Weekly windows
// begin on the most recent Monday at midnight; on a Sunday that is the
// Monday six days prior. Monthly windows begin on the first of the
// current month.
func (s *TrendService) WindowStart(timeframe Timeframe) (time.Time, error) {
	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch timeframe {
	case TimeframeDaily:
		return day, nil
	case TimeframeWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), nil
	case TimeframeMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown timeframe %q", ErrValidation, timeframe)
	}
}

func isoDay(t time.Time) string {
	return t.Format("2006-01-02")
}
