package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendService_WindowStart(t *testing.T) {
	meals := NewMealService(setupTestDB(t))
	svc := NewTrendService(meals)

	t.Run("weekly on a Monday starts that same day at midnight", func(t *testing.T) {
		// 2026-08-24 is a Monday
		svc.now = func() time.Time {
			return time.Date(2026, 8, 24, 15, 30, 0, 0, time.UTC)
		}

		start, err := svc.WindowStart(TimeframeWeekly)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("weekly on a Sunday starts the Monday six days prior", func(t *testing.T) {
		// 2026-08-30 is a Sunday
		svc.now = func() time.Time {
			return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
		}

		start, err := svc.WindowStart(TimeframeWeekly)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("daily starts at midnight today", func(t *testing.T) {
		svc.now = func() time.Time {
			return time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)
		}

		start, err := svc.WindowStart(TimeframeDaily)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("monthly starts on the first of the month", func(t *testing.T) {
		svc.now = func() time.Time {
			return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		}

		start, err := svc.WindowStart(TimeframeMonthly)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("unknown timeframe is a validation error", func(t *testing.T) {
		_, err := svc.WindowStart(Timeframe("yearly"))

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTrendService_ComputeTrends(t *testing.T) {
	db := setupTestDB(t)
	meals := NewMealService(db)
	svc := NewTrendService(meals)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}

	ctx := context.Background()
	userID := uuid.New()

	save := func(day time.Time, calories float64) {
		_, err := meals.SaveMeal(ctx, userID, day, &NutritionEstimate{
			Items:         []ItemEstimate{{Name: "meal", Calories: calories}},
			TotalCalories: calories,
		}, "")
		require.NoError(t, err)
	}

	// Two meals on the same day plus one the day after, all inside the
	// monthly window.
	save(time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC), 400)
	save(time.Date(2026, 8, 25, 19, 0, 0, 0, time.UTC), 250)
	save(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), 500)
	// Outside the window, must not appear.
	save(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC), 999)

	t.Run("groups same-day meals into one summed entry", func(t *testing.T) {
		trends, err := svc.ComputeTrends(ctx, userID, TimeframeMonthly)

		require.NoError(t, err)
		require.Len(t, trends, 2)
		assert.Equal(t, "2026-08-25", trends[0].Date)
		assert.Equal(t, 650.0, trends[0].TotalCalories)
		assert.Equal(t, "2026-08-26", trends[1].Date)
		assert.Equal(t, 500.0, trends[1].TotalCalories)
	})

	t.Run("days without meals are absent", func(t *testing.T) {
		trends, err := svc.ComputeTrends(ctx, userID, TimeframeMonthly)

		require.NoError(t, err)
		for _, tr := range trends {
			assert.NotEqual(t, "2026-08-27", tr.Date)
		}
	})

	t.Run("other users' meals are excluded", func(t *testing.T) {
		trends, err := svc.ComputeTrends(ctx, uuid.New(), TimeframeMonthly)

		require.NoError(t, err)
		assert.Empty(t, trends)
	})
}

func TestTrendService_Summarize(t *testing.T) {
	db := setupTestDB(t)
	meals := NewMealService(db)
	svc := NewTrendService(meals)

	ctx := context.Background()
	userID := uuid.New()

	morning := time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 25, 19, 0, 0, 0, time.UTC)

	_, err := meals.SaveMeal(ctx, userID, morning, &NutritionEstimate{
		Items:         []ItemEstimate{{Name: "Oatmeal", Calories: 400}},
		TotalCalories: 400,
	}, "")
	require.NoError(t, err)
	_, err = meals.SaveMeal(ctx, userID, evening, &NutritionEstimate{
		Items:         []ItemEstimate{{Name: "Salad", Calories: 250}},
		TotalCalories: 250,
	}, "")
	require.NoError(t, err)

	summary, err := svc.Summarize(ctx, userID,
		time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Contains(t, summary, "2026-08-25")
	day := summary["2026-08-25"]
	assert.Equal(t, 650.0, day.TotalCalories)
	require.Len(t, day.Items, 2)
	// Items concatenate in chronological encounter order.
	assert.Equal(t, "Oatmeal", day.Items[0].Name)
	assert.Equal(t, "Salad", day.Items[1].Name)
}
