package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/models"
)

func adviceConfig(url string) *config.Config {
	return &config.Config{
		OpenAIAPIKey: "test-key",
		OpenAIAPIURL: url,
		AdviceModel:  "gpt-4-turbo",
		AITimeout:    5 * time.Second,
	}
}

func TestAdviceService_GenerateAdvice(t *testing.T) {
	ctx := context.Background()
	goal := &models.DietaryGoal{
		UserID:             uuid.New(),
		DailyCalorieIntake: 2000,
		CarbsPct:           40,
		ProteinsPct:        30,
		FatsPct:            30,
	}
	trends := map[string]DaySummary{
		"2026-08-25": {TotalCalories: 650},
	}

	t.Run("converts markdown advice into sanitized HTML", func(t *testing.T) {
		var gotMessages []map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Messages []map[string]interface{} `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gotMessages = req.Messages

			w.Write(completionBody("## Keep it up\n\nEat **more** protein.\n\n<script>alert(1)</script>"))
		}))
		defer srv.Close()

		svc := NewAdviceService(adviceConfig(srv.URL))
		advice, err := svc.GenerateAdvice(ctx, goal, trends)

		require.NoError(t, err)
		html := string(advice)
		assert.Contains(t, html, "<h2>Keep it up</h2>")
		assert.Contains(t, html, "<strong>more</strong>")
		assert.NotContains(t, html, "<script>")

		// System + user two-message exchange with both inputs embedded.
		require.Len(t, gotMessages, 2)
		assert.Equal(t, "system", gotMessages[0]["role"])
		assert.Equal(t, "user", gotMessages[1]["role"])
		userContent, _ := gotMessages[1]["content"].(string)
		assert.True(t, strings.Contains(userContent, "2026-08-25"))
		assert.True(t, strings.Contains(userContent, "dietary goals"))
	})

	t.Run("upstream failure surfaces as ErrUpstream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		svc := NewAdviceService(adviceConfig(srv.URL))
		_, err := svc.GenerateAdvice(ctx, goal, trends)

		assert.ErrorIs(t, err, ErrUpstream)
	})
}
