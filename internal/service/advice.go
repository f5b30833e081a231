package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/microcosm-cc/bluemonday"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/models"
)

const adviceSystemPrompt = "You are a helpful assistant providing dietary advice."

// AdviceService generates free-text dietary advice from a user's goals
// and recent intake trends via a text completion endpoint.
type AdviceService struct {
	apiKey    string
	apiURL    string
	model     string
	client    *http.Client
	sanitizer *bluemonday.Policy
}

// NewAdviceService creates a new AdviceService instance
func NewAdviceService(cfg *config.Config) *AdviceService {
	return &AdviceService{
		apiKey:    cfg.OpenAIAPIKey,
		apiURL:    cfg.OpenAIAPIURL,
		model:     cfg.AdviceModel,
		client:    &http.Client{Timeout: cfg.AITimeout},
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// GenerateAdvice embeds the goal and trends into a fixed prompt, runs
// one system+user chat exchange and returns the markdown advice as
// sanitized HTML safe for direct display.
func (s *AdviceService) GenerateAdvice(ctx context.Context, goal *models.DietaryGoal, trends map[string]DaySummary) (template.HTML, error) {
	goalJSON, err := json.Marshal(goal)
	if err != nil {
		return "", fmt.Errorf("failed to marshal goals: %w", err)
	}
	trendsJSON, err := json.Marshal(trends)
	if err != nil {
		return "", fmt.Errorf("failed to marshal trends: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"Given that a user's dietary goals are %s, and their actual dietary trends are %s, provide a detailed analysis and advice on how they can better meet their dietary goals. The advice should be actionable and supportive. Treat the user in first person",
		goalJSON, trendsJSON,
	)

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: adviceSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: 800,
	}

	content, err := completeChat(ctx, s.client, s.apiURL, s.apiKey, reqBody)
	if err != nil {
		return "", err
	}

	return s.renderMarkdown(content), nil
}

// renderMarkdown converts model-supplied markdown into HTML and strips
// anything outside the UGC allowlist.
func (s *AdviceService) renderMarkdown(md string) template.HTML {
	rendered := markdown.ToHTML([]byte(strings.TrimSpace(md)), nil, nil)
	return template.HTML(s.sanitizer.SanitizeBytes(rendered))
}
