package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/platewise/backend/config"
)

const visionPrompt = `Please identify the food in this image and provide the breakdown in JSON format. Include each food item constituting the meal with its calorie count and macronutrients in grams. The response should include an array of items, each item should list the food name, carbs, protein, fats, and calories. End with a total calorie count for the meal. Aim for a response that follows this structure: {"items": [{"name": "Food Item", "carbs": XX, "protein": XX, "fats": XX, "calories": XX}], "totalCalories": XXXX}. Provide your best estimate based on the image. This data is required for a web application and must adhere strictly to the requested format without additional text.`

// VisionService turns a meal photo into a raw nutrition-estimate
// completion via a multimodal chat endpoint. The response body is
// untrusted text; callers run it through ParseNutritionResponse.
type VisionService struct {
	apiKey   string
	apiURL   string
	model    string
	maxBytes int64
	client   *http.Client
}

// NewVisionService creates a new VisionService instance
func NewVisionService(cfg *config.Config) *VisionService {
	return &VisionService{
		apiKey:   cfg.OpenAIAPIKey,
		apiURL:   cfg.OpenAIAPIURL,
		model:    cfg.VisionModel,
		maxBytes: cfg.MaxUploadBytes,
		client:   &http.Client{Timeout: cfg.AITimeout},
	}
}

// AnalyzeMealImage sends the image to the vision endpoint with the
// fixed instruction prompt and returns the raw completion content.
func (s *VisionService) AnalyzeMealImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrValidation)
	}
	if int64(len(image)) > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrValidation, s.maxBytes)
	}

	encoded := base64.StdEncoding.EncodeToString(image)

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: visionPrompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: "data:image/jpeg;base64," + encoded,
					}},
				},
			},
		},
		MaxTokens: 700,
	}

	return completeChat(ctx, s.client, s.apiURL, s.apiKey, reqBody)
}
