package service

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemEstimate is one food item from a parsed vision response. All
// numeric fields are non-negative after parsing.
type ItemEstimate struct {
	Name     string  `json:"name"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fats     float64 `json:"fats"`
	Calories float64 `json:"calories"`
}

// NutritionEstimate is the validated result of parsing a vision
// completion. TotalCalories is derived from the items when any are
// present; the model-reported total is only trusted for empty meals.
type NutritionEstimate struct {
	Items         []ItemEstimate `json:"items"`
	TotalCalories float64        `json:"totalCalories"`
}

// ParseNutritionResponse extracts the nutrition estimate embedded in a
// completion body. The model is not contractually constrained to emit
// clean JSON, so code fences and surrounding prose are stripped before
// parsing. Every failure mode returns ErrMalformedResponse.
func ParseNutritionResponse(raw string) (*NutritionEstimate, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	// Tolerate prose around the payload by cutting to the outermost
	// JSON object.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}
	cleaned = cleaned[start : end+1]

	var payload struct {
		Items *[]struct {
			Name     string   `json:"name"`
			Carbs    *float64 `json:"carbs"`
			Protein  *float64 `json:"protein"`
			Fats     *float64 `json:"fats"`
			Calories *float64 `json:"calories"`
		} `json:"items"`
		TotalCalories *float64 `json:"totalCalories"`
	}

	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: missing items", ErrMalformedResponse)
	}
	if payload.TotalCalories == nil {
		return nil, fmt.Errorf("%w: missing totalCalories", ErrMalformedResponse)
	}

	estimate := &NutritionEstimate{Items: make([]ItemEstimate, 0, len(*payload.Items))}
	var itemTotal float64
	for _, it := range *payload.Items {
		item := ItemEstimate{
			Name:     it.Name,
			Carbs:    clampNonNegative(it.Carbs),
			Protein:  clampNonNegative(it.Protein),
			Fats:     clampNonNegative(it.Fats),
			Calories: clampNonNegative(it.Calories),
		}
		itemTotal += item.Calories
		estimate.Items = append(estimate.Items, item)
	}

	if len(estimate.Items) > 0 {
		estimate.TotalCalories = itemTotal
	} else {
		estimate.TotalCalories = clampNonNegative(payload.TotalCalories)
	}

	return estimate, nil
}

func clampNonNegative(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
