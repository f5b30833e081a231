package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// chatMessage is a role-tagged message in a chat completion exchange.
// Content is either a plain string or, for vision requests, a slice of
// content parts.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const retryBackoff = 2 * time.Second

// completeChat issues one chat completion request and returns the
// first choice's content. AI calls are expensive, so at most one retry
// is attempted, and only for transport errors and 5xx responses; 4xx
// statuses fail immediately. Every failure wraps ErrUpstream.
func completeChat(ctx context.Context, client *http.Client, apiURL, apiKey string, reqBody chatRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		if attempt > 1 {
			log.Printf("[completion] retrying after transient failure: %v", lastErr)
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
			}
		}

		content, retryable, err := doChatAttempt(ctx, client, apiURL, apiKey, jsonData)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return "", lastErr
}

func doChatAttempt(ctx context.Context, client *http.Client, apiURL, apiKey string, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to create request: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("%w: failed to read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: API request failed with status %d", ErrUpstream, resp.StatusCode)
		return "", resp.StatusCode >= 500, err
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", false, fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}
	if len(result.Choices) == 0 {
		return "", false, fmt.Errorf("%w: no choices in response", ErrUpstream)
	}

	return result.Choices[0].Message.Content, false, nil
}
