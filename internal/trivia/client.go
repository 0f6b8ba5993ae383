package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Question is a raw question as delivered by the Open Trivia Database.
// Text fields arrive with a handful of HTML entities escaped; decoding is
// left to the caller.
type Question struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Text             string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int        `json:"response_code"`
	Results      []Question `json:"results"`
}

// Client wraps Open Trivia Database API calls
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a new trivia API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: 3,
	}
}

// Fetch requests amount questions. Rate limiting and server errors are
// retried with a short linear backoff; a non-zero API response code is not,
// since the same request would fail again.
func (c *Client) Fetch(ctx context.Context, amount int) ([]Question, error) {
	url := fmt.Sprintf("%s/api.php?amount=%d", c.baseURL, amount)

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[Trivia] Retry attempt %d/%d for GET %s", attempt, c.maxRetries-1, url)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("trivia API returned status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("trivia API returned status %d", resp.StatusCode)
		}

		var payload apiResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode trivia response: %w", err)
		}
		if payload.ResponseCode != 0 {
			return nil, fmt.Errorf("trivia API response code %d", payload.ResponseCode)
		}

		return payload.Results, nil
	}

	return nil, fmt.Errorf("trivia API unreachable after %d attempts: %w", c.maxRetries, lastErr)
}
