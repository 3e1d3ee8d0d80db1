// Package classifier provides the optional supplementary relevance scorers:
// an embedding-similarity service client and an Anthropic-backed scorer.
// Either can be absent; the blended scorer degrades to whatever is
// configured.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SemanticClient is an HTTP client for the embedding-similarity scoring
// service. The service compares solicitation text to a set of ideal target
// descriptions and returns the best cosine similarity on a 0-100 scale.
type SemanticClient struct {
	baseURL    string
	httpClient *http.Client
}

// scoreRequest is the request body for scoring.
type scoreRequest struct {
	Text string `json:"text"`
}

// scoreResponse is the response from scoring.
type scoreResponse struct {
	Score     float64 `json:"score"`
	BestMatch string  `json:"best_match"`
}

// HealthResponse is the response from health check.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// NewSemanticClient creates a new semantic scoring client.
func NewSemanticClient(baseURL string) *SemanticClient {
	return &SemanticClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // embedding inference can be slow on CPU
		},
	}
}

// Name identifies the method in blended results.
func (c *SemanticClient) Name() string {
	return "semantic"
}

// Health checks if the scoring service is running.
func (c *SemanticClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to semantic service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("health check failed: %s", string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &health, nil
}

// IsRunning checks if the service is reachable.
func (c *SemanticClient) IsRunning(ctx context.Context) bool {
	health, err := c.Health(ctx)
	return err == nil && health.Status == "ok"
}

// Score sends text for similarity scoring and returns the 0-100 score plus
// the best-matching target description.
func (c *SemanticClient) Score(ctx context.Context, text string) (float64, string, error) {
	// Very long solicitations add nothing past the opening sections.
	if len(text) > 2000 {
		text = text[:2000]
	}

	body, err := json.Marshal(scoreRequest{Text: text})
	if err != nil {
		return 0, "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/score", bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, "", fmt.Errorf("semantic scoring request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, "", fmt.Errorf("semantic scoring failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, "", fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Score, result.BestMatch, nil
}
