package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const llmSystemPrompt = `You rate government solicitations for relevance to an IT consulting firm.
The firm sells technology assessments, IT strategy, cybersecurity audits, ERP and
software implementation consulting, and data analytics work. It does not bid on
construction, physical services, or commodity purchases.

Respond with exactly one JSON object, no prose:
{"score": <0-100>, "category": "<category>", "reason": "<brief reason>"}`

// llmVerdict is the JSON shape the model is asked to produce.
type llmVerdict struct {
	Score    float64 `json:"score"`
	Category string  `json:"category"`
	Reason   string  `json:"reason"`
}

// LLMScorer rates solicitation text with an Anthropic model.
type LLMScorer struct {
	client anthropic.Client
	model  string
}

// NewLLMScorer creates an LLM scorer using the given API key and model.
func NewLLMScorer(apiKey, model string) *LLMScorer {
	return &LLMScorer{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Name identifies the method in blended results.
func (s *LLMScorer) Name() string {
	return "llm"
}

// Score asks the model for a 0-100 relevance rating and a short reason.
func (s *LLMScorer) Score(ctx context.Context, text string) (float64, string, error) {
	if len(text) > 4000 {
		text = text[:4000]
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: llmSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Solicitation:\n" + text)),
		},
	})
	if err != nil {
		return 0, "", fmt.Errorf("anthropic request failed: %w", err)
	}

	for _, block := range message.Content {
		if block.Type != "text" {
			continue
		}
		verdict, err := parseVerdict(block.Text)
		if err != nil {
			return 0, "", err
		}
		if verdict.Score < 0 {
			verdict.Score = 0
		}
		if verdict.Score > 100 {
			verdict.Score = 100
		}
		return verdict.Score, verdict.Reason, nil
	}

	return 0, "", fmt.Errorf("no text content in response")
}

// parseVerdict extracts the JSON object from a model reply, tolerating
// fenced code blocks.
func parseVerdict(reply string) (*llmVerdict, error) {
	reply = strings.TrimSpace(reply)
	if start := strings.Index(reply, "{"); start >= 0 {
		if end := strings.LastIndex(reply, "}"); end > start {
			reply = reply[start : end+1]
		}
	}

	var verdict llmVerdict
	if err := json.Unmarshal([]byte(reply), &verdict); err != nil {
		return nil, fmt.Errorf("unparseable model reply: %w", err)
	}
	return &verdict, nil
}
