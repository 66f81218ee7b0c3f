package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIPlanner asks an OpenAI chat model for a plan. Transient API
// failures are retried with linear backoff.
type OpenAIPlanner struct {
	client     *openai.Client
	model      string
	system     string
	logger     *slog.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIPlanner builds a planner over the published operation set.
// An empty API key is allowed for delayed configuration; Plan fails
// until one is set.
func NewOpenAIPlanner(apiKey, model string, specs []*schema.Spec, logger *slog.Logger) *OpenAIPlanner {
	if model == "" {
		model = defaultOpenAIModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &OpenAIPlanner{
		model:      model,
		system:     SystemPrompt(specs),
		logger:     logger.With("component", "planner", "provider", "openai"),
		maxRetries: 3,
		retryDelay: time.Second,
	}
	if apiKey != "" {
		p.client = openai.NewClient(apiKey)
	}
	return p
}

func (p *OpenAIPlanner) Plan(ctx context.Context, instruction, contextText string) (*plan.Plan, error) {
	if p.client == nil {
		return nil, errors.New("planner: OpenAI API key not configured")
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.system},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(instruction, contextText)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	var resp openai.ChatCompletionResponse
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryDelay * time.Duration(attempt)):
			}
		}
		resp, lastErr = p.client.CreateChatCompletion(ctx, req)
		if lastErr == nil {
			break
		}
		if !retryable(lastErr) {
			return nil, fmt.Errorf("planner: openai: %w", lastErr)
		}
		p.logger.Warn("completion retry", "attempt", attempt+1, "error", lastErr)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("planner: openai: retries exhausted: %w", lastErr)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("planner: openai: empty response")
	}

	parsed, err := ParsePlan(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("plan proposed", "steps", len(parsed.Steps))
	return parsed, nil
}

// retryable classifies rate limits, server errors, and timeouts as
// transient.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{"rate limit", "429", "500", "502", "503", "504", "timeout", "deadline exceeded", "overloaded"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
