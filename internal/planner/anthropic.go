package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

const (
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	anthropicMaxTokens    = 4096
)

// AnthropicPlanner asks a Claude model for a plan.
type AnthropicPlanner struct {
	client     anthropic.Client
	configured bool
	model      string
	system     string
	logger     *slog.Logger
	maxRetries int
	retryDelay time.Duration
}

// NewAnthropicPlanner builds a planner over the published operation
// set. baseURL overrides the API endpoint when non-empty.
func NewAnthropicPlanner(apiKey, model, baseURL string, specs []*schema.Spec, logger *slog.Logger) *AnthropicPlanner {
	if model == "" {
		model = defaultAnthropicModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &AnthropicPlanner{
		model:      model,
		system:     SystemPrompt(specs),
		logger:     logger.With("component", "planner", "provider", "anthropic"),
		maxRetries: 3,
		retryDelay: time.Second,
	}
	if apiKey != "" {
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}
		p.client = anthropic.NewClient(opts...)
		p.configured = true
	}
	return p
}

func (p *AnthropicPlanner) Plan(ctx context.Context, instruction, contextText string) (*plan.Plan, error) {
	if !p.configured {
		return nil, errors.New("planner: Anthropic API key not configured")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: p.system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(UserPrompt(instruction, contextText))),
		},
	}

	var msg *anthropic.Message
	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryDelay * time.Duration(attempt)):
			}
		}
		msg, lastErr = p.client.Messages.New(ctx, params)
		if lastErr == nil {
			break
		}
		if !retryable(lastErr) {
			return nil, fmt.Errorf("planner: anthropic: %w", lastErr)
		}
		p.logger.Warn("completion retry", "attempt", attempt+1, "error", lastErr)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("planner: anthropic: retries exhausted: %w", lastErr)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	parsed, err := ParsePlan(text.String())
	if err != nil {
		return nil, err
	}
	p.logger.Debug("plan proposed", "steps", len(parsed.Steps))
	return parsed, nil
}
