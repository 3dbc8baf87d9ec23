package oracle

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultModel is the model every AddMultistage request is sent to. The
// request sets no temperature, so the API's default sampling applies.
const defaultModel = "claude-sonnet-4-5-20250929"

const defaultMaxTokens = int64(8192)

// ClaudeOracle implements Oracle against the Anthropic Messages API.
// Grounded on tsukumogami-tsuku/internal/llm/claude.go's ClaudeProvider.
type ClaudeOracle struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClaudeOracle builds an Oracle backed by the given API key.
func NewClaudeOracle(apiKey string) (*ClaudeOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("oracle: API key not set")
	}
	return &ClaudeOracle{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(defaultModel),
	}, nil
}

// AddMultistage asks Claude to rewrite recipeText into a multi-stage recipe.
func (o *ClaudeOracle) AddMultistage(ctx context.Context, recipeText string, scripts []ScriptInvocation) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     o.model,
		MaxTokens: defaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(recipeText, scripts))),
		},
	}

	resp, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("oracle: anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += tb.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("oracle: empty response")
	}

	return extractRecipe(text), nil
}
