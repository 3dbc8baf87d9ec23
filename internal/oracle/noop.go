package oracle

import (
	"context"
	"fmt"
)

// NoOp is an Oracle whose calls always fail. Unlike a nil Oracle (which
// tells the rule engine no oracle is configured at all, skipping the
// multistage rule outright), NoOp models an oracle that is configured but
// consistently erroring — useful for exercising the rule's error-handling
// path in tests without a real API failure.
type NoOp struct{}

func (NoOp) AddMultistage(ctx context.Context, recipeText string, scripts []ScriptInvocation) (string, error) {
	return "", fmt.Errorf("oracle: not configured")
}

// Static is a test double that returns a fixed response (or error)
// regardless of input, recording the last call it received.
type Static struct {
	Response string
	Err      error

	LastRecipeText string
	LastScripts    []ScriptInvocation
}

func (s *Static) AddMultistage(ctx context.Context, recipeText string, scripts []ScriptInvocation) (string, error) {
	s.LastRecipeText = recipeText
	s.LastScripts = scripts
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
