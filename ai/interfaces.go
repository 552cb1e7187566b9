package ai

import "context"

// TextGenerator produces a chat completion for a system/user prompt pair.
// Implementations must be safe for concurrent use.
type TextGenerator interface {
	// GenerateText sends the prompts to the model and returns the reply text.
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
