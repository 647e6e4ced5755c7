package advisor

import (
	"context"
)

// Provider is the interface for commentary model backends.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
