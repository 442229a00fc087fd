package chatbot

import "context"

// Generator sends a prompt to an external language model.
type Generator interface {
	// Generate returns the text produced for p.
	// Returns EUPSTREAM if the call fails or the response is unusable.
	Generate(ctx context.Context, p *Prompt) (string, error)
}
