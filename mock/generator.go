package mock

import (
	"context"

	"github.com/challengegit/chatbot"
)

var _ chatbot.Generator = (*Generator)(nil)

// Generator is a mock implementation of chatbot.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, p *chatbot.Prompt) (string, error)
}

func (g *Generator) Generate(ctx context.Context, p *chatbot.Prompt) (string, error) {
	return g.GenerateFn(ctx, p)
}
