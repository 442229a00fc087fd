package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/challengegit/chatbot"
)

// Ensure LoggingGenerator implements chatbot.Generator.
var _ chatbot.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   chatbot.Generator
	model  string
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator. model is only used
// as a log attribute.
func NewLoggingGenerator(next chatbot.Generator, model string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, model: model, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Generate(ctx context.Context, p *chatbot.Prompt) (text string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			g.logger.Error("generate",
				"model", g.model,
				"prompt_bytes", promptBytes(p),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		g.logger.Info("generate",
			"model", g.model,
			"prompt_bytes", promptBytes(p),
			"answer_bytes", len(text),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return g.next.Generate(ctx, p)
}

func promptBytes(p *chatbot.Prompt) int {
	n := 0
	for _, s := range p.Segments() {
		n += len(s)
	}
	return n
}
