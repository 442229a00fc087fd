// Package slog provides logging decorators for chatbot services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/challengegit/chatbot"
)

// Ensure LoggingCorpusLoader implements chatbot.CorpusLoader.
var _ chatbot.CorpusLoader = (*LoggingCorpusLoader)(nil)

// LoggingCorpusLoader wraps a CorpusLoader with logging.
type LoggingCorpusLoader struct {
	next   chatbot.CorpusLoader
	logger *slog.Logger
}

// NewLoggingCorpusLoader creates a new LoggingCorpusLoader.
func NewLoggingCorpusLoader(next chatbot.CorpusLoader, logger *slog.Logger) *LoggingCorpusLoader {
	return &LoggingCorpusLoader{next: next, logger: logger}
}

// LoadCorpus delegates to the wrapped loader and logs the operation.
func (l *LoggingCorpusLoader) LoadCorpus(ctx context.Context) (docs []*chatbot.Document, err error) {
	defer func(begin time.Time) {
		bytes := 0
		for _, doc := range docs {
			bytes += len(doc.Text)
		}
		l.logger.Info("corpus read",
			"documents", len(docs),
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadCorpus(ctx)
}
