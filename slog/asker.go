package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/challengegit/chatbot"
)

// Ensure LoggingAsker implements chatbot.Asker.
var _ chatbot.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging. Failures are logged with the
// full underlying error so callers can hide detail from end users.
type LoggingAsker struct {
	next   chatbot.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next chatbot.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the outcome.
func (a *LoggingAsker) Ask(ctx context.Context, question string) (answer string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"question_chars", utf8.RuneCountInString(question),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", chatbot.ErrorCode(err), "err", err)
			if chatbot.ErrorCode(err) == chatbot.EINVALID {
				a.logger.Warn("ask", attrs...)
				return
			}
			a.logger.Error("ask", attrs...)
			return
		}
		a.logger.Info("ask", append(attrs, "answer_chars", utf8.RuneCountInString(answer))...)
	}(time.Now())
	return a.next.Ask(ctx, question)
}
