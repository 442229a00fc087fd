package chatbot

import "context"

// Asker answers employee questions from the corpus.
type Asker interface {
	// Ask answers a natural language question.
	// Returns EINVALID if the question is empty.
	Ask(ctx context.Context, question string) (string, error)
}
