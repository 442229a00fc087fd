package chatbot

import "context"

// TokenCounter counts model tokens in text. It is used to bound the size
// of the context before it is sent upstream.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
