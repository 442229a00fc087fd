package mock

import (
	"context"

	"github.com/challengegit/chatbot"
)

var _ chatbot.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader is a mock implementation of chatbot.CorpusLoader.
type CorpusLoader struct {
	LoadCorpusFn func(ctx context.Context) ([]*chatbot.Document, error)
}

func (l *CorpusLoader) LoadCorpus(ctx context.Context) ([]*chatbot.Document, error) {
	return l.LoadCorpusFn(ctx)
}

var _ chatbot.ContextCache = (*ContextCache)(nil)

// ContextCache is a mock implementation of chatbot.ContextCache.
type ContextCache struct {
	GetFn        func(ctx context.Context) (string, error)
	InvalidateFn func()
}

func (c *ContextCache) Get(ctx context.Context) (string, error) {
	return c.GetFn(ctx)
}

func (c *ContextCache) Invalidate() {
	c.InvalidateFn()
}
