package chatbot

import (
	"context"
	"time"
)

// CorpusExt is the only file extension included in the corpus.
const CorpusExt = ".txt"

// Document represents one text file of the corpus.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// CorpusLoader reads the corpus from its backing store.
type CorpusLoader interface {
	// LoadCorpus returns every corpus document in ascending name order.
	// A failure to read any document aborts the load; no partial corpus
	// is returned. Returns ETOOLARGE if the corpus exceeds a configured bound.
	LoadCorpus(ctx context.Context) ([]*Document, error)
}

// ContextCache holds the formatted corpus context in memory.
type ContextCache interface {
	// Get returns the cached context, reloading it first if it is empty.
	Get(ctx context.Context) (string, error)

	// Invalidate drops the cached context so the next Get reloads it.
	Invalidate()
}

// ContextStats describes the currently cached context.
type ContextStats struct {
	Documents   int       `json:"documents"`
	Bytes       int       `json:"bytes"`
	Tokens      int       `json:"tokens,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	LoadedAt    time.Time `json:"loadedAt,omitzero"`
}
