// Package fs provides the file-based corpus of the chatbot.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/challengegit/chatbot"
)

// Ensure CorpusLoader implements chatbot.CorpusLoader at compile time.
var _ chatbot.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader reads the .txt files of a single directory.
// Subdirectories are not descended into.
type CorpusLoader struct {
	dir      string
	maxBytes int64
}

// Option configures a CorpusLoader.
type Option func(*CorpusLoader)

// WithMaxBytes bounds the combined size of the corpus files.
// Zero or a negative value disables the bound.
func WithMaxBytes(n int64) Option {
	return func(l *CorpusLoader) {
		l.maxBytes = n
	}
}

// NewCorpusLoader creates a new CorpusLoader reading from dir.
func NewCorpusLoader(dir string, opts ...Option) *CorpusLoader {
	l := &CorpusLoader{dir: dir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the directory the loader reads from.
func (l *CorpusLoader) Dir() string {
	return l.dir
}

// LoadCorpus reads every .txt file in ascending filename order.
// Any unreadable file aborts the load.
func (l *CorpusLoader) LoadCorpus(ctx context.Context) ([]*chatbot.Document, error) {
	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, chatbot.WrapError(chatbot.EINTERNAL, err, "cannot list corpus directory %q", l.dir)
	}

	var docs []*chatbot.Document
	var total int64
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !IsCorpusFile(entry) {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, chatbot.WrapError(chatbot.EINTERNAL, err, "cannot read corpus file %q", entry.Name())
		}

		total += int64(len(b))
		if l.maxBytes > 0 && total > l.maxBytes {
			return nil, chatbot.Errorf(chatbot.ETOOLARGE, "corpus exceeds %d bytes", l.maxBytes)
		}

		docs = append(docs, &chatbot.Document{Name: entry.Name(), Text: string(b)})
	}

	return docs, nil
}

// IsCorpusFile reports whether a directory entry belongs to the corpus.
func IsCorpusFile(entry os.DirEntry) bool {
	return !entry.IsDir() && IsCorpusName(entry.Name())
}

// IsCorpusName reports whether a filename has the corpus extension.
// The match is exact and case-sensitive.
func IsCorpusName(name string) bool {
	return filepath.Ext(name) == chatbot.CorpusExt
}
