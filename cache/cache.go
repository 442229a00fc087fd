// Package cache holds the formatted corpus context in process memory and
// decides when it is reloaded.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/challengegit/chatbot"
	"golang.org/x/sync/singleflight"
)

// FailurePolicy decides what happens when the corpus cannot be loaded.
type FailurePolicy int

const (
	// ContinueEmpty logs load failures and serves an empty context.
	ContinueEmpty FailurePolicy = iota

	// FailFast returns load failures to the caller.
	FailFast
)

// String returns the policy name.
func (p FailurePolicy) String() string {
	switch p {
	case ContinueEmpty:
		return "continue-empty"
	case FailFast:
		return "fail-fast"
	default:
		return "FailurePolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// Ensure Cache implements chatbot.ContextCache at compile time.
var _ chatbot.ContextCache = (*Cache)(nil)

// Cache implements chatbot.ContextCache. It loads eagerly through Load and
// reloads lazily from Get whenever the cached context is empty.
// ETOOLARGE errors are returned regardless of the failure policy.
type Cache struct {
	loader chatbot.CorpusLoader

	// Policy applied to load failures. Defaults to ContinueEmpty.
	Policy FailurePolicy

	// TokenCounter, if set, counts tokens of every loaded context.
	TokenCounter chatbot.TokenCounter

	// MaxTokens bounds the token count of the context. Requires TokenCounter.
	MaxTokens int

	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu    sync.RWMutex
	value string
	stats chatbot.ContextStats
	gen   uint64 // bumped by Invalidate

	group singleflight.Group
}

// New returns a new Cache reading from loader.
func New(loader chatbot.CorpusLoader) *Cache {
	return &Cache{
		loader: loader,
		Logger: slog.Default(),
		Now:    time.Now,
	}
}

// Load loads the corpus and replaces the cached context. Under
// ContinueEmpty a load failure leaves an empty context and is still
// returned so startup code can report it.
func (c *Cache) Load(ctx context.Context) error {
	_, err := c.reload(ctx)
	return err
}

// Get returns the cached context. If it is empty, exactly one reload is
// attempted first; concurrent callers share that reload.
func (c *Cache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	s := c.value
	c.mu.RUnlock()
	if s != "" {
		return s, nil
	}

	s, err := c.reload(ctx)
	if err != nil && (c.Policy == FailFast || chatbot.ErrorCode(err) == chatbot.ETOOLARGE) {
		return "", err
	}
	return s, nil
}

// Invalidate drops the cached context. A load already in flight is not
// cached when it completes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.value = ""
	c.stats = chatbot.ContextStats{}
	c.mu.Unlock()
}

// Stats returns statistics about the cached context.
func (c *Cache) Stats() chatbot.ContextStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// reload runs one shared load. The load ignores the caller's cancellation;
// each caller stops waiting when its own context is done.
func (c *Cache) reload(ctx context.Context) (string, error) {
	ch := c.group.DoChan("corpus", func() (any, error) {
		return c.load(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// load builds the context and stores it unless the cache was invalidated
// while the load was running.
func (c *Cache) load(ctx context.Context) (string, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	s, stats, err := c.build(ctx)

	c.mu.Lock()
	current := c.gen == gen
	if current {
		if err != nil {
			c.value = ""
			c.stats = chatbot.ContextStats{}
		} else {
			c.value = s
			c.stats = stats
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.Logger.Error("corpus load failed", "policy", c.Policy.String(), "err", err)
		return "", err
	}

	if !current {
		c.Logger.Info("corpus changed during load, result not cached", "fingerprint", stats.Fingerprint)
		return s, nil
	}

	c.Logger.Info("corpus loaded",
		"documents", stats.Documents,
		"bytes", stats.Bytes,
		"tokens", stats.Tokens,
		"fingerprint", stats.Fingerprint,
	)
	return s, nil
}

func (c *Cache) build(ctx context.Context) (string, chatbot.ContextStats, error) {
	docs, err := c.loader.LoadCorpus(ctx)
	if err != nil {
		return "", chatbot.ContextStats{}, err
	}

	s := chatbot.FormatContext(docs)
	stats := chatbot.ContextStats{
		Documents:   len(docs),
		Bytes:       len(s),
		Fingerprint: Fingerprint(s),
		LoadedAt:    c.Now().UTC(),
	}

	if c.TokenCounter != nil {
		n, err := c.TokenCounter.CountTokens(ctx, s)
		if err != nil {
			return "", chatbot.ContextStats{}, err
		}
		if c.MaxTokens > 0 && n > c.MaxTokens {
			return "", chatbot.ContextStats{}, chatbot.Errorf(chatbot.ETOOLARGE, "corpus has %d tokens, limit is %d", n, c.MaxTokens)
		}
		stats.Tokens = n
	}

	return s, stats, nil
}

// Fingerprint returns the hex xxHash of a context string.
func Fingerprint(s string) string {
	if s == "" {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64String(s), 16)
}
