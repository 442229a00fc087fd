package main

import (
	"fmt"

	"github.com/challengegit/chatbot"
	"github.com/challengegit/chatbot/cache"
	"github.com/challengegit/chatbot/fs"
	bothttp "github.com/challengegit/chatbot/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := deps.Cache.Load(deps.Ctx); err != nil {
		if deps.Cache.Policy == cache.FailFast || chatbot.ErrorCode(err) == chatbot.ETOOLARGE {
			fmt.Fprintf(deps.Stderr, "error: %s\n", chatbot.ErrorMessage(err))
			return err
		}
		deps.Logger.Warn("starting with empty context", "err", err)
	}

	if c.Watch {
		w, err := fs.NewWatcher(deps.DataDir, deps.Cache, fs.WithLogger(deps.Logger))
		if err != nil {
			return fmt.Errorf("failed to create corpus watcher: %w", err)
		}
		defer w.Close()

		// The directory may appear later; the cache still reloads lazily.
		if err := w.Start(deps.Ctx); err != nil {
			deps.Logger.Warn("corpus watcher disabled", "dir", deps.DataDir, "err", err)
		}
	}

	s := bothttp.NewServer()
	s.Addr = fmt.Sprintf(":%d", c.Port)
	s.PublicDir = c.PublicDir
	s.Asker = deps.Asker
	s.Stats = deps.Cache
	s.Logger = deps.Logger
	if deps.Registry != nil {
		s.Gatherer = deps.Registry
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr, err)
	}
	deps.Logger.Info("server listening", "url", s.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("server shutting down")
	return s.Close()
}
