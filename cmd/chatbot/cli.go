package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/challengegit/chatbot"
	"github.com/challengegit/chatbot/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DataDir  string
	Cache    *cache.Cache
	Asker    chatbot.Asker
	Registry *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DataDir          string        `name:"data-dir" env:"DATA_DIR" default:"data" help:"Directory of .txt corpus files"`
	Provider         string        `env:"PROVIDER" default:"gemini" enum:"gemini,openai" help:"Generative API provider (gemini, openai)"`
	Model            string        `env:"MODEL" help:"Model name (defaults to the provider's default)"`
	Company          string        `name:"company" env:"COMPANY_NAME" help:"Company named in the assistant persona"`
	GeminiAPIKey     string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	OpenAIAPIKey     string        `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIBaseURL    string        `name:"openai-base-url" env:"OPENAI_BASE_URL" help:"OpenAI-compatible API base URL"`
	MaxContextBytes  int64         `name:"max-context-bytes" env:"MAX_CONTEXT_BYTES" default:"1048576" help:"Corpus size limit in bytes (0 disables)"`
	MaxContextTokens int           `name:"max-context-tokens" env:"MAX_CONTEXT_TOKENS" default:"0" help:"Context token limit (0 disables)"`
	CorpusFailFast   bool          `name:"corpus-fail-fast" env:"CORPUS_FAIL_FAST" help:"Fail instead of continuing with an empty context when the corpus cannot be read"`
	UpstreamTimeout  time.Duration `name:"upstream-timeout" env:"UPSTREAM_TIMEOUT" default:"60s" help:"Timeout for each generative API call"`
	LogLevel         string        `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat        string        `name:"log-format" env:"LOG_FORMAT" default:"text" enum:"text,json" help:"Log format"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve the chatbot over HTTP"`
	Ask     AskCmd     `cmd:"" help:"Ask a single question from the terminal"`
	Context ContextCmd `cmd:"" help:"Print the assembled corpus context"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port      int    `env:"PORT" default:"3000" help:"HTTP port"`
	PublicDir string `name:"public-dir" env:"PUBLIC_DIR" default:"public" help:"Directory of static assets"`
	Watch     bool   `name:"watch" env:"WATCH_CORPUS" help:"Reload the context when corpus files change"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
}

// ContextCmd is the "context" subcommand.
type ContextCmd struct {
	Stats bool `help:"Print context statistics instead of the context"`
}
