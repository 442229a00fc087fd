package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/challengegit/chatbot"
	"github.com/challengegit/chatbot/ask"
	"github.com/challengegit/chatbot/cache"
	"github.com/challengegit/chatbot/fs"
	"github.com/challengegit/chatbot/gemini"
	"github.com/challengegit/chatbot/openai"
	botprom "github.com/challengegit/chatbot/prometheus"
	botslog "github.com/challengegit/chatbot/slog"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Generator overrides the provider selected by flags. Used for
	// end-to-end testing.
	Generator chatbot.Generator
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("chatbot"),
		kong.Description("Answers employee questions from the internal knowledge base."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "help", "--help", "-h":
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	deps.Logger = newLogger(stderr, cli.LogLevel, cli.LogFormat)

	c, err := newCache(cli, deps.Logger)
	if err != nil {
		return err
	}
	deps.Cache = c
	deps.DataDir = cli.DataDir

	if cmd == "serve" || cmd == "ask" {
		gen, err := m.newGenerator(ctx, cli, deps.Logger, stderr)
		if err != nil {
			return err
		}

		svc := ask.NewService(c, gen)
		svc.Assembler = chatbot.NewAssembler(cli.Company)
		svc.Timeout = cli.UpstreamTimeout
		deps.Asker = botslog.NewLoggingAsker(svc, deps.Logger)
	}

	if cmd == "serve" {
		deps.Registry = prometheus.NewRegistry()
		deps.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		asker, err := botprom.NewAsker(deps.Asker, deps.Registry)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		deps.Asker = asker
	}

	return kongCtx.Run(deps)
}

// newCache wires the corpus loader and the context cache from flags.
func newCache(cli *CLI, logger *slog.Logger) (*cache.Cache, error) {
	loader := botslog.NewLoggingCorpusLoader(
		fs.NewCorpusLoader(cli.DataDir, fs.WithMaxBytes(cli.MaxContextBytes)),
		logger,
	)

	c := cache.New(loader)
	c.Logger = logger
	if cli.CorpusFailFast {
		c.Policy = cache.FailFast
	}

	if cli.MaxContextTokens > 0 {
		tc, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		c.TokenCounter = tc
		c.MaxTokens = cli.MaxContextTokens
	}

	return c, nil
}

// newGenerator returns the generator for the configured provider, wrapped
// with logging.
func (m *Main) newGenerator(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (chatbot.Generator, error) {
	if m.Generator != nil {
		return botslog.NewLoggingGenerator(m.Generator, cli.Model, logger), nil
	}

	switch cli.Provider {
	case "openai":
		if cli.OpenAIAPIKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Add it to .env or the environment.")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		gen := openai.NewGenerator(openai.NewClient(cli.OpenAIAPIKey, cli.OpenAIBaseURL), cli.Model)
		return botslog.NewLoggingGenerator(gen, gen.Model(), logger), nil

	default:
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := gemini.NewClient(ctx, cli.GeminiAPIKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		gen := gemini.NewGenerator(client, cli.Model)
		return botslog.NewLoggingGenerator(gen, gen.Model(), logger), nil
	}
}

// newLogger builds the program logger writing to w.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// tokenizerModel is used for token counting regardless of provider.
const tokenizerModel = gemini.DefaultModel
