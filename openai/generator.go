// Package openai implements chatbot.Generator using the OpenAI chat
// completions API.
package openai

import (
	"context"
	"strings"

	"github.com/challengegit/chatbot"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = openai.GPT4oMini

// Ensure Generator implements chatbot.Generator at compile time.
var _ chatbot.Generator = (*Generator)(nil)

// Generator implements chatbot.Generator using OpenAI chat completions.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *openai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// NewClient creates an OpenAI client. An empty baseURL keeps the default endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends the persona as the system message and the remaining
// segments as one user message.
func (g *Generator) Generate(ctx context.Context, p *chatbot.Prompt) (string, error) {
	if g.client == nil {
		return "", chatbot.Errorf(chatbot.EINTERNAL, "openai client not configured")
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: BuildMessages(p),
	})
	if err != nil {
		return "", chatbot.WrapError(chatbot.EUPSTREAM, err, "openai request failed")
	}
	if len(resp.Choices) == 0 {
		return "", chatbot.Errorf(chatbot.EUPSTREAM, "openai returned no choices")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", chatbot.Errorf(chatbot.EUPSTREAM, "openai returned no text")
	}
	return text, nil
}

// BuildMessages converts a prompt into chat messages.
func BuildMessages(p *chatbot.Prompt) []openai.ChatCompletionMessage {
	segments := p.Segments()
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: segments[0]},
		{Role: openai.ChatMessageRoleUser, Content: strings.Join(segments[1:], "\n")},
	}
}
