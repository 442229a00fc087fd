// Package gemini implements chatbot.Generator and chatbot.TokenCounter
// on top of the Google Gemini API.
package gemini

import (
	"context"

	"github.com/challengegit/chatbot"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements chatbot.Generator at compile time.
var _ chatbot.Generator = (*Generator)(nil)

// Generator implements chatbot.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// NewClient creates a Gemini API client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Model returns the model name requests are sent to.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends every prompt segment as a separate part of a single
// user turn and returns the generated text.
func (g *Generator) Generate(ctx context.Context, p *chatbot.Prompt) (string, error) {
	if g.client == nil {
		return "", chatbot.Errorf(chatbot.EINTERNAL, "gemini client not configured")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, BuildContents(p), nil)
	if err != nil {
		return "", chatbot.WrapError(chatbot.EUPSTREAM, err, "gemini request failed")
	}
	if result == nil {
		return "", chatbot.Errorf(chatbot.EUPSTREAM, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", chatbot.Errorf(chatbot.EUPSTREAM, "gemini returned no text")
	}
	return text, nil
}

// BuildContents converts a prompt into Gemini request contents. Empty
// segments are skipped since the API rejects parts without data; an empty
// corpus therefore yields a request without a context part.
func BuildContents(p *chatbot.Prompt) []*genai.Content {
	segments := p.Segments()
	parts := make([]*genai.Part, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		parts = append(parts, &genai.Part{Text: s})
	}
	return []*genai.Content{{Parts: parts}}
}
