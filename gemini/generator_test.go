package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/challengegit/chatbot"
	"github.com/challengegit/chatbot/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGenerator_DefaultsModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gemini.DefaultModel, gemini.NewGenerator(nil, "").Model())
	assert.Equal(t, "gemini-2.0-flash", gemini.NewGenerator(nil, "gemini-2.0-flash").Model())
}

func TestGenerator_Generate_ReturnsErrorWithoutClient(t *testing.T) {
	t.Parallel()

	gen := gemini.NewGenerator(nil, "")

	_, err := gen.Generate(context.Background(), chatbot.AssemblePrompt("", "q"))

	require.Error(t, err)
	assert.Equal(t, chatbot.EINTERNAL, chatbot.ErrorCode(err))
}

func TestBuildContents_OneTurnWithFiveParts(t *testing.T) {
	t.Parallel()

	p := chatbot.AssemblePrompt("--- a.txtからの情報 ---\nalpha\n\n", "What is alpha?")

	contents := gemini.BuildContents(p)

	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 5)
	assert.Equal(t, p.Persona, contents[0].Parts[0].Text)
	assert.Equal(t, chatbot.ContextLabel, contents[0].Parts[1].Text)
	assert.Contains(t, contents[0].Parts[2].Text, "alpha")
	assert.Equal(t, chatbot.QuestionLabel, contents[0].Parts[3].Text)
	assert.Equal(t, `質問: "What is alpha?"`, contents[0].Parts[4].Text)
}

func TestBuildContents_SkipsEmptyContext(t *testing.T) {
	t.Parallel()

	// Story: corpus directory is empty or unreadable
	// Given an empty context under the continue-empty policy
	// When the request contents are built
	// Then no part is sent without text
	contents := gemini.BuildContents(chatbot.AssemblePrompt("", "q"))

	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 4)
	for _, part := range contents[0].Parts {
		assert.NotEmpty(t, part.Text)
	}
	assert.Equal(t, chatbot.ContextLabel, contents[0].Parts[1].Text)
	assert.Equal(t, chatbot.QuestionLabel, contents[0].Parts[2].Text)
}

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *gemini.Generator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	require.NoError(t, err)
	return gemini.NewGenerator(client, "")
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns generated text", func(t *testing.T) {
		t.Parallel()

		var path string
		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"9時です。"}]}}]}`)
		})

		answer, err := gen.Generate(context.Background(), chatbot.AssemblePrompt("CTX", "q"))

		require.NoError(t, err)
		assert.Equal(t, "9時です。", answer)
		assert.Contains(t, path, gemini.DefaultModel+":generateContent")
	})

	t.Run("sends no empty parts for empty context", func(t *testing.T) {
		t.Parallel()

		var req struct {
			Contents []struct {
				Parts []map[string]any `json:"parts"`
			} `json:"contents"`
		}
		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":"申し訳ありませんが、その件については分かりかねます。"}]}}]}`)
		})

		_, err := gen.Generate(context.Background(), chatbot.AssemblePrompt("", "q"))

		require.NoError(t, err)
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 4)
		for _, part := range req.Contents[0].Parts {
			assert.NotEmpty(t, part["text"])
		}
	})

	t.Run("wraps api error as upstream", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
		})

		_, err := gen.Generate(context.Background(), chatbot.AssemblePrompt("CTX", "q"))

		require.Error(t, err)
		assert.Equal(t, chatbot.EUPSTREAM, chatbot.ErrorCode(err))
		assert.Contains(t, err.Error(), "API key not valid")
	})

	t.Run("rejects response without text", func(t *testing.T) {
		t.Parallel()

		gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"candidates":[]}`)
		})

		_, err := gen.Generate(context.Background(), chatbot.AssemblePrompt("CTX", "q"))

		require.Error(t, err)
		assert.Equal(t, chatbot.EUPSTREAM, chatbot.ErrorCode(err))
		assert.Equal(t, "gemini returned no text", chatbot.ErrorMessage(err))
	})
}
