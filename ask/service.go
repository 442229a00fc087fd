// Package ask answers employee questions by combining the cached corpus
// context with a fixed persona and sending the result to a Generator.
package ask

import (
	"context"
	"strings"
	"time"

	"github.com/challengegit/chatbot"
)

// Ensure Service implements chatbot.Asker at compile time.
var _ chatbot.Asker = (*Service)(nil)

// Service implements chatbot.Asker.
type Service struct {
	Cache     chatbot.ContextCache
	Generator chatbot.Generator
	Assembler *chatbot.Assembler

	// Timeout bounds each upstream call. Zero means no local timeout.
	Timeout time.Duration
}

// NewService creates a new Service using the default persona.
func NewService(cache chatbot.ContextCache, gen chatbot.Generator) *Service {
	return &Service{
		Cache:     cache,
		Generator: gen,
		Assembler: chatbot.NewAssembler(chatbot.DefaultCompany),
	}
}

// Ask answers a question. The question is validated before the corpus or
// the generator are touched.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", chatbot.Errorf(chatbot.EINVALID, "question required")
	}

	corpus, err := s.Cache.Get(ctx)
	if err != nil {
		if chatbot.ErrorCode(err) == chatbot.ETOOLARGE {
			return "", err
		}
		return "", chatbot.WrapError(chatbot.ECORPUS, err, "corpus unavailable")
	}

	prompt := s.Assembler.Assemble(corpus, question)

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	return s.Generator.Generate(ctx, prompt)
}
