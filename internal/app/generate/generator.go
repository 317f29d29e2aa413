package generate

import (
	"context"
	"time"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
	"github.com/aniketsingh1023/Astroshala/internal/observability"
)

const generateTimeout = 30 * time.Second

// Generator produces the final reply text. With a live model it forwards the
// assembled prompt; without one, or on any model failure, it returns the
// deterministic canned fallback so the caller always gets a non-empty string.
type Generator struct {
	model domain.ChatModel // nil means canned-only mode
}

// New creates a Generator. Passing a nil model selects canned-only mode,
// used when no model backend is configured.
func New(model domain.ChatModel) *Generator {
	return &Generator{model: model}
}

// Generate never returns an error and never returns an empty string.
func (g *Generator) Generate(
	ctx context.Context,
	messages []domain.PromptMessage,
	topic domain.Topic,
	userMessage string,
	maxTokens int,
	temperature float32,
) string {
	log := observability.LoggerFromContext(ctx).With("topic", string(topic))

	if g.model == nil {
		log.Info("no model configured, returning canned response")
		return Fallback(topic, userMessage)
	}

	gctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	text, err := g.model.Complete(gctx, messages, maxTokens, temperature)
	if err != nil {
		log.Error("model call failed, returning canned response", "error", err)
		return Fallback(topic, userMessage)
	}
	if text == "" {
		log.Warn("model returned empty text, returning canned response")
		return Fallback(topic, userMessage)
	}
	return text
}
