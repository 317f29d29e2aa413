package llm

import (
	"context"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// MockChat is a scriptable domain.ChatModel for tests: it records the last
// prompt it saw and returns a fixed reply or error.
type MockChat struct {
	Reply string
	Err   error

	LastMessages []domain.PromptMessage
}

func NewMockChat(reply string) *MockChat {
	return &MockChat{Reply: reply}
}

func (m *MockChat) Complete(
	_ context.Context,
	messages []domain.PromptMessage,
	_ int,
	_ float32,
) (string, error) {
	m.LastMessages = messages
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
