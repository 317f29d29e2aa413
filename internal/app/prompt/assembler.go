package prompt

import (
	"fmt"
	"strings"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// historyWindow is how many trailing history entries are included in the
// prompt. Older entries are dropped, not summarized.
const historyWindow = 5

// BuildInput carries everything the assembler needs. No field is read twice
// and nothing here touches the network or storage.
type BuildInput struct {
	Instructions InstructionSet
	BirthDetails domain.BirthDetails
	Retrieved    domain.RetrievalResult
	History      []*domain.Message
	UserMessage  string
}

// Build assembles the ordered message sequence for the model. The ordering is
// fixed: instructions, birth-details summary (when present), retrieved
// context, the last historyWindow history entries oldest first, then the
// user message.
func Build(in BuildInput) []domain.PromptMessage {
	messages := []domain.PromptMessage{
		{Role: domain.RoleSystem, Content: in.Instructions.System},
	}

	if !in.BirthDetails.Empty() {
		messages = append(messages, domain.PromptMessage{
			Role:    domain.RoleSystem,
			Content: formatBirthDetails(in.BirthDetails),
		})
	}

	messages = append(messages, domain.PromptMessage{
		Role:    domain.RoleSystem,
		Content: formatRetrievedContext(in.Retrieved),
	})

	history := in.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, m := range history {
		messages = append(messages, domain.PromptMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	messages = append(messages, domain.PromptMessage{
		Role:    domain.RoleUser,
		Content: in.UserMessage,
	})

	return messages
}

// formatBirthDetails renders every field, using placeholders for missing
// ones so the model sees the gap instead of silence.
func formatBirthDetails(b domain.BirthDetails) string {
	return fmt.Sprintf(
		"The user has provided these birth details:\nDate: %s\nTime: %s\nPlace: %s\n\nUse these details in your analysis when relevant.",
		orPlaceholder(b.Date),
		orPlaceholder(b.Time),
		orPlaceholder(b.Place),
	)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func formatRetrievedContext(r domain.RetrievalResult) string {
	context := r.Note
	if !r.Empty() {
		parts := make([]string, len(r.Passages))
		for i, p := range r.Passages {
			parts[i] = p.Text
		}
		context = strings.Join(parts, " ")
	}
	return "Use the following context from Vedic astrology texts to inform your answer: " + context
}
