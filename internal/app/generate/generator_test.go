package generate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aniketsingh1023/Astroshala/internal/adapters/llm"
	"github.com/aniketsingh1023/Astroshala/internal/app/generate"
	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

var promptMessages = []domain.PromptMessage{
	{Role: domain.RoleSystem, Content: "instructions"},
	{Role: domain.RoleUser, Content: "question"},
}

func TestGenerateLiveModelPassthrough(t *testing.T) {
	model := llm.NewMockChat("the stars are favorable")
	g := generate.New(model)

	reply := g.Generate(context.Background(), promptMessages, domain.TopicNone, "question", 600, 0.7)
	assert.Equal(t, "the stars are favorable", reply)
	assert.Equal(t, promptMessages, model.LastMessages)
}

func TestGenerateModelFailureTopicFallback(t *testing.T) {
	model := &llm.MockChat{Err: errors.New("quota exceeded")}
	g := generate.New(model)

	reply := g.Generate(context.Background(), promptMessages, domain.TopicCareer, "Tell me about my career", 600, 0.7)
	assert.Contains(t, reply, "Career & Professional Insights")
	assert.Equal(t, generate.Fallback(domain.TopicCareer, ""), reply)
}

func TestGenerateNilModelUsesCannedPath(t *testing.T) {
	g := generate.New(nil)

	reply := g.Generate(context.Background(), promptMessages, domain.TopicFinance, "money", 600, 0.7)
	assert.Contains(t, reply, "Financial & Wealth Insights")
}

func TestGenerateEmptyModelTextFallsBack(t *testing.T) {
	g := generate.New(llm.NewMockChat(""))

	reply := g.Generate(context.Background(), promptMessages, domain.TopicNone, "anything at all", 600, 0.7)
	assert.NotEmpty(t, reply)
}

func TestFallbackKeywordTable(t *testing.T) {
	cases := []struct {
		message  string
		fragment string
	}{
		{"What are the nine planets in Vedic astrology?", "Rahu and Ketu"},
		{"tell me about the grahas", "nine celestial bodies"},
		{"explain the houses please", "12 houses or bhavas"},
		{"what is my zodiac sign", "sidereal zodiac with 12 signs"},
		{"how do dasha periods work", "Vimshottari Dasha"},
		{"analyze my birth chart", "Birth Chart Analysis"},
		{"what is parasara jyotish", "sage Parasara"},
		{"what is vedic astrology", "sage Parasara"},
	}

	for _, tc := range cases {
		reply := generate.Fallback(domain.TopicNone, tc.message)
		assert.Contains(t, reply, tc.fragment, "message: %s", tc.message)
	}
}

func TestFallbackNinePlanetsEnumeration(t *testing.T) {
	reply := generate.Fallback(domain.TopicNone, "What are the nine planets in Vedic astrology?")
	for _, graha := range []string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"} {
		assert.Contains(t, reply, graha)
	}
}

func TestFallbackGenericRedirect(t *testing.T) {
	reply := generate.Fallback(domain.TopicNone, "hello there")
	assert.Contains(t, reply, "Parasara Jyotish principles")
}

func TestFallbackNeverEmpty(t *testing.T) {
	for _, topic := range []domain.Topic{domain.TopicNone, domain.TopicCareer, domain.TopicRelationship, domain.TopicFinance} {
		assert.NotEmpty(t, generate.Fallback(topic, ""))
	}
}
