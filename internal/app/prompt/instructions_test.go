package prompt_test

import (
	"log/slog"
	"testing"

	"github.com/aniketsingh1023/Astroshala/internal/app/prompt"
	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

func TestSelectInstructionsKnownTags(t *testing.T) {
	log := slog.Default()

	cases := map[string]domain.Topic{
		"job":          domain.TopicCareer,
		"career":       domain.TopicCareer,
		"marriage":     domain.TopicRelationship,
		"relationship": domain.TopicRelationship,
		"finance":      domain.TopicFinance,
		"":             domain.TopicNone,
		" JOB ":        domain.TopicCareer,
	}

	for tag, want := range cases {
		got := prompt.SelectInstructions(log, tag)
		if got.Topic != want {
			t.Errorf("tag %q: expected topic %q, got %q", tag, want, got.Topic)
		}
		if got.System == "" {
			t.Errorf("tag %q: empty instruction set", tag)
		}
	}
}

func TestSelectInstructionsUnknownTagFallsBackToGeneral(t *testing.T) {
	got := prompt.SelectInstructions(slog.Default(), "weather")
	if got.Topic != domain.TopicNone {
		t.Fatalf("expected general topic for unknown tag, got %q", got.Topic)
	}
	general := prompt.Instructions(domain.TopicNone)
	if got.System != general.System {
		t.Fatal("unknown tag should resolve to the general instruction set")
	}
}

func TestInstructionSetsAreDistinct(t *testing.T) {
	topics := []domain.Topic{domain.TopicNone, domain.TopicCareer, domain.TopicRelationship, domain.TopicFinance}
	seen := make(map[string]domain.Topic)
	for _, topic := range topics {
		system := prompt.Instructions(topic).System
		if other, dup := seen[system]; dup {
			t.Fatalf("topics %q and %q share an instruction set", topic, other)
		}
		seen[system] = topic
	}
}
