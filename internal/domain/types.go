package domain

import "time"

type ConversationID string
type UserID string
type MessageID string

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Topic selects a specialized advisory instruction set. TopicNone means the
// general astrology instructions.
type Topic string

const (
	TopicNone         Topic = ""
	TopicCareer       Topic = "career"
	TopicRelationship Topic = "relationship"
	TopicFinance      Topic = "finance"
)

// BirthDetails carries the user's birth data for chart-aware prompting.
// Missing fields are rendered with placeholders, never dropped.
type BirthDetails struct {
	Date  string `json:"date,omitempty"`
	Time  string `json:"time,omitempty"`
	Place string `json:"place,omitempty"`
}

func (b BirthDetails) Empty() bool {
	return b.Date == "" && b.Time == "" && b.Place == ""
}

type Timestamp = time.Time
