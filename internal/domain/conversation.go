package domain

// Message represents one turn in a conversation timeline (user or assistant).
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Role           Role
	Content        string
	Timestamp      Timestamp
}

// Conversation is the persisted record owning a message timeline. Birth
// details stored here are the fallback when a request carries none.
type Conversation struct {
	ID           ConversationID
	UserID       UserID
	BirthDetails BirthDetails
	CreatedAt    Timestamp
	LastUpdated  Timestamp
}

// PromptMessage is a role-tagged string in the sequence sent to the model.
// Built fresh per request, never persisted.
type PromptMessage struct {
	Role    Role
	Content string
}

// Passage is one retrieved text fragment with its relevance score.
type Passage struct {
	Text       string
	Score      float64
	Filename   string
	ChunkIndex int
}

// RetrievalResult is the best-effort context for one query. When no passage
// could be retrieved, Note carries the sentinel text used in its place.
type RetrievalResult struct {
	Passages []Passage
	Note     string
}

func (r RetrievalResult) Empty() bool {
	return len(r.Passages) == 0
}

// DocumentChunk is a slice of source text stored with its embedding at
// ingestion time. Read-only to the pipeline.
type DocumentChunk struct {
	Text       string
	Embedding  []float32
	Filename   string
	ChunkIndex int
}
