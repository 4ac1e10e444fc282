package domain

import (
	"strings"
	"time"
)

// AIAssistantID is the sentinel sender id used for assistant messages.
const AIAssistantID = "AI_ASSISTANT"

// Message is a single chat entry inside a conversation thread.
type Message struct {
	ID        string    `json:"id" bson:"id"`
	SenderID  string    `json:"sender_id" bson:"sender_id"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	IsAI      bool      `json:"is_ai,omitempty" bson:"is_ai,omitempty"`
}

// ConversationKey returns the canonical identifier for the thread
// between two participants: ids sorted lexicographically and joined
// with ':'. The key is symmetric, so both directions address the same
// thread.
func ConversationKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}
