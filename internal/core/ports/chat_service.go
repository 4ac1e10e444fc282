package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// SendMessageInput carries one outgoing chat message. PeerID may be
// domain.AIAssistantID to address the triage assistant.
type SendMessageInput struct {
	SenderID string
	PeerID   string
	Text     string
}

// ChatService manages conversation threads and the assistant reply
// pipeline.
type ChatService interface {
	// Send appends the message to the thread shared by sender and peer.
	// When the peer is the AI assistant, a triage reply is scheduled
	// asynchronously on the same thread.
	Send(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	Thread(ctx context.Context, userID, peerID string) ([]domain.Message, error)
	// SaveTranscript stores an SOS voice dialogue as chat messages.
	// Lines prefixed "You:" are attributed to the patient, "AI:" to the
	// assistant; prefixes are stripped from the stored text.
	SaveTranscript(ctx context.Context, recorderID, patientID string, lines []string) ([]domain.Message, error)
}

// TriageJob is one queued assistant reply request.
type TriageJob struct {
	ConversationKey string
	PatientID       string
}

// TriageDispatcher enqueues assistant reply jobs for asynchronous
// processing, sharded so replies within one thread stay ordered.
type TriageDispatcher interface {
	Enqueue(job TriageJob)
}
