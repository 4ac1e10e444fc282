package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// ChatService manages conversation threads and generates assistant
// replies for triage conversations.
type ChatService struct {
	chats      ports.ChatRepository
	users      ports.UserRepository
	triage     ports.TriageClient
	dispatcher ports.TriageDispatcher
	logger     zerolog.Logger
}

func NewChatService(chats ports.ChatRepository, users ports.UserRepository, triage ports.TriageClient, logger zerolog.Logger) *ChatService {
	return &ChatService{chats: chats, users: users, triage: triage, logger: logger}
}

// SetDispatcher wires the reply queue. The dispatcher needs this
// service as its processor, so it is attached after construction.
func (s *ChatService) SetDispatcher(d ports.TriageDispatcher) {
	s.dispatcher = d
}

// Send appends one message to the thread shared by sender and peer.
// Messages addressed to the AI assistant additionally schedule an
// asynchronous triage reply on the same thread.
func (s *ChatService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	if _, err := s.users.FindByID(ctx, in.SenderID); err != nil {
		return nil, err
	}

	key := domain.ConversationKey(in.SenderID, in.PeerID)
	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  in.SenderID,
		Text:      in.Text,
		Timestamp: time.Now().UTC(),
	}
	if err := s.chats.Append(ctx, key, msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if in.PeerID == domain.AIAssistantID && s.dispatcher != nil {
		s.dispatcher.Enqueue(ports.TriageJob{ConversationKey: key, PatientID: in.SenderID})
	}

	return &msg, nil
}

// Thread returns the conversation between two participants, addressed
// symmetrically regardless of who asks.
func (s *ChatService) Thread(ctx context.Context, userID, peerID string) ([]domain.Message, error) {
	return s.chats.Thread(ctx, domain.ConversationKey(userID, peerID))
}

// SaveTranscript stores an SOS voice dialogue as chat messages under
// the recorder/patient thread. Lines prefixed "You:" are attributed
// to the patient, "AI:" to the assistant; prefixes are stripped.
func (s *ChatService) SaveTranscript(ctx context.Context, recorderID, patientID string, lines []string) ([]domain.Message, error) {
	key := domain.ConversationKey(recorderID, patientID)
	msgs := make([]domain.Message, 0, len(lines))
	now := time.Now().UTC()
	for _, line := range lines {
		msg := domain.Message{
			ID:        uuid.NewString(),
			SenderID:  patientID,
			Timestamp: now,
		}
		switch {
		case strings.HasPrefix(line, "AI:"):
			msg.SenderID = domain.AIAssistantID
			msg.IsAI = true
			msg.Text = strings.TrimSpace(strings.TrimPrefix(line, "AI:"))
		case strings.HasPrefix(line, "You:"):
			msg.Text = strings.TrimSpace(strings.TrimPrefix(line, "You:"))
		default:
			msg.Text = strings.TrimSpace(line)
		}
		msgs = append(msgs, msg)
	}

	if err := s.chats.AppendBulk(ctx, key, msgs); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}

	s.logger.Info().
		Str("patient_id", patientID).
		Int("lines", len(msgs)).
		Msg("SOS transcript saved")
	return msgs, nil
}

// Process generates the assistant's reply for a queued triage job and
// appends it to the thread. Called by the dispatcher workers.
func (s *ChatService) Process(ctx context.Context, job ports.TriageJob) error {
	thread, err := s.chats.Thread(ctx, job.ConversationKey)
	if err != nil {
		return fmt.Errorf("triage reply: load thread: %w", err)
	}

	history := make([]ports.TriageMessage, 0, len(thread))
	for _, m := range thread {
		role := "user"
		if m.SenderID == domain.AIAssistantID {
			role = "assistant"
		}
		history = append(history, ports.TriageMessage{Role: role, Text: m.Text})
	}

	reply, err := s.triage.Reply(ctx, history)
	if err != nil {
		return fmt.Errorf("triage reply: %w", err)
	}

	msg := domain.Message{
		ID:        uuid.NewString(),
		SenderID:  domain.AIAssistantID,
		Text:      reply,
		Timestamp: time.Now().UTC(),
		IsAI:      true,
	}
	if err := s.chats.Append(ctx, job.ConversationKey, msg); err != nil {
		return fmt.Errorf("triage reply: store: %w", err)
	}

	s.logger.Debug().Str("conversation", job.ConversationKey).Msg("assistant reply stored")
	return nil
}
