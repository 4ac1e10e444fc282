package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// CallService holds the transient signaling state: a single active
// call slot plus at most one pending SOS caller. Sessions are never
// persisted; a restart drops them, which matches their lifecycle.
type CallService struct {
	mu            sync.Mutex
	active        *domain.CallSession
	pendingSOSFor string
	logger        zerolog.Logger
}

func NewCallService(logger zerolog.Logger) *CallService {
	return &CallService{logger: logger}
}

// Initiate starts a ringing call. Only one call is modeled at a time.
func (s *CallService) Initiate(_ context.Context, callerID, receiverID string) (*domain.CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, domain.ErrCallInProgress
	}
	if !domain.CallIdle.CanTransitionTo(domain.CallRinging) {
		return nil, domain.ErrInvalidCallTransition
	}

	s.active = &domain.CallSession{
		CallerID:   callerID,
		ReceiverID: receiverID,
		Status:     domain.CallRinging,
	}
	s.logger.Info().Str("caller_id", callerID).Str("receiver_id", receiverID).Msg("call ringing")

	session := *s.active
	return &session, nil
}

// Accept connects the ringing call and timestamps it.
func (s *CallService) Accept(_ context.Context) (*domain.CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, domain.ErrNoActiveCall
	}
	if !s.active.Status.CanTransitionTo(domain.CallConnected) {
		return nil, domain.ErrInvalidCallTransition
	}

	now := time.Now().UTC()
	s.active.Status = domain.CallConnected
	s.active.StartTime = &now
	s.logger.Info().Str("caller_id", s.active.CallerID).Msg("call connected")

	session := *s.active
	return &session, nil
}

// End clears the active call and any pending SOS. Ending an already
// idle line is a no-op, mirroring decline and hang-up alike.
func (s *CallService) End(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.logger.Info().Str("caller_id", s.active.CallerID).Msg("call ended")
	}
	s.active = nil
	s.pendingSOSFor = ""
	return nil
}

// Active returns a copy of the current session, if any.
func (s *CallService) Active(_ context.Context) (*domain.CallSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, false
	}
	session := *s.active
	return &session, true
}

// InitiateSOS records a pending emergency caller awaiting a responder.
func (s *CallService) InitiateSOS(_ context.Context, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return domain.ErrCallInProgress
	}
	s.pendingSOSFor = callerID
	s.logger.Warn().Str("caller_id", callerID).Msg("SOS raised")
	return nil
}

// RespondSOS claims the pending SOS: a connected session is created
// directly, skipping the ringing state.
func (s *CallService) RespondSOS(_ context.Context, doctorID string) (*domain.CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingSOSFor == "" {
		return nil, domain.ErrNoPendingSOS
	}
	if s.active != nil {
		return nil, domain.ErrCallInProgress
	}

	now := time.Now().UTC()
	s.active = &domain.CallSession{
		CallerID:   s.pendingSOSFor,
		ReceiverID: doctorID,
		Status:     domain.CallConnected,
		StartTime:  &now,
		IsSOS:      true,
	}
	s.pendingSOSFor = ""
	s.logger.Warn().Str("caller_id", s.active.CallerID).Str("doctor_id", doctorID).Msg("SOS claimed")

	session := *s.active
	return &session, nil
}

// PendingSOS reports the caller awaiting an SOS responder, if any.
func (s *CallService) PendingSOS(_ context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingSOSFor, s.pendingSOSFor != ""
}
