package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// CallService models the transient single-slot call signaling state:
// one active call at a time, plus at most one pending SOS caller.
type CallService interface {
	// Initiate starts a ringing call from caller to receiver.
	Initiate(ctx context.Context, callerID, receiverID string) (*domain.CallSession, error)
	// Accept moves the ringing call to connected and timestamps it.
	Accept(ctx context.Context) (*domain.CallSession, error)
	// End clears the active call and any pending SOS.
	End(ctx context.Context) error
	Active(ctx context.Context) (*domain.CallSession, bool)

	// InitiateSOS records a pending emergency caller awaiting a
	// responder.
	InitiateSOS(ctx context.Context, callerID string) error
	// RespondSOS claims the pending SOS and creates a connected
	// session directly, skipping the ringing state.
	RespondSOS(ctx context.Context, doctorID string) (*domain.CallSession, error)
	PendingSOS(ctx context.Context) (string, bool)
}
