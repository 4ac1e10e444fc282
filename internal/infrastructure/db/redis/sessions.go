package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL matches the window during which a consultation payment
// keeps covering repeat call attempts to the same doctor.
const sessionTTL = 15 * time.Minute

// SessionStore records paid-session markers.
// Key format: session:<patient_id>:<doctor_id>
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Mark records that the patient paid for a session with the doctor
// (expires after sessionTTL).
func (s *SessionStore) Mark(ctx context.Context, patientID, doctorID string) error {
	return s.client.Set(ctx, s.key(patientID, doctorID), "1", sessionTTL).Err()
}

// IsActive reports whether an unexpired paid session exists.
func (s *SessionStore) IsActive(ctx context.Context, patientID, doctorID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(patientID, doctorID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) key(patientID, doctorID string) string {
	return fmt.Sprintf("session:%s:%s", patientID, doctorID)
}
