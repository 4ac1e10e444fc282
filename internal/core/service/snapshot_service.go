package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// SnapshotService serializes and restores the full Users+Chats state.
type SnapshotService struct {
	users  ports.UserRepository
	chats  ports.ChatRepository
	logger zerolog.Logger
}

func NewSnapshotService(users ports.UserRepository, chats ports.ChatRepository, logger zerolog.Logger) *SnapshotService {
	return &SnapshotService{users: users, chats: chats, logger: logger}
}

// Export captures both stores into a versioned snapshot.
func (s *SnapshotService) Export(ctx context.Context) (*domain.Snapshot, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: users: %w", err)
	}
	chats, err := s.chats.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: chats: %w", err)
	}

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, *u)
	}

	return &domain.Snapshot{
		Users:     out,
		Chats:     chats,
		Timestamp: time.Now().UTC(),
		Version:   domain.SnapshotVersion,
	}, nil
}

// Import overwrites both stores from the snapshot. A snapshot missing
// either collection is rejected before any write, leaving the stores
// untouched.
func (s *SnapshotService) Import(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil || snap.Users == nil || snap.Chats == nil {
		return domain.ErrInvalidSnapshot
	}

	if err := s.users.ReplaceAll(ctx, snap.Users); err != nil {
		return fmt.Errorf("import snapshot: users: %w", err)
	}
	if err := s.chats.ReplaceAll(ctx, snap.Chats); err != nil {
		return fmt.Errorf("import snapshot: chats: %w", err)
	}

	s.logger.Info().
		Int("users", len(snap.Users)).
		Int("threads", len(snap.Chats)).
		Str("version", snap.Version).
		Msg("snapshot imported")
	return nil
}

// Reset deletes both stores outright. The next Seed reproduces the
// default roster.
func (s *SnapshotService) Reset(ctx context.Context) error {
	if err := s.users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset: users: %w", err)
	}
	if err := s.chats.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset: chats: %w", err)
	}
	s.logger.Warn().Msg("store wiped")
	return nil
}
