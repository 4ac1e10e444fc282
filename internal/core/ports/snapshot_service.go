package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// SnapshotService serializes and restores the full Users+Chats state.
type SnapshotService interface {
	Export(ctx context.Context) (*domain.Snapshot, error)
	// Import overwrites both stores from the snapshot. A snapshot
	// missing either collection is rejected with
	// domain.ErrInvalidSnapshot and leaves the stores untouched.
	Import(ctx context.Context, snap *domain.Snapshot) error
	// Reset deletes both stores outright. The next Seed reproduces the
	// default roster.
	Reset(ctx context.Context) error
}
