package ports

import (
	"context"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

// ChatRepository defines append-only persistence for conversation
// threads, keyed by canonical conversation key. Messages are never
// edited or deleted through this layer.
type ChatRepository interface {
	Append(ctx context.Context, key string, msg domain.Message) error
	AppendBulk(ctx context.Context, key string, msgs []domain.Message) error
	// Thread returns the messages under key in insertion order.
	// A missing thread yields an empty slice, not an error.
	Thread(ctx context.Context, key string) ([]domain.Message, error)
	All(ctx context.Context) (map[string][]domain.Message, error)
	ReplaceAll(ctx context.Context, chats map[string][]domain.Message) error
	DeleteAll(ctx context.Context) error
}
