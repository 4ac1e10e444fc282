package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// presenceTTL is how long a heartbeat keeps a user marked online.
const presenceTTL = 90 * time.Second

// PresenceStore tracks online presence via TTL heartbeat markers.
// Key format: presence:<user_id>
type PresenceStore struct {
	client *redis.Client
}

func NewPresenceStore(client *redis.Client) *PresenceStore {
	return &PresenceStore{client: client}
}

// Heartbeat refreshes the user's presence marker.
func (p *PresenceStore) Heartbeat(ctx context.Context, userID string) error {
	return p.client.Set(ctx, p.key(userID), "1", presenceTTL).Err()
}

// IsOnline reports whether the user has an unexpired heartbeat.
func (p *PresenceStore) IsOnline(ctx context.Context, userID string) (bool, error) {
	n, err := p.client.Exists(ctx, p.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("presence check: %w", err)
	}
	return n > 0, nil
}

func (p *PresenceStore) key(userID string) string {
	return "presence:" + userID
}
