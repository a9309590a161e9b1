package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const markerTTL = 6 * time.Hour

// ViewMarker implements view deduplication backed by Redis.
// Key format: view:<content_type>:<content_id>:<fingerprint>
type ViewMarker struct {
	client *redis.Client
}

// NewViewMarker creates a ViewMarker wrapping the given Redis client.
func NewViewMarker(client *redis.Client) *ViewMarker {
	return &ViewMarker{client: client}
}

// Seen reports whether this viewer already counted a view for this content
// within the marker TTL.
func (v *ViewMarker) Seen(ctx context.Context, contentType, contentID, fingerprint string) (bool, error) {
	n, err := v.client.Exists(ctx, v.key(contentType, contentID, fingerprint)).Result()
	if err != nil {
		return false, fmt.Errorf("view marker check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this viewer has been counted (expires after markerTTL).
func (v *ViewMarker) Mark(ctx context.Context, contentType, contentID, fingerprint string) error {
	return v.client.Set(ctx, v.key(contentType, contentID, fingerprint), "1", markerTTL).Err()
}

func (v *ViewMarker) key(contentType, contentID, fingerprint string) string {
	return fmt.Sprintf("view:%s:%s:%s", contentType, contentID, fingerprint)
}
