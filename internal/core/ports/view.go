package ports

import (
	"context"
	"time"
)

// Content kinds accepted by the view pipeline.
const (
	ViewContentJob  = "job"
	ViewContentNews = "news"
)

// ViewHit is one public detail-page fetch. Fingerprint identifies the viewer
// well enough to dedup repeats (account id when logged in, hashed IP otherwise).
type ViewHit struct {
	ContentType string
	ContentID   string
	Fingerprint string
	At          time.Time
}

// ViewService records view hits, deduplicating per viewer.
type ViewService interface {
	Record(ctx context.Context, hit ViewHit) error
}

// ViewMarker abstracts the TTL-keyed dedup store (Redis).
type ViewMarker interface {
	// Seen reports whether this viewer already counted a view for this content
	// within the marker TTL.
	Seen(ctx context.Context, contentType, contentID, fingerprint string) (bool, error)
	Mark(ctx context.Context, contentType, contentID, fingerprint string) error
}
