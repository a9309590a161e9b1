package ports

import (
	"context"
	"time"

	"github.com/apnajourney/platform/internal/core/domain"
)

// ListNewsFilter carries all query parameters for listing articles.
type ListNewsFilter struct {
	Status   domain.NewsStatus // optional
	Category string
	Language domain.NewsLanguage
	Tag      string
	Featured *bool
	Search   string // text search over title/excerpt/content/tags
	Author   string // scope to an author
	Page     Page
}

// NewsReviewUpdate records a moderation decision on a pending article.
type NewsReviewUpdate struct {
	Status     domain.NewsStatus
	ReviewerID string
	Reason     string
	ReviewedAt time.Time
}

// NewsRepository persists news articles.
type NewsRepository interface {
	Create(ctx context.Context, n *domain.News) (*domain.News, error)
	FindByID(ctx context.Context, id string) (*domain.News, error)
	FindBySlug(ctx context.Context, slug string) (*domain.News, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, n *domain.News) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListNewsFilter) ([]*domain.News, int64, error)

	// UpdateStatusIfPending is the moderation compare-and-swap (see JobRepository).
	UpdateStatusIfPending(ctx context.Context, id string, review NewsReviewUpdate) (*domain.News, error)

	// Publish moves the article into published and sets published_at only when
	// it is currently unset. expectFrom guards the transition (CAS on status).
	Publish(ctx context.Context, id string, expectFrom domain.NewsStatus, at time.Time) (*domain.News, error)

	IncrementViews(ctx context.Context, id string, delta int64) error
	CountByStatus(ctx context.Context) (map[domain.NewsStatus]int64, error)
}
