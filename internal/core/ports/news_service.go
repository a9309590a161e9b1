package ports

import (
	"context"

	"github.com/apnajourney/platform/internal/core/domain"
)

// CreateNewsInput creates an article. User-kind actors need create-news and the
// article enters pending (or draft when Draft is set). Admin-kind actors with
// manage-news may publish directly with Publish=true.
type CreateNewsInput struct {
	Actor          Actor
	Title          string
	Excerpt        string
	Content        string
	FeaturedImage  string
	Category       string
	Tags           []string
	Language       domain.NewsLanguage
	SEOTitle       string
	SEODescription string
	Draft          bool
	Publish        bool
}

// UpdateNewsInput edits an owned draft/pending/rejected article.
type UpdateNewsInput struct {
	Actor          Actor
	NewsID         string
	Title          *string
	Excerpt        *string
	Content        *string
	FeaturedImage  *string
	Tags           []string
	SEOTitle       *string
	SEODescription *string
}

// SubmitNewsInput moves an owned draft into pending review.
type SubmitNewsInput struct {
	Actor  Actor
	NewsID string
}

// ApproveNewsInput moves pending→approved (manage-news).
type ApproveNewsInput struct {
	Actor  Actor
	NewsID string
}

// RejectNewsInput moves pending→rejected (manage-news). Reason is mandatory.
type RejectNewsInput struct {
	Actor  Actor
	NewsID string
	Reason string
}

// PublishNewsInput moves approved→published (manage-news); sets published_at once.
type PublishNewsInput struct {
	Actor  Actor
	NewsID string
}

// FeatureNewsInput toggles the featured flag on an article (manage-news).
type FeatureNewsInput struct {
	Actor    Actor
	NewsID   string
	Featured bool
}

// DeleteNewsInput deletes an article: owner with delete-own-content (not after
// publishing), or manage-news.
type DeleteNewsInput struct {
	Actor  Actor
	NewsID string
}

// ListNewsInput is the public listing query (published only).
type ListNewsInput struct {
	Category string
	Language domain.NewsLanguage
	Tag      string
	Featured *bool
	Search   string
	Page     Page
}

// ListOwnNewsInput scopes a listing to the calling author, any status.
type ListOwnNewsInput struct {
	Actor  Actor
	Status domain.NewsStatus
	Page   Page
}

// NewsModerationQueueInput lists articles awaiting review (manage-news).
type NewsModerationQueueInput struct {
	Actor  Actor
	Status domain.NewsStatus // defaults to pending
	Page   Page
}

// GetNewsInput fetches one article; public callers only see published ones.
type GetNewsInput struct {
	Actor Actor
	Slug  string
}

// NewsService defines use-case operations for articles.
type NewsService interface {
	Create(ctx context.Context, in CreateNewsInput) (*domain.News, error)
	Update(ctx context.Context, in UpdateNewsInput) (*domain.News, error)
	Submit(ctx context.Context, in SubmitNewsInput) (*domain.News, error)
	Delete(ctx context.Context, in DeleteNewsInput) error
	Get(ctx context.Context, in GetNewsInput) (*domain.News, error)
	ListPublic(ctx context.Context, in ListNewsInput) ([]*domain.News, PageResult, error)
	ListOwn(ctx context.Context, in ListOwnNewsInput) ([]*domain.News, PageResult, error)
	ModerationQueue(ctx context.Context, in NewsModerationQueueInput) ([]*domain.News, PageResult, error)
	Approve(ctx context.Context, in ApproveNewsInput) (*domain.News, error)
	Reject(ctx context.Context, in RejectNewsInput) (*domain.News, error)
	Publish(ctx context.Context, in PublishNewsInput) (*domain.News, error)
	Feature(ctx context.Context, in FeatureNewsInput) (*domain.News, error)
}
