package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/api/metrics"
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
	"github.com/apnajourney/platform/internal/pkg/slugs"
)

// NewsService implements the article lifecycle: draft, review, publish.
type NewsService struct {
	repo   ports.NewsRepository
	logger zerolog.Logger
}

func NewNewsService(repo ports.NewsRepository, logger zerolog.Logger) *NewsService {
	return &NewsService{repo: repo, logger: logger}
}

// Create writes a new article. User-kind authors need create-news; their
// articles enter pending (or draft when requested). Admin-kind authors with
// manage-news may create drafts or publish directly.
func (s *NewsService) Create(ctx context.Context, in ports.CreateNewsInput) (*domain.News, error) {
	if in.Draft && in.Publish {
		return nil, fmt.Errorf("%w: an article cannot be both draft and published", domain.ErrValidation)
	}

	var status domain.NewsStatus
	switch in.Actor.Kind {
	case domain.KindAdmin:
		if !in.Actor.Can(domain.PermManageNews) {
			return nil, domain.ErrForbidden
		}
		status = domain.NewsPublished
		if in.Draft {
			status = domain.NewsDraft
		}
	default:
		if !in.Actor.Can(domain.PermCreateNews) {
			return nil, domain.ErrForbidden
		}
		if in.Publish {
			return nil, fmt.Errorf("%w: direct publishing requires manage-news", domain.ErrForbidden)
		}
		status = domain.NewsPending
		if in.Draft {
			status = domain.NewsDraft
		}
	}

	slug, err := slugs.DeriveUnique(ctx, in.Title, s.repo.SlugExists)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article := &domain.News{
		Title:          in.Title,
		Slug:           slug,
		Excerpt:        in.Excerpt,
		Content:        in.Content,
		FeaturedImage:  in.FeaturedImage,
		Category:       in.Category,
		Tags:           in.Tags,
		Language:       in.Language,
		Author:         in.Actor.ID,
		Status:         status,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if status == domain.NewsPublished {
		article.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		s.logger.Error().Err(err).Str("title", in.Title).Msg("failed to create article")
		return nil, err
	}

	metrics.ContentCreatedTotal.WithLabelValues("news", string(status)).Inc()
	s.logger.Info().Str("news_id", created.ID).Str("slug", created.Slug).Str("author", in.Actor.ID).Msg("article created")
	return created, nil
}

// Update edits an owned article while it is still draft, pending or rejected.
// A title change re-derives the slug.
func (s *NewsService) Update(ctx context.Context, in ports.UpdateNewsInput) (*domain.News, error) {
	article, err := s.repo.FindByID(ctx, in.NewsID)
	if err != nil {
		return nil, err
	}

	if article.Author != in.Actor.ID || !in.Actor.Can(domain.PermEditOwnContent) {
		return nil, domain.ErrForbidden
	}
	if article.Status == domain.NewsApproved || article.Status == domain.NewsPublished {
		return nil, fmt.Errorf("%w: approved or published articles cannot be edited by their author", domain.ErrForbidden)
	}

	if in.Title != nil && *in.Title != article.Title {
		article.Title = *in.Title
		slug, err := slugs.DeriveUnique(ctx, article.Title, s.repo.SlugExists)
		if err != nil {
			return nil, err
		}
		article.Slug = slug
	}
	if in.Excerpt != nil {
		article.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.FeaturedImage != nil {
		article.FeaturedImage = *in.FeaturedImage
	}
	if in.Tags != nil {
		article.Tags = in.Tags
	}
	if in.SEOTitle != nil {
		article.SEOTitle = *in.SEOTitle
	}
	if in.SEODescription != nil {
		article.SEODescription = *in.SEODescription
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Submit moves an owned draft into pending review.
func (s *NewsService) Submit(ctx context.Context, in ports.SubmitNewsInput) (*domain.News, error) {
	article, err := s.repo.FindByID(ctx, in.NewsID)
	if err != nil {
		return nil, err
	}
	if article.Author != in.Actor.ID {
		return nil, domain.ErrForbidden
	}
	if !article.Status.CanTransitionTo(domain.NewsPending) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, article.Status, domain.NewsPending)
	}

	article.Status = domain.NewsPending
	article.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article: the author with delete-own-content while it is
// unpublished, or any actor holding manage-news.
func (s *NewsService) Delete(ctx context.Context, in ports.DeleteNewsInput) error {
	article, err := s.repo.FindByID(ctx, in.NewsID)
	if err != nil {
		return err
	}

	if in.Actor.Can(domain.PermManageNews) {
		return s.repo.Delete(ctx, in.NewsID)
	}
	if article.Author != in.Actor.ID || !in.Actor.Can(domain.PermDeleteOwnContent) {
		return domain.ErrForbidden
	}
	if article.Status == domain.NewsPublished {
		return fmt.Errorf("%w: published articles can only be removed by a moderator", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, in.NewsID)
}

// Get fetches one article by slug. Public callers only see published ones.
func (s *NewsService) Get(ctx context.Context, in ports.GetNewsInput) (*domain.News, error) {
	article, err := s.repo.FindBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	if article.Status == domain.NewsPublished {
		return article, nil
	}
	if in.Actor.ID != "" && (article.Author == in.Actor.ID || in.Actor.Can(domain.PermManageNews)) {
		return article, nil
	}
	return nil, domain.ErrNewsNotFound
}

// ListPublic is the anonymous listing surface: published articles only.
func (s *NewsService) ListPublic(ctx context.Context, in ports.ListNewsInput) ([]*domain.News, ports.PageResult, error) {
	page := in.Page.Normalize()
	items, total, err := s.repo.List(ctx, ports.ListNewsFilter{
		Status:   domain.NewsPublished,
		Category: in.Category,
		Language: in.Language,
		Tag:      in.Tag,
		Featured: in.Featured,
		Search:   in.Search,
		Page:     page,
	})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, ports.NewPageResult(page, total), nil
}

// ListOwn lists the caller's own articles in any status.
func (s *NewsService) ListOwn(ctx context.Context, in ports.ListOwnNewsInput) ([]*domain.News, ports.PageResult, error) {
	page := in.Page.Normalize()
	items, total, err := s.repo.List(ctx, ports.ListNewsFilter{
		Status: in.Status,
		Author: in.Actor.ID,
		Page:   page,
	})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, ports.NewPageResult(page, total), nil
}

// ModerationQueue lists articles by status for reviewers.
func (s *NewsService) ModerationQueue(ctx context.Context, in ports.NewsModerationQueueInput) ([]*domain.News, ports.PageResult, error) {
	if !in.Actor.Can(domain.PermManageNews) {
		return nil, ports.PageResult{}, domain.ErrForbidden
	}
	status := in.Status
	if status == "" {
		status = domain.NewsPending
	}
	page := in.Page.Normalize()
	items, total, err := s.repo.List(ctx, ports.ListNewsFilter{Status: status, Page: page})
	if err != nil {
		return nil, ports.PageResult{}, err
	}
	return items, ports.NewPageResult(page, total), nil
}

// Approve moves pending→approved via compare-and-swap.
func (s *NewsService) Approve(ctx context.Context, in ports.ApproveNewsInput) (*domain.News, error) {
	return s.review(ctx, in.Actor, in.NewsID, domain.NewsApproved, "")
}

// Reject moves pending→rejected; a reason is mandatory.
func (s *NewsService) Reject(ctx context.Context, in ports.RejectNewsInput) (*domain.News, error) {
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", domain.ErrValidation)
	}
	return s.review(ctx, in.Actor, in.NewsID, domain.NewsRejected, in.Reason)
}

// Publish moves an approved article (or an admin-owned draft) into published.
// published_at is set exactly once, on the first transition in.
func (s *NewsService) Publish(ctx context.Context, in ports.PublishNewsInput) (*domain.News, error) {
	if !in.Actor.Can(domain.PermManageNews) {
		return nil, domain.ErrForbidden
	}

	article, err := s.repo.FindByID(ctx, in.NewsID)
	if err != nil {
		return nil, err
	}
	if !article.Status.CanTransitionTo(domain.NewsPublished) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, article.Status, domain.NewsPublished)
	}

	updated, err := s.repo.Publish(ctx, in.NewsID, article.Status, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues("news", string(domain.NewsPublished)).Inc()
	s.logger.Info().Str("news_id", in.NewsID).Str("publisher", in.Actor.ID).Msg("article published")
	return updated, nil
}

// Feature toggles the featured flag. Any status may be featured; the public
// listing still only surfaces published articles.
func (s *NewsService) Feature(ctx context.Context, in ports.FeatureNewsInput) (*domain.News, error) {
	if !in.Actor.Can(domain.PermManageNews) {
		return nil, domain.ErrForbidden
	}

	article, err := s.repo.FindByID(ctx, in.NewsID)
	if err != nil {
		return nil, err
	}
	if article.IsFeatured == in.Featured {
		return article, nil
	}

	article.IsFeatured = in.Featured
	article.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}

	s.logger.Info().Str("news_id", in.NewsID).Bool("featured", in.Featured).Str("by", in.Actor.ID).Msg("article featured flag changed")
	return article, nil
}

func (s *NewsService) review(ctx context.Context, actor ports.Actor, newsID string, decision domain.NewsStatus, reason string) (*domain.News, error) {
	if !actor.Can(domain.PermManageNews) {
		return nil, domain.ErrForbidden
	}

	article, err := s.repo.FindByID(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if article.Author == actor.ID {
		return nil, domain.ErrForbidden
	}
	if !article.Status.CanTransitionTo(decision) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, article.Status, decision)
	}

	updated, err := s.repo.UpdateStatusIfPending(ctx, newsID, ports.NewsReviewUpdate{
		Status:     decision,
		ReviewerID: actor.ID,
		Reason:     reason,
		ReviewedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues("news", string(decision)).Inc()
	s.logger.Info().
		Str("news_id", newsID).
		Str("decision", string(decision)).
		Str("reviewer", actor.ID).
		Msg("article reviewed")
	return updated, nil
}
