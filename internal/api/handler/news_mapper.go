package handler

import (
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// --- Request → Service input ---

func toCreateNewsInput(req createNewsRequest, actor ports.Actor) ports.CreateNewsInput {
	return ports.CreateNewsInput{
		Actor:          actor,
		Title:          req.Title,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		FeaturedImage:  req.FeaturedImage,
		Category:       req.Category,
		Tags:           req.Tags,
		Language:       domain.NewsLanguage(req.Language),
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Draft:          req.Draft,
		Publish:        req.Publish,
	}
}

func toUpdateNewsInput(req updateNewsRequest, actor ports.Actor, newsID string) ports.UpdateNewsInput {
	return ports.UpdateNewsInput{
		Actor:          actor,
		NewsID:         newsID,
		Title:          req.Title,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		FeaturedImage:  req.FeaturedImage,
		Tags:           req.Tags,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
}

// --- Service result → HTTP response ---

func toNewsResponse(n *domain.News) newsResponse {
	return newsResponse{
		ID:              n.ID,
		Title:           n.Title,
		Slug:            n.Slug,
		Excerpt:         n.Excerpt,
		Content:         n.Content,
		FeaturedImage:   n.FeaturedImage,
		Category:        n.Category,
		Tags:            n.Tags,
		Language:        string(n.Language),
		Author:          n.Author,
		Status:          string(n.Status),
		IsFeatured:      n.IsFeatured,
		Views:           n.Views,
		PublishedAt:     n.PublishedAt,
		RejectionReason: n.RejectionReason,
		ReviewedBy:      n.ReviewedBy,
		ReviewedAt:      n.ReviewedAt,
		SEOTitle:        n.SEOTitle,
		SEODescription:  n.SEODescription,
		CreatedAt:       n.CreatedAt.UTC(),
		UpdatedAt:       n.UpdatedAt.UTC(),
	}
}

func toNewsSummary(n *domain.News) newsSummaryResponse {
	return newsSummaryResponse{
		ID:            n.ID,
		Title:         n.Title,
		Slug:          n.Slug,
		Excerpt:       n.Excerpt,
		FeaturedImage: n.FeaturedImage,
		Category:      n.Category,
		Tags:          n.Tags,
		Language:      string(n.Language),
		Status:        string(n.Status),
		IsFeatured:    n.IsFeatured,
		Views:         n.Views,
		PublishedAt:   n.PublishedAt,
		CreatedAt:     n.CreatedAt.UTC(),
	}
}

func toListNewsResponse(articles []*domain.News, page ports.PageResult) listNewsResponse {
	items := make([]newsSummaryResponse, len(articles))
	for i, n := range articles {
		items[i] = toNewsSummary(n)
	}
	return listNewsResponse{Data: items, Pagination: toPagination(page)}
}
