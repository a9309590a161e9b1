package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/api/metrics"
	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ViewService counts detail-page views. Each hit is deduplicated against the
// TTL marker store before the content counter is incremented, so refreshes by
// the same viewer within the window count once.
type ViewService struct {
	marker   ports.ViewMarker
	jobRepo  ports.JobRepository
	newsRepo ports.NewsRepository
	logger   zerolog.Logger
}

func NewViewService(marker ports.ViewMarker, jobRepo ports.JobRepository, newsRepo ports.NewsRepository, logger zerolog.Logger) *ViewService {
	return &ViewService{marker: marker, jobRepo: jobRepo, newsRepo: newsRepo, logger: logger}
}

// Record counts one view hit. Marker-store failures degrade to counting the
// view rather than dropping it.
func (s *ViewService) Record(ctx context.Context, hit ports.ViewHit) error {
	if hit.ContentID == "" || hit.Fingerprint == "" {
		return fmt.Errorf("%w: content id and fingerprint are required", domain.ErrValidation)
	}

	seen, err := s.marker.Seen(ctx, hit.ContentType, hit.ContentID, hit.Fingerprint)
	if err != nil {
		s.logger.Warn().Err(err).Str("content_id", hit.ContentID).Msg("view dedup lookup failed, counting anyway")
	}
	if seen {
		metrics.ViewDedupTotal.WithLabelValues("hit").Inc()
		return nil
	}
	metrics.ViewDedupTotal.WithLabelValues("miss").Inc()

	switch hit.ContentType {
	case ports.ViewContentJob:
		if err := s.jobRepo.IncrementViews(ctx, hit.ContentID, 1); err != nil {
			return err
		}
	case ports.ViewContentNews:
		if err := s.newsRepo.IncrementViews(ctx, hit.ContentID, 1); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown view content type %q", domain.ErrValidation, hit.ContentType)
	}

	if err := s.marker.Mark(ctx, hit.ContentType, hit.ContentID, hit.Fingerprint); err != nil {
		s.logger.Warn().Err(err).Str("content_id", hit.ContentID).Msg("failed to mark view as seen")
	}

	metrics.ViewsRecordedTotal.WithLabelValues(hit.ContentType).Inc()
	return nil
}
