package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// StatsService aggregates the counters behind the admin dashboard.
type StatsService struct {
	jobRepo  ports.JobRepository
	newsRepo ports.NewsRepository
	appRepo  ports.ApplicationRepository
	inqRepo  ports.InquiryRepository
	logger   zerolog.Logger
}

func NewStatsService(
	jobRepo ports.JobRepository,
	newsRepo ports.NewsRepository,
	appRepo ports.ApplicationRepository,
	inqRepo ports.InquiryRepository,
	logger zerolog.Logger,
) *StatsService {
	return &StatsService{
		jobRepo:  jobRepo,
		newsRepo: newsRepo,
		appRepo:  appRepo,
		inqRepo:  inqRepo,
		logger:   logger,
	}
}

// Summary returns platform-wide counts (requires view-analytics). The
// application total is recomputed from the applications collection rather than
// summed over the cached per-job counters.
func (s *StatsService) Summary(ctx context.Context, in ports.StatsInput) (*ports.PlatformStats, error) {
	if !in.Actor.Can(domain.PermViewAnalytics) {
		return nil, domain.ErrForbidden
	}

	jobs, err := s.jobRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	news, err := s.newsRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.appRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	inqs, err := s.inqRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.PlatformStats{
		JobsByStatus:     jobs,
		NewsByStatus:     news,
		ApplicationTotal: apps,
		InquiryTotal:     inqs,
	}, nil
}
