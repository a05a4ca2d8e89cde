package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/analytics"
	"github.com/JonnyWalker81/wellness/backend/internal/logger"
	"github.com/JonnyWalker81/wellness/backend/internal/metrics"
	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
)

type insightService struct {
	checkInRepo  repository.CheckInRepository
	phaseTagRepo repository.PhaseTagRepository
	metrics      *metrics.Metrics
}

// NewInsightService creates a new insight service. m may be nil.
func NewInsightService(
	checkInRepo repository.CheckInRepository,
	phaseTagRepo repository.PhaseTagRepository,
	m *metrics.Metrics,
) InsightService {
	return &insightService{
		checkInRepo:  checkInRepo,
		phaseTagRepo: phaseTagRepo,
		metrics:      m,
	}
}

func (s *insightService) BuildInsightReport(ctx context.Context, subjectID string, now time.Time) (*models.InsightReport, error) {
	start := time.Now()
	log := logger.Ctx(logger.WithSubjectID(ctx, subjectID))

	report, err := s.buildReport(ctx, log, subjectID, now)
	if err != nil {
		s.metrics.RecordReport(metrics.OutcomeError, time.Since(start))
		return nil, err
	}

	s.metrics.RecordReport(metrics.OutcomeOK, time.Since(start))
	log.Debug("insight report built",
		logger.Int("top_feelings", len(report.TopFeelings)),
		logger.Int("phases", len(report.PhaseCorrelations)),
		logger.Int("trends", len(report.Trends)),
		logger.Duration("duration", time.Since(start)),
	)

	return report, nil
}

func (s *insightService) buildReport(ctx context.Context, log logger.Logger, subjectID string, now time.Time) (*models.InsightReport, error) {
	windows := analytics.NewWindows(now)
	fetch := windows.FetchRange()

	// One fetch per stream; the pipeline partitions in memory
	checkIns, err := s.checkInRepo.ListByRange(ctx, subjectID, fetch.Start, fetch.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}

	firstDay, lastDay := windows.CurrentDays()
	tags, err := s.phaseTagRepo.ListByRange(ctx, subjectID, firstDay, lastDay)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch phase tags: %w", err)
	}

	checkIns, tags, skipped := analytics.Sanitize(subjectID, checkIns, tags)
	if skipped.Total() > 0 {
		log.Warn("skipped malformed records",
			logger.Int("checkins_skipped", skipped.CheckIns),
			logger.Int("phase_tags_skipped", skipped.PhaseTags),
		)
		s.metrics.RecordSkipped(skipped.CheckIns)
	}

	report := analytics.BuildReport(now, checkIns, tags)
	return &report, nil
}
