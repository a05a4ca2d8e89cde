package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// InsightService builds check-in insight reports
type InsightService interface {
	// BuildInsightReport fetches the subject's last two periods of data
	// ending at now and runs the insight pipeline over it. The location of
	// now decides calendar days.
	BuildInsightReport(ctx context.Context, subjectID string, now time.Time) (*models.InsightReport, error)
}

// CheckInService defines the interface for check-in business logic
type CheckInService interface {
	CreateCheckIn(ctx context.Context, subjectID string, req *models.CreateCheckInRequest) (*models.FeelingCheckIn, error)
	ListCheckIns(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error)
}

// PhaseTagService defines the interface for phase tag business logic
type PhaseTagService interface {
	SetPhaseTag(ctx context.Context, subjectID string, day models.Date, phase string) (*models.PhaseTag, error)
	ListPhaseTags(ctx context.Context, subjectID string, start, end models.Date) ([]models.PhaseTag, error)
}
