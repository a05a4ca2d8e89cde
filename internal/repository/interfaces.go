package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// ErrDuplicate is returned by Create when a record with the same id exists
var ErrDuplicate = errors.New("record already exists")

// CheckInRepository defines the interface for feeling check-in data access
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *models.FeelingCheckIn) (*models.FeelingCheckIn, error)
	// ListByRange returns the subject's check-ins with start < occurred_at <= end
	ListByRange(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error)
}

// PhaseTagRepository defines the interface for phase tag data access
type PhaseTagRepository interface {
	// Upsert writes the tag, replacing any existing tag for the same subject and date
	Upsert(ctx context.Context, tag *models.PhaseTag) (*models.PhaseTag, error)
	// ListByRange returns the subject's tags with startDay <= date <= endDay
	ListByRange(ctx context.Context, subjectID string, startDay, endDay models.Date) ([]models.PhaseTag, error)
}
