package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
)

// MaxListRange bounds raw check-in and phase tag listings
const MaxListRange = 366 * 24 * time.Hour

type checkInService struct {
	checkInRepo repository.CheckInRepository
}

// NewCheckInService creates a new check-in service
func NewCheckInService(checkInRepo repository.CheckInRepository) CheckInService {
	return &checkInService{checkInRepo: checkInRepo}
}

func (s *checkInService) CreateCheckIn(ctx context.Context, subjectID string, req *models.CreateCheckInRequest) (*models.FeelingCheckIn, error) {
	if req.CategoryID == "" {
		return nil, fmt.Errorf("%w: category_id", ErrMissingField)
	}
	if req.Label == "" {
		return nil, fmt.Errorf("%w: label", ErrMissingField)
	}
	if req.OccurredAt.IsZero() {
		return nil, fmt.Errorf("%w: occurred_at", ErrMissingField)
	}

	// Client-generated IDs must be UUIDv7 so offline clients can retry safely
	if req.ID != "" {
		if err := ValidateUUIDv7(req.ID); err != nil {
			return nil, err
		}
	}

	checkIn := &models.FeelingCheckIn{
		ID:         req.ID,
		SubjectID:  subjectID,
		CategoryID: req.CategoryID,
		Label:      req.Label,
		OccurredAt: req.OccurredAt.UTC(),
	}

	return s.checkInRepo.Create(ctx, checkIn)
}

func (s *checkInService) ListCheckIns(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if end.Sub(start) > MaxListRange {
		return nil, ErrRangeTooLong
	}

	return s.checkInRepo.ListByRange(ctx, subjectID, start, end)
}
