package service

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/internal/repository"
)

// maxListDays mirrors MaxListRange for day-keyed listings
const maxListDays = 366

type phaseTagService struct {
	phaseTagRepo repository.PhaseTagRepository
}

// NewPhaseTagService creates a new phase tag service
func NewPhaseTagService(phaseTagRepo repository.PhaseTagRepository) PhaseTagService {
	return &phaseTagService{phaseTagRepo: phaseTagRepo}
}

func (s *phaseTagService) SetPhaseTag(ctx context.Context, subjectID string, day models.Date, phase string) (*models.PhaseTag, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: date", ErrMissingField)
	}
	if !models.IsKnownPhase(phase) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}

	return s.phaseTagRepo.Upsert(ctx, &models.PhaseTag{
		SubjectID: subjectID,
		Date:      day,
		Phase:     phase,
	})
}

func (s *phaseTagService) ListPhaseTags(ctx context.Context, subjectID string, start, end models.Date) ([]models.PhaseTag, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	if start.AddDays(maxListDays).Before(end) {
		return nil, ErrRangeTooLong
	}

	return s.phaseTagRepo.ListByRange(ctx, subjectID, start, end)
}
