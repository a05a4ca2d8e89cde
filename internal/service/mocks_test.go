package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// mockCheckInRepository is an in-memory CheckInRepository for testing
type mockCheckInRepository struct {
	checkIns    []models.FeelingCheckIn
	listErr     error
	createCalls int
	lastStart   time.Time
	lastEnd     time.Time
}

func (m *mockCheckInRepository) Create(ctx context.Context, checkIn *models.FeelingCheckIn) (*models.FeelingCheckIn, error) {
	m.createCalls++
	created := *checkIn
	if created.ID == "" {
		created.ID = generateMockID()
	}
	m.checkIns = append(m.checkIns, created)
	return &created, nil
}

// ListByRange returns every stored record, ignoring the range, so tests can
// feed the pipeline rows a real store would have filtered
func (m *mockCheckInRepository) ListByRange(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error) {
	m.lastStart, m.lastEnd = start, end
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.checkIns, nil
}

// mockPhaseTagRepository is an in-memory PhaseTagRepository for testing
type mockPhaseTagRepository struct {
	tags     map[models.Date]models.PhaseTag
	listErr  error
	lastFrom models.Date
	lastTo   models.Date
}

func newMockPhaseTagRepository() *mockPhaseTagRepository {
	return &mockPhaseTagRepository{tags: make(map[models.Date]models.PhaseTag)}
}

func (m *mockPhaseTagRepository) Upsert(ctx context.Context, tag *models.PhaseTag) (*models.PhaseTag, error) {
	saved := *tag
	saved.UpdatedAt = time.Now()
	m.tags[saved.Date] = saved
	return &saved, nil
}

func (m *mockPhaseTagRepository) ListByRange(ctx context.Context, subjectID string, startDay, endDay models.Date) ([]models.PhaseTag, error) {
	m.lastFrom, m.lastTo = startDay, endDay
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]models.PhaseTag, 0, len(m.tags))
	for _, tag := range m.tags {
		result = append(result, tag)
	}
	return result, nil
}

var mockIDCounter int

func generateMockID() string {
	mockIDCounter++
	return "mock-" + time.Now().Format("20060102150405") + "-" + string(rune('a'+mockIDCounter%26))
}
