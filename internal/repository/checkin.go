package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/pkg/supabase"
)

const checkInsTable = "feeling_checkins"

// checkInPageSize matches PostgREST's default db-max-rows. A larger page
// would be cut short by the server and end paging early.
const checkInPageSize = 1000

type checkInRepository struct {
	client   *supabase.Client
	pageSize int
}

// NewCheckInRepository creates a new Supabase-backed check-in repository
func NewCheckInRepository(client *supabase.Client) CheckInRepository {
	return &checkInRepository{client: client, pageSize: checkInPageSize}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *models.FeelingCheckIn) (*models.FeelingCheckIn, error) {
	data := map[string]interface{}{
		"subject_id":  checkIn.SubjectID,
		"category_id": checkIn.CategoryID,
		"label":       checkIn.Label,
		"occurred_at": checkIn.OccurredAt.UTC().Format(time.RFC3339Nano),
	}

	// Use client-provided ID if present (for offline-first/UUIDv7 support)
	if checkIn.ID != "" {
		data["id"] = checkIn.ID
	}

	body, err := r.client.Insert(ctx, checkInsTable, data)
	if err != nil {
		var supaErr *supabase.Error
		if errors.As(err, &supaErr) && supaErr.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("check-in %s: %w", checkIn.ID, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create check-in: %w", err)
	}

	var checkIns []models.FeelingCheckIn
	if err := json.Unmarshal(body, &checkIns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(checkIns) == 0 {
		return nil, fmt.Errorf("no check-in returned")
	}

	return &checkIns[0], nil
}

// ListByRange pages through the range with limit/offset until a short page
// comes back, so large histories are not truncated at db-max-rows.
func (r *checkInRepository) ListByRange(ctx context.Context, subjectID string, start, end time.Time) ([]models.FeelingCheckIn, error) {
	checkIns := make([]models.FeelingCheckIn, 0)
	for offset := 0; ; {
		query := map[string]string{
			"subject_id": fmt.Sprintf("eq.%s", subjectID),
			"and": fmt.Sprintf("(occurred_at.gt.%s,occurred_at.lte.%s)",
				start.UTC().Format(time.RFC3339Nano), end.UTC().Format(time.RFC3339Nano)),
			"select": "id,subject_id,category_id,label,occurred_at",
			// id breaks timestamp ties so pages never overlap
			"order":  "occurred_at.asc,id.asc",
			"limit":  strconv.Itoa(r.pageSize),
			"offset": strconv.Itoa(offset),
		}

		body, err := r.client.Query(ctx, checkInsTable, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list check-ins: %w", err)
		}

		var page []models.FeelingCheckIn
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		checkIns = append(checkIns, page...)
		if len(page) < r.pageSize {
			return checkIns, nil
		}
		offset += len(page)
	}
}
