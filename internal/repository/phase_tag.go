package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
	"github.com/JonnyWalker81/wellness/backend/pkg/supabase"
)

const phaseTagsTable = "phase_tags"

type phaseTagRepository struct {
	client *supabase.Client
}

// NewPhaseTagRepository creates a new Supabase-backed phase tag repository
func NewPhaseTagRepository(client *supabase.Client) PhaseTagRepository {
	return &phaseTagRepository{client: client}
}

func (r *phaseTagRepository) Upsert(ctx context.Context, tag *models.PhaseTag) (*models.PhaseTag, error) {
	data := map[string]interface{}{
		"subject_id": tag.SubjectID,
		"date":       tag.Date.String(),
		"phase":      tag.Phase,
	}

	body, err := r.client.Upsert(ctx, phaseTagsTable, data, "subject_id,date")
	if err != nil {
		return nil, fmt.Errorf("failed to upsert phase tag: %w", err)
	}

	var tags []models.PhaseTag
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("no phase tag returned")
	}

	return &tags[0], nil
}

func (r *phaseTagRepository) ListByRange(ctx context.Context, subjectID string, startDay, endDay models.Date) ([]models.PhaseTag, error) {
	query := map[string]string{
		"subject_id": fmt.Sprintf("eq.%s", subjectID),
		"and":        fmt.Sprintf("(date.gte.%s,date.lte.%s)", startDay, endDay),
		"select":     "subject_id,date,phase,updated_at",
		"order":      "date.asc",
	}

	body, err := r.client.Query(ctx, phaseTagsTable, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list phase tags: %w", err)
	}

	var tags []models.PhaseTag
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return tags, nil
}
