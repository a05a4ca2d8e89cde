package models

import "time"

// Known cycle phases. Phase tags may carry other values; these are the
// ones the write endpoints accept.
const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

var knownPhases = map[string]bool{
	PhaseMenstrual:  true,
	PhaseFollicular: true,
	PhaseOvulation:  true,
	PhaseLuteal:     true,
}

// IsKnownPhase reports whether phase is one of the supported cycle phases
func IsKnownPhase(phase string) bool {
	return knownPhases[phase]
}

// FeelingCheckIn is a single timestamped self-report of a feeling.
// Check-ins are immutable once written.
type FeelingCheckIn struct {
	ID         string    `json:"id"`
	SubjectID  string    `json:"subject_id"`
	CategoryID string    `json:"category_id"`
	Label      string    `json:"label"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Valid reports whether the check-in carries every field the insights
// pipeline needs. Records that fail are skipped, not rejected.
func (c FeelingCheckIn) Valid() bool {
	return c.CategoryID != "" && c.Label != "" && !c.OccurredAt.IsZero()
}

// PhaseTag classifies one calendar day for a subject
type PhaseTag struct {
	SubjectID string    `json:"subject_id"`
	Date      Date      `json:"date"`
	Phase     string    `json:"phase"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Valid reports whether the tag has a date and a phase
func (p PhaseTag) Valid() bool {
	return !p.Date.IsZero() && p.Phase != ""
}

// RawCreateCheckInRequest is the wire shape of a check-in create request.
// Timestamps arrive as strings so the handler can report every invalid
// field at once.
type RawCreateCheckInRequest struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
	OccurredAt string `json:"occurred_at"`
}

// CreateCheckInRequest is a validated check-in create request
type CreateCheckInRequest struct {
	ID         string
	CategoryID string
	Label      string
	OccurredAt time.Time
}

// UpsertPhaseTagRequest represents the body of PUT /phase-tags/:date
type UpsertPhaseTagRequest struct {
	Phase string `json:"phase" binding:"required"`
}
