package models

import "time"

// TrendDirection is the direction of a month-over-month change
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendSame TrendDirection = "same"
)

// FeelingFrequency is the number of check-ins for one category in a period
type FeelingFrequency struct {
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
}

// DailyBucket is the number of check-ins on one calendar day
type DailyBucket struct {
	Date  Date `json:"date"`
	Count int  `json:"count"`
}

// PhaseCorrelation holds the most frequent feelings recorded during a phase.
// TotalEventsInPhase counts every attributed check-in, not only the top ones.
type PhaseCorrelation struct {
	Phase              string             `json:"phase"`
	TopFeelings        []FeelingFrequency `json:"top_feelings"`
	TotalEventsInPhase int                `json:"total_events_in_phase"`
}

// TrendEntry compares a category's current period count to the previous one
type TrendEntry struct {
	CategoryID    string         `json:"category_id"`
	Label         string         `json:"label"`
	CurrentCount  int            `json:"current_count"`
	PreviousCount int            `json:"previous_count"`
	Direction     TrendDirection `json:"direction"` // "up", "down", "same"
	PercentChange int            `json:"percent_change"`
}

// InsightReport is the check-in pattern report served to clients.
// List fields are never nil.
type InsightReport struct {
	TopFeelings       []FeelingFrequency `json:"top_feelings"`
	Weekly            []DailyBucket      `json:"weekly"`
	PhaseCorrelations []PhaseCorrelation `json:"phase_correlations"`
	Trends            []TrendEntry       `json:"trends"`
	GeneratedAt       time.Time          `json:"generated_at"`
	Timezone          string             `json:"timezone"`
}
