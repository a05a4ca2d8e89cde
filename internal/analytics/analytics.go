// Package analytics turns a subject's feeling check-ins and phase tags into
// an InsightReport. Everything here is a pure function of its inputs and the
// injected "now"; fetching events is the caller's job.
package analytics

const (
	// PeriodDays is the length of the current and previous comparison periods
	PeriodDays = 30

	// WeekDays is the number of calendar days in the daily series
	WeekDays = 7

	// TopFeelingsLimit caps the most-common feelings list
	TopFeelingsLimit = 5

	// TrendLimit caps the trends list
	TrendLimit = 5

	// PhaseTopFeelingsLimit caps the feelings listed per phase
	PhaseTopFeelingsLimit = 3

	// TrendNoiseFloor is the count a category must reach in at least one
	// period before it is reported as a trend
	TrendNoiseFloor = 2
)
