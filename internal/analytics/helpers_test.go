package analytics

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

const testSubject = "subject-1"

// fixedNow is the clock used across the package tests
var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

var idSeq int

func checkIn(category string, at time.Time) models.FeelingCheckIn {
	idSeq++
	return models.FeelingCheckIn{
		ID:         fmt.Sprintf("c-%04d", idSeq),
		SubjectID:  testSubject,
		CategoryID: category,
		Label:      category,
		OccurredAt: at,
	}
}

// repeat returns n check-ins of one category spaced an hour apart, ending at at
func repeat(category string, n int, at time.Time) []models.FeelingCheckIn {
	out := make([]models.FeelingCheckIn, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, checkIn(category, at.Add(-time.Duration(i)*time.Hour)))
	}
	return out
}

func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}

func tag(date models.Date, phase string) models.PhaseTag {
	return models.PhaseTag{SubjectID: testSubject, Date: date, Phase: phase}
}
