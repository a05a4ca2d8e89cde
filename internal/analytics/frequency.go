package analytics

import (
	"sort"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// tally accumulates one category while counting
type tally struct {
	categoryID string
	label      string
	count      int
	firstAt    time.Time
	firstID    string
}

// observe counts c and keeps the label of the earliest check-in seen
func (t *tally) observe(c models.FeelingCheckIn) {
	t.count++
	if t.count == 1 || c.OccurredAt.Before(t.firstAt) ||
		(c.OccurredAt.Equal(t.firstAt) && c.ID < t.firstID) {
		t.label = c.Label
		t.firstAt = c.OccurredAt
		t.firstID = c.ID
	}
}

// CountFeelings groups check-ins by category and returns the full ranked
// table. The label of each row comes from the category's earliest check-in,
// so the result does not depend on input order.
func CountFeelings(checkIns []models.FeelingCheckIn) []models.FeelingFrequency {
	tallies := make(map[string]*tally)
	for _, c := range checkIns {
		t, exists := tallies[c.CategoryID]
		if !exists {
			t = &tally{categoryID: c.CategoryID}
			tallies[c.CategoryID] = t
		}
		t.observe(c)
	}

	frequencies := make([]models.FeelingFrequency, 0, len(tallies))
	for _, t := range tallies {
		frequencies = append(frequencies, models.FeelingFrequency{
			CategoryID: t.categoryID,
			Label:      t.label,
			Count:      t.count,
		})
	}

	rankFrequencies(frequencies)
	return frequencies
}

// TopN returns at most n leading entries of a ranked table
func TopN(frequencies []models.FeelingFrequency, n int) []models.FeelingFrequency {
	if n < 0 {
		n = 0
	}
	if len(frequencies) <= n {
		return frequencies
	}
	return frequencies[:n]
}

// rankFrequencies sorts by count descending, then category ID ascending
func rankFrequencies(frequencies []models.FeelingFrequency) {
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count != frequencies[j].Count {
			return frequencies[i].Count > frequencies[j].Count
		}
		return frequencies[i].CategoryID < frequencies[j].CategoryID
	})
}

// totalCount sums the counts of a frequency table
func totalCount(frequencies []models.FeelingFrequency) int {
	total := 0
	for _, f := range frequencies {
		total += f.Count
	}
	return total
}
