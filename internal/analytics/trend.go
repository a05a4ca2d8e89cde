package analytics

import (
	"math"
	"sort"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// TrendDirection classifies the sign of current - previous
func TrendDirection(current, previous int) models.TrendDirection {
	switch diff := current - previous; {
	case diff > 0:
		return models.TrendUp
	case diff < 0:
		return models.TrendDown
	default:
		return models.TrendSame
	}
}

// PercentChange returns the rounded magnitude of the change relative to the
// previous count. A category that appears from nothing counts as 100%.
func PercentChange(current, previous int) int {
	if previous > 0 {
		diff := math.Abs(float64(current - previous))
		return int(math.Round(diff / float64(previous) * 100))
	}
	if current > 0 {
		return 100
	}
	return 0
}

// belowNoiseFloor reports whether neither period reached TrendNoiseFloor
func belowNoiseFloor(current, previous int) bool {
	return current < TrendNoiseFloor && previous < TrendNoiseFloor
}

// AnalyzeTrends compares full (untruncated) frequency tables for the current
// and previous periods. Categories below the noise floor in both periods are
// dropped; the rest are ranked by percent change descending, then category ID,
// and at most TrendLimit entries are returned.
func AnalyzeTrends(current, previous []models.FeelingFrequency) []models.TrendEntry {
	type pair struct {
		label    string
		current  int
		previous int
	}

	pairs := make(map[string]*pair, len(current)+len(previous))
	for _, f := range previous {
		pairs[f.CategoryID] = &pair{label: f.Label, previous: f.Count}
	}
	for _, f := range current {
		p, exists := pairs[f.CategoryID]
		if !exists {
			p = &pair{}
			pairs[f.CategoryID] = p
		}
		// The current period's label is the most recent one shown to the user
		p.label = f.Label
		p.current = f.Count
	}

	trends := make([]models.TrendEntry, 0, len(pairs))
	for categoryID, p := range pairs {
		if belowNoiseFloor(p.current, p.previous) {
			continue
		}
		trends = append(trends, models.TrendEntry{
			CategoryID:    categoryID,
			Label:         p.label,
			CurrentCount:  p.current,
			PreviousCount: p.previous,
			Direction:     TrendDirection(p.current, p.previous),
			PercentChange: PercentChange(p.current, p.previous),
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].PercentChange != trends[j].PercentChange {
			return trends[i].PercentChange > trends[j].PercentChange
		}
		return trends[i].CategoryID < trends[j].CategoryID
	})

	if len(trends) > TrendLimit {
		trends = trends[:TrendLimit]
	}

	return trends
}
