package analytics

import (
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// SkipStats counts records dropped at the input boundary
type SkipStats struct {
	CheckIns  int
	PhaseTags int
}

// Total returns the number of skipped records of either kind
func (s SkipStats) Total() int {
	return s.CheckIns + s.PhaseTags
}

// Sanitize drops malformed records and records that belong to a different
// subject. It never fails: one bad row must not hide insights built from
// the valid ones.
func Sanitize(subjectID string, checkIns []models.FeelingCheckIn, tags []models.PhaseTag) ([]models.FeelingCheckIn, []models.PhaseTag, SkipStats) {
	var stats SkipStats

	keptCheckIns := make([]models.FeelingCheckIn, 0, len(checkIns))
	for _, c := range checkIns {
		if !c.Valid() || (c.SubjectID != "" && c.SubjectID != subjectID) {
			stats.CheckIns++
			continue
		}
		keptCheckIns = append(keptCheckIns, c)
	}

	keptTags := make([]models.PhaseTag, 0, len(tags))
	for _, tag := range tags {
		if !tag.Valid() || (tag.SubjectID != "" && tag.SubjectID != subjectID) {
			stats.PhaseTags++
			continue
		}
		keptTags = append(keptTags, tag)
	}

	return keptCheckIns, keptTags, stats
}

// BuildReport runs the whole pipeline for one subject's events. now fixes
// both the windows and the location used to resolve calendar days.
func BuildReport(now time.Time, checkIns []models.FeelingCheckIn, tags []models.PhaseTag) models.InsightReport {
	windows := NewWindows(now)
	loc := now.Location()

	current, previous := windows.partition(checkIns)

	// Trends need the full tables, not the truncated top list
	currentFrequencies := CountFeelings(current)
	previousFrequencies := CountFeelings(previous)

	return models.InsightReport{
		TopFeelings:       TopN(currentFrequencies, TopFeelingsLimit),
		Weekly:            BucketDaily(current, windows.Week, loc),
		PhaseCorrelations: CorrelatePhases(current, tags, loc),
		Trends:            AnalyzeTrends(currentFrequencies, previousFrequencies),
		GeneratedAt:       now,
		Timezone:          loc.String(),
	}
}
