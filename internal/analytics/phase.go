package analytics

import (
	"sort"
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// phaseLookup maps a calendar day to its phase. When more than one tag
// exists for a day, the lexicographically smallest phase wins so the join
// stays deterministic.
func phaseLookup(tags []models.PhaseTag) map[models.Date]string {
	lookup := make(map[models.Date]string, len(tags))
	for _, tag := range tags {
		if !tag.Valid() {
			continue
		}
		if existing, ok := lookup[tag.Date]; ok && existing <= tag.Phase {
			continue
		}
		lookup[tag.Date] = tag.Phase
	}
	return lookup
}

// CorrelatePhases joins check-ins to phase tags by calendar day (in loc)
// and ranks feelings within each phase. Check-ins on untagged days are
// left out. Phases are ordered by total events descending, then by name.
func CorrelatePhases(checkIns []models.FeelingCheckIn, tags []models.PhaseTag, loc *time.Location) []models.PhaseCorrelation {
	lookup := phaseLookup(tags)

	byPhase := make(map[string][]models.FeelingCheckIn)
	for _, c := range checkIns {
		phase, ok := lookup[dayOf(c.OccurredAt, loc)]
		if !ok {
			continue
		}
		byPhase[phase] = append(byPhase[phase], c)
	}

	correlations := make([]models.PhaseCorrelation, 0, len(byPhase))
	for phase, phaseCheckIns := range byPhase {
		frequencies := CountFeelings(phaseCheckIns)
		correlations = append(correlations, models.PhaseCorrelation{
			Phase:              phase,
			TopFeelings:        TopN(frequencies, PhaseTopFeelingsLimit),
			TotalEventsInPhase: totalCount(frequencies),
		})
	}

	sort.Slice(correlations, func(i, j int) bool {
		if correlations[i].TotalEventsInPhase != correlations[j].TotalEventsInPhase {
			return correlations[i].TotalEventsInPhase > correlations[j].TotalEventsInPhase
		}
		return correlations[i].Phase < correlations[j].Phase
	})

	return correlations
}
