package analytics

import (
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// Range is a time interval open at Start and closed at End.
// Contains is the only membership test used by the pipeline, so an event
// sitting exactly on a period boundary always lands in the older period.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start < t <= End
func (r Range) Contains(t time.Time) bool {
	return t.After(r.Start) && !t.After(r.End)
}

// Windows holds every interval derived from a single "now"
type Windows struct {
	Now      time.Time
	Current  Range
	Previous Range
	// Week lists the WeekDays calendar days ending on Now's date, oldest first
	Week []models.Date
}

// NewWindows partitions time around now. Calendar days are resolved in
// now's location.
func NewWindows(now time.Time) Windows {
	currentStart := now.AddDate(0, 0, -PeriodDays)
	previousStart := currentStart.AddDate(0, 0, -PeriodDays)

	today := models.DateOf(now)
	week := make([]models.Date, WeekDays)
	for i := 0; i < WeekDays; i++ {
		week[i] = today.AddDays(i - (WeekDays - 1))
	}

	return Windows{
		Now:      now,
		Current:  Range{Start: currentStart, End: now},
		Previous: Range{Start: previousStart, End: currentStart},
		Week:     week,
	}
}

// FetchRange is the union of the previous and current periods
func (w Windows) FetchRange() Range {
	return Range{Start: w.Previous.Start, End: w.Current.End}
}

// CurrentDays returns the first and last calendar day touched by the
// current period, which bounds the phase tags the correlator can use
func (w Windows) CurrentDays() (models.Date, models.Date) {
	loc := w.Now.Location()
	return models.DateOf(w.Current.Start.In(loc)), models.DateOf(w.Current.End.In(loc))
}

// dayOf resolves the calendar day of t in loc
func dayOf(t time.Time, loc *time.Location) models.Date {
	return models.DateOf(t.In(loc))
}

// partition splits check-ins into the current and previous periods.
// Check-ins outside both periods and malformed check-ins are dropped.
func (w Windows) partition(checkIns []models.FeelingCheckIn) (current, previous []models.FeelingCheckIn) {
	current = make([]models.FeelingCheckIn, 0, len(checkIns))
	previous = make([]models.FeelingCheckIn, 0, len(checkIns))

	for _, c := range checkIns {
		if !c.Valid() {
			continue
		}
		switch {
		case w.Current.Contains(c.OccurredAt):
			current = append(current, c)
		case w.Previous.Contains(c.OccurredAt):
			previous = append(previous, c)
		}
	}

	return current, previous
}
