package analytics

import (
	"time"

	"github.com/JonnyWalker81/wellness/backend/internal/models"
)

// BucketDaily counts check-ins per calendar day. It returns exactly one
// bucket per entry of days, in the same order, including days with no
// check-ins. Check-ins whose day (in loc) is not listed are ignored.
func BucketDaily(checkIns []models.FeelingCheckIn, days []models.Date, loc *time.Location) []models.DailyBucket {
	buckets := make([]models.DailyBucket, len(days))
	index := make(map[models.Date]int, len(days))
	for i, day := range days {
		buckets[i] = models.DailyBucket{Date: day}
		index[day] = i
	}

	for _, c := range checkIns {
		if i, ok := index[dayOf(c.OccurredAt, loc)]; ok {
			buckets[i].Count++
		}
	}

	return buckets
}
