package deliverable

import (
	"math"
	"sort"
	"time"
)

// Progress returns the percentage of deliverables in the approved state,
// rounded to the nearest integer. An empty slice yields 0.
func Progress(ds []Deliverable) int {
	if len(ds) == 0 {
		return 0
	}
	var approved int
	for i := range ds {
		if ds[i].Status == StatusApproved {
			approved++
		}
	}
	return int(math.Round(100 * float64(approved) / float64(len(ds))))
}

// StatusBreakdown returns the number of deliverables per status.
func StatusBreakdown(ds []Deliverable) map[Status]int {
	counts := make(map[Status]int, 4)
	for i := range ds {
		counts[ds[i].Status]++
	}
	return counts
}

// UpcomingDeadlines returns the deliverables that are not yet approved and
// due after now, ascending by due date, truncated to limit. A limit <= 0
// means no truncation. The input slice is not modified.
func UpcomingDeadlines(ds []Deliverable, now time.Time, limit int) []Deliverable {
	upcoming := make([]Deliverable, 0, len(ds))
	for i := range ds {
		if ds[i].Status != StatusApproved && ds[i].DueDate.After(now) {
			upcoming = append(upcoming, ds[i])
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
