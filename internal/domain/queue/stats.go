package queue

import (
	"math"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type Stats struct {
	Waiting        int `json:"waiting"`
	Serving        int `json:"serving"`
	Total          int `json:"total"`
	AvgWaitMinutes int `json:"avg_wait_minutes"`
}

// ComputeStats summarizes a snapshot. The average runs over every entry,
// waiting and serving alike, rounded to the nearest minute.
func ComputeStats(snapshot []models.QueueEntry) Stats {
	st := Stats{Total: len(snapshot)}
	if len(snapshot) == 0 {
		return st
	}

	sum := 0
	for _, e := range snapshot {
		switch Status(e.Status) {
		case StatusWaiting:
			st.Waiting++
		case StatusServing:
			st.Serving++
		}
		sum += e.EstimatedWait
	}

	st.AvgWaitMinutes = int(math.Round(float64(sum) / float64(len(snapshot))))
	return st
}
