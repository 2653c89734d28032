package queue

import "github.com/BruksfildServices01/barber-queue/internal/models"

const (
	// AvgMinutesPerSlot is the fixed cost of every customer ahead in line.
	AvgMinutesPerSlot = 15

	// DefaultServiceMinutes is used when the service id does not resolve.
	DefaultServiceMinutes = 30
)

// ServiceDuration resolves the duration of a service, falling back to
// DefaultServiceMinutes for unknown ids or non-positive durations.
func ServiceDuration(services []models.Service, serviceID int) int {
	for _, s := range services {
		if s.ID == serviceID && s.DurationMinutes > 0 {
			return s.DurationMinutes
		}
	}
	return DefaultServiceMinutes
}

// EstimateWait is (position-1)*15 + duration, in minutes.
func EstimateWait(position, durationMinutes int) int {
	if position < 1 {
		position = 1
	}
	return (position-1)*AvgMinutesPerSlot + durationMinutes
}

// NextPosition is the position a new arrival takes: behind every waiting entry.
func NextPosition(entries []models.QueueEntry) int {
	n := 0
	for _, e := range entries {
		if IsWaiting(e) {
			n++
		}
	}
	return n + 1
}
